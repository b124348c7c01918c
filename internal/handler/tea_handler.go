package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"vidtube/internal/apperr"
	"vidtube/internal/model/requestresponse"
	"vidtube/internal/ports"
	"vidtube/internal/util"
)

// TeaHandler : учебный CRUD по чаям. Ответы без общей обёртки, ошибки - text/plain.
type TeaHandler struct {
	ports.TeaService
	bodyLimit int64
}

func NewTeaHandler(teaService ports.TeaService, bodyLimit int64) *TeaHandler {
	return &TeaHandler{teaService, bodyLimit}
}

// CreateTea godoc
// @Summary Добавление чая
// @Tags Teas
// @Accept json
// @Produce json
// @Param body body requestresponse.TeaRequest true "Тело запроса"
// @Success 201 {object} model.Tea
// @Failure 400 {string} string
// @Router /teas [post]
func (h *TeaHandler) CreateTea(w http.ResponseWriter, r *http.Request) {
	var req requestresponse.TeaRequest
	if !h.decodeTea(w, r, &req) {
		return
	}

	tea, err := h.TeaService.Create(r.Context(), req.Name, req.Price)
	if err != nil {
		writeTeaError(w, r, err)
		return
	}

	util.WriteJSON(w, http.StatusCreated, tea)
}

// ListTeas godoc
// @Summary Список чаёв
// @Tags Teas
// @Produce json
// @Success 200 {array} model.Tea
// @Router /teas [get]
func (h *TeaHandler) ListTeas(w http.ResponseWriter, r *http.Request) {
	teas, err := h.TeaService.List(r.Context())
	if err != nil {
		writeTeaError(w, r, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, teas)
}

// GetTea godoc
// @Summary Чай по ID
// @Tags Teas
// @Produce json
// @Param id path int true "ID чая"
// @Success 200 {object} model.Tea
// @Failure 404 {string} string "Tea with ID n is not available"
// @Router /teas/{id} [get]
func (h *TeaHandler) GetTea(w http.ResponseWriter, r *http.Request) {
	id, ok := teaID(w, r)
	if !ok {
		return
	}

	tea, err := h.TeaService.Get(r.Context(), id)
	if err != nil {
		writeTeaError(w, r, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, tea)
}

// UpdateTea godoc
// @Summary Изменение чая
// @Tags Teas
// @Accept json
// @Produce json
// @Param id path int true "ID чая"
// @Param body body requestresponse.TeaRequest true "Тело запроса"
// @Success 200 {object} model.Tea
// @Failure 400 {string} string
// @Failure 404 {string} string "Tea with ID n is not available"
// @Router /teas/{id} [put]
func (h *TeaHandler) UpdateTea(w http.ResponseWriter, r *http.Request) {
	id, ok := teaID(w, r)
	if !ok {
		return
	}

	var req requestresponse.TeaRequest
	if !h.decodeTea(w, r, &req) {
		return
	}

	tea, err := h.TeaService.Update(r.Context(), id, req.Name, req.Price)
	if err != nil {
		writeTeaError(w, r, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, tea)
}

// DeleteTea godoc
// @Summary Удаление чая
// @Tags Teas
// @Produce plain
// @Param id path int true "ID чая"
// @Success 200 {string} string "Tea with ID n Deleted."
// @Failure 404 {string} string "Tea with ID n is not available"
// @Router /teas/{id} [delete]
func (h *TeaHandler) DeleteTea(w http.ResponseWriter, r *http.Request) {
	id, ok := teaID(w, r)
	if !ok {
		return
	}

	if err := h.TeaService.Delete(r.Context(), id); err != nil {
		writeTeaError(w, r, err)
		return
	}

	writeText(w, http.StatusOK, fmt.Sprintf("Tea with ID %d Deleted.", id))
}

// decodeTea : как decodeJSON, но ошибка отдаётся текстом, как и остальные ошибки чаёв
func (h *TeaHandler) decodeTea(w http.ResponseWriter, r *http.Request, req *requestresponse.TeaRequest) bool {
	if status, message := readJSON(w, r, h.bodyLimit, req, false); status != 0 {
		writeText(w, status, message)
		return false
	}
	return true
}

// teaID : нечисловой ID не может совпасть ни с одним чаем
func teaID(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.Atoi(raw)
	if err != nil {
		writeText(w, http.StatusNotFound, fmt.Sprintf("Tea with ID %s is not available", raw))
		return 0, false
	}
	return id, true
}

func writeTeaError(w http.ResponseWriter, r *http.Request, err error) {
	status, message, _ := apperr.Public(err)
	if status >= http.StatusInternalServerError {
		util.Logger(r.Context()).Error("ошибка обработки запроса", "path", r.URL.Path, "err", err.Error())
	}
	writeText(w, status, message)
}

func writeText(w http.ResponseWriter, status int, text string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(text))
}
