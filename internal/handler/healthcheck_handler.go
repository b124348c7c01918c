package handler

import (
	"net/http"

	"vidtube/internal/util"
)

// Healthcheck godoc
// @Summary Проверка работоспособности
// @Tags Health
// @Produce json
// @Success 200 {object} requestresponse.ApiResponse
// @Router /api/v1/healthcheck [get]
func Healthcheck(w http.ResponseWriter, _ *http.Request) {
	util.WriteSuccess(w, http.StatusOK, "OK", "Health Check Passed")
}

// Hello godoc
// @Summary Приветствие
// @Tags Hello
// @Produce plain
// @Success 200 {string} string "Hello ICE TEA"
// @Router / [get]
func Hello(w http.ResponseWriter, _ *http.Request) {
	writeText(w, http.StatusOK, "Hello ICE TEA")
}

// IceTea godoc
// @Summary Заказ холодного чая
// @Tags Hello
// @Produce plain
// @Success 200 {string} string "Thanks for ordering ice tea :)"
// @Router /ice-tea [get]
func IceTea(w http.ResponseWriter, _ *http.Request) {
	writeText(w, http.StatusOK, "Thanks for ordering ice tea :)")
}

// NotFound : ответ для неизвестных маршрутов
func NotFound(w http.ResponseWriter, _ *http.Request) {
	writeText(w, http.StatusNotFound, "404 not found :(")
}
