package handler

import (
	"errors"
	"net/http"

	"vidtube/config"
	"vidtube/internal/model"
	"vidtube/internal/model/requestresponse"
	"vidtube/internal/ports"
	"vidtube/internal/util"
)

type UserHandler struct {
	ports.SessionService
	upload    *config.UploadConfig
	bodyLimit int64
}

func NewUserHandler(sessionService ports.SessionService, upload *config.UploadConfig, bodyLimit int64) *UserHandler {
	return &UserHandler{sessionService, upload, bodyLimit}
}

// RegisterUser godoc
// @Summary Регистрация нового пользователя
// @Description Создает пользователя. Аватар обязателен, обложка нет. Файлы загружаются во внешнее хранилище.
// @Tags Users
// @Accept multipart/form-data
// @Produce json
// @Param fullName formData string true "Полное имя"
// @Param email formData string true "Email"
// @Param username formData string true "Username"
// @Param password formData string true "Пароль"
// @Param avatar formData file true "Аватар"
// @Param coverImage formData file false "Обложка"
// @Success 201 {object} requestresponse.ApiResponse{data=model.User}
// @Failure 400 {object} requestresponse.ApiError "Пустые поля или нет аватара"
// @Failure 409 {object} requestresponse.ApiError "Username или email заняты"
// @Failure 502 {object} requestresponse.ApiError "Ошибка загрузки файла"
// @Failure 500 {object} requestresponse.ApiError
// @Router /api/v1/users/register [post]
func (h *UserHandler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	if !h.parseMultipart(w, r) {
		return
	}

	avatarPath, ok := h.saveFile(w, r, "avatar")
	if !ok {
		return
	}
	defer removeTemp(r, avatarPath)

	coverPath, ok := h.saveFile(w, r, "coverImage")
	if !ok {
		return
	}
	defer removeTemp(r, coverPath)

	user, err := h.SessionService.Register(r.Context(), ports.RegisterInput{
		FullName:       r.FormValue("fullName"),
		Email:          r.FormValue("email"),
		Username:       r.FormValue("username"),
		Password:       r.FormValue("password"),
		AvatarPath:     avatarPath,
		CoverImagePath: coverPath,
	})
	if err != nil {
		util.WriteError(w, r, err)
		return
	}

	util.WriteSuccess(w, http.StatusCreated, user, "User registered successfully")
}

// GetCurrentUser godoc
// @Summary Текущий пользователь
// @Tags Users
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} requestresponse.ApiResponse{data=model.User}
// @Failure 401 {object} requestresponse.ApiError
// @Router /api/v1/users/current-user [get]
func (h *UserHandler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	fresh, err := h.SessionService.CurrentUser(r.Context(), user.UUID)
	if err != nil {
		util.WriteError(w, r, err)
		return
	}

	util.WriteSuccess(w, http.StatusOK, fresh, "Current user details")
}

// UpdateAccount godoc
// @Summary Изменение профиля
// @Tags Users
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body requestresponse.UpdateAccountRequest true "Тело запроса"
// @Success 200 {object} requestresponse.ApiResponse{data=model.User}
// @Failure 400 {object} requestresponse.ApiError
// @Failure 401 {object} requestresponse.ApiError
// @Failure 409 {object} requestresponse.ApiError "Email занят"
// @Router /api/v1/users/update-account [patch]
func (h *UserHandler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req requestresponse.UpdateAccountRequest
	if !decodeJSON(w, r, h.bodyLimit, &req, false) {
		return
	}

	updated, err := h.SessionService.UpdateAccount(r.Context(), user.UUID, model.AccountUpdate{
		FullName: req.FullName,
		Email:    req.Email,
	})
	if err != nil {
		util.WriteError(w, r, err)
		return
	}

	util.WriteSuccess(w, http.StatusOK, updated, "Account details updated successfully")
}

// UpdateAvatar godoc
// @Summary Замена аватара
// @Tags Users
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param avatar formData file true "Аватар"
// @Success 200 {object} requestresponse.ApiResponse{data=model.User}
// @Failure 400 {object} requestresponse.ApiError
// @Failure 401 {object} requestresponse.ApiError
// @Failure 502 {object} requestresponse.ApiError
// @Router /api/v1/users/avatar [patch]
func (h *UserHandler) UpdateAvatar(w http.ResponseWriter, r *http.Request) {
	h.updateMedia(w, r, model.MediaAvatar, "Avatar updated successfully")
}

// UpdateCoverImage godoc
// @Summary Замена обложки
// @Tags Users
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param coverImage formData file true "Обложка"
// @Success 200 {object} requestresponse.ApiResponse{data=model.User}
// @Failure 400 {object} requestresponse.ApiError
// @Failure 401 {object} requestresponse.ApiError
// @Failure 502 {object} requestresponse.ApiError
// @Router /api/v1/users/cover-image [patch]
func (h *UserHandler) UpdateCoverImage(w http.ResponseWriter, r *http.Request) {
	h.updateMedia(w, r, model.MediaCoverImage, "Cover image updated successfully")
}

func (h *UserHandler) updateMedia(w http.ResponseWriter, r *http.Request, kind model.MediaKind, message string) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	if !h.parseMultipart(w, r) {
		return
	}

	localPath, ok := h.saveFile(w, r, string(kind))
	if !ok {
		return
	}
	defer removeTemp(r, localPath)

	updated, err := h.SessionService.UpdateMedia(r.Context(), user.UUID, kind, localPath)
	if err != nil {
		util.WriteError(w, r, err)
		return
	}

	util.WriteSuccess(w, http.StatusOK, updated, message)
}

func (h *UserHandler) parseMultipart(w http.ResponseWriter, r *http.Request) bool {
	r.Body = http.MaxBytesReader(w, r.Body, h.upload.MaxSizeBytes)
	if err := r.ParseMultipartForm(h.upload.MaxSizeBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			util.HandleError(w, "Request body too large", http.StatusRequestEntityTooLarge)
			return false
		}
		util.HandleError(w, "Invalid multipart form", http.StatusBadRequest)
		return false
	}
	return true
}

func (h *UserHandler) saveFile(w http.ResponseWriter, r *http.Request, field string) (string, bool) {
	path, err := saveFormFile(r, field, h.upload.TempDir)
	if err != nil {
		util.WriteError(w, r, util.LogError(r.Context(), "не удалось сохранить загруженный файл", err))
		return "", false
	}
	return path, true
}
