package handler

import (
	"net/http"
	"strings"

	"vidtube/internal/model"
	"vidtube/internal/model/requestresponse"
	"vidtube/internal/ports"
	"vidtube/internal/security"
	"vidtube/internal/util"
)

type AuthenticationHandler struct {
	ports.SessionService
	secureCookies bool
	bodyLimit     int64
}

func NewAuthenticationHandler(sessionService ports.SessionService, secureCookies bool, bodyLimit int64) *AuthenticationHandler {
	return &AuthenticationHandler{
		sessionService,
		secureCookies,
		bodyLimit,
	}
}

// Login godoc
// @Summary Аутентификация пользователя
// @Description Вход по username или email. Токены возвращаются в теле и в cookie accessToken/refreshToken.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param body body requestresponse.LoginRequest true "Тело запроса"
// @Success 200 {object} requestresponse.ApiResponse{data=requestresponse.LoginData}
// @Failure 400 {object} requestresponse.ApiError "Пустые поля"
// @Failure 401 {object} requestresponse.ApiError "Неверный пароль"
// @Failure 404 {object} requestresponse.ApiError "Пользователь не найден"
// @Failure 500 {object} requestresponse.ApiError
// @Router /api/v1/users/login [post]
func (h *AuthenticationHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req requestresponse.LoginRequest
	if !decodeJSON(w, r, h.bodyLimit, &req, false) {
		return
	}

	identifier := strings.TrimSpace(req.Email)
	if identifier == "" {
		identifier = strings.TrimSpace(req.Username)
	}

	result, err := h.SessionService.Login(r.Context(), identifier, req.Password)
	if err != nil {
		util.WriteError(w, r, err)
		return
	}

	h.setAuthCookies(w, result.Tokens)
	util.WriteSuccess(w, http.StatusOK, requestresponse.LoginData{
		User:         result.User,
		AccessToken:  result.Tokens.AccessToken,
		RefreshToken: result.Tokens.RefreshToken,
	}, "User logged in successfully")
}

// RefreshToken godoc
// @Summary Обновление токенов
// @Description Ротация пары токенов. Refresh-токен берётся из cookie refreshToken или из тела запроса.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param body body requestresponse.RefreshTokenRequest false "Тело запроса"
// @Success 200 {object} requestresponse.ApiResponse{data=model.TokensPair}
// @Failure 401 {object} requestresponse.ApiError "Токен отсутствует, недействителен или уже использован"
// @Failure 404 {object} requestresponse.ApiError "Пользователь не найден"
// @Failure 500 {object} requestresponse.ApiError
// @Router /api/v1/users/refresh-token [post]
func (h *AuthenticationHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var presented string
	if cookie, err := r.Cookie(security.RefreshTokenCookie); err == nil {
		presented = cookie.Value
	}

	if presented == "" {
		var req requestresponse.RefreshTokenRequest
		if !decodeJSON(w, r, h.bodyLimit, &req, true) {
			return
		}
		presented = req.RefreshToken
	}

	tokens, err := h.SessionService.Refresh(r.Context(), presented)
	if err != nil {
		util.WriteError(w, r, err)
		return
	}

	h.setAuthCookies(w, tokens)
	util.WriteSuccess(w, http.StatusOK, tokens, "Access token refreshed successfully")
}

// Logout godoc
// @Summary Завершение сессии
// @Description Очищает сохранённый refresh-токен и cookie. Повторный вызов не ошибка.
// @Tags Authentication
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} requestresponse.ApiResponse
// @Failure 401 {object} requestresponse.ApiError
// @Failure 500 {object} requestresponse.ApiError
// @Router /api/v1/users/logout [post]
func (h *AuthenticationHandler) Logout(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	if err := h.SessionService.Logout(r.Context(), user.UUID); err != nil {
		util.WriteError(w, r, err)
		return
	}

	h.clearAuthCookies(w)
	util.WriteSuccess(w, http.StatusOK, struct{}{}, "User logged out successfully")
}

// ChangePassword godoc
// @Summary Смена пароля
// @Description Проверяет старый пароль и сохраняет новый. Выданный refresh-токен остаётся действительным.
// @Tags Authentication
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body requestresponse.ChangePasswordRequest true "Тело запроса"
// @Success 200 {object} requestresponse.ApiResponse
// @Failure 400 {object} requestresponse.ApiError
// @Failure 401 {object} requestresponse.ApiError "Неверный старый пароль"
// @Failure 500 {object} requestresponse.ApiError
// @Router /api/v1/users/change-password [post]
func (h *AuthenticationHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req requestresponse.ChangePasswordRequest
	if !decodeJSON(w, r, h.bodyLimit, &req, false) {
		return
	}

	if err := h.SessionService.ChangePassword(r.Context(), user.UUID, req.OldPassword, req.NewPassword); err != nil {
		util.WriteError(w, r, err)
		return
	}

	util.WriteSuccess(w, http.StatusOK, struct{}{}, "Password changed successfully")
}

func (h *AuthenticationHandler) setAuthCookies(w http.ResponseWriter, tokens *model.TokensPair) {
	http.SetCookie(w, h.cookie(security.AccessTokenCookie, tokens.AccessToken))
	http.SetCookie(w, h.cookie(security.RefreshTokenCookie, tokens.RefreshToken))
}

func (h *AuthenticationHandler) clearAuthCookies(w http.ResponseWriter) {
	for _, name := range []string{security.AccessTokenCookie, security.RefreshTokenCookie} {
		c := h.cookie(name, "")
		c.MaxAge = -1
		http.SetCookie(w, c)
	}
}

func (h *AuthenticationHandler) cookie(name, value string) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	}
}
