package requestresponse

import "vidtube/internal/model"

// LoginRequest : тело запроса на аутентификацию (username или email)
type LoginRequest struct {
	Username string `json:"username" example:"t1"`
	Email    string `json:"email" example:"t1@x.com"`
	Password string `json:"password" example:"p"`
}

// LoginData : пользователь и выданная пара токенов
type LoginData struct {
	User         *model.User `json:"user"`
	AccessToken  string      `json:"accessToken" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	RefreshToken string      `json:"refreshToken" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

// RefreshTokenRequest : refresh-токен можно передать в теле, если нет cookie
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

// ChangePasswordRequest : смена пароля текущего пользователя
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" example:"p"`
	NewPassword string `json:"newPassword" example:"P@ssw0rd123"`
}
