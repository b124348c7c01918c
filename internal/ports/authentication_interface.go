package ports

import (
	"context"

	"vidtube/internal/model"
)

// RegisterInput : данные регистрации; пути указывают на временные файлы на диске
type RegisterInput struct {
	FullName       string
	Email          string
	Username       string
	Password       string
	AvatarPath     string
	CoverImagePath string
}

type SessionService interface {
	Register(ctx context.Context, input RegisterInput) (*model.User, error)
	Login(ctx context.Context, identifier, password string) (*model.LoginResult, error)
	Refresh(ctx context.Context, refreshToken string) (*model.TokensPair, error)
	Logout(ctx context.Context, userUUID string) error
	ChangePassword(ctx context.Context, userUUID, oldPassword, newPassword string) error
	CurrentUser(ctx context.Context, userUUID string) (*model.User, error)
	UpdateAccount(ctx context.Context, userUUID string, update model.AccountUpdate) (*model.User, error)
	UpdateMedia(ctx context.Context, userUUID string, kind model.MediaKind, localPath string) (*model.User, error)
}
