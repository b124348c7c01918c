package ports

import (
	"context"

	"vidtube/internal/model"
)

// UserRepository : хранилище учётных записей (PostgreSQL, MongoDB или память процесса)
type UserRepository interface {
	Create(ctx context.Context, user *model.User) (*model.User, error)
	FindByUUID(ctx context.Context, uuid string) (*model.User, error)
	FindByUsernameOrEmail(ctx context.Context, username, email string) (*model.User, error)
	UpdateRefreshToken(ctx context.Context, uuid string, refreshToken *string) error
	UpdatePassword(ctx context.Context, uuid, passwordHash string) error
	UpdateAccount(ctx context.Context, uuid string, update model.AccountUpdate) (*model.User, error)
	UpdateMedia(ctx context.Context, uuid string, kind model.MediaKind, media model.Media) (*model.User, error)
}
