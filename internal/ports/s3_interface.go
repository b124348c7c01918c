package ports

import (
	"context"

	"vidtube/internal/model"
)

// MediaStorage : внешнее хранилище изображений профиля
type MediaStorage interface {
	Upload(ctx context.Context, localPath string) (*model.Media, error)
	Delete(ctx context.Context, publicID string) error
}
