package ports

import (
	"context"

	"vidtube/internal/model"
)

// TeaRepository : хранилище чаёв (память процесса или Redis)
type TeaRepository interface {
	Create(ctx context.Context, tea model.Tea) (*model.Tea, error)
	List(ctx context.Context) ([]model.Tea, error)
	Get(ctx context.Context, id int) (*model.Tea, error)
	Update(ctx context.Context, tea model.Tea) (*model.Tea, error)
	Delete(ctx context.Context, id int) error
}

type TeaService interface {
	Create(ctx context.Context, name string, price float64) (*model.Tea, error)
	List(ctx context.Context) ([]model.Tea, error)
	Get(ctx context.Context, id int) (*model.Tea, error)
	Update(ctx context.Context, id int, name string, price float64) (*model.Tea, error)
	Delete(ctx context.Context, id int) error
}
