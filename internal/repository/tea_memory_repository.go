package repository

import (
	"context"
	"fmt"
	"sync"

	"vidtube/internal/model"
)

// TeaMemoryRepository : чаи в памяти процесса, теряются при перезапуске
type TeaMemoryRepository struct {
	mu     sync.RWMutex
	teas   []model.Tea
	nextID int
}

func NewTeaMemoryRepository() *TeaMemoryRepository {
	return &TeaMemoryRepository{nextID: 1}
}

func (r *TeaMemoryRepository) Create(_ context.Context, tea model.Tea) (*model.Tea, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tea.ID = r.nextID
	r.nextID++
	r.teas = append(r.teas, tea)

	return &tea, nil
}

func (r *TeaMemoryRepository) List(_ context.Context) ([]model.Tea, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	teas := make([]model.Tea, len(r.teas))
	copy(teas, r.teas)
	return teas, nil
}

func (r *TeaMemoryRepository) Get(_ context.Context, id int) (*model.Tea, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, fmt.Errorf("[TeaMemoryRepo] %w", model.ErrTeaNotFound)
	}
	tea := r.teas[i]
	return &tea, nil
}

func (r *TeaMemoryRepository) Update(_ context.Context, tea model.Tea) (*model.Tea, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(tea.ID)
	if i < 0 {
		return nil, fmt.Errorf("[TeaMemoryRepo] %w", model.ErrTeaNotFound)
	}
	r.teas[i] = tea
	return &tea, nil
}

func (r *TeaMemoryRepository) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return fmt.Errorf("[TeaMemoryRepo] %w", model.ErrTeaNotFound)
	}
	r.teas = append(r.teas[:i], r.teas[i+1:]...)
	return nil
}

// indexOf : вызывается под блокировкой
func (r *TeaMemoryRepository) indexOf(id int) int {
	for i := range r.teas {
		if r.teas[i].ID == id {
			return i
		}
	}
	return -1
}
