package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"vidtube/internal/apperr"
	"vidtube/internal/model"
	"vidtube/internal/repository"
	"vidtube/internal/service"
)

// MockTeaRepository
type MockTeaRepository struct {
	mock.Mock
}

func (m *MockTeaRepository) Create(ctx context.Context, tea model.Tea) (*model.Tea, error) {
	args := m.Called(ctx, tea)
	if t, ok := args.Get(0).(*model.Tea); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTeaRepository) List(ctx context.Context) ([]model.Tea, error) {
	args := m.Called(ctx)
	if t, ok := args.Get(0).([]model.Tea); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTeaRepository) Get(ctx context.Context, id int) (*model.Tea, error) {
	args := m.Called(ctx, id)
	if t, ok := args.Get(0).(*model.Tea); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTeaRepository) Update(ctx context.Context, tea model.Tea) (*model.Tea, error) {
	args := m.Called(ctx, tea)
	if t, ok := args.Get(0).(*model.Tea); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTeaRepository) Delete(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func TestTeaService_Flow(t *testing.T) {
	ctx := context.Background()
	svc := service.NewTeaService(repository.NewTeaMemoryRepository())

	created, err := svc.Create(ctx, "  Ginger ", 100)
	require.NoError(t, err)
	assert.Equal(t, "Ginger", created.Name)

	updated, err := svc.Update(ctx, created.ID, "Masala", 150)
	require.NoError(t, err)
	assert.Equal(t, model.Tea{ID: created.ID, Name: "Masala", Price: 150}, *updated)

	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.Get(ctx, created.ID)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
	_, message, _ := apperr.Public(err)
	assert.Equal(t, "Tea with ID 1 is not available", message)
}

func TestTeaService_Validation(t *testing.T) {
	ctx := context.Background()
	repo := new(MockTeaRepository)
	svc := service.NewTeaService(repo)

	_, err := svc.Create(ctx, "   ", 10)
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	_, err = svc.Update(ctx, 1, "Green", -1)
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestTeaService_StoreFailureIsInternal(t *testing.T) {
	ctx := context.Background()
	repo := new(MockTeaRepository)
	svc := service.NewTeaService(repo)

	repo.On("List", ctx).Return(nil, errors.New("redis down"))
	repo.On("Delete", ctx, 3).Return(errors.New("redis down"))

	_, err := svc.List(ctx)
	assert.True(t, apperr.Is(err, apperr.KindInternal))
	assert.True(t, apperr.Is(svc.Delete(ctx, 3), apperr.KindInternal))
	repo.AssertExpectations(t)
}
