package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"vidtube/internal/apperr"
	"vidtube/internal/model"
	"vidtube/internal/ports"
)

type TeaService struct {
	repo ports.TeaRepository
}

func NewTeaService(repo ports.TeaRepository) *TeaService {
	return &TeaService{repo}
}

func (s *TeaService) Create(ctx context.Context, name string, price float64) (*model.Tea, error) {
	tea, err := validateTea(name, price)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, tea)
	if err != nil {
		return nil, apperr.Internal("Something went wrong while adding tea", err)
	}
	return created, nil
}

func (s *TeaService) List(ctx context.Context) ([]model.Tea, error) {
	teas, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperr.Internal("Something went wrong while listing teas", err)
	}
	return teas, nil
}

func (s *TeaService) Get(ctx context.Context, id int) (*model.Tea, error) {
	tea, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, teaError(err, id)
	}
	return tea, nil
}

func (s *TeaService) Update(ctx context.Context, id int, name string, price float64) (*model.Tea, error) {
	tea, err := validateTea(name, price)
	if err != nil {
		return nil, err
	}
	tea.ID = id

	updated, err := s.repo.Update(ctx, tea)
	if err != nil {
		return nil, teaError(err, id)
	}
	return updated, nil
}

func (s *TeaService) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return teaError(err, id)
	}
	return nil
}

func validateTea(name string, price float64) (model.Tea, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Tea{}, apperr.Validation("Tea name is required")
	}
	if price < 0 {
		return model.Tea{}, apperr.Validation("Tea price must not be negative")
	}
	return model.Tea{Name: name, Price: price}, nil
}

func teaError(err error, id int) error {
	if errors.Is(err, model.ErrTeaNotFound) {
		return apperr.NotFound(fmt.Sprintf("Tea with ID %d is not available", id))
	}
	return apperr.Internal("Something went wrong", err)
}
