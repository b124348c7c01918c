package service

import (
	"context"
	"log/slog"
	"time"

	"vidtube/internal/util"
)

// rollbackTimeout : сколько откат может идти после отмены запроса
const rollbackTimeout = 30 * time.Second

// compensation : шаг отката. Ошибка отката только логируется.
type compensation struct {
	name string
	undo func(ctx context.Context) error
}

// saga : накапливает откаты уже выполненных шагов и при ошибке выполняет их в обратном порядке
type saga struct {
	steps []compensation
}

func (s *saga) add(name string, undo func(ctx context.Context) error) {
	s.steps = append(s.steps, compensation{name: name, undo: undo})
}

// rollback : вызывается ровно один раз, после чего saga пуста.
// Отмена контекста запроса на откат не влияет, иначе загруженные файлы остаются в хранилище.
func (s *saga) rollback(ctx context.Context) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), rollbackTimeout)
	defer cancel()

	for i := len(s.steps) - 1; i >= 0; i-- {
		step := s.steps[i]
		if err := step.undo(ctx); err != nil {
			util.Logger(ctx).Warn("[Saga] ошибка компенсирующего шага",
				slog.String("step", step.name),
				slog.String("err", err.Error()),
			)
		}
	}
	s.steps = nil
}

// commit : успешное завершение, откаты больше не нужны
func (s *saga) commit() {
	s.steps = nil
}
