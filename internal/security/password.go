package security

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"vidtube/config"
)

// MaxPasswordBytes : bcrypt не принимает пароли длиннее 72 байт
const MaxPasswordBytes = 72

var ErrPasswordTooLong = bcrypt.ErrPasswordTooLong

// PasswordHasher : bcrypt с фиксированной стоимостью из конфигурации
type PasswordHasher struct {
	cost int
}

func NewPasswordHasher(cfg *config.PasswordConfig) *PasswordHasher {
	cost := bcrypt.DefaultCost
	if cfg != nil && cfg.Cost != 0 {
		cost = cfg.Cost
	}
	return &PasswordHasher{cost: cost}
}

// Hash : солёный хэш, повторные вызовы дают разные значения
func (h *PasswordHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("ошибка хэширования пароля: %w", err)
	}
	return string(hash), nil
}

// Verify : сравнение выполняется bcrypt за постоянное время.
// Несовпадение пароля - (false, nil); испорченный хэш - ошибка.
func (h *PasswordHasher) Verify(password, digest string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(password))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, fmt.Errorf("некорректный хэш пароля: %w", err)
}
