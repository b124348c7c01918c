package repository

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"vidtube/internal/model"
)

// UserMemoryRepository : учётные записи в памяти процесса (storage.driver=memory).
// Подходит для локального запуска и тестов, данные теряются при перезапуске.
type UserMemoryRepository struct {
	mu    sync.RWMutex
	users map[string]model.User
	now   func() time.Time
}

func NewUserMemoryRepository() *UserMemoryRepository {
	return &UserMemoryRepository{
		users: make(map[string]model.User),
		now:   time.Now,
	}
}

func (r *UserMemoryRepository) Create(_ context.Context, user *model.User) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u := *user
	u.Username = strings.ToLower(u.Username)
	u.Email = strings.ToLower(u.Email)
	if r.takenLocked("", u.Username, u.Email) {
		return nil, fmt.Errorf("[UserMemoryRepo] %w", model.ErrUserAlreadyExists)
	}

	if u.UUID == "" {
		u.UUID = uuid.New().String()
	}
	u.RefreshToken = nil
	u.CreatedAt = r.now().UTC()
	u.UpdatedAt = u.CreatedAt
	r.users[u.UUID] = u

	return clone(u), nil
}

func (r *UserMemoryRepository) FindByUUID(_ context.Context, id string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("[UserMemoryRepo] %w", model.ErrUserNotFound)
	}
	return clone(u), nil
}

func (r *UserMemoryRepository) FindByUsernameOrEmail(_ context.Context, username, email string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	username, email = strings.ToLower(username), strings.ToLower(email)
	var byUsername *model.User
	for _, u := range r.users {
		if email != "" && u.Email == email {
			return clone(u), nil
		}
		if byUsername == nil && username != "" && u.Username == username {
			byUsername = clone(u)
		}
	}
	if byUsername != nil {
		return byUsername, nil
	}
	return nil, fmt.Errorf("[UserMemoryRepo] %w", model.ErrUserNotFound)
}

func (r *UserMemoryRepository) UpdateRefreshToken(_ context.Context, id string, refreshToken *string) error {
	return r.update(id, func(u *model.User) error {
		if refreshToken == nil {
			u.RefreshToken = nil
			return nil
		}
		token := *refreshToken
		u.RefreshToken = &token
		return nil
	})
}

func (r *UserMemoryRepository) UpdatePassword(_ context.Context, id, passwordHash string) error {
	return r.update(id, func(u *model.User) error {
		u.PasswordHash = passwordHash
		return nil
	})
}

func (r *UserMemoryRepository) UpdateAccount(_ context.Context, id string, update model.AccountUpdate) (*model.User, error) {
	email := strings.ToLower(update.Email)
	var updated model.User
	err := r.update(id, func(u *model.User) error {
		if r.takenLocked(id, "", email) {
			return fmt.Errorf("[UserMemoryRepo] %w", model.ErrUserAlreadyExists)
		}
		u.FullName = update.FullName
		u.Email = email
		updated = *u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return clone(updated), nil
}

func (r *UserMemoryRepository) UpdateMedia(_ context.Context, id string, kind model.MediaKind, media model.Media) (*model.User, error) {
	var updated model.User
	err := r.update(id, func(u *model.User) error {
		switch kind {
		case model.MediaAvatar:
			u.AvatarURL, u.AvatarPublicID = media.URL, media.PublicID
		case model.MediaCoverImage:
			u.CoverImageURL, u.CoverImagePublicID = media.URL, media.PublicID
		default:
			return fmt.Errorf("[UserMemoryRepo] неизвестный тип медиа: %s", kind)
		}
		updated = *u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return clone(updated), nil
}

// update : атомарное изменение одной записи
func (r *UserMemoryRepository) update(id string, apply func(u *model.User) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return fmt.Errorf("[UserMemoryRepo] %w", model.ErrUserNotFound)
	}
	if err := apply(&u); err != nil {
		return err
	}
	u.UpdatedAt = r.now().UTC()
	r.users[id] = u
	return nil
}

// takenLocked : занят ли username или email другой записью; вызывается под блокировкой
func (r *UserMemoryRepository) takenLocked(exceptID, username, email string) bool {
	for id, u := range r.users {
		if id == exceptID {
			continue
		}
		if (username != "" && u.Username == username) || (email != "" && u.Email == email) {
			return true
		}
	}
	return false
}

func clone(u model.User) *model.User {
	if u.RefreshToken != nil {
		token := *u.RefreshToken
		u.RefreshToken = &token
	}
	return &u
}
