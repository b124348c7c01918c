package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"vidtube/config"
	"vidtube/internal/model"
	"vidtube/internal/util"
)

// pgUniqueViolation : код ошибки PostgreSQL unique_violation
const pgUniqueViolation = "23505"

const userColumns = `uuid, username, email, full_name, avatar_url, avatar_public_id,
	cover_image_url, cover_image_public_id, password_hash, refresh_token, created_at, updated_at`

type UserRepository struct {
	*config.Database
}

func NewUserRepository(database *config.Database) *UserRepository {
	return &UserRepository{database}
}

// Create : сохраняет нового пользователя
func (r *UserRepository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	if user.UUID == "" {
		user.UUID = uuid.New().String()
	}

	query := `
	INSERT INTO users (uuid, username, email, full_name, avatar_url, avatar_public_id,
		cover_image_url, cover_image_public_id, password_hash)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	RETURNING ` + userColumns

	var created model.User
	err := r.DB.QueryRowxContext(ctx, query,
		user.UUID,
		user.Username,
		user.Email,
		user.FullName,
		user.AvatarURL,
		user.AvatarPublicID,
		user.CoverImageURL,
		user.CoverImagePublicID,
		user.PasswordHash,
	).StructScan(&created)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("[UserRepo] %w", model.ErrUserAlreadyExists)
		}
		return nil, util.LogError(ctx, "[UserRepo] ошибка вставки данных в БД", err)
	}

	return &created, nil
}

// FindByUUID : ищет пользователя по UUID
func (r *UserRepository) FindByUUID(ctx context.Context, id string) (*model.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("[UserRepo] %w", model.ErrUserNotFound)
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE uuid = $1`
	return r.getOne(ctx, query, id)
}

// FindByUsernameOrEmail : ищет пользователя по username или email.
// Если подходят две записи, совпадение по email важнее.
func (r *UserRepository) FindByUsernameOrEmail(ctx context.Context, username, email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1 OR email = $2 ORDER BY (email = $2) DESC LIMIT 1`
	return r.getOne(ctx, query, strings.ToLower(username), strings.ToLower(email))
}

// UpdateRefreshToken : перезаписывает единственный активный refresh-токен (nil - очищает)
func (r *UserRepository) UpdateRefreshToken(ctx context.Context, id string, refreshToken *string) error {
	query := `UPDATE users SET refresh_token = $2, updated_at = now() WHERE uuid = $1`
	return r.execOne(ctx, query, "не удалось обновить refresh токен", id, refreshToken)
}

// UpdatePassword : меняет пароль пользователя
func (r *UserRepository) UpdatePassword(ctx context.Context, id, newPasswordHash string) error {
	query := `UPDATE users SET password_hash = $2, updated_at = now() WHERE uuid = $1`
	return r.execOne(ctx, query, "не удалось обновить пароль", id, newPasswordHash)
}

// UpdateAccount : обновляет fullName и email, возвращает новую версию записи
func (r *UserRepository) UpdateAccount(ctx context.Context, id string, update model.AccountUpdate) (*model.User, error) {
	query := `
		UPDATE users
		SET full_name = $2, email = $3, updated_at = now()
		WHERE uuid = $1
		RETURNING ` + userColumns

	user, err := r.getOne(ctx, query, id, update.FullName, strings.ToLower(update.Email))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("[UserRepo] %w", model.ErrUserAlreadyExists)
		}
		return nil, err
	}
	return user, nil
}

// UpdateMedia : заменяет ссылку на аватар или обложку
func (r *UserRepository) UpdateMedia(ctx context.Context, id string, kind model.MediaKind, media model.Media) (*model.User, error) {
	var query string
	switch kind {
	case model.MediaAvatar:
		query = `UPDATE users SET avatar_url = $2, avatar_public_id = $3, updated_at = now()
			WHERE uuid = $1 RETURNING ` + userColumns
	case model.MediaCoverImage:
		query = `UPDATE users SET cover_image_url = $2, cover_image_public_id = $3, updated_at = now()
			WHERE uuid = $1 RETURNING ` + userColumns
	default:
		return nil, fmt.Errorf("[UserRepo] неизвестный тип медиа: %s", kind)
	}

	return r.getOne(ctx, query, id, media.URL, media.PublicID)
}

func (r *UserRepository) getOne(ctx context.Context, query string, args ...interface{}) (*model.User, error) {
	var user model.User
	err := sqlx.GetContext(ctx, r.DB, &user, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("[UserRepo] %w", model.ErrUserNotFound)
		}
		if isUniqueViolation(err) {
			return nil, err
		}
		return nil, util.LogError(ctx, "[UserRepo] ошибка выполнения запроса", err)
	}
	return &user, nil
}

func (r *UserRepository) execOne(ctx context.Context, query, message string, args ...interface{}) error {
	result, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return util.LogError(ctx, "[UserRepo] "+message, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return util.LogError(ctx, "[UserRepo] не удалось проверить количество изменённых строк", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("[UserRepo] %w", model.ErrUserNotFound)
	}

	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation
}
