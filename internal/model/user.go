package model

import "time"

type User struct {
	UUID               string    `db:"uuid" json:"_id"`
	Username           string    `db:"username" json:"username"`
	Email              string    `db:"email" json:"email"`
	FullName           string    `db:"full_name" json:"fullName"`
	AvatarURL          string    `db:"avatar_url" json:"avatar"`
	AvatarPublicID     string    `db:"avatar_public_id" json:"-"`
	CoverImageURL      string    `db:"cover_image_url" json:"coverImage"`
	CoverImagePublicID string    `db:"cover_image_public_id" json:"-"`
	PasswordHash       string    `db:"password_hash" json:"-"`
	RefreshToken       *string   `db:"refresh_token" json:"-"`
	CreatedAt          time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt          time.Time `db:"updated_at" json:"updatedAt"`
}

// Redacted : копия пользователя без хэша пароля и refresh-токена
func (u *User) Redacted() *User {
	if u == nil {
		return nil
	}
	c := *u
	c.PasswordHash = ""
	c.RefreshToken = nil
	return &c
}

// StoredRefreshToken : текущий refresh-токен или пустая строка
func (u *User) StoredRefreshToken() string {
	if u == nil || u.RefreshToken == nil {
		return ""
	}
	return *u.RefreshToken
}

// MediaKind : какое изображение профиля обновляется
type MediaKind string

const (
	MediaAvatar     MediaKind = "avatar"
	MediaCoverImage MediaKind = "coverImage"
)

// AccountUpdate : изменяемые поля профиля
type AccountUpdate struct {
	FullName string
	Email    string
}
