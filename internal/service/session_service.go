package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"vidtube/internal/apperr"
	"vidtube/internal/metrics"
	"vidtube/internal/model"
	"vidtube/internal/ports"
	"vidtube/internal/security"
	"vidtube/internal/util"
)

// SessionService : регистрация, вход, ротация токенов, выход и смена пароля.
// Состояния на пользователя: Anonymous -> Authenticated -> (Refreshing) -> Authenticated -> LoggedOut.
type SessionService struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
	tokens ports.TokenIssuer
	media  ports.MediaStorage
}

func NewSessionService(
	users ports.UserRepository,
	hasher ports.PasswordHasher,
	tokens ports.TokenIssuer,
	media ports.MediaStorage,
) *SessionService {
	return &SessionService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		media:  media,
	}
}

// Register создаёт учётную запись.
//
// Порядок шагов:
//  1. проверка обязательных полей и уникальности username/email;
//  2. загрузка аватара (обязателен) и обложки (необязательна) во внешнее хранилище;
//  3. хэширование пароля, создание записи и повторное чтение её из хранилища.
//
// Если шаг 3 не удался, уже загруженные файлы удаляются в обратном порядке.
// Возвращает пользователя без хэша пароля и refresh-токена.
func (s *SessionService) Register(ctx context.Context, input ports.RegisterInput) (user *model.User, err error) {
	defer func() { metrics.AuthEvent("register", err) }()

	fullName := strings.TrimSpace(input.FullName)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	username := strings.ToLower(strings.TrimSpace(input.Username))
	if fullName == "" || email == "" || username == "" || strings.TrimSpace(input.Password) == "" {
		return nil, apperr.Validation("All fields are required")
	}
	if err := validatePasswordLength(input.Password); err != nil {
		return nil, err
	}

	_, err = s.users.FindByUsernameOrEmail(ctx, username, email)
	switch {
	case err == nil:
		return nil, apperr.Conflict("User with that email or username already exists")
	case !errors.Is(err, model.ErrUserNotFound):
		return nil, apperr.Internal("Something went wrong while registering user", err)
	}

	if strings.TrimSpace(input.AvatarPath) == "" {
		return nil, apperr.Validation("Avatar is required")
	}

	sg := &saga{}

	avatar, err := s.media.Upload(ctx, input.AvatarPath)
	if err != nil {
		return nil, apperr.Upstream("Something went wrong while uploading avatar", err)
	}
	if avatar == nil {
		return nil, apperr.Upstream("Something went wrong while uploading avatar", errors.New("пустой ответ хранилища"))
	}
	sg.add("delete avatar", s.deleteMedia(avatar.PublicID))

	cover, err := s.media.Upload(ctx, input.CoverImagePath)
	if err != nil {
		sg.rollback(ctx)
		return nil, apperr.Upstream("Something went wrong while uploading cover image", err)
	}
	if cover == nil {
		cover = &model.Media{}
	} else {
		sg.add("delete cover image", s.deleteMedia(cover.PublicID))
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		sg.rollback(ctx)
		return nil, apperr.Internal("Something went wrong while registering user and images were deleted", err)
	}

	created, err := s.users.Create(ctx, &model.User{
		Username:           username,
		Email:              email,
		FullName:           fullName,
		AvatarURL:          avatar.URL,
		AvatarPublicID:     avatar.PublicID,
		CoverImageURL:      cover.URL,
		CoverImagePublicID: cover.PublicID,
		PasswordHash:       hash,
	})
	if err != nil {
		sg.rollback(ctx)
		if errors.Is(err, model.ErrUserAlreadyExists) {
			return nil, apperr.Conflict("User with that email or username already exists")
		}
		return nil, apperr.Internal("Something went wrong while registering user and images were deleted", err)
	}

	stored, err := s.users.FindByUUID(ctx, created.UUID)
	if err != nil {
		sg.rollback(ctx)
		return nil, apperr.Internal("Something went wrong while registering user and images were deleted", err)
	}
	sg.commit()

	util.Logger(ctx).Info("[SessionService] пользователь зарегистрирован", slog.String("user", stored.UUID))
	return stored.Redacted(), nil
}

// Login : вход по username или email. Новый refresh-токен перезаписывает предыдущий.
func (s *SessionService) Login(ctx context.Context, identifier, password string) (result *model.LoginResult, err error) {
	defer func() { metrics.AuthEvent("login", err) }()

	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return nil, apperr.Validation("Username or email and password are required")
	}

	user, err := s.users.FindByUsernameOrEmail(ctx, identifier, identifier)
	if err != nil {
		return nil, s.storeError(err, "User not found")
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		return nil, apperr.Internal("Something went wrong while logging in", err)
	}
	if !ok {
		return nil, apperr.Unauthorized("Invalid user credentials")
	}

	tokens, err := s.rotateTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	return &model.LoginResult{User: user.Redacted(), Tokens: tokens}, nil
}

// Refresh : ротация пары токенов.
// Истёкший, подделанный и повреждённый токен дают одинаковый ответ UNAUTHORIZED.
// Токен, не совпадающий с сохранённым (уже заменённый или отозванный), отклоняется.
func (s *SessionService) Refresh(ctx context.Context, refreshToken string) (tokens *model.TokensPair, err error) {
	defer func() { metrics.AuthEvent("refresh", err) }()

	if refreshToken == "" {
		return nil, apperr.Unauthorized("Refresh token is required")
	}

	claims, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		util.Logger(ctx).Debug("[SessionService] refresh-токен отклонён", slog.String("err", err.Error()))
		return nil, apperr.Wrap(apperr.KindUnauthorized, "Invalid refresh token", err)
	}

	user, err := s.users.FindByUUID(ctx, claims.UserUUID)
	if err != nil {
		return nil, s.storeError(err, "User not found")
	}

	if subtle.ConstantTimeCompare([]byte(refreshToken), []byte(user.StoredRefreshToken())) != 1 {
		return nil, apperr.Unauthorized("Refresh token is expired or used")
	}

	return s.rotateTokens(ctx, user)
}

// Logout : очищает сохранённый refresh-токен. Повторный вызов не ошибка.
func (s *SessionService) Logout(ctx context.Context, userUUID string) (err error) {
	defer func() { metrics.AuthEvent("logout", err) }()

	if err := s.users.UpdateRefreshToken(ctx, userUUID, nil); err != nil {
		return s.storeError(err, "User not found")
	}
	return nil
}

// ChangePassword : меняет пароль после проверки старого.
// Выданный ранее refresh-токен остаётся действительным.
func (s *SessionService) ChangePassword(ctx context.Context, userUUID, oldPassword, newPassword string) (err error) {
	defer func() { metrics.AuthEvent("change_password", err) }()

	if strings.TrimSpace(newPassword) == "" {
		return apperr.Validation("New password is required")
	}
	if err := validatePasswordLength(newPassword); err != nil {
		return err
	}

	user, err := s.users.FindByUUID(ctx, userUUID)
	if err != nil {
		return s.storeError(err, "User not found")
	}

	ok, err := s.hasher.Verify(oldPassword, user.PasswordHash)
	if err != nil {
		return apperr.Internal("Something went wrong while changing password", err)
	}
	if !ok {
		return apperr.Unauthorized("Invalid old password")
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return apperr.Internal("Something went wrong while changing password", err)
	}

	if err := s.users.UpdatePassword(ctx, userUUID, hash); err != nil {
		return s.storeError(err, "User not found")
	}
	return nil
}

func (s *SessionService) CurrentUser(ctx context.Context, userUUID string) (*model.User, error) {
	user, err := s.users.FindByUUID(ctx, userUUID)
	if err != nil {
		return nil, s.storeError(err, "User not found")
	}
	return user.Redacted(), nil
}

// UpdateAccount : меняет fullName и email
func (s *SessionService) UpdateAccount(ctx context.Context, userUUID string, update model.AccountUpdate) (*model.User, error) {
	update.FullName = strings.TrimSpace(update.FullName)
	update.Email = strings.ToLower(strings.TrimSpace(update.Email))
	if update.FullName == "" || update.Email == "" {
		return nil, apperr.Validation("All fields are required")
	}

	user, err := s.users.UpdateAccount(ctx, userUUID, update)
	if err != nil {
		if errors.Is(err, model.ErrUserAlreadyExists) {
			return nil, apperr.Conflict("User with that email already exists")
		}
		return nil, s.storeError(err, "User not found")
	}
	return user.Redacted(), nil
}

// UpdateMedia : заменяет аватар или обложку.
// Новый файл удаляется, если запись обновить не удалось; старый удаляется после успешного обновления.
func (s *SessionService) UpdateMedia(ctx context.Context, userUUID string, kind model.MediaKind, localPath string) (*model.User, error) {
	var label string
	switch kind {
	case model.MediaAvatar:
		label = "avatar"
	case model.MediaCoverImage:
		label = "cover image"
	default:
		return nil, apperr.Validation(fmt.Sprintf("Unknown media kind %q", kind))
	}

	if strings.TrimSpace(localPath) == "" {
		return nil, apperr.Validation(fmt.Sprintf("%s file is missing", capitalize(label)))
	}

	current, err := s.users.FindByUUID(ctx, userUUID)
	if err != nil {
		return nil, s.storeError(err, "User not found")
	}

	uploaded, err := s.media.Upload(ctx, localPath)
	if err != nil {
		return nil, apperr.Upstream("Something went wrong while uploading "+label, err)
	}
	if uploaded == nil {
		return nil, apperr.Upstream("Something went wrong while uploading "+label, errors.New("пустой ответ хранилища"))
	}

	sg := &saga{}
	sg.add("delete new "+label, s.deleteMedia(uploaded.PublicID))

	user, err := s.users.UpdateMedia(ctx, userUUID, kind, *uploaded)
	if err != nil {
		sg.rollback(ctx)
		return nil, s.storeError(err, "User not found")
	}
	sg.commit()

	previous := current.AvatarPublicID
	if kind == model.MediaCoverImage {
		previous = current.CoverImagePublicID
	}
	if previous != "" && previous != uploaded.PublicID {
		if err := s.media.Delete(ctx, previous); err != nil {
			util.Logger(ctx).Warn("[SessionService] не удалось удалить старый файл",
				slog.String("public_id", previous),
				slog.String("err", err.Error()),
			)
		}
	}

	return user.Redacted(), nil
}

// rotateTokens : выдаёт новую пару и сохраняет refresh-токен как единственный активный
func (s *SessionService) rotateTokens(ctx context.Context, user *model.User) (*model.TokensPair, error) {
	accessToken, err := s.tokens.IssueAccess(user)
	if err != nil {
		return nil, apperr.Internal("Something went wrong while generating tokens", err)
	}

	refreshToken, err := s.tokens.IssueRefresh(user)
	if err != nil {
		return nil, apperr.Internal("Something went wrong while generating tokens", err)
	}

	if err := s.users.UpdateRefreshToken(ctx, user.UUID, &refreshToken); err != nil {
		return nil, s.storeError(err, "User not found")
	}

	return &model.TokensPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (s *SessionService) deleteMedia(publicID string) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		return s.media.Delete(ctx, publicID)
	}
}

// storeError : ошибка хранилища -> NOT_FOUND или INTERNAL
func (s *SessionService) storeError(err error, notFoundMessage string) error {
	if errors.Is(err, model.ErrUserNotFound) {
		return apperr.NotFound(notFoundMessage)
	}
	return apperr.Internal("Something went wrong", err)
}

func validatePasswordLength(password string) error {
	if len(password) > security.MaxPasswordBytes {
		return apperr.Validation(fmt.Sprintf("Password must not exceed %d bytes", security.MaxPasswordBytes))
	}
	return nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
