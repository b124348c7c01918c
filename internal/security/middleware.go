package security

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"

	"vidtube/internal/metrics"
	"vidtube/internal/model"
	"vidtube/internal/util"
)

type contextKey string

const (
	UserContextKey contextKey = "user"

	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"

	// bodyPeekLimit : сколько байт JSON тела читается в поисках accessToken
	bodyPeekLimit = 16 << 10
)

var ErrUnauthorized = errors.New("unauthorized")

// AccessVerifier : проверка access-токена
type AccessVerifier interface {
	VerifyAccess(token string) (*Claims, error)
}

// UserFinder : поиск пользователя, которому выдан токен
type UserFinder interface {
	FindByUUID(ctx context.Context, uuid string) (*model.User, error)
}

// JWTMiddleware : пропускает запрос дальше только с валидным access-токеном
// и кладёт пользователя (без секретных полей) в контекст.
// Любая ошибка (нет токена, истёк, подделан, пользователь удалён) - 401.
func JWTMiddleware(verifier AccessVerifier, users UserFinder) func(handler http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(handleAuthentication(verifier, users, next))
	}
}

func handleAuthentication(verifier AccessVerifier, users UserFinder, next http.Handler) func(writer http.ResponseWriter, request *http.Request) {
	return func(writer http.ResponseWriter, request *http.Request) {
		user, err := authenticate(request, verifier, users)
		metrics.AuthEvent("gate", err)
		if err != nil {
			util.Logger(request.Context()).Debug("запрос отклонён", slog.String("err", err.Error()))
			util.HandleError(writer, "Unauthorized", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(writer, request.WithContext(WithUser(request.Context(), user)))
	}
}

func authenticate(request *http.Request, verifier AccessVerifier, users UserFinder) (*model.User, error) {
	token := ExtractAccessToken(request)
	if token == "" {
		return nil, ErrUnauthorized
	}

	claims, err := verifier.VerifyAccess(token)
	if err != nil {
		return nil, err
	}

	user, err := users.FindByUUID(request.Context(), claims.UserUUID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUnauthorized
	}

	return user.Redacted(), nil
}

// ExtractAccessToken : cookie, затем поле accessToken JSON тела, затем заголовок Authorization
func ExtractAccessToken(request *http.Request) string {
	if cookie, err := request.Cookie(AccessTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	if token := tokenFromBody(request); token != "" {
		return token
	}

	header := request.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}

	return ""
}

// tokenFromBody : читает начало JSON тела и возвращает его обратно в запрос
func tokenFromBody(request *http.Request) string {
	if request.Body == nil || request.Body == http.NoBody {
		return ""
	}

	mediaType, _, err := mime.ParseMediaType(request.Header.Get("Content-Type"))
	if err != nil || mediaType != "application/json" {
		return ""
	}

	original := request.Body
	buf, err := io.ReadAll(io.LimitReader(original, bodyPeekLimit))
	request.Body = struct {
		io.Reader
		io.Closer
	}{io.MultiReader(bytes.NewReader(buf), original), original}
	if err != nil {
		return ""
	}

	var payload struct {
		AccessToken string `json:"accessToken"`
	}
	if err := json.Unmarshal(buf, &payload); err != nil {
		return ""
	}

	return payload.AccessToken
}

func WithUser(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, UserContextKey, user)
}

func UserFromContext(ctx context.Context) (*model.User, error) {
	user, ok := ctx.Value(UserContextKey).(*model.User)
	if !ok || user == nil {
		return nil, ErrUnauthorized
	}
	return user, nil
}
