package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"vidtube/config"
	"vidtube/internal/model"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

var (
	ErrTokenExpired      = errors.New("token expired")
	ErrTokenBadSignature = errors.New("token signature is invalid")
	ErrTokenMalformed    = errors.New("token malformed")
)

type Claims struct {
	UserUUID  string `json:"_id"`
	Email     string `json:"email,omitempty"`
	Username  string `json:"username,omitempty"`
	FullName  string `json:"fullName,omitempty"`
	TokenType string `json:"typ"`
	jwt.RegisteredClaims
}

type JWTService struct {
	*config.JWTConfig
	now func() time.Time
}

func NewJWTService(cfg *config.JWTConfig) *JWTService {
	return &JWTService{JWTConfig: cfg, now: time.Now}
}

// WithClock : подменяет источник времени (для тестов)
func (service *JWTService) WithClock(now func() time.Time) *JWTService {
	c := *service
	c.now = now
	return &c
}

// IssueAccess : короткоживущий токен с денормализованными полями профиля
func (service *JWTService) IssueAccess(user *model.User) (string, error) {
	claims := Claims{
		UserUUID:         user.UUID,
		Email:            user.Email,
		Username:         user.Username,
		FullName:         user.FullName,
		TokenType:        TokenTypeAccess,
		RegisteredClaims: service.registeredClaims(user.UUID, service.AccessTokenTTL),
	}
	return service.sign(claims, service.AccessTokenSecret)
}

// IssueRefresh : долгоживущий токен, содержит только идентификатор пользователя
func (service *JWTService) IssueRefresh(user *model.User) (string, error) {
	claims := Claims{
		UserUUID:         user.UUID,
		TokenType:        TokenTypeRefresh,
		RegisteredClaims: service.registeredClaims(user.UUID, service.RefreshTokenTTL),
	}
	return service.sign(claims, service.RefreshTokenSecret)
}

func (service *JWTService) registeredClaims(subject string, ttl time.Duration) jwt.RegisteredClaims {
	now := service.now()
	return jwt.RegisteredClaims{
		// jti делает токены, выпущенные в одну секунду, различными
		ID:        uuid.NewString(),
		Subject:   subject,
		Issuer:    service.Issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
}

func (service *JWTService) sign(claims Claims, secret string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("ошибка подписи токена: %w", err)
	}
	return signed, nil
}

// Verify : проверяет подпись, затем срок действия.
// Возвращает ErrTokenExpired, ErrTokenBadSignature или ErrTokenMalformed.
func (service *JWTService) Verify(tokenStr string, secret []byte) (*Claims, error) {
	claims := &Claims{}

	_, err := jwt.ParseWithClaims(tokenStr, claims,
		func(token *jwt.Token) (interface{}, error) {
			return secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(service.now),
	)
	if err != nil {
		return nil, classify(err)
	}

	if claims.UserUUID == "" {
		return nil, fmt.Errorf("%w: пустой идентификатор пользователя", ErrTokenMalformed)
	}

	return claims, nil
}

func (service *JWTService) VerifyAccess(tokenStr string) (*Claims, error) {
	return service.verifyTyped(tokenStr, service.AccessTokenSecret, TokenTypeAccess)
}

func (service *JWTService) VerifyRefresh(tokenStr string) (*Claims, error) {
	return service.verifyTyped(tokenStr, service.RefreshTokenSecret, TokenTypeRefresh)
}

func (service *JWTService) verifyTyped(tokenStr, secret, tokenType string) (*Claims, error) {
	claims, err := service.Verify(tokenStr, []byte(secret))
	if err != nil {
		return nil, err
	}
	if claims.TokenType != tokenType {
		return nil, fmt.Errorf("%w: ожидался %s токен", ErrTokenMalformed, tokenType)
	}
	return claims, nil
}

func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return fmt.Errorf("%w: %v", ErrTokenBadSignature, err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %v", ErrTokenExpired, err)
	default:
		return fmt.Errorf("%w: %v", ErrTokenMalformed, err)
	}
}
