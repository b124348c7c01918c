package ports

import (
	"vidtube/internal/model"
	"vidtube/internal/security"
)

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, digest string) (bool, error)
}

type TokenIssuer interface {
	IssueAccess(user *model.User) (string, error)
	IssueRefresh(user *model.User) (string, error)
	VerifyAccess(token string) (*security.Claims, error)
	VerifyRefresh(token string) (*security.Claims, error)
}
