package security_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"vidtube/internal/model"
	"vidtube/internal/security"
)

// MockUserFinder
type MockUserFinder struct {
	mock.Mock
}

func (m *MockUserFinder) FindByUUID(ctx context.Context, uuid string) (*model.User, error) {
	args := m.Called(ctx, uuid)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func storedUser() *model.User {
	token := "stored-refresh"
	u := testUser()
	u.PasswordHash = "$2a$10$hash"
	u.RefreshToken = &token
	return u
}

type gateResult struct {
	called bool
	user   *model.User
	body   string
}

func newGate(t *testing.T, finder *MockUserFinder) (http.Handler, *gateResult) {
	t.Helper()
	svc := security.NewJWTService(newTestJWTConfig())
	res := &gateResult{}
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		res.called = true
		res.user, _ = security.UserFromContext(r.Context())
		b, _ := io.ReadAll(r.Body)
		res.body = string(b)
		w.WriteHeader(http.StatusOK)
	})
	return security.JWTMiddleware(svc, finder)(next), res
}

func issueAccess(t *testing.T) string {
	t.Helper()
	token, err := security.NewJWTService(newTestJWTConfig()).IssueAccess(testUser())
	require.NoError(t, err)
	return token
}

func TestJWTMiddleware_BearerHeader(t *testing.T) {
	finder := new(MockUserFinder)
	finder.On("FindByUUID", mock.Anything, "user-1").Return(storedUser(), nil)
	gate, res := newGate(t, finder)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/current-user", nil)
	req.Header.Set("Authorization", "Bearer "+issueAccess(t))
	rec := httptest.NewRecorder()
	gate.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.True(t, res.called)
	require.NotNil(t, res.user)
	assert.Equal(t, "user-1", res.user.UUID)
	assert.Empty(t, res.user.PasswordHash)
	assert.Nil(t, res.user.RefreshToken)
	finder.AssertExpectations(t)
}

func TestJWTMiddleware_CookieTakesPrecedence(t *testing.T) {
	finder := new(MockUserFinder)
	finder.On("FindByUUID", mock.Anything, "user-1").Return(storedUser(), nil)
	gate, res := newGate(t, finder)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/logout", nil)
	req.AddCookie(&http.Cookie{Name: security.AccessTokenCookie, Value: issueAccess(t)})
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()
	gate.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, res.called)
}

func TestJWTMiddleware_BodyFieldBeforeHeader_BodyRestored(t *testing.T) {
	finder := new(MockUserFinder)
	finder.On("FindByUUID", mock.Anything, "user-1").Return(storedUser(), nil)
	gate, res := newGate(t, finder)

	body := `{"accessToken":"` + issueAccess(t) + `","oldPassword":"p","newPassword":"q"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/change-password", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()
	gate.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, res.called)
	assert.Equal(t, body, res.body)
}

func TestJWTMiddleware_Rejections(t *testing.T) {
	cfg := newTestJWTConfig()
	expired, err := security.NewJWTService(cfg).
		WithClock(func() time.Time { return time.Now().Add(-time.Hour) }).
		IssueAccess(testUser())
	require.NoError(t, err)

	refresh, err := security.NewJWTService(cfg).IssueRefresh(testUser())
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		finder func(f *MockUserFinder)
	}{
		{name: "no token"},
		{name: "malformed", header: "Bearer abc"},
		{name: "expired", header: "Bearer " + expired},
		{name: "refresh token used as access", header: "Bearer " + refresh},
		{name: "not bearer", header: "Basic dXNlcjpwYXNz"},
		{
			name:   "user no longer exists",
			header: "Bearer " + issueAccess(t),
			finder: func(f *MockUserFinder) {
				f.On("FindByUUID", mock.Anything, "user-1").Return(nil, model.ErrUserNotFound)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			finder := new(MockUserFinder)
			if tt.finder != nil {
				tt.finder(finder)
			}
			gate, res := newGate(t, finder)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/users/current-user", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			gate.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.False(t, res.called)

			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, "Unauthorized", body["message"])
			assert.Equal(t, false, body["success"])
			assert.EqualValues(t, 401, body["statusCode"])
			finder.AssertExpectations(t)
		})
	}
}

func TestUserFromContext_Empty(t *testing.T) {
	_, err := security.UserFromContext(context.Background())
	assert.ErrorIs(t, err, security.ErrUnauthorized)
}
