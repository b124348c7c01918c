package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vidtube/config"
	"vidtube/internal/handler"
	"vidtube/internal/model"
	"vidtube/internal/repository"
	"vidtube/internal/security"
	"vidtube/internal/service"
)

// stubMedia : хранилище файлов без сети, удаляет локальный файл как настоящее
type stubMedia struct {
	mu      sync.Mutex
	n       int
	deleted []string
}

func (s *stubMedia) Upload(_ context.Context, localPath string) (*model.Media, error) {
	if localPath == "" {
		return nil, nil
	}
	_ = os.Remove(localPath)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return &model.Media{
		URL:      fmt.Sprintf("http://cdn.test/media/%d.png", s.n),
		PublicID: fmt.Sprintf("media/%d.png", s.n),
	}, nil
}

func (s *stubMedia) Delete(_ context.Context, publicID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, publicID)
	return nil
}

type envelope struct {
	StatusCode int             `json:"statusCode"`
	Data       json.RawMessage `json:"data"`
	Message    string          `json:"message"`
	Success    bool            `json:"success"`
	Errors     []string        `json:"errors"`
}

type testServer struct {
	router http.Handler
	users  *repository.UserMemoryRepository
	media  *stubMedia
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	users := repository.NewUserMemoryRepository()
	media := &stubMedia{}
	tokens := security.NewJWTService(&config.JWTConfig{
		Issuer:             "vidtube-test",
		AccessTokenSecret:  "access-secret",
		AccessTokenTTL:     15 * time.Minute,
		RefreshTokenSecret: "refresh-secret",
		RefreshTokenTTL:    240 * time.Hour,
	})
	hasher := security.NewPasswordHasher(&config.PasswordConfig{Cost: 4})
	sessions := service.NewSessionService(users, hasher, tokens, media)
	upload := &config.UploadConfig{TempDir: t.TempDir(), MaxSizeBytes: 1 << 20}

	router := chi.NewRouter()
	handler.SetupRoutes(router, handler.Handlers{
		Auth:  handler.NewAuthenticationHandler(sessions, false, 16<<10),
		Users: handler.NewUserHandler(sessions, upload, 16<<10),
		Teas:  handler.NewTeaHandler(service.NewTeaService(repository.NewTeaMemoryRepository()), 16<<10),
		Gate:  security.JWTMiddleware(tokens, users),
	})

	return &testServer{router: router, users: users, media: media}
}

func (s *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func registerRequest(t *testing.T, fields map[string]string, withAvatar bool) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if withAvatar {
		part, err := mw.CreateFormFile("avatar", "avatar.png")
		require.NoError(t, err)
		_, err = part.Write([]byte("fake-png"))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/register", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func t1Fields() map[string]string {
	return map[string]string{"fullName": "Test One", "email": "t1@x.com", "username": "t1", "password": "p"}
}

func jsonRequest(method, path string, body interface{}) *http.Request {
	var reader io.Reader = http.NoBody
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env
}

func decodeTokens(t *testing.T, rec *httptest.ResponseRecorder) model.TokensPair {
	t.Helper()
	var tokens model.TokensPair
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &tokens))
	return tokens
}

func TestScenario_RegisterLoginRefreshLogout(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(registerRequest(t, t1Fields(), true))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)
	assert.Equal(t, "User registered successfully", env.Message)
	assert.NotContains(t, string(env.Data), "password")
	assert.NotContains(t, string(env.Data), "refreshToken")

	var registered map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &registered))
	assert.NotEmpty(t, registered["_id"])
	assert.Equal(t, "t1", registered["username"])

	rec = srv.do(jsonRequest(http.MethodPost, "/api/v1/users/login", map[string]string{"username": "t1", "password": "p"}))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var login struct {
		User         map[string]interface{} `json:"user"`
		AccessToken  string                 `json:"accessToken"`
		RefreshToken string                 `json:"refreshToken"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &login))
	r1 := login.RefreshToken
	require.NotEmpty(t, login.AccessToken)
	require.NotEmpty(t, r1)

	rec = srv.do(jsonRequest(http.MethodPost, "/api/v1/users/refresh-token", map[string]string{"refreshToken": r1}))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	second := decodeTokens(t, rec)
	assert.NotEqual(t, r1, second.RefreshToken)

	rec = srv.do(jsonRequest(http.MethodPost, "/api/v1/users/refresh-token", map[string]string{"refreshToken": r1}))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, decodeEnvelope(t, rec).Success)

	req := jsonRequest(http.MethodPost, "/api/v1/users/logout", nil)
	req.Header.Set("Authorization", "Bearer "+second.AccessToken)
	rec = srv.do(req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = srv.do(jsonRequest(http.MethodPost, "/api/v1/users/refresh-token", map[string]string{"refreshToken": second.RefreshToken}))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRegister_Errors(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(registerRequest(t, t1Fields(), false))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, "Avatar is required", env.Message)
	assert.Equal(t, []string{}, env.Errors)
	assert.Equal(t, "null", string(env.Data))

	fields := t1Fields()
	fields["fullName"] = "   "
	rec = srv.do(registerRequest(t, fields, true))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "All fields are required", decodeEnvelope(t, rec).Message)

	require.Equal(t, http.StatusCreated, srv.do(registerRequest(t, t1Fields(), true)).Code)

	dup := t1Fields()
	dup["email"] = "other@x.com"
	rec = srv.do(registerRequest(t, dup, true))
	assert.Equal(t, http.StatusConflict, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/register", strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")
	assert.Equal(t, http.StatusBadRequest, srv.do(req).Code)
}

func TestLogin_SetsCookiesAndGateAcceptsThem(t *testing.T) {
	srv := newTestServer(t)
	require.Equal(t, http.StatusCreated, srv.do(registerRequest(t, t1Fields(), true)).Code)

	rec := srv.do(jsonRequest(http.MethodPost, "/api/v1/users/login", map[string]string{"email": "T1@x.com", "password": "p"}))
	require.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	byName := map[string]*http.Cookie{}
	for _, c := range cookies {
		byName[c.Name] = c
	}
	require.Contains(t, byName, security.AccessTokenCookie)
	require.Contains(t, byName, security.RefreshTokenCookie)
	assert.True(t, byName[security.AccessTokenCookie].HttpOnly)
	assert.False(t, byName[security.AccessTokenCookie].Secure)
	assert.Equal(t, "/", byName[security.RefreshTokenCookie].Path)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/current-user", nil)
	req.AddCookie(byName[security.AccessTokenCookie])
	rec = srv.do(req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, string(decodeEnvelope(t, rec).Data), `"username":"t1"`)

	// refresh через cookie
	req = httptest.NewRequest(http.MethodPost, "/api/v1/users/refresh-token", nil)
	req.AddCookie(byName[security.RefreshTokenCookie])
	rec = srv.do(req)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestLogin_Errors(t *testing.T) {
	srv := newTestServer(t)
	require.Equal(t, http.StatusCreated, srv.do(registerRequest(t, t1Fields(), true)).Code)

	cases := []struct {
		name string
		body map[string]string
		code int
	}{
		{"empty", map[string]string{}, http.StatusBadRequest},
		{"unknown user", map[string]string{"username": "ghost", "password": "p"}, http.StatusNotFound},
		{"wrong password", map[string]string{"username": "t1", "password": "nope"}, http.StatusUnauthorized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := srv.do(jsonRequest(http.MethodPost, "/api/v1/users/login", tc.body))
			assert.Equal(t, tc.code, rec.Code)
			assert.Empty(t, rec.Result().Cookies())
		})
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/login", strings.NewReader("{broken"))
	assert.Equal(t, http.StatusBadRequest, srv.do(req).Code)

	big := `{"username":"` + strings.Repeat("a", 20<<10) + `"}`
	req = httptest.NewRequest(http.MethodPost, "/api/v1/users/login", strings.NewReader(big))
	assert.Equal(t, http.StatusRequestEntityTooLarge, srv.do(req).Code)
}

func TestGate_RejectsUniformly(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{"/api/v1/users/current-user", "/api/v1/users/logout"} {
		method := http.MethodGet
		if strings.HasSuffix(path, "logout") {
			method = http.MethodPost
		}

		rec := srv.do(httptest.NewRequest(method, path, nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Unauthorized", decodeEnvelope(t, rec).Message)

		req := httptest.NewRequest(method, path, nil)
		req.Header.Set("Authorization", "Bearer forged.token.value")
		rec = srv.do(req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Unauthorized", decodeEnvelope(t, rec).Message)
	}
}

func loginAs(t *testing.T, srv *testServer, username, password string) model.TokensPair {
	t.Helper()
	rec := srv.do(jsonRequest(http.MethodPost, "/api/v1/users/login", map[string]string{"username": username, "password": password}))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return decodeTokens(t, rec)
}

func TestLogout_ClearsCookiesAndIsIdempotent(t *testing.T) {
	srv := newTestServer(t)
	require.Equal(t, http.StatusCreated, srv.do(registerRequest(t, t1Fields(), true)).Code)
	tokens := loginAs(t, srv, "t1", "p")

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/users/logout", nil)
		req.Header.Set("Authorization", "Bearer "+tokens.AccessToken)
		rec := srv.do(req)
		require.Equal(t, http.StatusOK, rec.Code)

		for _, c := range rec.Result().Cookies() {
			assert.Empty(t, c.Value)
			assert.Less(t, c.MaxAge, 0)
		}
	}
}

func TestChangePassword_KeepsRefreshToken(t *testing.T) {
	srv := newTestServer(t)
	require.Equal(t, http.StatusCreated, srv.do(registerRequest(t, t1Fields(), true)).Code)
	tokens := loginAs(t, srv, "t1", "p")

	req := jsonRequest(http.MethodPost, "/api/v1/users/change-password", map[string]string{"oldPassword": "bad", "newPassword": "q"})
	req.Header.Set("Authorization", "Bearer "+tokens.AccessToken)
	assert.Equal(t, http.StatusUnauthorized, srv.do(req).Code)

	req = jsonRequest(http.MethodPost, "/api/v1/users/change-password", map[string]string{"oldPassword": "p", "newPassword": "q"})
	req.Header.Set("Authorization", "Bearer "+tokens.AccessToken)
	require.Equal(t, http.StatusOK, srv.do(req).Code)

	loginAs(t, srv, "t1", "q")
}

func TestUpdateAccountAndAvatar(t *testing.T) {
	srv := newTestServer(t)
	require.Equal(t, http.StatusCreated, srv.do(registerRequest(t, t1Fields(), true)).Code)
	tokens := loginAs(t, srv, "t1", "p")

	req := jsonRequest(http.MethodPatch, "/api/v1/users/update-account", map[string]string{"fullName": "New Name", "email": "new@x.com"})
	req.Header.Set("Authorization", "Bearer "+tokens.AccessToken)
	rec := srv.do(req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, string(decodeEnvelope(t, rec).Data), `"email":"new@x.com"`)

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	part, err := mw.CreateFormFile("avatar", "next.png")
	require.NoError(t, err)
	_, _ = part.Write([]byte("png"))
	require.NoError(t, mw.Close())

	req = httptest.NewRequest(http.MethodPatch, "/api/v1/users/avatar", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+tokens.AccessToken)
	rec = srv.do(req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, string(decodeEnvelope(t, rec).Data), "http://cdn.test/media/2.png")
	assert.Equal(t, []string{"media/1.png"}, srv.media.deleted)
}

func TestTeaRoutes(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(jsonRequest(http.MethodPost, "/teas", map[string]interface{}{"name": "Green Tea", "price": 5}))
	require.Equal(t, http.StatusCreated, rec.Code)
	var tea model.Tea
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tea))
	assert.Equal(t, model.Tea{ID: 1, Name: "Green Tea", Price: 5}, tea)

	rec = srv.do(jsonRequest(http.MethodPut, "/teas/1", map[string]interface{}{"name": "Updated Tea", "price": 10}))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = srv.do(httptest.NewRequest(http.MethodGet, "/teas", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var teas []model.Tea
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &teas))
	assert.Equal(t, []model.Tea{{ID: 1, Name: "Updated Tea", Price: 10}}, teas)

	rec = srv.do(httptest.NewRequest(http.MethodDelete, "/teas/1", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Tea with ID 1 Deleted.", rec.Body.String())

	rec = srv.do(httptest.NewRequest(http.MethodGet, "/teas/1", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Tea with ID 1 is not available", rec.Body.String())

	rec = srv.do(httptest.NewRequest(http.MethodGet, "/teas/abc", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Tea with ID abc is not available", rec.Body.String())

	rec = srv.do(jsonRequest(http.MethodPost, "/teas", map[string]interface{}{"price": 5}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTeaRoutes_BadBodyIsPlainText(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/teas", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	rec := srv.do(req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "Invalid request body", rec.Body.String())

	rec = srv.do(jsonRequest(http.MethodPost, "/teas", map[string]interface{}{"name": "Green Tea", "price": 5}))
	require.Equal(t, http.StatusCreated, rec.Code)

	huge := map[string]interface{}{"name": strings.Repeat("x", 20<<10), "price": 1}
	rec = srv.do(jsonRequest(http.MethodPut, "/teas/1", huge))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "Request body too large", rec.Body.String())
}

func TestHelloAndHealthRoutes(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Hello ICE TEA", rec.Body.String())

	rec = srv.do(httptest.NewRequest(http.MethodGet, "/ice-tea", nil))
	assert.Equal(t, "Thanks for ordering ice tea :)", rec.Body.String())

	rec = srv.do(httptest.NewRequest(http.MethodGet, "/no/such/route", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "404 not found :(", rec.Body.String())

	rec = srv.do(httptest.NewRequest(http.MethodGet, "/api/v1/healthcheck", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, 200, env.StatusCode)
	assert.Equal(t, `"OK"`, string(env.Data))
	assert.Equal(t, "Health Check Passed", env.Message)
	assert.True(t, env.Success)
}
