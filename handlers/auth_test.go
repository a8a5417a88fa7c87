package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/soulbrew/blog-services/internal/config"
	"github.com/soulbrew/blog-services/internal/models"
	"github.com/soulbrew/blog-services/internal/sessions"
	"github.com/soulbrew/blog-services/internal/users"
	"github.com/soulbrew/blog-services/pkg/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memUserRepo struct {
	bySub map[string]*models.User
}

func (m *memUserRepo) UpsertBySub(_ context.Context, u *models.User) (*models.User, error) {
	if m.bySub == nil {
		m.bySub = map[string]*models.User{}
	}
	cp := *u
	m.bySub[u.Sub] = &cp
	return &cp, nil
}

func (m *memUserRepo) GetBySub(_ context.Context, sub string) (*models.User, error) {
	return m.bySub[sub], nil
}

// claimsToken returns fixed claims for any raw token
type claimsToken struct {
	claims map[string]interface{}
}

func (t *claimsToken) Claims(v interface{}) error {
	if mm, ok := v.(*map[string]interface{}); ok {
		*mm = t.claims
		return nil
	}
	return errors.New("unsupported claims type")
}

type stubVerifier struct {
	claims map[string]interface{}
}

func (s *stubVerifier) Verify(_ context.Context, raw string) (middleware.Token, error) {
	if raw == "" {
		return nil, errors.New("empty token")
	}
	return &claimsToken{claims: s.claims}, nil
}

type stubExchanger struct {
	idToken string
	err     error
}

func (s *stubExchanger) ExchangeCode(_ context.Context, code, redirectURI string) (string, error) {
	return s.idToken, s.err
}

func (s *stubExchanger) PasswordGrant(_ context.Context, username, password string) (string, error) {
	return s.idToken, s.err
}

func doRequest(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func newAuthRouter(t *testing.T, ex TokenExchanger) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{}
	cfg.JWT.Secret = "handler-test-secret-32-bytes-xxxxxx"

	usersSvc := users.NewService(&memUserRepo{})
	sessionsSvc := sessions.NewService(sessions.NewMemoryRepository())
	ver := &stubVerifier{claims: map[string]interface{}{
		"sub":     "oidc|editor-1",
		"email":   "sarah@soulbrew.example",
		"name":    "Sarah Chen",
		"picture": "https://cdn.example/avatars/sarah.jpg",
	}}

	r := gin.New()
	NewAuthHandler(cfg, usersSvc, sessionsSvc, ver, ex).Register(r.Group("/api"))
	return r
}

func login(t *testing.T, r *gin.Engine) map[string]interface{} {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/auth/login", gin.H{
		"mode":     "password",
		"username": "sarah",
		"password": "brew",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestLogin_PasswordGrant(t *testing.T) {
	r := newAuthRouter(t, &stubExchanger{idToken: "raw-id-token"})
	resp := login(t, r)

	assert.NotEmpty(t, resp["accessToken"])
	assert.NotEmpty(t, resp["refreshToken"])
	assert.EqualValues(t, 900, resp["expiresIn"])

	user, ok := resp["user"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "oidc|editor-1", user["sub"])
	assert.Equal(t, "https://cdn.example/avatars/sarah.jpg", user["avatar"])
}

func TestLogin_ExchangeFails(t *testing.T) {
	r := newAuthRouter(t, &stubExchanger{err: errors.New("bad credentials")})
	w := doJSON(t, r, http.MethodPost, "/api/auth/login", gin.H{
		"mode":     "password",
		"username": "sarah",
		"password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogin_UnsupportedMode(t *testing.T) {
	r := newAuthRouter(t, &stubExchanger{idToken: "raw-id-token"})
	w := doJSON(t, r, http.MethodPost, "/api/auth/login", gin.H{"mode": "magic-link"})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin_AuthCodeRequiresCodeAndRedirect(t *testing.T) {
	r := newAuthRouter(t, &stubExchanger{idToken: "raw-id-token"})
	w := doJSON(t, r, http.MethodPost, "/api/auth/login", gin.H{"mode": "auth_code"})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRefresh_RotatesToken(t *testing.T) {
	r := newAuthRouter(t, &stubExchanger{idToken: "raw-id-token"})
	resp := login(t, r)
	refresh := resp["refreshToken"].(string)

	w := doJSON(t, r, http.MethodPost, "/api/auth/refresh", gin.H{"refresh_token": refresh})
	require.Equal(t, http.StatusOK, w.Code)
	var rr map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rr))
	assert.NotEmpty(t, rr["accessToken"])
	next := rr["refreshToken"].(string)
	assert.NotEqual(t, refresh, next)

	// the old refresh token is retired by rotation
	w2 := doJSON(t, r, http.MethodPost, "/api/auth/refresh", gin.H{"refresh_token": refresh})
	require.Equal(t, http.StatusUnauthorized, w2.Code)

	// the new one still works
	w3 := doJSON(t, r, http.MethodPost, "/api/auth/refresh", gin.H{"refresh_token": next})
	require.Equal(t, http.StatusOK, w3.Code)
}

func TestRefresh_UnknownToken(t *testing.T) {
	r := newAuthRouter(t, &stubExchanger{idToken: "raw-id-token"})
	w := doJSON(t, r, http.MethodPost, "/api/auth/refresh", gin.H{"refresh_token": "never-issued"})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogout_RemovesSession(t *testing.T) {
	r := newAuthRouter(t, &stubExchanger{idToken: "raw-id-token"})
	resp := login(t, r)
	refresh := resp["refreshToken"].(string)

	w := doJSON(t, r, http.MethodPost, "/api/auth/logout", gin.H{"refresh_token": refresh})
	require.Equal(t, http.StatusOK, w.Code)

	w2 := doJSON(t, r, http.MethodPost, "/api/auth/refresh", gin.H{"refresh_token": refresh})
	require.Equal(t, http.StatusUnauthorized, w2.Code)
}

func TestMe_ReturnsStoredUser(t *testing.T) {
	r := newAuthRouter(t, &stubExchanger{idToken: "raw-id-token"})
	login(t, r)

	req, _ := http.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer any-token")
	w := doRequest(r, req)

	require.Equal(t, http.StatusOK, w.Code)
	var u models.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &u))
	assert.Equal(t, "sarah@soulbrew.example", u.Email)
}
