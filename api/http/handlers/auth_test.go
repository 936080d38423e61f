package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apihttp "github.com/giftlink/giftlink-backend/api/http"
	"github.com/giftlink/giftlink-backend/api/http/handlers"
	"github.com/giftlink/giftlink-backend/pkg/auth"
	"github.com/giftlink/giftlink-backend/pkg/gifts"
	"github.com/giftlink/giftlink-backend/pkg/health"
	"github.com/giftlink/giftlink-backend/pkg/repository/memory"
	"github.com/giftlink/giftlink-backend/pkg/security/jwt"
	"github.com/giftlink/giftlink-backend/pkg/security/password"
)

// giftStub satisfies gifts.Repository; the auth tests never reach it.
type giftStub struct{}

func (giftStub) Create(ctx context.Context, g gifts.Gift) (gifts.Gift, error) { return g, nil }
func (giftStub) GetByID(ctx context.Context, id uuid.UUID) (gifts.Gift, error) {
	return gifts.Gift{}, gifts.ErrNotFound
}
func (giftStub) List(ctx context.Context, limit, offset int) ([]gifts.Gift, error) { return nil, nil }
func (giftStub) Search(ctx context.Context, f gifts.Filter, limit, offset int) ([]gifts.Gift, error) {
	return nil, nil
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	repo := memory.NewUserRepository()
	gen, err := jwt.NewGenerator("test-secret", "giftlink", 0)
	require.NoError(t, err)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	authUC := auth.NewAuthService(repo, password.NewBcryptHasher(), gen, logger)
	giftUC := gifts.NewService(giftStub{})

	app := fiber.New()
	apihttp.Register(app,
		handlers.NewAuthHandler(authUC),
		handlers.NewGiftHandler(giftUC),
		handlers.NewHealthHandler(health.NewService()),
		jwt.NewAuthMiddleware(gen),
	)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, target string, body any, header map[string]string) (*http.Response, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var parsed map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &parsed))
	}
	return resp, parsed
}

func TestRegisterEndpoint(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/auth/register", map[string]string{
		"email": "a@x.com", "password": "pw1", "firstName": "Ann", "lastName": "Lee",
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.NotEmpty(t, body["authtoken"])
	assert.Equal(t, "a@x.com", body["email"])
	// The password hash never appears in a response.
	_, leaked := body["password"]
	assert.False(t, leaked)

	resp, body = doJSON(t, app, http.MethodPost, "/api/v1/auth/register", map[string]string{
		"email": "a@x.com", "password": "pw2", "firstName": "Bob", "lastName": "Roe",
	}, nil)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "email already exists", body["error"])
}

func TestRegisterEndpointValidation(t *testing.T) {
	app := newTestApp(t)

	resp, _ := doJSON(t, app, http.MethodPost, "/api/v1/auth/register", map[string]string{
		"email": "", "password": "pw",
	}, nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLoginEndpoint(t *testing.T) {
	app := newTestApp(t)

	resp, _ := doJSON(t, app, http.MethodPost, "/api/v1/auth/register", map[string]string{
		"email": "a@x.com", "password": "pw1", "firstName": "Ann", "lastName": "Lee",
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email": "a@x.com", "password": "pw1",
	}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, body["authtoken"])
	assert.Equal(t, "Ann", body["firstName"])
	assert.Equal(t, "a@x.com", body["email"])

	// Wrong password and unknown account produce the same status and message.
	resp, wrongBody := doJSON(t, app, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email": "a@x.com", "password": "wrong",
	}, nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp, unknownBody := doJSON(t, app, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email": "nobody@x.com", "password": "pw1",
	}, nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, wrongBody, unknownBody)
}

func TestUpdateEndpoint(t *testing.T) {
	app := newTestApp(t)

	_, reg := doJSON(t, app, http.MethodPost, "/api/v1/auth/register", map[string]string{
		"email": "a@x.com", "password": "pw1", "firstName": "Ann", "lastName": "Lee",
	}, nil)
	token, _ := reg["authtoken"].(string)
	require.NotEmpty(t, token)

	// No bearer token: rejected by the middleware.
	resp, _ := doJSON(t, app, http.MethodPut, "/api/v1/auth/update", map[string]string{"name": "Annabelle"}, map[string]string{
		"Email": "a@x.com",
	})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Token but no Email header: the identity channel is missing.
	resp, _ = doJSON(t, app, http.MethodPut, "/api/v1/auth/update", map[string]string{"name": "Annabelle"}, map[string]string{
		"Authorization": "Bearer " + token,
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body := doJSON(t, app, http.MethodPut, "/api/v1/auth/update", map[string]string{"name": "Annabelle"}, map[string]string{
		"Authorization": "Bearer " + token,
		"Email":         "a@x.com",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, body["authtoken"])

	// The profile change is visible on the next login.
	resp, body = doJSON(t, app, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email": "a@x.com", "password": "pw1",
	}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Annabelle", body["firstName"])
}

func TestUpdateEndpointUnknownEmail(t *testing.T) {
	app := newTestApp(t)

	_, reg := doJSON(t, app, http.MethodPost, "/api/v1/auth/register", map[string]string{
		"email": "a@x.com", "password": "pw1",
	}, nil)
	token, _ := reg["authtoken"].(string)
	require.NotEmpty(t, token)

	resp, _ := doJSON(t, app, http.MethodPut, "/api/v1/auth/update", map[string]string{"name": "Ann"}, map[string]string{
		"Authorization": "Bearer " + token,
		"Email":         "nobody@x.com",
	})
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHealthEndpoint(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, http.MethodGet, "/api/v1/health", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
}
