package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brunopesce23/EFI-IngSoft/internal/config"
	"github.com/brunopesce23/EFI-IngSoft/internal/model"
)

type fakeUserStore struct {
	createdEmail string
	createdRole  string
}

func (f *fakeUserStore) Create(_ context.Context, email, _, role string, _ int) (uint64, error) {
	f.createdEmail = email
	f.createdRole = role
	return 1, nil
}

func (f *fakeUserStore) GetByEmail(context.Context, string) (model.User, error) {
	return model.User{}, sql.ErrNoRows
}

func (f *fakeUserStore) GetByID(context.Context, uint64) (model.User, error) {
	return model.User{}, sql.ErrNoRows
}

type fakeTokenStore struct{}

func (fakeTokenStore) StoreRefresh(context.Context, uint64, string, time.Time) error { return nil }
func (fakeTokenStore) ValidateRefresh(context.Context, string) (uint64, error) {
	return 0, sql.ErrNoRows
}
func (fakeTokenStore) RevokeByHash(context.Context, string) error     { return nil }
func (fakeTokenStore) RevokeAllForUser(context.Context, uint64) error { return nil }

func registerCall(t *testing.T, body string) (*fakeUserStore, *httptest.ResponseRecorder) {
	t.Helper()
	cfg := config.Config{JWTSecret: "test-secret", AccessTTLMin: 15, RefreshTTLDays: 7, BcryptCost: 4}
	users := &fakeUserStore{}
	h := NewAuthHandler(cfg, users, fakeTokenStore{})

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/register", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	require.NoError(t, h.Register(e.NewContext(req, rec)))
	return users, rec
}

func TestRegisterAlwaysCreatesClient(t *testing.T) {
	users, rec := registerCall(t, `{"email":"Eve@Example.com","password":"pw","role":"ADMIN"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "eve@example.com", users.createdEmail)
	assert.Equal(t, model.RoleClient, users.createdRole)

	var resp struct {
		User struct {
			Role string `json:"role"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, model.RoleClient, resp.User.Role)
}

func TestRegisterRequiresEmailAndPassword(t *testing.T) {
	_, rec := registerCall(t, `{"email":"","password":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
