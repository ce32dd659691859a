package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brunopesce23/EFI-IngSoft/internal/utils"
)

const testSecret = "middleware-test-secret"

func newContext(t *testing.T, authorization string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func okHandler(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func TestJWTAuthMissingHeader(t *testing.T) {
	c, rec := newContext(t, "")
	err := JWTAuth(testSecret)(okHandler)(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthInvalidToken(t *testing.T) {
	c, rec := newContext(t, "Bearer not-a-token")
	err := JWTAuth(testSecret)(okHandler)(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthWrongSecret(t *testing.T) {
	tok, err := utils.NewAccessToken("another-secret", 7, "CLIENT", 5)
	require.NoError(t, err)

	c, rec := newContext(t, "Bearer "+tok.Token)
	err = JWTAuth(testSecret)(okHandler)(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthValidTokenSetsContext(t *testing.T) {
	tok, err := utils.NewAccessToken(testSecret, 7, "CLIENT", 5)
	require.NoError(t, err)

	c, rec := newContext(t, "Bearer "+tok.Token)
	var gotUser, gotRole interface{}
	next := func(c echo.Context) error {
		gotUser = c.Get("user_id")
		gotRole = c.Get("role")
		return c.String(http.StatusOK, "ok")
	}
	err = JWTAuth(testSecret)(next)(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(7), gotUser) // numeric JWT claims decode as float64
	assert.Equal(t, "CLIENT", gotRole)
}

func TestRequireRoleAllowed(t *testing.T) {
	c, rec := newContext(t, "")
	c.Set("role", "ADMIN")
	err := RequireRole("ADMIN")(okHandler)(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRoleDenied(t *testing.T) {
	c, rec := newContext(t, "")
	c.Set("role", "CLIENT")
	err := RequireRole("ADMIN")(okHandler)(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRoleMissingRole(t *testing.T) {
	c, rec := newContext(t, "")
	err := RequireRole("ADMIN", "CLIENT")(okHandler)(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
