package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sanjaikannang/Golden-Gate-BackEnd/utils"
)

func runMiddleware(t *testing.T, authHeader string) (*httptest.ResponseRecorder, echo.Context, bool) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/user-properties", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := JWTMiddleware()(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))
	return rec, c, called
}

func TestJWTMiddlewareAcceptsValidToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	userID := primitive.NewObjectID()
	token, err := utils.GenerateJWT(userID, "sanjai@example.com")
	require.NoError(t, err)

	rec, c, called := runMiddleware(t, "Bearer "+token)

	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID, c.Get("user_id"))
	assert.Equal(t, "sanjai@example.com", c.Get("user_email"))
}

func TestJWTMiddlewareRejectsMissingHeader(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	rec, _, called := runMiddleware(t, "")

	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTMiddlewareRejectsMalformedHeader(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	for _, header := range []string{"Basic abc", "Bearer", "token-without-scheme"} {
		rec, _, called := runMiddleware(t, header)

		assert.False(t, called, "header %q", header)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
	}
}

func TestJWTMiddlewareRejectsTamperedToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := utils.GenerateJWT(primitive.NewObjectID(), "sanjai@example.com")
	require.NoError(t, err)

	rec, _, called := runMiddleware(t, "Bearer "+token+"x")

	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
