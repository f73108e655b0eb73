package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamkaranroushan/grocery-application-backend/models"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	user := &models.User{ID: 42, Username: "ravi", Role: models.RoleCustomer}
	token, err := IssueSessionToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := VerifySessionToken(token)
	require.NoError(t, err)
	assert.Equal(t, float64(42), claims["id"])
	assert.Equal(t, "ravi", claims["username"])
	assert.Equal(t, models.RoleCustomer, claims["role"])
	assert.NotNil(t, claims["exp"])
}

func TestVerifySessionTokenRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := IssueSessionToken(&models.User{ID: 1, Username: "ravi"})
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "a-different-secret")
	_, err = VerifySessionToken(token)
	assert.Error(t, err)
}

func TestVerifySessionTokenRejectsGarbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	_, err := VerifySessionToken("not-a-jwt")
	assert.Error(t, err)
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == SessionCookieName {
			return cookie
		}
	}
	t.Fatalf("no %s cookie in response", SessionCookieName)
	return nil
}

func TestSetSessionCookieLocalHost(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "http://localhost:8000/auth/login", nil)

	SetSessionCookie(c, "tok")

	cookie := sessionCookie(t, rec)
	assert.Equal(t, "tok", cookie.Value)
	assert.False(t, cookie.Secure, "local development runs without TLS")
	assert.False(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
}

func TestSetSessionCookiePublicHost(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "https://shop.example.com/auth/login", nil)

	SetSessionCookie(c, "tok")

	cookie := sessionCookie(t, rec)
	assert.True(t, cookie.Secure)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteNoneMode, cookie.SameSite)
}

func TestClearSessionCookieExpiresIt(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "http://localhost:8000/auth/logout", nil)

	ClearSessionCookie(c)

	cookie := sessionCookie(t, rec)
	assert.Empty(t, cookie.Value)
	assert.Less(t, cookie.MaxAge, 0)
}
