package auth

import (
	"errors"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/iamkaranroushan/grocery-application-backend/models"
)

// SessionCookieName is the cookie that carries the signed session token.
const SessionCookieName = "jwtToken"

const sessionTTL = 24 * time.Hour

// IssueSessionToken mints the signed, time-bound session credential for a
// verified identity.
func IssueSessionToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"id":       user.ID,
		"username": user.Username,
		"role":     user.Role,
		"exp":      time.Now().Add(sessionTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

// VerifySessionToken parses and validates a session token, returning its
// claims.
func VerifySessionToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// isLocalRequest relaxes cookie flags for loopback and private-network hosts
// so local development works without TLS.
func isLocalRequest(r *http.Request) bool {
	host := r.Host
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	return host == "localhost" || host == "127.0.0.1" || strings.HasPrefix(host, "192.")
}

// SetSessionCookie attaches the session token to the response.
func SetSessionCookie(c *gin.Context, token string) {
	local := isLocalRequest(c.Request)
	sameSite := http.SameSiteNoneMode
	if local {
		sameSite = http.SameSiteLaxMode
	}
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(sessionTTL.Seconds()),
		HttpOnly: !local,
		Secure:   !local,
		SameSite: sameSite,
	})
}

// ClearSessionCookie removes the session cookie with matching flags.
func ClearSessionCookie(c *gin.Context) {
	local := isLocalRequest(c.Request)
	sameSite := http.SameSiteNoneMode
	if local {
		sameSite = http.SameSiteLaxMode
	}
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: !local,
		Secure:   !local,
		SameSite: sameSite,
	})
}
