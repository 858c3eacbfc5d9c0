package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gamecp/provisioner/internal/logger"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMissingAuthHeader = errors.New("missing authorization header")
	ErrInvalidAuthHeader = errors.New("invalid authorization header format")
	ErrInvalidToken      = errors.New("invalid token")
)

// Authentication validates the billing system's HS256 bearer tokens. The
// token's subject identifies the invoking hook actor and is stored on the
// request context as "actor".
func Authentication(secret string) gin.HandlerFunc {
	key := []byte(secret)

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		const prefix = "Bearer "
		if !strings.HasPrefix(authHeader, prefix) {
			logger.WithField("path", c.Request.URL.Path).Warn("Authentication failed: missing or invalid authorization header")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "Missing or invalid authorization header",
			})
			return
		}

		tokenString := authHeader[len(prefix):]

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, ErrInvalidToken
			}
			return key, nil
		}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithExpirationRequired())

		if err != nil || !token.Valid {
			logger.WithFields(map[string]interface{}{
				"path":  c.Request.URL.Path,
				"error": errString(err),
			}).Warn("Authentication failed: token rejected")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "Invalid or expired token",
			})
			return
		}

		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			if subject, err := claims.GetSubject(); err == nil && subject != "" {
				c.Set("actor", subject)
			}
		}

		c.Next()
	}
}

// IssueToken mints a short-lived hook token. Exposed for integration
// scripts and tests; the billing system normally signs its own.
func IssueToken(secret, actor string, lifetime time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub": actor,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(lifetime).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func errString(err error) string {
	if err == nil {
		return "token invalid"
	}
	return err.Error()
}
