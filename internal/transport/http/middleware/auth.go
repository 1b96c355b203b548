package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const errUnauthorized = "Unauthorized"

// UserIDKey is the gin context key under which Auth stores the
// authenticated user's ID.
const UserIDKey = "userID"

// Auth validates a Bearer JWT (HS256 against the signing secret) and sets
// the user ID from the "sub" claim in the gin context.
func Auth(jwtKey []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := subjectFromHeader(c.GetHeader("Authorization"), jwtKey)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}

func subjectFromHeader(header string, jwtKey []byte) (string, bool) {
	raw, found := strings.CutPrefix(header, "Bearer ")
	if !found {
		return "", false
	}

	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return jwtKey, nil
	})
	if err != nil || !token.Valid {
		return "", false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", false
	}

	userID, ok := claims["sub"].(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}
