package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"wardrobe-backend/internal/models"
)

const UserIDKey = "user_id"

// LocalTokenTTL is the validity window of fallback login tokens.
const LocalTokenTTL = 24 * time.Hour

// TokenVerifier resolves a platform-issued access token to a user id.
// Implemented by the Supabase client; nil skips native verification.
type TokenVerifier interface {
	UserIDForToken(token string) (string, error)
}

// ProfileStore confirms that a fallback token's subject still exists.
// A nil store skips the check.
type ProfileStore interface {
	GetProfile(id uuid.UUID) (*models.Profile, error)
}

// IssueLocalToken signs a fallback login token for users the platform's
// password grant refuses (unconfirmed email).
func IssueLocalToken(secret, userID, email string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   userID,
		"email": email,
		"role":  "authenticated",
		"iat":   now.Unix(),
		"exp":   now.Add(LocalTokenTTL).Unix(),
	})
	return token.SignedString([]byte(secret))
}

// AuthMiddleware validates the bearer credential on every request:
// native platform verification first, then the locally-issued token
// fallback. The resolved user id lands in the gin context under
// UserIDKey.
func AuthMiddleware(secret string, verifier TokenVerifier, profiles ProfileStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWith(c, http.StatusUnauthorized, "missing access token")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
			abortWith(c, http.StatusUnauthorized, "missing access token")
			return
		}
		tokenString := strings.TrimSpace(parts[1])

		if verifier != nil {
			if userID, err := verifier.UserIDForToken(tokenString); err == nil && userID != "" {
				c.Set(UserIDKey, userID)
				c.Next()
				return
			}
		}

		if secret == "" {
			abortWith(c, http.StatusInternalServerError, "server configuration error")
			return
		}

		userID, err := verifyLocalToken(secret, tokenString)
		if err != nil {
			abortWith(c, http.StatusUnauthorized, "invalid access token")
			return
		}

		if profiles != nil {
			id, err := uuid.Parse(userID)
			if err != nil {
				abortWith(c, http.StatusUnauthorized, "invalid access token")
				return
			}
			if _, err := profiles.GetProfile(id); err != nil {
				abortWith(c, http.StatusUnauthorized, "user not found")
				return
			}
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}

func verifyLocalToken(secret, tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", jwt.ErrTokenInvalidClaims
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", fmt.Errorf("token has no subject")
	}
	return sub, nil
}

func abortWith(c *gin.Context, status int, message string) {
	c.JSON(status, models.ErrorResponse{Code: status, Message: message})
	c.Abort()
}
