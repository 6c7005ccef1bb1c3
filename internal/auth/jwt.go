package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/avilic/blog-api-be/internal/models"
	"github.com/avilic/blog-api-be/internal/permissions"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
)

var (
	jwtKey   = []byte("dev-secret-change-me")
	tokenTTL = 24 * time.Hour
)

// Init sets the signing key and token lifetime. Call once at startup before
// any token is issued or validated.
func Init(secret string, ttl time.Duration) {
	jwtKey = []byte(secret)
	if ttl > 0 {
		tokenTTL = ttl
	}
}

// TokenTTL returns the configured token lifetime so cookie expiry can match
// the token's own expiry.
func TokenTTL() time.Duration {
	return tokenTTL
}

// Claims defines the JWT claims structure.
type Claims struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

type contextKey string

const subjectKey = contextKey("authSubject")

// GenerateJWT creates a new JWT for a given user.
func GenerateJWT(user models.User) (string, error) {
	expirationTime := time.Now().Add(tokenTTL)
	claims := &Claims{
		UserID:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtKey)
}

// ValidateJWT parses and validates a JWT string.
func ValidateJWT(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return jwtKey, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// Middleware resolves the request's subject from a bearer token or cookie and
// stores it in the context. It never rejects: reads are public and handlers
// must be able to report NotFound before AuthenticationRequired, so denying
// writes is left to the permission checks in the handlers. A request without a
// usable token simply proceeds as anonymous.
func Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var tokenStr string

			// 1. Try to get the token from the Authorization header
			authHeader := r.Header.Get("Authorization")
			if authHeader != "" {
				parts := strings.Split(authHeader, "Bearer ")
				if len(parts) == 2 {
					tokenStr = parts[1]
				}
			}

			// 2. If not in header, fall back to the cookie
			if tokenStr == "" {
				if cookie, err := r.Cookie("token"); err == nil {
					tokenStr = cookie.Value
				}
			}

			if tokenStr != "" {
				claims, err := ValidateJWT(tokenStr)
				if err != nil {
					log.Warn().Err(err).Msg("Ignoring invalid auth token")
				} else {
					sub := &permissions.Subject{ID: claims.UserID, Username: claims.Username}
					r = r.WithContext(context.WithValue(r.Context(), subjectKey, sub))
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

// SubjectFromContext returns the authenticated subject, or nil for anonymous
// requests.
func SubjectFromContext(ctx context.Context) *permissions.Subject {
	sub, _ := ctx.Value(subjectKey).(*permissions.Subject)
	return sub
}
