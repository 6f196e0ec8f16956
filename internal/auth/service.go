package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

type contextKey string

// AdminUserKey carries the authenticated admin's username in the request
// context once the middleware has validated the token.
const AdminUserKey contextKey = "adminUser"

// Service authenticates the single shared admin and gates destructive
// endpoints behind the issued token capability.
type Service interface {
	Login(username, password string) (string, error)
	Middleware() func(http.Handler) http.Handler
}

type service struct {
	jwtManager        *JWTManager
	adminUsername     string
	adminPasswordHash string
}

// NewService wires the admin credentials. The password hash is a bcrypt
// hash supplied through configuration, never a plaintext comparison.
func NewService(jwtManager *JWTManager, adminUsername, adminPasswordHash string) Service {
	return &service{
		jwtManager:        jwtManager,
		adminUsername:     adminUsername,
		adminPasswordHash: adminPasswordHash,
	}
}

func (s *service) Login(username, password string) (string, error) {
	if username != s.adminUsername {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.adminPasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	return s.jwtManager.Generate(username, defaultTokenDuration)
}

func (s *service) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeJSONError(w, http.StatusUnauthorized, "Authorization header is required")
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				writeJSONError(w, http.StatusUnauthorized, "Invalid token format")
				return
			}

			username, err := s.jwtManager.Validate(tokenString)
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), AdminUserKey, username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
