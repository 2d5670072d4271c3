package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"taskchat/internal/models"
	"taskchat/internal/repository"
	"taskchat/internal/service"
)

type contextKey string

const userContextKey contextKey = "user"

// Auth validates the bearer token and resolves its subject to a user, which
// is stored on the request context for handlers.
func Auth(auth *service.AuthService, repo *repository.Repository, log *logrus.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add("Vary", "Authorization")

			parts := strings.Fields(r.Header.Get("Authorization"))
			if len(parts) != 2 || parts[0] != "Bearer" {
				unauthorized(w)
				return
			}

			email, err := auth.VerifyToken(parts[1])
			if err != nil {
				unauthorized(w)
				return
			}

			user, err := repo.UserByEmail(r.Context(), email)
			if err != nil {
				log.Errorf("Failed to resolve token subject: %v", err)
				http.Error(w, `{"error": "internal server error"}`, http.StatusInternalServerError)
				return
			}
			if user == nil {
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext returns the authenticated user set by Auth, or nil.
func UserFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(userContextKey).(*models.User)
	return user
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error": "invalid or missing token"}`))
}
