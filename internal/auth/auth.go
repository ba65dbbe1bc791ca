package auth

import (
	"context"
	"errors"
	"log"
	"net/http"
)

// User ID context key
type contextKey string

const (
	UserIDKey contextKey = "userID"
)

// GetUserIDFromContext extracts userID from context
func GetUserIDFromContext(ctx context.Context) (string, error) {
	userID, ok := ctx.Value(UserIDKey).(string)
	if !ok || userID == "" {
		return "", errors.New("user ID not found in context")
	}
	return userID, nil
}

// Middleware validates the bearer token and puts the subject in the request context
func Middleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := ExtractTokenFromRequest(r)
			if err != nil {
				log.Printf("Error extracting token: %v", err)
				http.Error(w, "Authorization header required", http.StatusUnauthorized)
				return
			}

			userID, err := SubjectFromToken(token, secret)
			if err != nil {
				log.Printf("Error validating token: %v", err)
				http.Error(w, "Invalid token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminMiddleware checks that the validated token has the admin role
func AdminMiddleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := ExtractTokenFromRequest(r)
			if err != nil {
				log.Printf("Error extracting token: %v", err)
				http.Error(w, "Authorization header required", http.StatusUnauthorized)
				return
			}

			isAdmin, err := HasAdminRole(token, secret)
			if err != nil {
				log.Printf("Error checking admin role: %v", err)
				http.Error(w, "Invalid token", http.StatusUnauthorized)
				return
			}

			if !isAdmin {
				http.Error(w, "Forbidden - Admin access required", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
