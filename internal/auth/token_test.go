package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, role, subject, secret string) string {
	t.Helper()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestSubjectFromToken(t *testing.T) {
	token := signToken(t, "", "user-42", testSecret)

	sub, err := SubjectFromToken(token, testSecret)

	require.NoError(t, err)
	assert.Equal(t, "user-42", sub)
}

func TestSubjectFromToken_WrongSecret(t *testing.T) {
	token := signToken(t, "", "user-42", "other-secret")

	_, err := SubjectFromToken(token, testSecret)

	assert.Error(t, err)
}

func TestSubjectFromToken_NoSecretConfigured(t *testing.T) {
	token := signToken(t, "", "user-42", testSecret)

	_, err := SubjectFromToken(token, "")

	assert.Error(t, err, "an unset secret must disable token acceptance")
}

func TestHasAdminRole(t *testing.T) {
	adminToken := signToken(t, "admin", "user-1", testSecret)
	userToken := signToken(t, "user", "user-2", testSecret)

	isAdmin, err := HasAdminRole(adminToken, testSecret)
	require.NoError(t, err)
	assert.True(t, isAdmin)

	isAdmin, err = HasAdminRole(userToken, testSecret)
	require.NoError(t, err)
	assert.False(t, isAdmin)
}

func TestExtractTokenFromRequest(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer abc123")

	token, err := ExtractTokenFromRequest(req)

	require.NoError(t, err)
	assert.Equal(t, "abc123", token)
}

func TestExtractTokenFromRequest_Malformed(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc123"},
		{"no token", "Bearer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			_, err := ExtractTokenFromRequest(req)
			assert.Error(t, err)
		})
	}
}

func TestAdminMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := AdminMiddleware(testSecret)(next)

	t.Run("admin passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, "admin", "user-1", testSecret))
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("non-admin forbidden", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, "user", "user-2", testSecret))
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("missing token unauthorized", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
