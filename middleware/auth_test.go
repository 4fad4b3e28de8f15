package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

func signToken(t *testing.T, secret []byte, email string, ttl time.Duration) string {
	t.Helper()
	claims := jwt.MapClaims{
		"email": email,
		"role":  "coach",
		"exp":   time.Now().Add(ttl).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)
	return signed
}

func guardedHandler(t *testing.T) (http.Handler, *string) {
	t.Helper()
	var seenEmail string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		email, ok := CoachEmailFromContext(r.Context())
		require.True(t, ok)
		seenEmail = email
		w.WriteHeader(http.StatusOK)
	})
	guard := RequireCoach(testSecret, []string{"coach@academy.test"})
	return guard(next), &seenEmail
}

func TestRequireCoachMissingToken(t *testing.T) {
	handler, _ := guardedHandler(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/registrations", nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireCoachBadSignature(t *testing.T) {
	handler, _ := guardedHandler(t)
	token := signToken(t, []byte("other-secret"), "coach@academy.test", time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/registrations", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireCoachExpiredToken(t *testing.T) {
	handler, _ := guardedHandler(t)
	token := signToken(t, testSecret, "coach@academy.test", -time.Minute)

	req := httptest.NewRequest(http.MethodGet, "/registrations", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireCoachRejectsUnlistedEmail(t *testing.T) {
	handler, _ := guardedHandler(t)
	token := signToken(t, testSecret, "intruder@academy.test", time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/registrations", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "not an authorized coach")
}

func TestRequireCoachAcceptsBearerHeader(t *testing.T) {
	handler, seenEmail := guardedHandler(t)
	token := signToken(t, testSecret, "Coach@Academy.Test", time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/registrations", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Coach@Academy.Test", *seenEmail, "allow-list match is case-insensitive")
}

func TestRequireCoachAcceptsQueryToken(t *testing.T) {
	handler, _ := guardedHandler(t)
	token := signToken(t, testSecret, "coach@academy.test", time.Hour)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ws/dashboard?token="+token, nil))
	require.Equal(t, http.StatusOK, rec.Code)
}
