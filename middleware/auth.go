package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v4"
)

type contextKey string

const coachEmailContextKey contextKey = "coachEmail"

// RequireCoach verifies the bearer token and checks the identity against the
// configured coach allow-list. Websocket clients cannot set headers, so a
// `token` query parameter is accepted as a fallback.
func RequireCoach(jwtSecret []byte, coachEmails []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := extractToken(r)
			if tokenString == "" {
				unauthorized(w, "missing authentication token")
				return
			}

			claims := jwt.MapClaims{}
			_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
				}
				return jwtSecret, nil
			})
			if err != nil {
				unauthorized(w, "invalid or expired token")
				return
			}

			email, _ := claims["email"].(string)
			if email == "" || !emailAllowed(email, coachEmails) {
				unauthorized(w, "not an authorized coach")
				return
			}

			ctx := context.WithValue(r.Context(), coachEmailContextKey, email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CoachEmailFromContext returns the authenticated coach identity, if any.
func CoachEmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(coachEmailContextKey).(string)
	return email, ok
}

func extractToken(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
	}
	return r.URL.Query().Get("token")
}

func emailAllowed(email string, allowed []string) bool {
	for _, a := range allowed {
		if strings.EqualFold(a, email) {
			return true
		}
	}
	return false
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
