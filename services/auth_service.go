package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

const coachTokenTTL = 24 * time.Hour

// AuthService exchanges a coach identity for a signed token. Coaches are a
// fixed allow-list of e-mail addresses sharing one bcrypt-hashed access code;
// the identity provider in front of this (if any) is outside this service.
type AuthService struct {
	coachEmails    []string
	accessCodeHash string
	jwtSecret      []byte
}

func NewAuthService(coachEmails []string, accessCodeHash string, jwtSecret []byte) *AuthService {
	return &AuthService{
		coachEmails:    coachEmails,
		accessCodeHash: accessCodeHash,
		jwtSecret:      jwtSecret,
	}
}

func (s *AuthService) SignIn(_ context.Context, email, accessCode string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !s.isCoach(email) {
		return "", ErrInvalidCredentials
	}

	err := bcrypt.CompareHashAndPassword([]byte(s.accessCodeHash), []byte(accessCode))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("failed to compare access code hash: %w", err)
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"email": email,
		"role":  "coach",
		"iat":   now.Unix(),
		"exp":   now.Add(coachTokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (s *AuthService) isCoach(email string) bool {
	for _, allowed := range s.coachEmails {
		if strings.EqualFold(allowed, email) {
			return true
		}
	}
	return false
}
