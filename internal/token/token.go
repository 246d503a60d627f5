package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// VerificationTTL is how long a verification link stays valid.
	VerificationTTL = 15 * time.Minute
	// SessionTTL is how long a login session token stays valid.
	SessionTTL = time.Hour

	issuer = "verify-app-api"

	// Subjects keep the two token kinds from being presented
	// interchangeably: a session token must never pass as a
	// verification token or vice versa.
	subjectVerification = "email-verification"
	subjectSession      = "session"
)

var ErrInvalidToken = errors.New("invalid token")

// Manager signs and parses both token kinds with a process-wide secret
// injected at startup.
type Manager struct {
	secret []byte
}

func NewManager(secret string) *Manager {
	return &Manager{secret: []byte(secret)}
}

// VerificationClaims bind a verification token to the email it was
// issued for.
type VerificationClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// SessionClaims carry the account identity of a logged-in user.
type SessionClaims struct {
	AccountID string `json:"id"`
	Email     string `json:"email"`
	jwt.RegisteredClaims
}

// NewVerificationToken signs a token bound to email and returns it along
// with its expiry timestamp, which callers persist alongside the token.
func (m *Manager) NewVerificationToken(email string) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(VerificationTTL)
	claims := &VerificationClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectVerification,
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    issuer,
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// ParseVerificationToken validates signature, expiry and token kind.
func (m *Manager) ParseVerificationToken(raw string) (*VerificationClaims, error) {
	t, err := jwt.ParseWithClaims(raw, &VerificationClaims{}, m.keyFunc)
	if err != nil || !t.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := t.Claims.(*VerificationClaims)
	if !ok || claims.Subject != subjectVerification || claims.Email == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// NewSessionToken signs a token proving a successful login.
func (m *Manager) NewSessionToken(accountID, email string) (string, error) {
	now := time.Now()
	claims := &SessionClaims{
		AccountID: accountID,
		Email:     email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectSession,
			ExpiresAt: jwt.NewNumericDate(now.Add(SessionTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    issuer,
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(m.secret)
}

// ParseSessionToken validates signature, expiry and token kind.
func (m *Manager) ParseSessionToken(raw string) (*SessionClaims, error) {
	t, err := jwt.ParseWithClaims(raw, &SessionClaims{}, m.keyFunc)
	if err != nil || !t.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := t.Claims.(*SessionClaims)
	if !ok || claims.Subject != subjectSession || claims.AccountID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (m *Manager) keyFunc(t *jwt.Token) (interface{}, error) {
	if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
	}
	return m.secret, nil
}
