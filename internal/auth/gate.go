package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Gate errors, mapped to status codes at the request boundary.
var (
	ErrNotConfigured = errors.New("owner password not configured")
	ErrBadSecret     = errors.New("invalid owner password")
)

// SessionExpiry is the admin session token lifetime.
const SessionExpiry = 12 * time.Hour

// Gate checks the shared owner password for admin operations and issues
// session tokens so the admin page doesn't have to resend the password.
type Gate struct {
	secretHash    []byte // bcrypt hash of the configured password, nil if unset
	sessionSecret string
}

// NewGate creates a gate for the configured owner password. An empty password
// leaves the gate unconfigured: every check fails with ErrNotConfigured, but
// the server keeps serving reads.
func NewGate(ownerPassword, sessionSecret string) (*Gate, error) {
	g := &Gate{sessionSecret: sessionSecret}

	if ownerPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(ownerPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hashing owner password: %w", err)
		}
		g.secretHash = hash
	}

	return g, nil
}

// Configured reports whether an owner password is set.
func (g *Gate) Configured() bool {
	return g.secretHash != nil
}

// VerifySecret checks a submitted password against the configured one.
func (g *Gate) VerifySecret(password string) error {
	if g.secretHash == nil {
		return ErrNotConfigured
	}
	if err := bcrypt.CompareHashAndPassword(g.secretHash, []byte(password)); err != nil {
		return ErrBadSecret
	}
	return nil
}

// Authorize accepts either a valid session token or the owner password.
// The password is always checked if the token is absent or invalid.
func (g *Gate) Authorize(password, token string) error {
	if g.secretHash == nil {
		return ErrNotConfigured
	}
	if token != "" && g.ValidateToken(token) == nil {
		return nil
	}
	return g.VerifySecret(password)
}

// IssueToken creates a signed session token for a verified admin.
func (g *Gate) IssueToken() (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   "owner",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(SessionExpiry)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(g.sessionSecret))
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses and validates a session token.
func (g *Gate) ValidateToken(tokenStr string) error {
	token, err := jwt.ParseWithClaims(tokenStr, &jwt.RegisteredClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(g.sessionSecret), nil
	})
	if err != nil {
		return fmt.Errorf("parsing token: %w", err)
	}
	if !token.Valid {
		return errors.New("invalid token")
	}
	return nil
}
