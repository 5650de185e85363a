package auth

import (
	"errors"
	"testing"
)

const testSessionSecret = "test-session-secret"

func TestVerifySecret(t *testing.T) {
	gate, err := NewGate("hunter2", testSessionSecret)
	if err != nil {
		t.Fatalf("NewGate: %v", err)
	}

	if err := gate.VerifySecret("hunter2"); err != nil {
		t.Errorf("correct password rejected: %v", err)
	}
	if err := gate.VerifySecret("wrong"); !errors.Is(err, ErrBadSecret) {
		t.Errorf("expected ErrBadSecret, got %v", err)
	}
	if err := gate.VerifySecret(""); !errors.Is(err, ErrBadSecret) {
		t.Errorf("expected ErrBadSecret for empty password, got %v", err)
	}
}

func TestUnconfiguredGate(t *testing.T) {
	gate, err := NewGate("", testSessionSecret)
	if err != nil {
		t.Fatalf("NewGate: %v", err)
	}

	if gate.Configured() {
		t.Error("expected gate without password to report unconfigured")
	}

	// Every check fails with ErrNotConfigured, whatever the caller sends.
	if err := gate.VerifySecret("anything"); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("expected ErrNotConfigured, got %v", err)
	}
	if err := gate.Authorize("anything", "some-token"); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("expected ErrNotConfigured via Authorize, got %v", err)
	}
}

func TestSessionTokens(t *testing.T) {
	gate, err := NewGate("hunter2", testSessionSecret)
	if err != nil {
		t.Fatalf("NewGate: %v", err)
	}

	token, err := gate.IssueToken()
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	if err := gate.ValidateToken(token); err != nil {
		t.Errorf("valid token rejected: %v", err)
	}
	if err := gate.ValidateToken(token + "x"); err == nil {
		t.Error("expected tampered token to be rejected")
	}

	// Tokens from a gate with a different signing key are invalid.
	other, _ := NewGate("hunter2", "other-secret")
	otherToken, _ := other.IssueToken()
	if err := gate.ValidateToken(otherToken); err == nil {
		t.Error("expected foreign token to be rejected")
	}
}

func TestAuthorize(t *testing.T) {
	gate, err := NewGate("hunter2", testSessionSecret)
	if err != nil {
		t.Fatalf("NewGate: %v", err)
	}

	token, _ := gate.IssueToken()

	if err := gate.Authorize("", token); err != nil {
		t.Errorf("valid token without password rejected: %v", err)
	}
	if err := gate.Authorize("hunter2", ""); err != nil {
		t.Errorf("valid password without token rejected: %v", err)
	}
	if err := gate.Authorize("wrong", "bad-token"); !errors.Is(err, ErrBadSecret) {
		t.Errorf("expected ErrBadSecret, got %v", err)
	}
	if err := gate.Authorize("", ""); !errors.Is(err, ErrBadSecret) {
		t.Errorf("expected ErrBadSecret with nothing submitted, got %v", err)
	}
}
