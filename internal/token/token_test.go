package token_test

import (
	"errors"
	"testing"
	"time"

	appErrors "github.com/unclebandit/mailflow-backend/internal/errors"
	"github.com/unclebandit/mailflow-backend/internal/token"
)

func newManager() *token.Manager {
	return token.NewManager("test-secret", "mailflow", time.Hour, time.Hour)
}

func TestGenerateValidateRoundTrip(t *testing.T) {
	m := newManager()

	signed, err := m.Generate(7, "alice@example.com", "user", token.PurposeSession)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	claims, err := m.Validate(signed, token.PurposeSession)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if claims.UserID != 7 || claims.Email != "alice@example.com" || claims.Role != "user" {
		t.Errorf("unexpected claims: %+v", claims)
	}
}

func TestValidateRejectsPurposeMismatch(t *testing.T) {
	m := newManager()

	signed, err := m.Generate(7, "alice@example.com", "user", token.PurposeActivation)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if _, err := m.Validate(signed, token.PurposeSession); !errors.Is(err, appErrors.ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for purpose mismatch, got %v", err)
	}
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	m := newManager()
	other := token.NewManager("other-secret", "mailflow", time.Hour, time.Hour)

	signed, err := other.Generate(7, "alice@example.com", "user", token.PurposeSession)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if _, err := m.Validate(signed, token.PurposeSession); !errors.Is(err, appErrors.ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for foreign signature, got %v", err)
	}
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	m := token.NewManager("test-secret", "mailflow", -time.Minute, -time.Minute)

	signed, err := m.Generate(7, "alice@example.com", "user", token.PurposeSession)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if _, err := m.Validate(signed, token.PurposeSession); !errors.Is(err, appErrors.ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestValidateRejectsGarbage(t *testing.T) {
	m := newManager()

	if _, err := m.Validate("not-a-token", token.PurposeSession); !errors.Is(err, appErrors.ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}
