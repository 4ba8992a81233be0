package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/chorepoint/chorepoint/internal/models"
)

func TestNewPIN(t *testing.T) {
	t.Run("accepts 4-digit candidates", func(t *testing.T) {
		for _, candidate := range []string{"0000", "1234", "9999"} {
			pin, err := NewPIN(candidate)
			if err != nil {
				t.Fatalf("NewPIN(%q) failed: %v", candidate, err)
			}
			if pin.Hash() == "" {
				t.Errorf("NewPIN(%q): empty hash", candidate)
			}
			if pin.Hash() == candidate {
				t.Errorf("NewPIN(%q): plaintext stored as hash", candidate)
			}
		}
	})

	t.Run("rejects malformed candidates", func(t *testing.T) {
		for _, candidate := range []string{"", "123", "12345", "12a4", "12.4", "١٢٣٤"} {
			if _, err := NewPIN(candidate); !errors.Is(err, ErrInvalidPin) {
				t.Errorf("NewPIN(%q): expected ErrInvalidPin, got %v", candidate, err)
			}
		}
	})
}

func TestPINVerify(t *testing.T) {
	pin, err := NewPIN("4821")
	if err != nil {
		t.Fatalf("NewPIN failed: %v", err)
	}

	if !pin.Verify("4821") {
		t.Error("Verify rejected the correct candidate")
	}
	for _, wrong := range []string{"4822", "0000", "482", ""} {
		if pin.Verify(wrong) {
			t.Errorf("Verify accepted wrong candidate %q", wrong)
		}
	}

	// Round-tripping through the stored hash must still verify.
	rehydrated := PINFromHash(pin.Hash())
	if !rehydrated.Verify("4821") {
		t.Error("rehydrated PIN rejected the correct candidate")
	}
}

func TestJWTManager(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour)
	user := &models.User{ID: "user-1", Name: "Pat", Role: models.RoleCaregiver}

	token, err := manager.Generate(user)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	claims, err := manager.Validate(token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if claims.UserID != "user-1" {
		t.Errorf("expected user_id user-1, got %s", claims.UserID)
	}
	if claims.Role != models.RoleCaregiver {
		t.Errorf("expected caregiver role, got %s", claims.Role)
	}

	t.Run("rejects garbage tokens", func(t *testing.T) {
		if _, err := manager.Validate("not-a-token"); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("rejects tokens signed with another secret", func(t *testing.T) {
		other := NewJWTManager("other-secret", time.Hour)
		otherToken, err := other.Generate(user)
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		if _, err := manager.Validate(otherToken); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("rejects expired tokens", func(t *testing.T) {
		expired := NewJWTManager("test-secret", -time.Minute)
		expiredToken, err := expired.Generate(user)
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		if _, err := manager.Validate(expiredToken); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})
}
