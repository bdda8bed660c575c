package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/you/estately/domain"
)

func TestClaimsInspector_RoleOf(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", "estately-test", time.Hour)
	inspector := NewClaimsInspector()

	tests := []struct {
		name     string
		role     domain.Role
		expected domain.Role
	}{
		{name: "admin authorities yield ADMIN", role: domain.RoleAdmin, expected: domain.RoleAdmin},
		{name: "user authorities yield USER", role: domain.RoleUser, expected: domain.RoleUser},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := issuer.Issue("9876543210", tt.role)
			if err != nil {
				t.Fatalf("issue token: %v", err)
			}

			role, err := inspector.RoleOf(token)
			if err != nil {
				t.Fatalf("decode role: %v", err)
			}
			if role != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, role)
			}
		})
	}

	t.Run("malformed token", func(t *testing.T) {
		_, err := inspector.RoleOf("not-a-jwt")
		if !errors.Is(err, domain.ErrTokenMalformed) {
			t.Fatalf("expected ErrTokenMalformed, got %v", err)
		}
	})

	t.Run("token without authorities claim defaults to USER", func(t *testing.T) {
		// Three base64url segments, payload {} only.
		role, err := inspector.RoleOf("eyJhbGciOiJIUzI1NiJ9.e30.c2ln")
		if err != nil {
			t.Fatalf("decode role: %v", err)
		}
		if role != domain.RoleUser {
			t.Errorf("expected USER fallback, got %s", role)
		}
	})
}

func TestTokenIssuer_Validate(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", "estately-test", time.Hour)

	token, err := issuer.Issue("9876543210", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := issuer.Validate(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.ContactNo != "9876543210" {
		t.Errorf("expected subject 9876543210, got %s", claims.ContactNo)
	}
	if claims.Role != domain.RoleAdmin {
		t.Errorf("expected ADMIN, got %s", claims.Role)
	}

	t.Run("wrong secret rejected", func(t *testing.T) {
		other := NewTokenIssuer("other-secret", "estately-test", time.Hour)
		if _, err := other.Validate(token); !errors.Is(err, domain.ErrAuthFailed) {
			t.Fatalf("expected ErrAuthFailed, got %v", err)
		}
	})

	t.Run("expired token rejected", func(t *testing.T) {
		expired := NewTokenIssuer("test-secret", "estately-test", -time.Minute)
		tok, err := expired.Issue("9876543210", domain.RoleUser)
		if err != nil {
			t.Fatalf("issue: %v", err)
		}
		if _, err := issuer.Validate(tok); !errors.Is(err, domain.ErrAuthFailed) {
			t.Fatalf("expected ErrAuthFailed, got %v", err)
		}
	})
}
