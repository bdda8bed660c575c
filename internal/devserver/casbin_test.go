package devserver

import "testing"

func TestAuthorizerPolicy(t *testing.T) {
	az, err := NewAuthorizer()
	if err != nil {
		t.Fatalf("NewAuthorizer: %v", err)
	}

	tests := []struct {
		name    string
		sub     string
		obj     string
		act     string
		allowed bool
	}{
		{"user reads own profile", "role_USER", "/users/profile", "GET", true},
		{"user books a visit", "role_USER", "/property/:id/book", "POST", true},
		{"user toggles shortlist", "role_USER", "/property/:id/toggle-shortlist", "POST", true},
		{"user denied admin properties", "role_USER", "/admin/properties", "POST", false},
		{"user denied admin bookings", "role_USER", "/admin/bookings", "GET", false},
		{"admin manages properties", "role_ADMIN", "/admin/properties/:id", "DELETE", true},
		{"admin lists bookings", "role_ADMIN", "/admin/bookings", "GET", true},
		{"admin inherits user surface", "role_ADMIN", "/users/profile", "GET", true},
		{"admin inherits booking", "role_ADMIN", "/property/:id/book", "POST", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			allowed, err := az.Allowed(tt.sub, tt.obj, tt.act)
			if err != nil {
				t.Fatalf("Allowed: %v", err)
			}
			if allowed != tt.allowed {
				t.Errorf("Allowed(%s, %s, %s) = %v, want %v", tt.sub, tt.obj, tt.act, allowed, tt.allowed)
			}
		})
	}
}
