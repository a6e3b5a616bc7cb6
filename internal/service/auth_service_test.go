package service

import (
	"errors"
	"testing"
	"time"
)

func TestIssueAndValidateToken(t *testing.T) {
	auth := NewAuthService("secret", time.Hour)
	token, err := auth.IssueToken("user-1", RoleAdmin)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	id, err := auth.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if id.Subject != "user-1" || !id.IsAdmin() {
		t.Fatalf("identity = %+v", id)
	}
}

func TestValidateTokenRejects(t *testing.T) {
	auth := NewAuthService("secret", time.Hour)
	other, err := NewAuthService("other", time.Hour).IssueToken("user-1", "user")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	expired, err := NewAuthService("secret", -time.Hour).IssueToken("user-1", "user")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	noSubject, err := auth.IssueToken("", "user")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	for name, token := range map[string]string{
		"malformed":    "not.a.jwt",
		"wrong secret": other,
		"expired":      expired,
		"no subject":   noSubject,
	} {
		if _, err := auth.ValidateToken(token); !errors.Is(err, ErrTokenInvalid) {
			t.Fatalf("%s: err = %v, want %v", name, err, ErrTokenInvalid)
		}
	}
}
