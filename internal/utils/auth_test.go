package utils

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestValidateEmail(t *testing.T) {
	for _, email := range []string{"a@b.co", "user.name@example.org"} {
		if err := ValidateEmail(email); err != nil {
			t.Fatalf("expected %q valid, got %v", email, err)
		}
	}
	for _, email := range []string{"", "no-at-sign", "a@b", "a b@c.com"} {
		if err := ValidateEmail(email); err == nil {
			t.Fatalf("expected %q invalid", email)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	if err := ValidatePassword("short"); err == nil {
		t.Fatalf("expected short password to be rejected")
	}
	if err := ValidatePassword("longenough"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestHashPassword_ProducesVerifiableHash(t *testing.T) {
	hash, err := HashPassword("correct horse battery")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte("correct horse battery")); err != nil {
		t.Fatalf("hash does not verify: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte("wrong")); err == nil {
		t.Fatalf("expected mismatch for wrong password")
	}
}
