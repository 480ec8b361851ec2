package services

import (
	"testing"

	"github.com/soulcompass/soulcoach-backend/internal/types"
)

func TestMatchesUserSearch(t *testing.T) {
	u := &types.User{Email: "rivka@example.com", FullName: "רבקה לוי"}

	if !matchesUserSearch(u, "rivka") {
		t.Fatalf("expected email match")
	}
	if !matchesUserSearch(u, "רבקה") {
		t.Fatalf("expected name match")
	}
	if matchesUserSearch(u, "david") {
		t.Fatalf("expected no match")
	}
}
