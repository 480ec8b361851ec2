package normalization

import "testing"

func TestParseEmail(t *testing.T) {
	if got := ParseEmail("  User@Example.COM "); got != "user@example.com" {
		t.Fatalf("unexpected: %q", got)
	}
}

func TestParseInputString_PreservesCase(t *testing.T) {
	if got := ParseInputString("  דרך הלב  "); got != "דרך הלב" {
		t.Fatalf("unexpected: %q", got)
	}
	if got := ParseInputString(" MixedCase "); got != "MixedCase" {
		t.Fatalf("case must be preserved, got %q", got)
	}
}
