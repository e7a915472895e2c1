package util

import (
	"regexp"
	"testing"
)

var certIDPattern = regexp.MustCompile(`^CERT-\d{13,}-[0-9A-Z]{9}$`)

func TestGenerateCertificateID(t *testing.T) {
	id := GenerateCertificateID()
	if !certIDPattern.MatchString(id) {
		t.Errorf("certificate id %q does not match expected format", id)
	}
}

func TestGenerateCertificateID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := GenerateCertificateID()
		if seen[id] {
			t.Fatalf("duplicate certificate id %q", id)
		}
		seen[id] = true
	}
}

func TestGenerateVerificationCode(t *testing.T) {
	code := GenerateVerificationCode()
	if len(code) != 12 {
		t.Errorf("expected 12 characters, got %d", len(code))
	}
	for _, r := range code {
		if !(r >= '0' && r <= '9' || r >= 'A' && r <= 'Z') {
			t.Errorf("unexpected character %q in code %q", r, code)
		}
	}
}
