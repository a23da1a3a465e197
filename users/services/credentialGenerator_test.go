package services

import (
	"strings"
	"testing"
)

func TestGeneratePasswordComposition(t *testing.T) {
	for _, length := range []int{4, 8, 10, 16, 32} {
		for i := 0; i < 50; i++ {
			password := GeneratePassword(length)
			if len(password) != length {
				t.Fatalf("GeneratePassword(%d) returned %q with length %d", length, password, len(password))
			}
			if !strings.ContainsAny(password, lowerChars) {
				t.Errorf("password %q has no lowercase letter", password)
			}
			if !strings.ContainsAny(password, upperChars) {
				t.Errorf("password %q has no uppercase letter", password)
			}
			if !strings.ContainsAny(password, digitChars) {
				t.Errorf("password %q has no digit", password)
			}
			if !strings.ContainsAny(password, specialChars) {
				t.Errorf("password %q has no special character", password)
			}
		}
	}
}

func TestGeneratePasswordClampsShortLengths(t *testing.T) {
	for _, length := range []int{-1, 0, 3} {
		if got := GeneratePassword(length); len(got) != 4 {
			t.Errorf("GeneratePassword(%d) length = %d, want 4", length, len(got))
		}
	}
}

func TestGeneratePasswordShufflesMandatoryClasses(t *testing.T) {
	// With randomized ordering the first character cannot always be lowercase.
	firstIsAlwaysLower := true
	for i := 0; i < 100; i++ {
		password := GeneratePassword(10)
		if !strings.ContainsRune(lowerChars, rune(password[0])) {
			firstIsAlwaysLower = false
			break
		}
	}
	if firstIsAlwaysLower {
		t.Error("first character was lowercase in 100 consecutive passwords; order looks positionally fixed")
	}
}

func TestHashTempPasswordDeterministic(t *testing.T) {
	if HashTempPassword("S3cret@pw") != HashTempPassword("S3cret@pw") {
		t.Error("same input produced different digests")
	}
	if HashTempPassword("S3cret@pw") == HashTempPassword("s3cret@pw") {
		t.Error("different inputs produced the same digest")
	}
	if got := len(HashTempPassword("x")); got != 64 {
		t.Errorf("digest hex length = %d, want 64", got)
	}
}

func TestGenerateUsername(t *testing.T) {
	username := GenerateUsername("Jane.Doe@Example.com")
	if !strings.HasPrefix(username, "jane.doe") {
		t.Errorf("username %q does not start with lower-cased local part", username)
	}
	if len(username) <= len("jane.doe") {
		t.Errorf("username %q carries no uniqueness suffix", username)
	}
	if strings.Contains(username, "@") {
		t.Errorf("username %q contains the email domain", username)
	}
}

func TestGenerateUsernameDistinct(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		u := GenerateUsername("ops@plant.example")
		if seen[u] {
			t.Fatalf("duplicate username generated: %q", u)
		}
		seen[u] = true
	}
}
