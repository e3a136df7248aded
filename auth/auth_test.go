// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("secret1", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	if hash == "secret1" {
		t.Fatal("HashPassword() returned the plaintext")
	}
	if !CheckPassword(hash, "secret1") {
		t.Error("CheckPassword() = false for correct password")
	}
	if CheckPassword(hash, "secret2") {
		t.Error("CheckPassword() = true for wrong password")
	}
	if CheckPassword("not-a-bcrypt-hash", "secret1") {
		t.Error("CheckPassword() = true for unhashable stored value")
	}
}

func TestGenerateOTP(t *testing.T) {
	tests := []struct {
		name   string
		length int
	}{
		{"6 digits", 6},
		{"4 digits", 4},
		{"8 digits", 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, err := GenerateOTP(tt.length)
			if err != nil {
				t.Fatalf("GenerateOTP() error = %v", err)
			}
			if len(code) != tt.length {
				t.Errorf("GenerateOTP() length = %d, want %d", len(code), tt.length)
			}
			for _, c := range code {
				if c < '0' || c > '9' {
					t.Errorf("GenerateOTP() contains non-digit: %c", c)
				}
			}
		})
	}

	// Two codes should (almost certainly) differ
	a, _ := GenerateOTP(6)
	b, _ := GenerateOTP(6)
	c, _ := GenerateOTP(6)
	if a == b && b == c {
		t.Error("GenerateOTP() produced three identical codes (extremely unlikely)")
	}
}

func TestHashOTP(t *testing.T) {
	h1 := HashOTP("482913", "secret-a")
	h2 := HashOTP("482913", "secret-a")
	h3 := HashOTP("482913", "secret-b")
	h4 := HashOTP("482914", "secret-a")

	if h1 != h2 {
		t.Error("HashOTP() not deterministic for same code and secret")
	}
	if h1 == h3 {
		t.Error("HashOTP() identical across different secrets")
	}
	if h1 == h4 {
		t.Error("HashOTP() identical across different codes")
	}
	if h1 == "482913" {
		t.Error("HashOTP() leaked the plaintext code")
	}
}

func TestMaskEmail(t *testing.T) {
	tests := []struct {
		email string
		want  string
	}{
		{"alice@x.com", "a***@x.com"},
		{"b@example.com", "b***@example.com"},
		{"no-at-sign", "no-at-sign"},
		{"@leading.com", "@leading.com"},
	}

	for _, tt := range tests {
		if got := MaskEmail(tt.email); got != tt.want {
			t.Errorf("MaskEmail(%q) = %q, want %q", tt.email, got, tt.want)
		}
	}
}

func TestVoterTokenRoundTrip(t *testing.T) {
	token, err := VoterToken("voter-1", "alice@x.com", "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("VoterToken() error = %v", err)
	}

	claims, err := ParseToken(token, "test-secret")
	if err != nil {
		t.Fatalf("ParseToken() error = %v", err)
	}
	if claims.Role != "voter" {
		t.Errorf("Role = %q, want voter", claims.Role)
	}
	if claims.Subject != "voter-1" {
		t.Errorf("Subject = %q, want voter-1", claims.Subject)
	}
	if claims.Email != "alice@x.com" {
		t.Errorf("Email = %q, want alice@x.com", claims.Email)
	}
}

func TestAdminTokenRoundTrip(t *testing.T) {
	token, err := AdminToken("admin-1", "root", "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("AdminToken() error = %v", err)
	}

	claims, err := ParseToken(token, "test-secret")
	if err != nil {
		t.Fatalf("ParseToken() error = %v", err)
	}
	if claims.Role != "admin" {
		t.Errorf("Role = %q, want admin", claims.Role)
	}
	if claims.Subject != "admin-1" {
		t.Errorf("Subject = %q, want admin-1", claims.Subject)
	}
}

func TestParseTokenRejections(t *testing.T) {
	good, _ := VoterToken("voter-1", "alice@x.com", "test-secret", time.Hour)
	expired, _ := VoterToken("voter-1", "alice@x.com", "test-secret", -time.Minute)

	tests := []struct {
		name   string
		token  string
		secret string
	}{
		{"wrong secret", good, "other-secret"},
		{"expired token", expired, "test-secret"},
		{"garbage", "not.a.token", "test-secret"},
		{"empty", "", "test-secret"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseToken(tt.token, tt.secret); err == nil {
				t.Error("ParseToken() accepted an invalid token")
			}
		})
	}
}
