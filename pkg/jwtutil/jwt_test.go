package jwtutil

import (
	"testing"

	"vendor-service/pkg/config"
)

func TestTokenRoundTrip(t *testing.T) {
	Initialize(&config.JWTConfig{
		SigningKey:      "test-signing-key",
		ExpirationHours: 1,
	})

	token, err := GenerateToken("buyer@example.com", 42)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}

	if claims.Email != "buyer@example.com" {
		t.Errorf("Email mismatch: got %s, want buyer@example.com", claims.Email)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID mismatch: got %d, want 42", claims.UserID)
	}
}

func TestValidateRejectsGarbage(t *testing.T) {
	Initialize(&config.JWTConfig{
		SigningKey:      "test-signing-key",
		ExpirationHours: 1,
	})

	if _, err := ValidateToken("not-a-token"); err == nil {
		t.Error("expected error for malformed token, got nil")
	}
}

func TestValidateRejectsWrongKey(t *testing.T) {
	Initialize(&config.JWTConfig{
		SigningKey:      "key-one",
		ExpirationHours: 1,
	})
	token, err := GenerateToken("buyer@example.com", 7)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	Initialize(&config.JWTConfig{
		SigningKey:      "key-two",
		ExpirationHours: 1,
	})
	if _, err := ValidateToken(token); err == nil {
		t.Error("expected error for token signed with a different key, got nil")
	}
}
