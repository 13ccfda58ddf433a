package util

import (
	"testing"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	m := NewTokenManager("secret", 1, 7)

	token, err := m.IssueAccess(42, "shop", "ADMIN")
	if err != nil {
		t.Fatalf("IssueAccess error: %v", err)
	}

	claims, err := m.Verify(token)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if claims.UserID != 42 || claims.Username != "shop" || claims.Role != "ADMIN" {
		t.Fatalf("claims mismatch: %+v", claims)
	}
}

func TestTokenManager_TokenTypes(t *testing.T) {
	m := NewTokenManager("secret", 1, 7)

	access, err := m.IssueAccess(1, "u", "USER")
	if err != nil {
		t.Fatalf("IssueAccess error: %v", err)
	}
	refresh, err := m.IssueRefresh(1, "u", "USER")
	if err != nil {
		t.Fatalf("IssueRefresh error: %v", err)
	}

	claims, err := m.Verify(access)
	if err != nil {
		t.Fatalf("Verify access error: %v", err)
	}
	if claims.TokenType != TokenTypeAccess {
		t.Fatalf("access token typ = %q", claims.TokenType)
	}

	claims, err = m.Verify(refresh)
	if err != nil {
		t.Fatalf("Verify refresh error: %v", err)
	}
	if claims.TokenType != TokenTypeRefresh {
		t.Fatalf("refresh token typ = %q", claims.TokenType)
	}
}

func TestTokenManager_WrongSecret(t *testing.T) {
	token, err := NewTokenManager("secret-a", 1, 7).IssueAccess(1, "u", "USER")
	if err != nil {
		t.Fatalf("IssueAccess error: %v", err)
	}

	if _, err := NewTokenManager("secret-b", 1, 7).Verify(token); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenManager_Garbage(t *testing.T) {
	m := NewTokenManager("secret", 1, 7)
	if _, err := m.Verify("not.a.token"); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
	if _, err := m.Verify(""); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestPassword_HashAndCheck(t *testing.T) {
	hash, err := HashPassword("correct horse")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if hash == "correct horse" {
		t.Fatal("hash must not equal the plaintext")
	}
	if !CheckPassword(hash, "correct horse") {
		t.Fatal("expected matching password to verify")
	}
	if CheckPassword(hash, "battery staple") {
		t.Fatal("expected mismatched password to fail")
	}
}
