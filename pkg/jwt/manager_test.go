package jwt

import (
	"errors"
	"testing"
	"time"
)

func TestGenerateAndVerifyToken(t *testing.T) {
	manager := NewManager("test-secret", time.Hour)

	token, err := manager.GenerateToken(42, "회원42", 2)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	claims, err := manager.VerifyToken(token)
	if err != nil {
		t.Fatalf("failed to verify token: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("expected userID 42, got %d", claims.UserID)
	}
	if claims.Nickname != "회원42" {
		t.Errorf("expected nickname 회원42, got %s", claims.Nickname)
	}
}

func TestVerifyToken_Expired(t *testing.T) {
	manager := NewManager("test-secret", -time.Minute)

	token, err := manager.GenerateToken(1, "회원1", 2)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	_, err = manager.VerifyToken(token)
	if !errors.Is(err, ErrExpiredToken) {
		t.Errorf("expected ErrExpiredToken, got %v", err)
	}
}

func TestVerifyToken_WrongSecret(t *testing.T) {
	token, err := NewManager("secret-a", time.Hour).GenerateToken(1, "회원1", 2)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	_, err = NewManager("secret-b", time.Hour).VerifyToken(token)
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyToken_Garbage(t *testing.T) {
	manager := NewManager("test-secret", time.Hour)
	if _, err := manager.VerifyToken("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}
