package security

import (
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
)

func TestGenerateAndParseToken(t *testing.T) {
	t.Parallel()

	token, expiresAt, errGen := GenerateToken("secret", 42, "ada", time.Hour)
	if errGen != nil {
		t.Fatalf("generate: %v", errGen)
	}
	if time.Until(expiresAt) <= 0 {
		t.Fatalf("expiry %s is not in the future", expiresAt)
	}

	claims, errParse := ParseToken("secret", token)
	if errParse != nil {
		t.Fatalf("parse: %v", errParse)
	}
	if claims.UserID != 42 || claims.Username != "ada" {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	if _, errWrong := ParseToken("other", token); !errors.Is(errWrong, ErrInvalidToken) {
		t.Fatalf("wrong secret error = %v, want ErrInvalidToken", errWrong)
	}
}

func TestParseTokenExpired(t *testing.T) {
	t.Parallel()

	token, _, errGen := GenerateToken("secret", 1, "ada", -time.Minute)
	if errGen != nil {
		t.Fatalf("generate: %v", errGen)
	}
	if _, errParse := ParseToken("secret", token); !errors.Is(errParse, ErrExpiredToken) {
		t.Fatalf("error = %v, want ErrExpiredToken", errParse)
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	prev := SetBcryptCost(bcrypt.MinCost)
	t.Cleanup(func() { SetBcryptCost(prev) })

	hash, errHash := HashPassword("hunter2")
	if errHash != nil {
		t.Fatalf("hash: %v", errHash)
	}
	if !CheckPassword(hash, "hunter2") {
		t.Fatalf("expected password to match")
	}
	if CheckPassword(hash, "hunter3") {
		t.Fatalf("expected mismatch")
	}
}
