package security_test

import (
	"errors"
	"testing"

	"github.com/lojaweb/catalog/internal/security"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := security.HashPasswordCost("s3nha", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	if hash == "s3nha" {
		t.Fatalf("hash must not equal the plain password")
	}

	if err := security.CheckPassword(hash, "s3nha"); err != nil {
		t.Fatalf("expected match, got %v", err)
	}

	if err := security.CheckPassword(hash, "wrong"); !errors.Is(err, security.ErrPasswordMismatch) {
		t.Fatalf("got %v, want ErrPasswordMismatch", err)
	}
}

func TestCheckPassword_CorruptHash(t *testing.T) {
	err := security.CheckPassword("not-a-bcrypt-hash", "x")

	if err == nil || errors.Is(err, security.ErrPasswordMismatch) {
		t.Fatalf("expected a hash format error, got %v", err)
	}
}
