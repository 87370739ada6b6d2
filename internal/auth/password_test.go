package auth

import (
	"strings"
	"testing"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("HashPassword() error: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$v=19$") {
		t.Fatalf("unexpected hash format: %q", hash)
	}
	if !VerifyPassword("s3cret-pass", hash) {
		t.Fatalf("VerifyPassword() rejected correct password")
	}
	if VerifyPassword("wrong-pass", hash) {
		t.Fatalf("VerifyPassword() accepted wrong password")
	}
}

func TestHashPasswordSaltsDiffer(t *testing.T) {
	a, err := HashPassword("same")
	if err != nil {
		t.Fatalf("HashPassword() error: %v", err)
	}
	b, err := HashPassword("same")
	if err != nil {
		t.Fatalf("HashPassword() error: %v", err)
	}
	if a == b {
		t.Fatalf("expected different encodings for the same password")
	}
}

func TestVerifyPasswordMalformedEncoding(t *testing.T) {
	for _, encoded := range []string{"", "plain", "$argon2i$v=19$m=65536,t=1,p=4$abc$def", "$argon2id$v=19$m=65536$abc$def"} {
		if VerifyPassword("pw", encoded) {
			t.Fatalf("VerifyPassword() accepted malformed encoding %q", encoded)
		}
	}
}
