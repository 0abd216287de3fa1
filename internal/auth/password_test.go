package auth

import "testing"

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("gkk99admin2024")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "gkk99admin2024" {
		t.Fatal("hash must not equal the plaintext")
	}

	if !VerifyPassword("gkk99admin2024", hash) {
		t.Error("correct password rejected")
	}
	if VerifyPassword("wrong", hash) {
		t.Error("wrong password accepted")
	}
	if VerifyPassword("gkk99admin2024", "") {
		t.Error("empty hash accepted")
	}
}

func TestHashPassword_Empty(t *testing.T) {
	if _, err := HashPassword(""); err == nil {
		t.Fatal("expected error for empty password")
	}
}
