package auth

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cretpass")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "s3cretpass" {
		t.Fatal("hash must differ from the plaintext")
	}

	if !CheckPassword(hash, "s3cretpass") {
		t.Fatal("correct password rejected")
	}
	if CheckPassword(hash, "wrongpass") {
		t.Fatal("wrong password accepted")
	}
}
