package auth

import "testing"

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("Passw0rd123")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "Passw0rd123" {
		t.Fatal("password must never be stored in plaintext")
	}

	if !CheckPassword(hash, "Passw0rd123") {
		t.Error("correct password should verify")
	}
	if CheckPassword(hash, "wrong-password") {
		t.Error("wrong password should not verify")
	}
}
