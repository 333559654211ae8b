package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestIssueAndValidate(t *testing.T) {
	secret := []byte("secret")
	token, err := IssueToken(secret, "100", time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	userID, err := ValidateToken(secret, token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if userID != "100" {
		t.Fatalf("unexpected user id: %s", userID)
	}
}

func TestValidate_Rejects(t *testing.T) {
	secret := []byte("secret")

	wrongKey, _ := IssueToken([]byte("other"), "100", time.Minute)
	if _, err := ValidateToken(secret, wrongKey); err == nil {
		t.Fatalf("expected error for a token signed with another key")
	}

	expired, _ := IssueToken(secret, "100", -time.Minute)
	if _, err := ValidateToken(secret, expired); err == nil {
		t.Fatalf("expected error for an expired token")
	}

	noUser, _ := IssueToken(secret, "", time.Minute)
	if _, err := ValidateToken(secret, noUser); err == nil {
		t.Fatalf("expected error for a token without a user")
	}

	none := jwt.NewWithClaims(jwt.SigningMethodNone, JWTClaims{UserID: "100"})
	unsigned, _ := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if _, err := ValidateToken(secret, unsigned); err == nil {
		t.Fatalf("expected error for an unsigned token")
	}

	if _, err := ValidateToken(secret, "garbage"); err == nil {
		t.Fatalf("expected error for garbage")
	}
}
