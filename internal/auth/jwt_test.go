package auth

import "testing"

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("secret", "owner-1", "dave")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := ValidateToken("secret", token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.OwnerID != "owner-1" || claims.Username != "dave" {
		t.Errorf("claims: %+v", claims)
	}
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, err := GenerateToken("secret", "owner-1", "dave")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := ValidateToken("other-secret", token); err == nil {
		t.Fatal("token validated with the wrong secret")
	}
}

func TestValidateToken_Garbage(t *testing.T) {
	if _, err := ValidateToken("secret", "not-a-token"); err == nil {
		t.Fatal("garbage token validated")
	}
}
