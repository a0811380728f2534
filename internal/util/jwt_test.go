package util

import (
	"code_quest_backend/internal/model"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestJWTRoundTrip(t *testing.T) {
	user := &model.User{Role: model.RoleAdmin}
	user.ID = 42

	token, err := GenerateJWT(user, "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	claims, err := ParseJWT(token, "test-secret")
	if err != nil {
		t.Fatalf("ParseJWT: %v", err)
	}
	if claims.UserID != 42 {
		t.Fatalf("userID = %d, want 42", claims.UserID)
	}
	if claims.Role != model.RoleAdmin {
		t.Fatalf("role = %s, want ADMIN", claims.Role)
	}
	if claims.Subject != "42" {
		t.Fatalf("subject = %q, want \"42\"", claims.Subject)
	}
}

func TestParseJWTWrongSecret(t *testing.T) {
	user := &model.User{Role: model.RoleUser}
	user.ID = 1

	token, err := GenerateJWT(user, "right-secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	if _, err := ParseJWT(token, "wrong-secret"); err == nil {
		t.Fatalf("expected signature verification failure")
	}
}

func TestParseJWTExpired(t *testing.T) {
	user := &model.User{Role: model.RoleUser}
	user.ID = 1

	token, err := GenerateJWT(user, "test-secret", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	if _, err := ParseJWT(token, "test-secret"); err == nil {
		t.Fatalf("expected expired token to be rejected")
	}
}

func TestParseJWTUnsignedToken(t *testing.T) {
	claims := &Claims{UserID: 7, Role: model.RoleUser}
	token := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	unsigned, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign with none: %v", err)
	}

	parsed, err := ParseJWT(unsigned, "test-secret")
	if err == nil {
		t.Fatalf("expected unsigned token to be rejected")
	}
	if parsed != nil {
		t.Fatalf("claims must be nil when parsing fails")
	}
}
