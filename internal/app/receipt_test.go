package app

import (
	"fmt"
	"testing"
	"time"

	"github.com/form3tech-oss/jwt-go"
	"github.com/google/uuid"
)

func TestResultSignerRoundTrip(t *testing.T) {
	signer := NewResultSigner("test-secret")
	result := RoundResult{Won: true, Round: 3, TotalScore: 1450, TotalCoins: 42}

	tokenString, err := signer.Sign("user123", result)
	if err != nil {
		t.Fatalf("sign error: %v", err)
	}

	claims := parseReceiptClaims(t, tokenString, "test-secret")
	if got := claims["sub"]; got != "user123" {
		t.Fatalf("sub = %v, want user123", got)
	}
	if got := claims["iss"]; got != ReceiptIssuer {
		t.Fatalf("iss = %v, want %s", got, ReceiptIssuer)
	}
	jti, _ := claims["jti"].(string)
	if _, err := uuid.Parse(jti); err != nil {
		t.Fatalf("jti %q is not a uuid: %v", jti, err)
	}

	receipt, err := signer.Verify(tokenString)
	if err != nil {
		t.Fatalf("verify error: %v", err)
	}
	if receipt.UserID != "user123" || receipt.Round != 3 || !receipt.Won {
		t.Fatalf("unexpected receipt %+v", receipt)
	}
	if receipt.TotalScore != 1450 || receipt.TotalCoins != 42 {
		t.Fatalf("totals = %d/%d, want 1450/42", receipt.TotalScore, receipt.TotalCoins)
	}
	if receipt.ID != jti {
		t.Fatalf("id = %s, want %s", receipt.ID, jti)
	}
}

func TestResultSignerRejectsForeignSecret(t *testing.T) {
	tokenString, err := NewResultSigner("one").Sign("user", RoundResult{Round: 1})
	if err != nil {
		t.Fatalf("sign error: %v", err)
	}
	if _, err := NewResultSigner("two").Verify(tokenString); err == nil {
		t.Fatal("expected error for token signed with another secret")
	}
}

func TestResultSignerRejectsExpiredToken(t *testing.T) {
	signer := NewResultSigner("secret")
	signer.now = func() time.Time { return time.Now().Add(-48 * time.Hour) }

	tokenString, err := signer.Sign("user", RoundResult{Round: 1})
	if err != nil {
		t.Fatalf("sign error: %v", err)
	}
	if _, err := NewResultSigner("secret").Verify(tokenString); err == nil {
		t.Fatal("expected error for expired token")
	}
}

func TestResultSignerRequiresConfig(t *testing.T) {
	if _, err := NewResultSigner("").Sign("user", RoundResult{}); err == nil {
		t.Fatal("expected error for missing secret")
	}
	if _, err := NewResultSigner("secret").Sign("", RoundResult{}); err == nil {
		t.Fatal("expected error for missing user")
	}
}

func parseReceiptClaims(t *testing.T, tokenString, secret string) jwt.MapClaims {
	t.Helper()

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		t.Fatalf("parse token error: %v", err)
	}
	if !token.Valid {
		t.Fatal("token is invalid")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatal("claims are not map claims")
	}
	return claims
}
