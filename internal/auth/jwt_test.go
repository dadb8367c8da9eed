package auth

import (
	"testing"
	"time"
)

func TestGenerateAndValidateAccessToken(t *testing.T) {
	mgr := NewJWTManager("test-secret-key-123", 0, 0)
	token, err := mgr.GenerateAccessToken("op-42")
	if err != nil {
		t.Fatalf("generate access token: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	claims, err := mgr.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate token: %v", err)
	}
	if claims.OperatorID != "op-42" {
		t.Errorf("expected operator_id=op-42, got %s", claims.OperatorID)
	}
	if claims.Subject != "op-42" {
		t.Errorf("expected subject=op-42, got %s", claims.Subject)
	}
	if claims.Issuer != tokenIssuer {
		t.Errorf("expected issuer=%s, got %s", tokenIssuer, claims.Issuer)
	}
}

func TestGenerateAndValidateRefreshToken(t *testing.T) {
	mgr := NewJWTManager("test-secret-key-123", 0, 0)
	token, err := mgr.GenerateRefreshToken("op-99")
	if err != nil {
		t.Fatalf("generate refresh token: %v", err)
	}

	claims, err := mgr.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate token: %v", err)
	}
	if claims.OperatorID != "op-99" {
		t.Errorf("expected operator_id=op-99, got %s", claims.OperatorID)
	}
}

func TestGenerateTokenPair(t *testing.T) {
	mgr := NewJWTManager("test-secret-key-123", 0, 0)
	pair, err := mgr.GenerateTokenPair("op-7")
	if err != nil {
		t.Fatalf("generate token pair: %v", err)
	}
	if pair.AccessToken == "" {
		t.Error("expected non-empty access token")
	}
	if pair.RefreshToken == "" {
		t.Error("expected non-empty refresh token")
	}
	if pair.AccessToken == pair.RefreshToken {
		t.Error("access and refresh tokens should be different")
	}
	if pair.ExpiresIn != 900 {
		t.Errorf("expected expires_in=900, got %d", pair.ExpiresIn)
	}
}

func TestTokenLifetimesFromConfig(t *testing.T) {
	mgr := NewJWTManager("test-secret", 30*time.Minute, 48*time.Hour)
	pair, err := mgr.GenerateTokenPair("op-1")
	if err != nil {
		t.Fatalf("generate token pair: %v", err)
	}
	if pair.ExpiresIn != 1800 {
		t.Errorf("expected expires_in=1800, got %d", pair.ExpiresIn)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	mgr1 := NewJWTManager("secret-one", 0, 0)
	mgr2 := NewJWTManager("secret-two", 0, 0)

	token, err := mgr1.GenerateAccessToken("op-1")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	_, err = mgr2.ValidateToken(token)
	if err == nil {
		t.Error("expected validation to fail with wrong secret")
	}
}

func TestValidateTokenGarbage(t *testing.T) {
	mgr := NewJWTManager("test-secret", 0, 0)
	_, err := mgr.ValidateToken("not-a-jwt")
	if err == nil {
		t.Error("expected error for garbage token")
	}
	_, err = mgr.ValidateToken("")
	if err == nil {
		t.Error("expected error for empty token")
	}
}

func TestExpiredToken(t *testing.T) {
	mgr := &JWTManager{
		secret:        []byte("test-secret"),
		accessExpiry:  -1 * time.Second,
		refreshExpiry: 7 * 24 * time.Hour,
	}
	token, err := mgr.GenerateAccessToken("op-1")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	_, err = mgr.ValidateToken(token)
	if err == nil {
		t.Error("expected error for expired token")
	}
}

func TestDifferentOperatorsGetDifferentTokens(t *testing.T) {
	mgr := NewJWTManager("test-secret", 0, 0)
	t1, _ := mgr.GenerateAccessToken("op-alice")
	t2, _ := mgr.GenerateAccessToken("op-bob")
	if t1 == t2 {
		t.Error("different operators should get different tokens")
	}
}
