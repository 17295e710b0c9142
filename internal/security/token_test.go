package security

import (
	"testing"
	"time"
)

func TestTokenIssueAndParse(t *testing.T) {
	ti := NewTokenIssuer("test-secret", 30*time.Minute)

	signed, err := ti.Issue(42, "Maria", 7)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	id, claims, err := ti.Parse(signed)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if id != 42 {
		t.Errorf("apprentice ID = %d, want 42", id)
	}
	if claims.Name != "Maria" {
		t.Errorf("name = %q, want Maria", claims.Name)
	}
	if claims.TutorID != 7 {
		t.Errorf("tutor ID = %d, want 7", claims.TutorID)
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl < 29*time.Minute || ttl > 31*time.Minute {
		t.Errorf("expiry %v from now, want ~30m", ttl)
	}
}

func TestTokenParseRejectsExpired(t *testing.T) {
	ti := NewTokenIssuer("test-secret", -time.Minute)

	signed, err := ti.Issue(1, "Ana", 2)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, _, err := ti.Parse(signed); err == nil {
		t.Error("expected error parsing expired token")
	}
}

func TestTokenParseRejectsWrongSecret(t *testing.T) {
	ti := NewTokenIssuer("secret-a", 30*time.Minute)
	other := NewTokenIssuer("secret-b", 30*time.Minute)

	signed, err := ti.Issue(1, "Ana", 2)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, _, err := other.Parse(signed); err == nil {
		t.Error("expected error parsing token with wrong secret")
	}
}

func TestTokenParseRejectsGarbage(t *testing.T) {
	ti := NewTokenIssuer("test-secret", 30*time.Minute)
	if _, _, err := ti.Parse("not.a.token"); err == nil {
		t.Error("expected error parsing garbage token")
	}
}

func TestCSRFGenerator(t *testing.T) {
	g := NewCSRFGenerator("csrf-secret")

	token, err := g.GenerateToken("session-1")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if !g.ValidateToken("session-1", token) {
		t.Error("token should validate for its own session")
	}
	if g.ValidateToken("session-2", token) {
		t.Error("token should not validate for another session")
	}
	if g.ValidateToken("session-1", "bogus") {
		t.Error("bogus token should not validate")
	}
	if g.ValidateToken("", token) {
		t.Error("empty session should not validate")
	}
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(3, time.Hour)

	for i := 0; i < 3; i++ {
		if !rl.Allow("1.2.3.4") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if rl.Allow("1.2.3.4") {
		t.Error("fourth request in window should be denied")
	}
	if !rl.Allow("5.6.7.8") {
		t.Error("different client should have its own bucket")
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pin")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !CheckPassword(hash, "s3cret-pin") {
		t.Error("correct password should verify")
	}
	if CheckPassword(hash, "wrong") {
		t.Error("wrong password should not verify")
	}
}
