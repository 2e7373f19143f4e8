package security

import (
	"testing"
	"time"
)

func TestJWTSigner_IssueAndVerify(t *testing.T) {
	signer := NewJWTSigner("unit-test-secret", time.Hour)

	token, err := signer.Issue(42, "alice", "alice@x.com")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	claims, err := signer.Verify(token)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if claims.UserID != 42 || claims.Username != "alice" || claims.Email != "alice@x.com" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestJWTSigner_RejectsWrongKey(t *testing.T) {
	signer := NewJWTSigner("key-one", time.Hour)
	other := NewJWTSigner("key-two", time.Hour)

	token, err := signer.Issue(1, "alice", "alice@x.com")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if _, err := other.Verify(token); err == nil {
		t.Fatal("token verified under a different key")
	}
}

func TestJWTSigner_RejectsExpiredToken(t *testing.T) {
	signer := NewJWTSigner("unit-test-secret", -time.Minute)
	// A non-positive ttl falls back to the default, so build the expiry by
	// hand through a signer whose clock already passed.
	short := &JWTSigner{secret: []byte("unit-test-secret"), ttl: time.Millisecond}

	token, err := short.Issue(1, "alice", "alice@x.com")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	if _, err := signer.Verify(token); err == nil {
		t.Fatal("expired token verified")
	}
}

func TestJWTSigner_RejectsGarbage(t *testing.T) {
	signer := NewJWTSigner("unit-test-secret", time.Hour)

	for _, token := range []string{"", "not.a.jwt", "aaaa.bbbb.cccc"} {
		if _, err := signer.Verify(token); err == nil {
			t.Fatalf("garbage token %q verified", token)
		}
	}
}
