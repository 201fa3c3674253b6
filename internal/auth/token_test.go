package auth

import (
	"testing"
	"time"
)

func TestIssueAndParse(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Minute)

	signed, err := issuer.Issue("a@example.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	email, err := issuer.Parse(signed)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if email != "a@example.com" {
		t.Fatalf("got subject %q, want a@example.com", email)
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	signed, err := NewTokenIssuer("secret", time.Minute).Issue("a@example.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := NewTokenIssuer("other", time.Minute).Parse(signed); err == nil {
		t.Fatal("token signed with a different secret was accepted")
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	issuer := &TokenIssuer{secret: []byte("secret"), ttl: time.Millisecond}

	signed, err := issuer.Issue("a@example.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	time.Sleep(50 * time.Millisecond)
	if _, err := issuer.Parse(signed); err == nil {
		t.Fatal("expired token was accepted")
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Minute)
	for _, tok := range []string{"", "abc", "a.b.c"} {
		if _, err := issuer.Parse(tok); err == nil {
			t.Errorf("garbage token %q was accepted", tok)
		}
	}
}

func TestZeroTTLFallsBackToDefault(t *testing.T) {
	issuer := NewTokenIssuer("secret", 0)
	if issuer.ttl != DefaultTokenTTL {
		t.Fatalf("got ttl %v, want %v", issuer.ttl, DefaultTokenTTL)
	}
}
