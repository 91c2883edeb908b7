package jwtauth

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestVerifier_RoundTrip(t *testing.T) {
	v := NewVerifier(Options{Secret: "s3cret", Issuer: "patient-adherence"})

	tok, err := v.Sign("user-1", "a@b.c", time.Hour)
	if err != nil {
		t.Fatalf("Sign error: %v", err)
	}

	claims, err := v.Verify(context.Background(), tok)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if claims.UserID != "user-1" || claims.Email != "a@b.c" {
		t.Fatalf("unexpected claims: %#v", claims)
	}
}

func TestVerifier_RejectsExpiredAndForeignTokens(t *testing.T) {
	v := NewVerifier(Options{Secret: "s3cret"})
	base := time.Date(2025, 7, 9, 12, 0, 0, 0, time.UTC)
	v.now = func() time.Time { return base }

	tok, err := v.Sign("user-1", "", time.Minute)
	if err != nil {
		t.Fatalf("Sign error: %v", err)
	}

	v.now = func() time.Time { return base.Add(2 * time.Minute) }
	if _, err := v.Verify(context.Background(), tok); err == nil {
		t.Fatalf("expected expired token to fail")
	}

	other := NewVerifier(Options{Secret: "other"})
	other.now = func() time.Time { return base }
	foreign, _ := other.Sign("user-1", "", time.Hour)
	v.now = func() time.Time { return base }
	if _, err := v.Verify(context.Background(), foreign); err == nil {
		t.Fatalf("expected token signed with another secret to fail")
	}
}

func TestVerifier_NotConfigured(t *testing.T) {
	v := NewVerifier(Options{})
	if _, err := v.Verify(context.Background(), "x"); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
	v = NewVerifier(Options{Secret: "s"})
	if _, err := v.Verify(context.Background(), "  "); !errors.Is(err, ErrTokenEmpty) {
		t.Fatalf("expected ErrTokenEmpty, got %v", err)
	}
}
