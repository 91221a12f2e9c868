package utils

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	signed, err := NewAccessToken("access-secret", "user-1", "ADMIN")
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	if signed.Token == "" {
		t.Fatal("expected a non-empty token")
	}
	if until := time.Until(signed.Exp); until > AccessTokenTTL || until <= 0 {
		t.Fatalf("expiry %v outside the access TTL window", until)
	}

	id, role, err := VerifyToken(signed.Token, "access-secret")
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if id != "user-1" {
		t.Errorf("user id = %q, want user-1", id)
	}
	if role != "ADMIN" {
		t.Errorf("role = %q, want ADMIN", role)
	}
}

func TestRefreshTokenCarriesNoRole(t *testing.T) {
	signed, err := NewRefreshToken("refresh-secret", "user-1")
	if err != nil {
		t.Fatalf("NewRefreshToken: %v", err)
	}
	id, role, err := VerifyToken(signed.Token, "refresh-secret")
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if id != "user-1" {
		t.Errorf("user id = %q, want user-1", id)
	}
	if role != "" {
		t.Errorf("refresh token carries role %q, want none", role)
	}
}

// Tokens of one class must never verify against another class's
// secret, otherwise a long-lived refresh token could be replayed as an
// access token.
func TestTokenClassesAreNotInterchangeable(t *testing.T) {
	access, _ := NewAccessToken("access-secret", "user-1", "USER")
	refresh, _ := NewRefreshToken("refresh-secret", "user-1")
	activation, _ := NewActivationToken("activation-secret", "user-1")

	cases := []struct {
		name   string
		token  string
		secret string
	}{
		{"refresh against access secret", refresh.Token, "access-secret"},
		{"access against refresh secret", access.Token, "refresh-secret"},
		{"activation against access secret", activation.Token, "access-secret"},
		{"access against activation secret", access.Token, "activation-secret"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, _, err := VerifyToken(tc.token, tc.secret); !errors.Is(err, ErrInvalidToken) {
				t.Fatalf("err = %v, want ErrInvalidToken", err)
			}
		})
	}
}

func TestVerifyTokenRejectsExpired(t *testing.T) {
	// A negative lifetime produces a token that is already expired.
	signed, err := newToken("access-secret", "user-1", "USER", -time.Minute)
	if err != nil {
		t.Fatalf("newToken: %v", err)
	}
	if _, _, err := VerifyToken(signed.Token, "access-secret"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("err = %v, want ErrInvalidToken", err)
	}
}

func TestVerifyTokenRejectsTampering(t *testing.T) {
	signed, _ := NewAccessToken("access-secret", "user-1", "USER")

	parts := strings.Split(signed.Token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %d parts", len(parts))
	}
	// Swap the payload for another token's payload; the signature no
	// longer matches.
	other, _ := NewAccessToken("access-secret", "user-2", "ADMIN")
	forged := parts[0] + "." + strings.Split(other.Token, ".")[1] + "." + parts[2]

	if _, _, err := VerifyToken(forged, "access-secret"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("err = %v, want ErrInvalidToken", err)
	}
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	for _, raw := range []string{"", "not-a-jwt", "a.b.c"} {
		if _, _, err := VerifyToken(raw, "access-secret"); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("VerifyToken(%q) err = %v, want ErrInvalidToken", raw, err)
		}
	}
}
