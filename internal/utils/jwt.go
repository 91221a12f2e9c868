package utils // package utils provides helper functions for token creation and hashing

import (
	"errors" // sentinel error for failed verification
	"time"   // time utilities for generating expirations

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// Token lifetimes per class.  Access tokens are short-lived bearer
// credentials; refresh tokens live for a year and are exchanged for new
// pairs; activation tokens prove email ownership once.
const (
	AccessTokenTTL     = 5 * time.Minute
	RefreshTokenTTL    = 365 * 24 * time.Hour
	ActivationTokenTTL = 24 * time.Hour
)

// ErrInvalidToken is returned by VerifyToken when a token fails
// signature validation, is expired, or carries no user id.
var ErrInvalidToken = errors.New("invalid token")

// SignedToken is a serialized JWT along with its expiry.
type SignedToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// NewAccessToken builds and signs an HS256 JWT identifying a user for
// the access-token lifetime.  The role claim is included so protected
// routes can enforce ADMIN without a database round trip.
func NewAccessToken(secret, userID, role string) (SignedToken, error) {
	return newToken(secret, userID, role, AccessTokenTTL)
}

// NewRefreshToken signs a long-lived JWT used only to obtain new token
// pairs.  It must be signed with the refresh secret, never the access
// secret, so the two classes are not interchangeable.
func NewRefreshToken(secret, userID string) (SignedToken, error) {
	return newToken(secret, userID, "", RefreshTokenTTL)
}

// NewActivationToken signs the single-purpose token mailed after
// registration.  Consuming it flips the account's active flag.
func NewActivationToken(secret, userID string) (SignedToken, error) {
	return newToken(secret, userID, "", ActivationTokenTTL)
}

// newToken constructs the claims shared by all token classes.  The user
// id travels in the "id" claim, mirroring the shape clients already
// depend on.
func newToken(secret, userID, role string, ttl time.Duration) (SignedToken, error) {
	now := time.Now().UTC()
	exp := now.Add(ttl)
	claims := jwt.MapClaims{
		"id":  userID,
		"exp": exp.Unix(),
		"iat": now.Unix(),
	}
	if role != "" {
		claims["role"] = role
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return SignedToken{}, err
	}
	return SignedToken{Token: signed, Exp: exp}, nil
}

// VerifyToken parses a JWT with the secret of one token class and
// returns the embedded user id and role.  Expired or tampered tokens,
// tokens signed with a different class secret, and tokens using a
// non-HMAC algorithm all fail with ErrInvalidToken.
func VerifyToken(raw, secret string) (userID, role string, err error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		// Reject tokens signed with anything but HMAC.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return "", "", ErrInvalidToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", ErrInvalidToken
	}
	id, ok := claims["id"].(string)
	if !ok || id == "" {
		return "", "", ErrInvalidToken
	}
	if r, ok := claims["role"].(string); ok {
		role = r
	}
	return id, role, nil
}
