// Package auth verifies caller identity for the safety service.
//
// Callers authenticate with an access grant: a short-lived EdDSA-signed JWT
// minted by the identity provider. The grant's subject is the user id that
// flows through request context for the rest of the request.
package auth

import (
	"crypto/ed25519"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/festsafe/festsafe/internal/platform/errors"
)

// accessGrantEnv holds raw env values before post-parse validation.
type accessGrantEnv struct {
	Issuer    string `env:"FESTSAFE_AUTH_ISSUER"`
	Audience  string `env:"FESTSAFE_AUTH_AUDIENCE"`
	PublicKey string `env:"FESTSAFE_AUTH_PUBLIC_KEY"`
}

// AccessGrantConfig defines how access grants are verified.
type AccessGrantConfig struct {
	Issuer   string
	Audience string
	Key      ed25519.PublicKey
	Now      func() time.Time
}

// AccessGrantClaims captures validated access grant claims.
type AccessGrantClaims struct {
	Issuer    string
	Audience  []string
	ExpiresAt time.Time
	NotBefore time.Time
	IssuedAt  time.Time
	JWTID     string
	UserID    string
}

// accessGrantClaims is the internal claims type used for JWT parsing.
type accessGrantClaims struct {
	jwt.RegisteredClaims
}

// LoadAccessGrantConfigFromEnv reads access grant verification configuration.
func LoadAccessGrantConfigFromEnv(now func() time.Time) (AccessGrantConfig, error) {
	var raw accessGrantEnv
	if err := env.Parse(&raw); err != nil {
		return AccessGrantConfig{}, fmt.Errorf("parse access grant env: %w", err)
	}
	issuer := strings.TrimSpace(raw.Issuer)
	audience := strings.TrimSpace(raw.Audience)
	publicKey := strings.TrimSpace(raw.PublicKey)
	if issuer == "" {
		return AccessGrantConfig{}, fmt.Errorf("FESTSAFE_AUTH_ISSUER is required")
	}
	if audience == "" {
		return AccessGrantConfig{}, fmt.Errorf("FESTSAFE_AUTH_AUDIENCE is required")
	}
	if publicKey == "" {
		return AccessGrantConfig{}, fmt.Errorf("FESTSAFE_AUTH_PUBLIC_KEY is required")
	}
	keyBytes, err := decodeBase64(publicKey)
	if err != nil {
		return AccessGrantConfig{}, fmt.Errorf("decode access grant public key: %w", err)
	}
	if len(keyBytes) != ed25519.PublicKeySize {
		return AccessGrantConfig{}, fmt.Errorf("access grant public key must be %d bytes", ed25519.PublicKeySize)
	}
	if now == nil {
		now = time.Now
	}
	return AccessGrantConfig{
		Issuer:   issuer,
		Audience: audience,
		Key:      ed25519.PublicKey(keyBytes),
		Now:      now,
	}, nil
}

// VerifyAccessGrant verifies an access grant token and returns its claims.
func VerifyAccessGrant(grant string, cfg AccessGrantConfig) (AccessGrantClaims, error) {
	grant = strings.TrimSpace(grant)
	if grant == "" {
		return AccessGrantClaims{}, apperrors.New(apperrors.CodeAuthGrantInvalid, "access grant is required")
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Issuer == "" || cfg.Audience == "" || len(cfg.Key) != ed25519.PublicKeySize {
		return AccessGrantClaims{}, errors.New("access grant verifier is not configured")
	}

	var parsed accessGrantClaims
	_, err := jwt.ParseWithClaims(grant, &parsed, func(token *jwt.Token) (any, error) {
		return cfg.Key, nil
	},
		jwt.WithValidMethods([]string{"EdDSA"}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return AccessGrantClaims{}, mapJWTError(err)
	}

	if parsed.Issuer == "" || parsed.Issuer != cfg.Issuer {
		return AccessGrantClaims{}, apperrors.New(apperrors.CodeAuthGrantInvalid, "access grant issuer mismatch")
	}
	if !audienceContains(parsed.Audience, cfg.Audience) {
		return AccessGrantClaims{}, apperrors.New(apperrors.CodeAuthGrantInvalid, "access grant audience mismatch")
	}

	if parsed.ExpiresAt == nil {
		return AccessGrantClaims{}, apperrors.New(apperrors.CodeAuthGrantInvalid, "access grant exp is required")
	}
	now := cfg.Now().UTC()
	exp := parsed.ExpiresAt.Time.UTC()
	if !exp.After(now) {
		return AccessGrantClaims{}, apperrors.New(apperrors.CodeAuthGrantExpired, "access grant is expired")
	}
	if parsed.NotBefore != nil {
		nbf := parsed.NotBefore.Time.UTC()
		if now.Before(nbf) {
			return AccessGrantClaims{}, apperrors.New(apperrors.CodeAuthGrantInvalid, "access grant not active yet")
		}
	}

	if strings.TrimSpace(parsed.Subject) == "" {
		return AccessGrantClaims{}, apperrors.New(apperrors.CodeAuthGrantInvalid, "access grant subject is required")
	}

	claims := AccessGrantClaims{
		Issuer:    parsed.Issuer,
		Audience:  []string(parsed.Audience),
		ExpiresAt: exp,
		JWTID:     parsed.ID,
		UserID:    parsed.Subject,
	}
	if parsed.NotBefore != nil {
		claims.NotBefore = parsed.NotBefore.Time.UTC()
	}
	if parsed.IssuedAt != nil {
		claims.IssuedAt = parsed.IssuedAt.Time.UTC()
	}
	return claims, nil
}

// mapJWTError translates jwt library errors to application errors.
func mapJWTError(err error) error {
	if errors.Is(err, jwt.ErrTokenSignatureInvalid) || errors.Is(err, jwt.ErrEd25519Verification) {
		return apperrors.New(apperrors.CodeAuthGrantInvalid, "access grant signature is invalid")
	}
	if errors.Is(err, jwt.ErrTokenUnverifiable) {
		return apperrors.New(apperrors.CodeAuthGrantInvalid, "access grant alg is invalid")
	}
	return apperrors.New(apperrors.CodeAuthGrantInvalid, "access grant is invalid")
}

// audienceContains reports whether the audience list contains the given value.
func audienceContains(aud jwt.ClaimStrings, value string) bool {
	for _, item := range aud {
		if item == value {
			return true
		}
	}
	return false
}

func decodeBase64(value string) ([]byte, error) {
	if value == "" {
		return nil, errors.New("empty base64 value")
	}
	decoded, err := base64.RawStdEncoding.DecodeString(value)
	if err == nil {
		return decoded, nil
	}
	return base64.StdEncoding.DecodeString(value)
}
