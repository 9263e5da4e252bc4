package auth

import (
	"context"
	"fmt"
	"strings"

	"cftl_backend/internals/configs"
)

// Identity is what a verified staff token tells us about the caller.
type Identity struct {
	UID   string
	Email string
}

// Verifier checks a raw bearer token with the configured identity provider.
type Verifier interface {
	Verify(ctx context.Context, rawToken string) (Identity, error)
}

// NewVerifier picks the provider from IDENTITY_PROVIDER.
func NewVerifier(ctx context.Context, cfg configs.AppConfig) (Verifier, error) {
	switch cfg.IdentityProvider {
	case "firebase", "":
		return NewFirebaseVerifier(ctx, cfg.FirebaseCredentials)
	case "google":
		if cfg.GoogleClientID == "" {
			return nil, fmt.Errorf("GOOGLE_CLIENT_ID is required for the google identity provider")
		}
		return &GoogleVerifier{ClientID: cfg.GoogleClientID}, nil
	case "jwt":
		if cfg.JWTSecret == "" {
			return nil, fmt.Errorf("JWT_SECRET is required for the jwt identity provider")
		}
		return &JWTVerifier{Secret: cfg.JWTSecret}, nil
	default:
		return nil, fmt.Errorf("unknown IDENTITY_PROVIDER %q", cfg.IdentityProvider)
	}
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
