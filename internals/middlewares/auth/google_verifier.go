package auth

import (
	"context"
	"fmt"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
)

// GoogleVerifier accepts Google Sign-In ID tokens issued for ClientID.
type GoogleVerifier struct {
	ClientID string
}

func (v *GoogleVerifier) Verify(ctx context.Context, raw string) (Identity, error) {
	verifier := googleAuthIDTokenVerifier.Verifier{}
	if err := verifier.VerifyIDToken(raw, []string{v.ClientID}); err != nil {
		return Identity{}, err
	}
	claimSet, err := googleAuthIDTokenVerifier.Decode(raw)
	if err != nil {
		return Identity{}, err
	}
	if claimSet.Email == "" {
		return Identity{}, fmt.Errorf("token has no email claim")
	}
	return Identity{UID: claimSet.Sub, Email: normalizeEmail(claimSet.Email)}, nil
}
