package auth

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

type FirebaseVerifier struct {
	Client *fbauth.Client
}

// NewFirebaseVerifier uses the service-account file when given, otherwise
// application default credentials.
func NewFirebaseVerifier(ctx context.Context, credentialsFile string) (*FirebaseVerifier, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase app: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase auth: %w", err)
	}
	return &FirebaseVerifier{Client: client}, nil
}

func (v *FirebaseVerifier) Verify(ctx context.Context, raw string) (Identity, error) {
	tok, err := v.Client.VerifyIDToken(ctx, raw)
	if err != nil {
		return Identity{}, err
	}
	email, _ := tok.Claims["email"].(string)
	if email == "" {
		return Identity{}, fmt.Errorf("token has no email claim")
	}
	return Identity{UID: tok.UID, Email: normalizeEmail(email)}, nil
}
