package auth

import (
	"context"
	"errors"

	"github.com/golang-jwt/jwt/v4"
)

// JWTVerifier accepts HS256 tokens carrying "sub" and "email" claims,
// for deployments that run their own identity service.
type JWTVerifier struct {
	Secret string
}

func (v *JWTVerifier) Verify(ctx context.Context, raw string) (Identity, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(v.Secret), nil
	})
	if err != nil || !tok.Valid {
		return Identity{}, errors.New("invalid token")
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, errors.New("invalid token claims")
	}
	email, _ := claims["email"].(string)
	if email == "" {
		return Identity{}, errors.New("token has no email claim")
	}
	sub, _ := claims["sub"].(string)
	return Identity{UID: sub, Email: normalizeEmail(email)}, nil
}
