package helper

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const ParentRole = "parent"

type ParentClaims struct {
	NIC  string `json:"nic"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// IssueParentToken signs an HS256 token for a parent session.
func IssueParentToken(secret string, parentID uuid.UUID, nic string, ttl time.Duration) (string, time.Time, error) {
	if strings.TrimSpace(secret) == "" {
		return "", time.Time{}, errors.New("JWT secret is not configured")
	}
	now := time.Now()
	exp := now.Add(ttl)
	claims := ParentClaims{
		NIC:  nic,
		Role: ParentRole,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   parentID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	return tok, exp, err
}

// ParseParentToken verifies signature, expiry and the parent role.
func ParseParentToken(secret, raw string) (uuid.UUID, *ParentClaims, error) {
	claims := &ParentClaims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return uuid.Nil, nil, errors.New("invalid token")
	}
	if claims.Role != ParentRole {
		return uuid.Nil, nil, errors.New("not a parent token")
	}
	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, nil, errors.New("invalid token subject")
	}
	return id, claims, nil
}
