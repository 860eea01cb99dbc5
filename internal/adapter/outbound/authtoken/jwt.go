package authtoken

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/docvault/docvault/internal/domain"
	"github.com/docvault/docvault/internal/port"
)

// JWTVerifier implements port.TokenVerifier for HS256-signed bearer tokens.
// Signature, expiry, and issuer are all validated before a subject identity
// is produced; any failure maps to port.ErrUnauthenticated.
type JWTVerifier struct {
	secret []byte
	issuer string
}

// Ensure JWTVerifier implements port.TokenVerifier.
var _ port.TokenVerifier = (*JWTVerifier)(nil)

func NewJWTVerifier(secret, issuer string) *JWTVerifier {
	return &JWTVerifier{secret: []byte(secret), issuer: issuer}
}

// Verify parses and validates the raw token and returns the request identity.
func (v *JWTVerifier) Verify(_ context.Context, raw string) (*domain.Identity, error) {
	if raw == "" {
		return nil, fmt.Errorf("%w: empty token", port.ErrUnauthenticated)
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	var claims jwt.RegisteredClaims
	token, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", port.ErrUnauthenticated, err)
	}
	if !token.Valid || claims.Subject == "" {
		return nil, fmt.Errorf("%w: invalid claims", port.ErrUnauthenticated)
	}

	return &domain.Identity{
		SubjectID: claims.Subject,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// Issue signs a token for the given subject. Exposed for local development
// and tests; production deployments verify tokens minted by the external
// identity provider sharing the same secret.
func (v *JWTVerifier) Issue(subject string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Issuer:    v.issuer,
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}
