package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/koyeliyag-code/healthsync/internal/models"
)

// Authentication and authorization failures. Token problems are not
// distinguished beyond these to the caller, to avoid oracle leakage.
var (
	ErrMissingToken     = errors.New("missing token")
	ErrInvalidToken     = errors.New("invalid token")
	ErrInvalidRequester = errors.New("invalid requester")
	ErrForbidden        = errors.New("forbidden")
)

// CanonicalID normalizes an identity for comparison. Identities arrive in
// different representations (native store key, claim-embedded string), so
// every identity comparison goes through this one function.
func CanonicalID(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Guard authorizes roster access: the bearer of the token must be the
// organization's admin.
type Guard struct {
	secret []byte
}

// NewGuard creates a guard that verifies tokens against the given secret
func NewGuard(secret string) *Guard {
	return &Guard{secret: []byte(secret)}
}

// Authorize verifies the request's bearer credential and checks that the
// requester is the organization's admin. It returns the requester identity on
// success. It must complete before any patient or diagnosis data is touched.
func (g *Guard) Authorize(r *http.Request, org *models.Organization) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", ErrMissingToken
	}
	raw := strings.TrimPrefix(header, "Bearer ")
	if raw == header || raw == "" {
		return "", ErrMissingToken
	}

	claims, err := g.verify(raw)
	if err != nil {
		return "", ErrInvalidToken
	}

	if claims.UserID == "" {
		return "", ErrInvalidRequester
	}
	if CanonicalID(claims.UserID) != CanonicalID(org.AdminID.String()) {
		return claims.UserID, ErrForbidden
	}
	return claims.UserID, nil
}

func (g *Guard) verify(raw string) (*models.TokenClaims, error) {
	token, err := jwt.ParseWithClaims(raw, &models.TokenClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return g.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*models.TokenClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
