package auth

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/you/estately/domain"
)

// TokenIssuer mints and validates the HS256 bearer tokens served by the dev
// backend. Tokens carry the contact number as subject and an authorities list
// so the client-side role decode sees the same claim shape as production.
type TokenIssuer struct {
	secretKey []byte
	issuer    string
	ttl       time.Duration
}

// NewTokenIssuer creates a new token issuer.
func NewTokenIssuer(secretKey, issuer string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secretKey: []byte(secretKey),
		issuer:    issuer,
		ttl:       ttl,
	}
}

// generateJTI creates a unique JWT ID
func (t *TokenIssuer) generateJTI() string {
	bytes := make([]byte, 16)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

// Issue generates a signed token for the given contact number and role.
func (t *TokenIssuer) Issue(contactNo string, role domain.Role) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":         contactNo,
		"authorities": []string{string(role)},
		"iss":         t.issuer,
		"iat":         now.Unix(),
		"exp":         now.Add(t.ttl).Unix(),
		"jti":         t.generateJTI(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secretKey)
}

// IssuedClaims are the validated contents of a dev backend token.
type IssuedClaims struct {
	ContactNo string
	Role      domain.Role
	ExpiresAt int64
}

// Validate checks the signature and expiry and returns the claims.
func (t *TokenIssuer) Validate(tokenString string) (*IssuedClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrTokenMalformed
		}
		return t.secretKey, nil
	})
	if err != nil || !token.Valid {
		return nil, domain.ErrAuthFailed
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}
	if time.Unix(int64(exp), 0).Before(time.Now()) {
		return nil, domain.ErrAuthFailed
	}

	role := domain.RoleUser
	if authorities, ok := claims["authorities"].([]interface{}); ok {
		for _, a := range authorities {
			if s, ok := a.(string); ok && s == string(domain.RoleAdmin) {
				role = domain.RoleAdmin
			}
		}
	}

	return &IssuedClaims{ContactNo: sub, Role: role, ExpiresAt: int64(exp)}, nil
}
