package auth

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/you/estately/domain"
)

// ClaimsInspector implements domain.TokenInspector by decoding the token
// payload without signature verification. The result gates UI display only;
// the server holds the real authorization decision on every request.
type ClaimsInspector struct {
	parser *jwt.Parser
}

// NewClaimsInspector creates a new claims inspector.
func NewClaimsInspector() domain.TokenInspector {
	return &ClaimsInspector{parser: jwt.NewParser()}
}

// RoleOf implements domain.TokenInspector. The token must have three
// dot-separated segments; an "authorities" claim containing "ADMIN" yields
// RoleAdmin, any other parsable token yields RoleUser.
func (i *ClaimsInspector) RoleOf(tokenString string) (domain.Role, error) {
	token, _, err := i.parser.ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return "", domain.ErrTokenMalformed
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", domain.ErrTokenMalformed
	}

	authorities, ok := claims["authorities"].([]interface{})
	if !ok {
		return domain.RoleUser, nil
	}

	for _, a := range authorities {
		if s, ok := a.(string); ok && s == string(domain.RoleAdmin) {
			return domain.RoleAdmin, nil
		}
	}
	return domain.RoleUser, nil
}
