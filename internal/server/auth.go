package server

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/golang-jwt/jwt/v5"
	identity "github.com/smallbiznis/estatehub/internal/identity/domain"
)

var errInvalidToken = errors.New("invalid_token")

// PrincipalClaims is the bearer token payload. Tokens are issued elsewhere.
type PrincipalClaims struct {
	Role     string `json:"role"`
	EstateID string `json:"estate_id,omitempty"`
	jwt.RegisteredClaims
}

// TokenParser verifies HS256 bearer tokens and turns them into principals.
type TokenParser struct {
	secret []byte
	parser *jwt.Parser
}

func NewTokenParser(secret, issuer string) *TokenParser {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if issuer = strings.TrimSpace(issuer); issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	return &TokenParser{
		secret: []byte(secret),
		parser: jwt.NewParser(opts...),
	}
}

// Parse returns the principal carried by the token. The role is passed through
// as written so unknown roles are refused by the scope resolver, and a manager
// token without estate_id yields a principal with no affiliation.
func (t *TokenParser) Parse(raw string) (identity.Principal, error) {
	if len(t.secret) == 0 {
		return identity.Principal{}, fmt.Errorf("%w: signing secret not configured", errInvalidToken)
	}

	var claims PrincipalClaims
	token, err := t.parser.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return t.secret, nil
	})
	if err != nil || !token.Valid {
		return identity.Principal{}, fmt.Errorf("%w: %v", errInvalidToken, err)
	}

	id, err := snowflake.ParseString(strings.TrimSpace(claims.Subject))
	if err != nil || id == 0 {
		return identity.Principal{}, fmt.Errorf("%w: sub", errInvalidToken)
	}

	principal := identity.Principal{ID: id, Role: identity.Role(strings.ToUpper(strings.TrimSpace(claims.Role)))}
	if role, ok := identity.ParseRole(claims.Role); ok {
		principal.Role = role
	}

	if value := strings.TrimSpace(claims.EstateID); value != "" {
		estateID, err := snowflake.ParseString(value)
		if err != nil || estateID == 0 {
			return identity.Principal{}, fmt.Errorf("%w: estate_id", errInvalidToken)
		}
		principal.EstateID = &estateID
	}
	return principal, nil
}
