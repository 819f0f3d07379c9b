package authz

import (
	jwtx "github.com/dropDatabas3/alquiler/internal/jwt"
)

// TokenParser valida un token crudo.
type TokenParser interface {
	Parse(raw string) (*jwtx.AccessClaims, error)
}

// Resolver traduce un header Authorization en un Principal.
type Resolver struct {
	parser TokenParser
}

func NewResolver(p TokenParser) *Resolver { return &Resolver{parser: p} }

// Resolve falla con jwt.ErrTokenMissing, jwt.ErrTokenInvalid o jwt.ErrTokenExpired.
// El estado activo no se evalúa acá: lo decide RequireActive.
func (r *Resolver) Resolve(authorization string) (*Principal, error) {
	raw, err := jwtx.BearerToken(authorization)
	if err != nil {
		return nil, err
	}
	c, err := r.parser.Parse(raw)
	if err != nil {
		return nil, err
	}
	p := &Principal{
		SubjectID: c.UserID,
		Email:     c.Email,
		FullName:  c.FullName,
		IsAdmin:   c.Admin,
		IsActive:  c.Active,
	}
	if c.ExpiresAt != nil {
		p.ExpiresAt = c.ExpiresAt.Time
	}
	return p, nil
}
