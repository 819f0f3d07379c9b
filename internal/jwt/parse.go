package jwt

import (
	"errors"
	"strings"

	jwtv5 "github.com/golang-jwt/jwt/v5"
)

var (
	// ErrTokenMissing: no hay credencial o el header no es "Bearer <token>".
	ErrTokenMissing = errors.New("token missing")
	// ErrTokenInvalid: firma, algoritmo, issuer o claims inválidos.
	ErrTokenInvalid = errors.New("token invalid")
	// ErrTokenExpired: el token venció.
	ErrTokenExpired = errors.New("token expired")
)

// Parse valida firma HS256, issuer (si está configurado) y exp.
// exp es obligatorio: un token sin vencimiento es inválido.
func (i *Issuer) Parse(raw string) (*AccessClaims, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ErrTokenMissing
	}

	opts := []jwtv5.ParserOption{
		jwtv5.WithValidMethods([]string{jwtv5.SigningMethodHS256.Alg()}),
		jwtv5.WithExpirationRequired(),
		jwtv5.WithTimeFunc(i.clock),
	}
	if i.Iss != "" {
		opts = append(opts, jwtv5.WithIssuer(i.Iss))
	}

	claims := &AccessClaims{}
	tok, err := jwtv5.ParseWithClaims(raw, claims, func(*jwtv5.Token) (any, error) {
		return i.Secret, nil
	}, opts...)
	switch {
	case errors.Is(err, jwtv5.ErrTokenExpired):
		return nil, ErrTokenExpired
	case err != nil, !tok.Valid:
		return nil, ErrTokenInvalid
	}
	if claims.UserID == "" {
		claims.UserID = claims.Subject
	}
	if claims.UserID == "" {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// BearerToken extrae el token de un header Authorization.
func BearerToken(header string) (string, error) {
	header = strings.TrimSpace(header)
	if len(header) < 7 || !strings.EqualFold(header[:7], "bearer ") {
		return "", ErrTokenMissing
	}
	tok := strings.TrimSpace(header[7:])
	if tok == "" {
		return "", ErrTokenMissing
	}
	return tok, nil
}
