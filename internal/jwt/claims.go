package jwt

import jwtv5 "github.com/golang-jwt/jwt/v5"

// AccessClaims son los claims del access token: identificación del usuario
// y sus flags de rol/estado al momento de la emisión.
type AccessClaims struct {
	UserID   string `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Active   bool   `json:"active"`
	Admin    bool   `json:"admin"`
	jwtv5.RegisteredClaims
}

// Subject es lo mínimo que el issuer necesita para firmar un token.
type Subject struct {
	ID       string
	FullName string
	Email    string
	Active   bool
	Admin    bool
}
