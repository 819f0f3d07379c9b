package jwt

import (
	"errors"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
)

// DefaultAccessTTL es la vigencia de un access token.
const DefaultAccessTTL = time.Hour

// Issuer firma y valida access tokens HS256 con un secreto compartido.
type Issuer struct {
	Iss       string
	Secret    []byte
	AccessTTL time.Duration

	// now se reemplaza en tests.
	now func() time.Time
}

func NewIssuer(iss string, secret []byte, ttl time.Duration) (*Issuer, error) {
	if len(secret) == 0 {
		return nil, errors.New("jwt: empty secret")
	}
	if ttl <= 0 {
		ttl = DefaultAccessTTL
	}
	return &Issuer{Iss: iss, Secret: secret, AccessTTL: ttl, now: time.Now}, nil
}

func (i *Issuer) clock() time.Time {
	if i.now == nil {
		return time.Now().UTC()
	}
	return i.now().UTC()
}

// IssueAccess emite un access token para el sujeto y devuelve su expiración.
func (i *Issuer) IssueAccess(s Subject) (string, time.Time, error) {
	now := i.clock()
	exp := now.Add(i.AccessTTL)

	claims := AccessClaims{
		UserID:   s.ID,
		FullName: s.FullName,
		Email:    s.Email,
		Active:   s.Active,
		Admin:    s.Admin,
		RegisteredClaims: jwtv5.RegisteredClaims{
			Issuer:    i.Iss,
			Subject:   s.ID,
			IssuedAt:  jwtv5.NewNumericDate(now),
			ExpiresAt: jwtv5.NewNumericDate(exp),
		},
	}
	tk := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims)
	tk.Header["typ"] = "JWT"

	signed, err := tk.SignedString(i.Secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}
