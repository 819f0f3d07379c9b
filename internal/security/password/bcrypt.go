package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// Cost de bcrypt; tests pueden bajarlo con bcrypt.MinCost.
var Cost = bcrypt.DefaultCost

// Hash devuelve el hash bcrypt de la contraseña.
func Hash(plain string) (string, error) {
	if plain == "" {
		return "", errors.New("empty password")
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), Cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify compara en tiempo constante; un hash vacío nunca valida.
func Verify(plain, hash string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
