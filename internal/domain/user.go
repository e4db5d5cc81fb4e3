package domain

import (
	"github.com/golang-jwt/jwt/v5"
)

// Credential é um usuário autorizado a operar o sistema.
// Password pode ser texto puro ou um hash bcrypt.
type Credential struct {
	Username string
	Password string
}

type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}
