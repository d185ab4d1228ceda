package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the session token payload. Subject carries the user id,
// IssuedAt and ExpiresAt bound its lifetime.
type Claims struct {
	//has standard jwt field sub, iat, exp
	jwt.RegisteredClaims
}
