package session

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// identityClaims lists the claim names that may carry the user name,
// in lookup order.
var identityClaims = []string{"login", "username", "user", "sub"}

// Identity decodes the display name embedded in a compact JWT without
// verifying its signature. It returns false for opaque or malformed tokens
// and for tokens without a usable claim.
func Identity(token string) (string, bool) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return "", false
	}

	for _, name := range identityClaims {
		v, ok := claims[name].(string)
		if ok && strings.TrimSpace(v) != "" {
			return v, true
		}
	}
	return "", false
}
