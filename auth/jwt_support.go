package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenExpiry decodes the token payload without verifying the signature and
// returns its exp claim. The API signs tokens with its own key; the client
// only needs the expiry to know when to renew.
func tokenExpiry(token string) (time.Time, bool) {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	expiresAt, err := claims.GetExpirationTime()
	if err != nil || expiresAt == nil {
		return time.Time{}, false
	}
	return expiresAt.Time.UTC(), true
}
