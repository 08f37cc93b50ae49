// Package auth manages the stored access token and its local expiry
// detection.
package auth

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"time"
)

// expirySkew treats a token as expired this long before its actual expiry
// so that a request never departs with a token about to lapse mid-flight.
const expirySkew = 60 * time.Second

type tokenClaims struct {
	Exp int64 `json:"exp"`
}

// Expired reports whether the given JWT access token is expired, judged
// locally by decoding its payload. Malformed tokens and tokens without an
// exp claim count as expired.
func Expired(token string, now time.Time) bool {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return true
	}

	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return true
	}

	var claims tokenClaims

	err = json.Unmarshal(payload, &claims)
	if err != nil || claims.Exp == 0 {
		return true
	}

	expiry := time.Unix(claims.Exp, 0).Add(-expirySkew)

	return !now.Before(expiry)
}
