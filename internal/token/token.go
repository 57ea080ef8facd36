// Package token decodes identity claims from a bearer token without
// verifying its signature. The decoded claims are advisory only: they feed
// the proxy-side permission pre-check and the X-Delete-Role hint, while the
// upstream backend verifies the token for real.
package token

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/partyline/partyline/internal/authz"
	"github.com/partyline/partyline/internal/normalize"
)

const bearerPrefix = "Bearer "

// Claim keys observed across identity providers, highest priority first.
var uidClaims = []string{"user_id", "uid", "sub"}

// FromAuthorization extracts claims from an Authorization header value.
// Anything that is not a decodable "Bearer <JWT>" yields zero claims rather
// than an error, so authorization fails closed downstream.
func FromAuthorization(header string) authz.User {
	header = strings.TrimSpace(header)
	if !strings.HasPrefix(header, bearerPrefix) {
		return authz.User{}
	}
	return Parse(strings.TrimSpace(header[len(bearerPrefix):]))
}

// Parse decodes the payload segment of a JWT without signature verification.
// Malformed tokens yield zero claims.
func Parse(raw string) authz.User {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return authz.User{}
	}

	var user authz.User
	for _, key := range uidClaims {
		if v := normalize.Scalar(claims[key]); v != "" {
			user.UID = v
			break
		}
	}
	user.Email = normalize.Lower(normalize.Scalar(claims["email"]))
	return user
}
