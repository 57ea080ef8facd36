// Package authn extracts the caller identity from bearer tokens.
package authn

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v5"
	"github.com/partyline/partyline/internal/authz"
	"github.com/partyline/partyline/internal/token"
)

const ContextKeyPrincipal = "auth_principal"

// Principal is the caller identity for one request. The raw Authorization
// header is kept so handlers can forward it upstream verbatim.
type Principal struct {
	User          authz.User
	Authorization string
}

func (p Principal) SignedIn() bool {
	return p.User.SignedIn()
}

func PrincipalFromContext(c *echo.Context) (Principal, bool) {
	p, ok := c.Get(ContextKeyPrincipal).(Principal)
	return p, ok
}

// LoadPrincipal decodes the Authorization header into a Principal. Missing or
// malformed headers yield an anonymous principal, never an error.
func LoadPrincipal(c *echo.Context) Principal {
	header := strings.TrimSpace(c.Request().Header.Get("Authorization"))
	return Principal{
		User:          token.FromAuthorization(header),
		Authorization: header,
	}
}

// WithPrincipal attaches the decoded principal to every request.
func WithPrincipal() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c *echo.Context) error {
			c.Set(ContextKeyPrincipal, LoadPrincipal(c))
			return next(c)
		}
	}
}

// RequireAuth rejects requests that carry no Authorization header.
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c *echo.Context) error {
			p, ok := PrincipalFromContext(c)
			if !ok {
				p = LoadPrincipal(c)
				c.Set(ContextKeyPrincipal, p)
			}
			if p.Authorization == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{
					"error":   "Authentication required",
					"details": "No authorization header provided",
				})
			}
			return next(c)
		}
	}
}
