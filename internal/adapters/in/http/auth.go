package http

import (
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"

	"courierbot/internal/core/domain/model/kernel"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// Role is the kind of actor behind a request.
type Role string

const (
	RoleOperator Role = "operator"
	RoleDriver   Role = "driver"
	RoleCustomer Role = "customer"
)

var (
	ErrMissingToken  = errors.New("missing bearer token")
	ErrInvalidClaims = errors.New("invalid claims")
)

// Principal is the authenticated caller.
type Principal struct {
	ActorID kernel.ActorID
	Name    string
	Role    Role
}

type claims struct {
	Name string `json:"name"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

const principalKey = "principal"

// ParseToken validates an HS256 token and returns its principal. The subject
// claim carries the actor id.
func ParseToken(tokenStr, secret string) (Principal, error) {
	if secret == "" {
		return Principal{}, errors.New("jwt secret is empty")
	}

	tok, err := jwt.ParseWithClaims(tokenStr, &claims{}, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method %s", t.Method.Alg())
		}
		return []byte(secret), nil
	})
	if err != nil {
		return Principal{}, err
	}

	c, ok := tok.Claims.(*claims)
	if !ok || !tok.Valid {
		return Principal{}, ErrInvalidClaims
	}

	actorID, err := kernel.NewActorID(c.Subject)
	if err != nil {
		return Principal{}, fmt.Errorf("%w: %w", ErrInvalidClaims, err)
	}

	role := Role(strings.ToLower(c.Role))
	if !slices.Contains([]Role{RoleOperator, RoleDriver, RoleCustomer}, role) {
		return Principal{}, fmt.Errorf("%w: unknown role %q", ErrInvalidClaims, c.Role)
	}

	return Principal{ActorID: actorID, Name: c.Name, Role: role}, nil
}

// IssueToken signs an HS256 token for the given principal.
func IssueToken(p Principal, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Name: p.Name,
		Role: string(p.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.ActorID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})
	return tok.SignedString([]byte(secret))
}

// Authenticate rejects requests without a valid bearer token and stores the
// principal on the echo context.
func Authenticate(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			scheme, tokenStr, found := strings.Cut(header, " ")
			if !found || !strings.EqualFold(scheme, "Bearer") {
				return errorResponse(c, http.StatusUnauthorized, "unauthenticated", ErrMissingToken.Error())
			}

			p, err := ParseToken(strings.TrimSpace(tokenStr), secret)
			if err != nil {
				return errorResponse(c, http.StatusUnauthorized, "unauthenticated", err.Error())
			}

			c.Set(principalKey, p)
			return next(c)
		}
	}
}

// RequireRole lets through principals of the given role only. Operators must
// also be listed in operators unless the list is empty.
func RequireRole(role Role, operators []kernel.ActorID) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, ok := principalFrom(c)
			if !ok || p.Role != role {
				return errorResponse(c, http.StatusForbidden, "unauthorized", "role "+string(role)+" required")
			}
			if role == RoleOperator && len(operators) > 0 &&
				!slices.ContainsFunc(operators, p.ActorID.IsEqual) {
				return errorResponse(c, http.StatusForbidden, "unauthorized", "not a configured operator")
			}
			return next(c)
		}
	}
}

func principalFrom(c echo.Context) (Principal, bool) {
	p, ok := c.Get(principalKey).(Principal)
	return p, ok
}
