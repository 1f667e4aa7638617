package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/pkg/errors"

	"github.com/trezcool/edunotify/core"
	"github.com/trezcool/edunotify/core/access"
	"github.com/trezcool/edunotify/core/user"
)

var signingMethod = jwt.SigningMethodHS256

// Claims represents the authorization claims transmitted via a JWT.
type Claims struct {
	jwt.StandardClaims
	ID    string      `json:"id"`
	Email string      `json:"email"`
	Role  access.Role `json:"role"`
}

// Identity returns the access.Identity the claims carry.
func (c Claims) Identity() access.Identity {
	return access.Identity{ID: c.ID, Email: c.Email, Role: c.Role}
}

// Tokens issues and verifies signed bearer tokens.
type Tokens struct {
	key    []byte
	ttl    time.Duration
	issuer string
}

func NewTokens(conf *core.Config) *Tokens {
	return &Tokens{
		key:    []byte(conf.SecretKey),
		ttl:    conf.JWTExpirationDelta,
		issuer: conf.AppName,
	}
}

// Claims returns the claims of a token for usr, valid from now.
func (t *Tokens) Claims(usr user.User) *Claims {
	now := time.Now()
	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    t.issuer,
			Subject:   usr.ID,
			ExpiresAt: now.Add(t.ttl).Unix(),
			IssuedAt:  now.Unix(),
		},
		ID:    usr.ID,
		Email: usr.Email,
		Role:  usr.Role,
	}
}

// Issue returns a signed token for usr.
func (t *Tokens) Issue(usr user.User) (string, error) {
	token := jwt.NewWithClaims(signingMethod, t.Claims(usr))
	ss, err := token.SignedString(t.key)
	if err != nil {
		return "", errors.Wrap(err, "signing token")
	}
	return ss, nil
}

// Parse verifies a raw token and returns its claims.
// A "Bearer " prefix is accepted.
func (t *Tokens) Parse(raw string) (*Claims, error) {
	raw = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(raw), "Bearer "))
	if raw == "" {
		return nil, errors.New("missing token")
	}

	claims := new(Claims)
	_, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != signingMethod.Alg() {
			return nil, fmt.Errorf("unexpected signing method %q", token.Header["alg"])
		}
		return t.key, nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "parsing token")
	}
	if claims.ID == "" {
		return nil, errors.New("token has no identity")
	}
	return claims, nil
}
