package auth

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWTSecretLength is the size of the shared secret execution clients use.
const JWTSecretLength = 32

// jwtAuth mints a fresh HS256 token for every request. Execution clients
// reject tokens whose iat is more than a minute away from their clock, so
// tokens are never cached.
type jwtAuth struct {
	secret []byte
	id     string
	now    func() time.Time
}

// JWTOption configures a JWT provider.
type JWTOption func(*jwtAuth)

// WithClientID sets the optional "id" claim identifying this client.
func WithClientID(id string) JWTOption {
	return func(a *jwtAuth) {
		a.id = id
	}
}

// withClock replaces the time source; used by tests.
func withClock(now func() time.Time) JWTOption {
	return func(a *jwtAuth) {
		a.now = now
	}
}

// NewJWT creates a provider signing tokens with the given secret.
func NewJWT(secret []byte, options ...JWTOption) (Provider, error) {
	if len(secret) != JWTSecretLength {
		return nil, fmt.Errorf("jwt secret must be %d bytes, got %d", JWTSecretLength, len(secret))
	}
	a := &jwtAuth{
		secret: append([]byte(nil), secret...),
		now:    time.Now,
	}
	for _, option := range options {
		option(a)
	}
	return a, nil
}

// NewJWTFromFile reads a hex encoded secret (optionally 0x prefixed), the
// format written by geth, reth and friends to jwt.hex.
func NewJWTFromFile(path string, options ...JWTOption) (Provider, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read jwt secret: %w", err)
	}
	secret, err := ParseJWTSecret(string(data))
	if err != nil {
		return nil, fmt.Errorf("invalid jwt secret in %s: %w", path, err)
	}
	return NewJWT(secret, options...)
}

// ParseJWTSecret decodes a hex secret.
func ParseJWTSecret(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	return hex.DecodeString(s)
}

// Headers implements Provider.Headers
func (a *jwtAuth) Headers() (map[string]string, error) {
	claims := jwt.MapClaims{
		"iat": a.now().Unix(),
	}
	if a.id != "" {
		claims["id"] = a.id
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign jwt: %w", err)
	}
	return map[string]string{
		"Authorization": "Bearer " + token,
	}, nil
}
