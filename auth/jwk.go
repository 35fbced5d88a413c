package auth

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rsa"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/lestrrat-go/jwx/v2/jwk"
)

// DefaultJWKTokenTTL is the lifetime of tokens minted from a JWK.
const DefaultJWKTokenTTL = time.Minute

// jwkAuth signs short-lived tokens with a private JWK, the scheme hosted
// node providers use for JWT protected endpoints. The key id travels in the
// kid header.
type jwkAuth struct {
	key    any
	method jwt.SigningMethod
	kid    string
	ttl    time.Duration
	claims map[string]any
	now    func() time.Time
}

// JWKOption configures a JWK provider.
type JWKOption func(*jwkAuth)

// WithTokenTTL sets the exp claim relative to iat. Zero omits exp.
func WithTokenTTL(ttl time.Duration) JWKOption {
	return func(a *jwkAuth) {
		a.ttl = ttl
	}
}

// WithClaim adds a fixed claim, e.g. "sub" or "aud".
func WithClaim(name string, value any) JWKOption {
	return func(a *jwkAuth) {
		a.claims[name] = value
	}
}

func withJWKClock(now func() time.Time) JWKOption {
	return func(a *jwkAuth) {
		a.now = now
	}
}

// NewJWK creates a provider from a JSON encoded private JWK. The signing
// algorithm is the key's alg member, or RS256, ES256/384/512 or EdDSA
// inferred from the key type.
func NewJWK(data []byte, options ...JWKOption) (Provider, error) {
	key, err := jwk.ParseKey(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse jwk: %w", err)
	}

	var raw any
	if err := key.Raw(&raw); err != nil {
		return nil, fmt.Errorf("failed to get raw key material: %w", err)
	}

	var alg string
	if a := key.Algorithm(); a != nil {
		alg = a.String()
	}
	method, err := signingMethod(raw, alg)
	if err != nil {
		return nil, err
	}

	a := &jwkAuth{
		key:    raw,
		method: method,
		kid:    key.KeyID(),
		ttl:    DefaultJWKTokenTTL,
		claims: map[string]any{},
		now:    time.Now,
	}
	for _, option := range options {
		option(a)
	}
	return a, nil
}

// NewJWKFromFile reads the JWK from path.
func NewJWKFromFile(path string, options ...JWKOption) (Provider, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read jwk: %w", err)
	}
	return NewJWK(data, options...)
}

func signingMethod(raw any, alg string) (jwt.SigningMethod, error) {
	if alg != "" {
		method := jwt.GetSigningMethod(alg)
		if method == nil {
			return nil, fmt.Errorf("unsupported jwk algorithm %q", alg)
		}
		return method, nil
	}
	switch k := raw.(type) {
	case *rsa.PrivateKey:
		return jwt.SigningMethodRS256, nil
	case *ecdsa.PrivateKey:
		switch k.Curve.Params().BitSize {
		case 256:
			return jwt.SigningMethodES256, nil
		case 384:
			return jwt.SigningMethodES384, nil
		case 521:
			return jwt.SigningMethodES512, nil
		}
		return nil, fmt.Errorf("unsupported ecdsa curve %s", k.Curve.Params().Name)
	case ed25519.PrivateKey:
		return jwt.SigningMethodEdDSA, nil
	}
	return nil, fmt.Errorf("jwk is not a private signing key (%T)", raw)
}

// Headers implements Provider.Headers
func (a *jwkAuth) Headers() (map[string]string, error) {
	now := a.now()
	claims := jwt.MapClaims{
		"iat": now.Unix(),
	}
	if a.ttl > 0 {
		claims["exp"] = now.Add(a.ttl).Unix()
	}
	for k, v := range a.claims {
		claims[k] = v
	}

	token := jwt.NewWithClaims(a.method, claims)
	if a.kid != "" {
		token.Header["kid"] = a.kid
	}
	signed, err := token.SignedString(a.key)
	if err != nil {
		return nil, fmt.Errorf("failed to sign jwt: %w", err)
	}
	return map[string]string{
		"Authorization": "Bearer " + signed,
	}, nil
}
