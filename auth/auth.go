// Package auth provides the credentials transports attach to outbound
// connections: static bearer or basic credentials, arbitrary headers, and
// short-lived HS256 JWTs of the kind execution clients require on their
// authenticated RPC port.
package auth

import (
	"encoding/base64"
	"fmt"
	"net/http"
)

// Provider supplies the headers to attach to a request or handshake.
type Provider interface {
	// Headers returns the headers for the next request. Providers that mint
	// tokens do so on every call.
	Headers() (map[string]string, error)
}

// Apply copies the provider's headers onto h. A nil provider is a no-op.
func Apply(p Provider, h http.Header) error {
	if p == nil {
		return nil
	}
	headers, err := p.Headers()
	if err != nil {
		return fmt.Errorf("failed to build auth headers: %w", err)
	}
	for k, v := range headers {
		h.Set(k, v)
	}
	return nil
}

// bearerAuth implements Provider with Bearer token authentication
type bearerAuth struct {
	token string
}

// NewBearer creates a new Bearer token auth provider
func NewBearer(token string) Provider {
	return &bearerAuth{token: token}
}

// Headers implements Provider.Headers
func (a *bearerAuth) Headers() (map[string]string, error) {
	return map[string]string{
		"Authorization": "Bearer " + a.token,
	}, nil
}

// basicAuth implements Provider with Basic authentication
type basicAuth struct {
	token string // computed base64 token
}

// NewBasic creates a new Basic auth provider
func NewBasic(username, password string) Provider {
	token := base64.StdEncoding.EncodeToString([]byte(username + ":" + password))
	return &basicAuth{token: token}
}

// Headers implements Provider.Headers
func (a *basicAuth) Headers() (map[string]string, error) {
	return map[string]string{
		"Authorization": "Basic " + a.token,
	}, nil
}

// headerAuth implements Provider with custom headers, e.g. an API key header
// required by a hosted node provider.
type headerAuth struct {
	headers map[string]string
}

// NewHeaders creates a provider that sends a fixed set of headers
func NewHeaders(headers map[string]string) Provider {
	copied := make(map[string]string, len(headers))
	for k, v := range headers {
		copied[k] = v
	}
	return &headerAuth{headers: copied}
}

// Headers implements Provider.Headers
func (a *headerAuth) Headers() (map[string]string, error) {
	return a.headers, nil
}
