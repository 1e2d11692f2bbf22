package graphql

import "os"

// TokenProvider supplies the bearer token for authenticated operations.
type TokenProvider interface {
	// Token returns the current credential and whether one is available.
	Token() (string, bool)
}

// StaticTokenProvider returns a fixed token. An empty token means no
// credential is available.
type StaticTokenProvider struct {
	Value string
}

// Token implements TokenProvider.
func (p *StaticTokenProvider) Token() (string, bool) {
	if p == nil || p.Value == "" {
		return "", false
	}
	return p.Value, true
}

// EnvTokenProvider reads the token from an environment variable on every
// call, so an externally refreshed credential is picked up without a
// restart.
type EnvTokenProvider struct {
	Key string
}

// Token implements TokenProvider.
func (p *EnvTokenProvider) Token() (string, bool) {
	value := os.Getenv(p.Key)
	if value == "" {
		return "", false
	}
	return value, true
}
