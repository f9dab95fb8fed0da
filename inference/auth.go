package inference

import (
	"crypto/subtle"
	"errors"
	"strings"
)

const bearerPrefix = "Bearer "

// Authenticator checks the Authorization header against the shared secret.
type Authenticator struct {
	token []byte
}

func NewAuthenticator(token string) (*Authenticator, error) {
	if token == "" {
		return nil, errors.New("secret token is empty")
	}
	return &Authenticator{token: []byte(token)}, nil
}

// Authorize returns nil when header is "Bearer <token>". The prefix and token
// are compared case-sensitively.
func (a *Authenticator) Authorize(header string) error {
	if header == "" || !strings.HasPrefix(header, bearerPrefix) {
		return unauthorized(msgTokenMissing)
	}
	presented := []byte(strings.TrimPrefix(header, bearerPrefix))
	if subtle.ConstantTimeCompare(presented, a.token) != 1 {
		return unauthorized(msgTokenInvalid)
	}
	return nil
}
