package static

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"

	"github.com/adrianliechti/cardsheet/pkg/auth"
)

// Provider accepts a fixed token, either as bearer token or as the token
// query parameter used by download links.
type Provider struct {
	token string
}

func New(token string) (*Provider, error) {
	if token == "" {
		return nil, errors.New("static authorizer requires a token")
	}

	return &Provider{
		token: token,
	}, nil
}

func (p *Provider) Authenticate(ctx context.Context, r *http.Request) (context.Context, error) {
	token := r.URL.Query().Get("token")

	if header := r.Header.Get("Authorization"); header != "" {
		if !strings.HasPrefix(header, "Bearer ") {
			return ctx, errors.New("invalid authorization header")
		}

		token = strings.TrimPrefix(header, "Bearer ")
	}

	if token == "" {
		return ctx, errors.New("missing token")
	}

	if subtle.ConstantTimeCompare([]byte(token), []byte(p.token)) != 1 {
		return ctx, errors.New("invalid token")
	}

	return context.WithValue(ctx, auth.UserContextKey, "static"), nil
}
