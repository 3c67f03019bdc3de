package httpx

import (
	"context"
	"fmt"
	"net/http"
)

type authenticator interface {
	Authenticate(context.Context) error
	BearerToken() string
}

// AuthBearerRoundTripper sets the Authorization header and re-authenticates
// once when the upstream answers 401 with a token that has since changed.
type AuthBearerRoundTripper struct {
	next          http.RoundTripper
	authenticator authenticator
}

func NewAuthBearerRoundTripper(
	next http.RoundTripper,
	authenticator authenticator,
) AuthBearerRoundTripper {
	return AuthBearerRoundTripper{
		next:          next,
		authenticator: authenticator,
	}
}

func (rt AuthBearerRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	if rt.authenticator.BearerToken() == "" {
		if err := rt.authenticator.Authenticate(req.Context()); err != nil {
			return nil, fmt.Errorf("authenticator.Authenticate: %w", err)
		}
	}

	token := rt.authenticator.BearerToken()

	resp, err := rt.next.RoundTrip(withBearer(req, token))
	if err != nil {
		return nil, fmt.Errorf("next.RoundTrip: %w", err)
	}

	if resp.StatusCode != http.StatusUnauthorized || (req.Body != nil && req.GetBody == nil) {
		return resp, nil
	}

	if err = rt.authenticator.Authenticate(req.Context()); err != nil {
		resp.Body.Close()
		return nil, fmt.Errorf("authenticator.Authenticate: %w", err)
	}

	if rt.authenticator.BearerToken() == token {
		return resp, nil
	}

	resp.Body.Close()

	retry := req.Clone(req.Context())

	if req.GetBody != nil {
		if retry.Body, err = req.GetBody(); err != nil {
			return nil, fmt.Errorf("req.GetBody: %w", err)
		}
	}

	return rt.next.RoundTrip(withBearer(retry, rt.authenticator.BearerToken())) //nolint:wrapcheck
}

// RoundTripper implementations must not modify the caller's request.
func withBearer(req *http.Request, token string) *http.Request {
	out := req.Clone(req.Context())
	out.Header.Set("Authorization", "Bearer "+token)

	return out
}

// StaticBearer is an authenticator for APIs that are called with a fixed key.
type StaticBearer string

func (StaticBearer) Authenticate(context.Context) error {
	return nil
}

func (s StaticBearer) BearerToken() string {
	return string(s)
}
