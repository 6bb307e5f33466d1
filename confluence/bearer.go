package confluence

import (
	"net/http"

	"github.com/rs/zerolog"
)

// BearerAuth is an http.RoundTripper which adds an "Authorization: Bearer <token>" header to
// requests that don't carry an Authorization header yet.
type BearerAuth struct {
	Token string

	// Base performs the actual request.  http.DefaultTransport if nil.
	Base http.RoundTripper

	Logger zerolog.Logger
}

var _ http.RoundTripper = (*BearerAuth)(nil)

func (b *BearerAuth) RoundTrip(req *http.Request) (*http.Response, error) {
	base := b.Base
	if base == nil {
		base = http.DefaultTransport
	}

	// RoundTrippers must not modify the caller's request.
	r := req.Clone(req.Context())
	b.Authorize(r)

	return base.RoundTrip(r)
}

// Authorize sets the bearer header on r, unless an Authorization header is already present.
func (b *BearerAuth) Authorize(r *http.Request) {
	if r.Header == nil {
		r.Header = make(http.Header)
	}

	if r.Header.Get("Authorization") != "" {
		b.Logger.Debug().
			Str("url", r.URL.Redacted()).
			Msg("Failed to configure Bearer request authorization since Authorization was already present in request headers.")
		return
	}

	r.Header.Set("Authorization", "Bearer "+b.Token)
}
