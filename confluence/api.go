package confluence

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"
)

// NewAPI returns an API talking to the REST root at baseURL, e.g.
// https://ORG.atlassian.net/wiki/rest/api.  Every request carries the bearer token.
func NewAPI(baseURL string, token string, logger zerolog.Logger) (*API, error) {
	if token == "" {
		return nil, fmt.Errorf("confluence: auth token is empty, please check --auth-token or --auth-token-cmd")
	}

	client := &http.Client{
		Transport: &BearerAuth{
			Token:  token,
			Base:   http.DefaultTransport,
			Logger: logger,
		},
	}

	return NewAPIWithClient(baseURL, client)
}

// NewAPIWithClient is like NewAPI, but the caller is responsible for the transport, including
// authentication.
func NewAPIWithClient(baseURL string, client *http.Client) (*API, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("confluence: configure your Confluence REST API URL with --confluence-url")
	}

	// ResolveReference drops the last path segment unless the base ends in a slash.
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	u, err := url.ParseRequestURI(baseURL)
	if err != nil {
		return nil, fmt.Errorf("confluence: couldn't parse REST API URL: %w", err)
	}

	if client == nil {
		client = &http.Client{}
	}

	return &API{
		BaseURI: u,
		Client:  client,
	}, nil
}

type API struct {
	// The REST API root, e.g. https://INSTANCE.atlassian.net/wiki/rest/api/
	BaseURI *url.URL

	// An HTTP client - you can substitute VCR or whatnot.
	Client *http.Client
}
