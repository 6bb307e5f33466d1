package confluence

import (
	"fmt"
	"net/url"

	"github.com/google/go-querystring/query"
)

// contentPath is the content collection, relative to the REST root.
const contentPath = "content"

// getContentEndpoint returns the (v1) API endpoint to list content:
// https://developer.atlassian.com/cloud/confluence/rest/v1/api-group-content/#api-wiki-rest-api-content-get
func (a *API) getContentEndpoint(opts contentListQuery) (*url.URL, error) {
	ep, err := a.resolveEndpoint(contentPath)
	if err != nil {
		return nil, fmt.Errorf("confluence: couldn't resolve endpoint: %w", err)
	}

	if opts.Limit == 0 {
		opts.Limit = DefaultLimit
	}

	v, err := query.Values(opts)
	if err != nil {
		return nil, fmt.Errorf("confluence: couldn't encode query params: %w", err)
	}
	ep.RawQuery = v.Encode()

	return ep, nil
}

// getContentByIDEndpoint returns the endpoint for one content item, shared by get, update and
// delete:
// https://developer.atlassian.com/cloud/confluence/rest/v1/api-group-content/#api-wiki-rest-api-content-id-get
func (a *API) getContentByIDEndpoint(id string) (*url.URL, error) {
	if id == "" {
		return nil, fmt.Errorf("confluence: please provide ID of content item")
	}

	ep, err := a.resolveEndpoint(contentPath + "/" + url.PathEscape(id))
	if err != nil {
		return nil, fmt.Errorf("confluence: couldn't resolve endpoint: %w", err)
	}

	return ep, nil
}

// getCreateContentEndpoint returns the (v1) API endpoint to create content:
// https://developer.atlassian.com/cloud/confluence/rest/v1/api-group-content/#api-wiki-rest-api-content-post
func (a *API) getCreateContentEndpoint() (*url.URL, error) {
	return a.resolveEndpoint(contentPath)
}

// getCurrentUserEndpoint returns the (v1) API endpoint to query current user
// https://developer.atlassian.com/cloud/confluence/rest/v1/api-group-users/#api-wiki-rest-api-user-current-get
func (a *API) getCurrentUserEndpoint() (*url.URL, error) {
	return a.resolveEndpoint("user/current")
}

// Do a bit of error checking on endpoint format, and return it relative to the base URI.
func (a *API) resolveEndpoint(endpoint string) (*url.URL, error) {
	ref, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("confluence: failed to parse endpoint ref: %w", err)
	}

	return a.BaseURI.ResolveReference(ref), nil
}
