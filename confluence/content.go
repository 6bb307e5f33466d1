package confluence

import (
	"context"
	"fmt"
	"net/http"
)

// ContentAPI manages pages, blog posts, comments and attachments.  Pages are well supported;
// the other types have not been touched.  Only what junction needs is implemented; this is not a
// general purpose Confluence API wrapper.
type ContentAPI struct {
	api      *API
	spaceKey string
}

// NewContentAPI binds api to one space.  The space key is used to filter listings.
func NewContentAPI(api *API, spaceKey string) *ContentAPI {
	return &ContentAPI{
		api:      api,
		spaceKey: spaceKey,
	}
}

// SpaceKey returns the space this client is bound to.
func (c *ContentAPI) SpaceKey() string {
	return c.spaceKey
}

// CreateContent creates a new content item:
// https://developer.atlassian.com/cloud/confluence/rest/v1/api-group-content/#api-wiki-rest-api-content-post
func (c *ContentAPI) CreateContent(ctx context.Context, content CreateContent, opts ...RequestOption) (*Content, error) {
	ep, err := c.api.getCreateContentEndpoint()
	if err != nil {
		return nil, fmt.Errorf("confluence: couldn't get create content endpoint: %w", err)
	}

	body, err := c.api.request(ctx, http.MethodPost, ep, content, opts)
	if err != nil {
		return nil, fmt.Errorf("confluence: couldn't create content: %w", err)
	}

	return decode[Content](body, "content")
}

// UpdateContent replaces content item id:
// https://developer.atlassian.com/cloud/confluence/rest/v1/api-group-content/#api-wiki-rest-api-content-id-put
func (c *ContentAPI) UpdateContent(ctx context.Context, id string, content UpdateContent, opts ...RequestOption) (*Content, error) {
	ep, err := c.api.getContentByIDEndpoint(id)
	if err != nil {
		return nil, fmt.Errorf("confluence: couldn't get content endpoint: %w", err)
	}

	body, err := c.api.request(ctx, http.MethodPut, ep, content, opts)
	if err != nil {
		return nil, fmt.Errorf("confluence: couldn't update content %s: %w", id, err)
	}

	return decode[Content](body, "content")
}

// DeleteContent moves content item id to the trash:
// https://developer.atlassian.com/cloud/confluence/rest/v1/api-group-content/#api-wiki-rest-api-content-id-delete
func (c *ContentAPI) DeleteContent(ctx context.Context, id string, opts ...RequestOption) error {
	ep, err := c.api.getContentByIDEndpoint(id)
	if err != nil {
		return fmt.Errorf("confluence: couldn't get content endpoint: %w", err)
	}

	if _, err := c.api.request(ctx, http.MethodDelete, ep, nil, opts); err != nil {
		return fmt.Errorf("confluence: couldn't delete content %s: %w", id, err)
	}

	return nil
}

// GetContent lists content in the bound space:
// https://developer.atlassian.com/cloud/confluence/rest/v1/api-group-content/#api-wiki-rest-api-content-get
//
// Pass WithQueryParams to send parameters GetContentQuery doesn't know about, or to override the
// space key.
func (c *ContentAPI) GetContent(ctx context.Context, query GetContentQuery, opts ...RequestOption) (*ContentArray, error) {
	ep, err := c.api.getContentEndpoint(contentListQuery{
		GetContentQuery: query,
		SpaceKey:        c.spaceKey,
	})
	if err != nil {
		return nil, fmt.Errorf("confluence: couldn't get content endpoint: %w", err)
	}

	body, err := c.api.request(ctx, http.MethodGet, ep, nil, opts)
	if err != nil {
		return nil, fmt.Errorf("confluence: couldn't list content: %w", err)
	}

	return decode[ContentArray](body, "content array")
}

// GetContentByID fetches one content item:
// https://developer.atlassian.com/cloud/confluence/rest/v1/api-group-content/#api-wiki-rest-api-content-id-get
func (c *ContentAPI) GetContentByID(ctx context.Context, id string, opts ...RequestOption) (*Content, error) {
	ep, err := c.api.getContentByIDEndpoint(id)
	if err != nil {
		return nil, fmt.Errorf("confluence: couldn't get content endpoint: %w", err)
	}

	body, err := c.api.request(ctx, http.MethodGet, ep, nil, opts)
	if err != nil {
		return nil, fmt.Errorf("confluence: couldn't perform request: %w", err)
	}

	return decode[Content](body, "content")
}
