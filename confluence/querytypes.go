package confluence

// DefaultLimit is the page size used when GetContentQuery.Limit is left at zero.
const DefaultLimit = 25

// GetContentQuery defines the query parameters for:
// https://developer.atlassian.com/cloud/confluence/rest/v1/api-group-content/#api-wiki-rest-api-content-get
//
// The space key is not part of the query: ContentAPI adds the one it is bound to.
type GetContentQuery struct {
	// Filter the results to content based on...
	Type       string `url:"type,omitempty"`       // its type: page, blogpost
	Title      string `url:"title,omitempty"`      // its title; required when type is page
	Status     string `url:"status,omitempty"`     // its status: current, trashed, draft, any
	PostingDay string `url:"postingDay,omitempty"` // its posting day, yyyy-mm-dd; blogposts only
	Expand     string `url:"expand,omitempty"`     // comma separated properties to expand, e.g. "version,body.storage"
	Trigger    string `url:"trigger,omitempty"`    // e.g. "viewed", to record a page view

	Start int `url:"start"` // offset of the first item in the results
	Limit int `url:"limit"` // page limit; default 25
}

// contentListQuery is what actually gets encoded onto the wire.
type contentListQuery struct {
	GetContentQuery
	SpaceKey string `url:"spaceKey,omitempty"`
}
