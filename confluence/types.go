package confluence

// See https://developer.atlassian.com/cloud/confluence/rest/v1/api-group-users/#api-wiki-rest-api-user-get
type User struct {
	Type        string `json:"type"`
	Username    string `json:"username"`
	UserKey     string `json:"userKey"`
	AccountID   string `json:"accountId"`
	AccountType string `json:"accountType"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
}

// Content is a page, blogpost, comment or attachment.  Only pages are really exercised.
//
// See https://developer.atlassian.com/cloud/confluence/rest/v1/api-group-content/#api-wiki-rest-api-content-id-get
type Content struct {
	ID     string `json:"id"`
	Type   string `json:"type"`
	Status string `json:"status"`
	Title  string `json:"title"`

	Space     *Space     `json:"space,omitempty"`
	Body      *Body      `json:"body,omitempty"`
	Version   *Version   `json:"version,omitempty"`
	Ancestors []Ancestor `json:"ancestors,omitempty"`

	Links Links `json:"_links"`
}

// ContentArray is one page of results of a content listing.
type ContentArray struct {
	Results []Content `json:"results"`
	Start   int       `json:"start"`
	Limit   int       `json:"limit"`
	Size    int       `json:"size"`

	Links Links `json:"_links"`
}

// HasMore reports whether the server advertised a next page.
func (c ContentArray) HasMore() bool {
	return c.Links.Next != ""
}

// CreateContent is the request body for:
// https://developer.atlassian.com/cloud/confluence/rest/v1/api-group-content/#api-wiki-rest-api-content-post
type CreateContent struct {
	Type      string     `json:"type"`
	Title     string     `json:"title"`
	Space     SpaceRef   `json:"space"`
	Status    string     `json:"status,omitempty"`
	Ancestors []Ancestor `json:"ancestors,omitempty"`
	Body      Body       `json:"body"`
}

// UpdateContent is the request body for:
// https://developer.atlassian.com/cloud/confluence/rest/v1/api-group-content/#api-wiki-rest-api-content-id-put
//
// Version.Number must be the current version plus one, otherwise Confluence answers 409.
type UpdateContent struct {
	ID        string        `json:"id,omitempty"`
	Type      string        `json:"type"`
	Title     string        `json:"title"`
	Space     *SpaceRef     `json:"space,omitempty"`
	Status    string        `json:"status,omitempty"`
	Ancestors []Ancestor    `json:"ancestors,omitempty"`
	Body      *Body         `json:"body,omitempty"`
	Version   VersionUpdate `json:"version"`
}

type Space struct {
	ID   int    `json:"id,omitempty"`
	Key  string `json:"key,omitempty"`
	Name string `json:"name,omitempty"`
	Type string `json:"type,omitempty"`
}

// SpaceRef is how create and update payloads refer to a space.
type SpaceRef struct {
	Key string `json:"key"`
}

type Ancestor struct {
	ID string `json:"id"`
}

// Version defines the content version number
// the version number is used for updating content
type Version struct {
	Number    int    `json:"number"`
	When      string `json:"when,omitempty"`
	Message   string `json:"message,omitempty"`
	MinorEdit bool   `json:"minorEdit"`
	By        *User  `json:"by,omitempty"`
}

type VersionUpdate struct {
	Number    int    `json:"number"`
	Message   string `json:"message,omitempty"`
	MinorEdit bool   `json:"minorEdit,omitempty"`
}

// Body holds the storage information
type Body struct {
	Storage    *Storage `json:"storage,omitempty"`
	View       *Storage `json:"view,omitempty"`
	ExportView *Storage `json:"export_view,omitempty"`
}

// Storage defines the storage information
type Storage struct {
	Value          string `json:"value"`
	Representation string `json:"representation"`
}

// StorageBody wraps XHTML in storage representation, ready for a create or update payload.
func StorageBody(xhtml string) Body {
	return Body{
		Storage: &Storage{
			Value:          xhtml,
			Representation: "storage",
		},
	}
}

type Links struct {
	Base   string `json:"base,omitempty"`
	Self   string `json:"self,omitempty"`
	WebUI  string `json:"webui,omitempty"`
	TinyUI string `json:"tinyui,omitempty"`
	Next   string `json:"next,omitempty"`
}
