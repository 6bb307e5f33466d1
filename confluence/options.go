package confluence

import (
	"net/http"
	"net/url"
	"time"
)

// RequestOption tweaks a single request.  Options are applied after the client has set up the
// request, so they win over anything the client decided.
type RequestOption func(*requestOptions)

type requestOptions struct {
	header  http.Header
	query   url.Values
	timeout time.Duration
}

// WithHeader sets a request header.  Setting Authorization this way stops BearerAuth from adding
// its own.
func WithHeader(key, value string) RequestOption {
	return func(o *requestOptions) {
		if o.header == nil {
			o.header = make(http.Header)
		}
		o.header.Set(key, value)
	}
}

// WithQueryParams merges extra query parameters into the request URL, replacing any the client
// set under the same key.
func WithQueryParams(params map[string]string) RequestOption {
	return func(o *requestOptions) {
		if o.query == nil {
			o.query = make(url.Values)
		}
		for k, v := range params {
			o.query.Set(k, v)
		}
	}
}

// WithTimeout bounds the whole request, including reading the response body.
func WithTimeout(d time.Duration) RequestOption {
	return func(o *requestOptions) {
		o.timeout = d
	}
}

func collectOptions(opts []RequestOption) requestOptions {
	var o requestOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}
