package confluence

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// HTTPError is returned for any response outside the 2xx range.
type HTTPError struct {
	Method     string
	URL        string
	StatusCode int
	Status     string

	// Body is the raw response body; Confluence usually explains itself in there.
	Body []byte
}

func (e *HTTPError) Error() string {
	switch e.StatusCode {
	case http.StatusUnauthorized:
		return fmt.Sprintf("authentication failed: %s %s", e.Method, e.URL)
	case http.StatusNotFound:
		return fmt.Sprintf("not found: %s %s", e.Method, e.URL)
	case http.StatusConflict:
		return fmt.Sprintf("conflict (stale version number?): %s %s", e.Method, e.URL)
	case http.StatusServiceUnavailable:
		return fmt.Sprintf("service is not available: %s", e.Status)
	case http.StatusInternalServerError:
		return fmt.Sprintf("internal server error: %s", e.Status)
	}
	return fmt.Sprintf("unexpected HTTP response status: %s: %s %s", e.Status, e.Method, e.URL)
}

// DecodeError means the server answered successfully, but not with what we expected.
type DecodeError struct {
	Target string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("couldn't decode %s from json response: %v", e.Target, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func decode[T any](body []byte, target string) (*T, error) {
	var v T
	if err := json.Unmarshal(body, &v); err != nil {
		return nil, fmt.Errorf("confluence: %w", &DecodeError{Target: target, Err: err})
	}
	return &v, nil
}

// request performs one HTTP round trip.  payload, if not nil, is sent as a JSON body.
func (api *API) request(ctx context.Context, method string, ep *url.URL, payload any, opts []RequestOption) ([]byte, error) {
	o := collectOptions(opts)

	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	target := *ep
	if len(o.query) > 0 {
		q := target.Query()
		for k, vs := range o.query {
			q[k] = vs
		}
		target.RawQuery = q.Encode()
	}

	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("confluence: couldn't encode request body: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return nil, fmt.Errorf("confluence: couldn't instantiate http request: %w", err)
	}

	req.Header.Set("Accept", "application/json, */*")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, vs := range o.header {
		req.Header[k] = vs
	}

	response, err := api.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("confluence: couldn't perform http request: %w", err)
	}
	defer response.Body.Close()

	respBody, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("confluence: couldn't read http response body: %w", err)
	}

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return nil, fmt.Errorf("confluence: %w", &HTTPError{
			Method:     method,
			URL:        req.URL.Redacted(),
			StatusCode: response.StatusCode,
			Status:     response.Status,
			Body:       respBody,
		})
	}

	return respBody, nil
}

// CurrentUser return current user information
func (api *API) CurrentUser(ctx context.Context, opts ...RequestOption) (*User, error) {
	ep, err := api.getCurrentUserEndpoint()
	if err != nil {
		return nil, fmt.Errorf("confluence: couldn't get current user endpoint: %w", err)
	}

	body, err := api.request(ctx, http.MethodGet, ep, nil, opts)
	if err != nil {
		return nil, fmt.Errorf("confluence: couldn't perform request: %w", err)
	}

	return decode[User](body, "user")
}
