package confluence

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func TestBearerAuth_SetsHeader(t *testing.T) {
	var seen string
	auth := &BearerAuth{
		Token: "s3cret",
		Base: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			seen = r.Header.Get("Authorization")
			return httptest.NewRecorder().Result(), nil
		}),
		Logger: zerolog.Nop(),
	}

	req := httptest.NewRequest(http.MethodGet, "https://example.com/wiki/rest/api/content", nil)
	_, err := auth.RoundTrip(req)
	require.NoError(t, err)

	assert.Equal(t, "Bearer s3cret", seen)
	assert.Empty(t, req.Header.Get("Authorization"), "caller's request must not be modified")
}

func TestBearerAuth_LeavesExistingHeader(t *testing.T) {
	var logs bytes.Buffer
	auth := &BearerAuth{
		Token:  "s3cret",
		Logger: zerolog.New(&logs).Level(zerolog.DebugLevel),
	}

	req := httptest.NewRequest(http.MethodGet, "https://example.com/", nil)
	req.Header.Set("Authorization", "Basic Zm9vOmJhcg==")
	auth.Authorize(req)

	assert.Equal(t, "Basic Zm9vOmJhcg==", req.Header.Get("Authorization"))
	assert.Contains(t, logs.String(), `"level":"debug"`)
	assert.Contains(t, logs.String(), "Authorization was already present")
}

func TestBearerAuth_NilHeader(t *testing.T) {
	auth := &BearerAuth{Token: "t", Logger: zerolog.Nop()}
	req := &http.Request{}
	auth.Authorize(req)
	assert.Equal(t, "Bearer t", req.Header.Get("Authorization"))
}

func TestNewAPI_BearerOnEveryRequest(t *testing.T) {
	var seen []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"accountId":"abc","displayName":"Paul"}`))
	}))
	defer srv.Close()

	api, err := NewAPI(srv.URL+"/wiki/rest/api", "tok", zerolog.Nop())
	require.NoError(t, err)

	user, err := api.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Paul", user.DisplayName)

	_, err = api.CurrentUser(context.Background(), WithHeader("Authorization", "Bearer other"))
	require.NoError(t, err)

	assert.Equal(t, []string{"Bearer tok", "Bearer other"}, seen)
}

func TestNewAPI_Validation(t *testing.T) {
	_, err := NewAPI("https://example.com/wiki/rest/api", "", zerolog.Nop())
	assert.Error(t, err)

	_, err = NewAPI("", "tok", zerolog.Nop())
	assert.Error(t, err)

	_, err = NewAPIWithClient("not a url", nil)
	assert.Error(t, err)
}
