package confluence

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/dnaeon/go-vcr.v3/recorder"
)

func TestRecorderStripsAuthorization(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer s3cret", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(pageJSON))
	}))
	defer srv.Close()

	cassetteName := filepath.Join(t.TempDir(), "content")
	r, err := NewRecorder(cassetteName, recorder.ModeRecordOnly, http.DefaultTransport)
	require.NoError(t, err)

	client := &http.Client{
		Transport: &BearerAuth{Token: "s3cret", Base: r, Logger: zerolog.Nop()},
	}
	api, err := NewAPIWithClient(srv.URL+"/wiki/rest/api", client)
	require.NoError(t, err)

	content, err := NewContentAPI(api, "DOCS").GetContentByID(context.Background(), "123")
	require.NoError(t, err)
	assert.Equal(t, "Release notes", content.Title)

	require.NoError(t, r.Stop())

	recorded, err := os.ReadFile(cassetteName + ".yaml")
	require.NoError(t, err)
	assert.Contains(t, string(recorded), "/wiki/rest/api/content/123")
	assert.NotContains(t, string(recorded), "s3cret")
}
