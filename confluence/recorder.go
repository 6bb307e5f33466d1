package confluence

import (
	"fmt"
	"net/http"

	"gopkg.in/dnaeon/go-vcr.v3/cassette"
	"gopkg.in/dnaeon/go-vcr.v3/recorder"
)

// NewRecorder returns a go-vcr recorder which records (or replays) HTTP interactions in
// cassetteName.yaml.  Authorization headers are never written to the cassette.  Callers must
// Stop() the recorder to flush it to disk.
func NewRecorder(cassetteName string, mode recorder.Mode, realTransport http.RoundTripper) (*recorder.Recorder, error) {
	if realTransport == nil {
		realTransport = http.DefaultTransport
	}

	r, err := recorder.NewWithOptions(&recorder.Options{
		CassetteName:       cassetteName,
		Mode:               mode,
		SkipRequestLatency: true,
		RealTransport:      realTransport,
	})
	if err != nil {
		return nil, fmt.Errorf("confluence: couldn't set up go-vcr recording: %w", err)
	}

	r.AddHook(func(i *cassette.Interaction) error {
		delete(i.Request.Headers, "Authorization")
		return nil
	}, recorder.AfterCaptureHook)
	r.SetReplayableInteractions(true)

	return r, nil
}
