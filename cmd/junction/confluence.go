/*
Copyright © 2024 paul <paul@denknerd.org>
*/

package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/toothbrush/junction/confluence"
	"github.com/toothbrush/junction/internal/cliopts"
	"golang.org/x/term"
	"gopkg.in/dnaeon/go-vcr.v3/recorder"
)

const cassetteName = "fixtures/junction"

var tokenOption = cliopts.NotRequiredIf{
	Name:         "auth-token",
	Alternatives: []string{"auth-token-cmd"},
	Required:     true,
	Prompt:       promptForSecret,
}

// vcr is set while a --with-vcr session is recording.
var vcr *recorder.Recorder

func stopRecorder() {
	if vcr == nil {
		return
	}
	if err := vcr.Stop(); err != nil {
		logger.Error().Err(err).Msg("Couldn't save go-vcr cassette")
	}
	vcr = nil
}

func promptForSecret(name string) (string, error) {
	if !isatty.IsTerminal(os.Stdin.Fd()) {
		return "", &cliopts.UsageError{Msg: fmt.Sprintf("no terminal to ask for --%s, pass it or an alternative", name)}
	}

	fmt.Fprintf(os.Stderr, "%s: ", strings.ReplaceAll(name, "-", " "))
	secret, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("junction: couldn't read %s: %w", name, err)
	}
	return strings.TrimSpace(string(secret)), nil
}

func resolveToken(cmd *cobra.Command) (string, error) {
	if err := tokenOption.Validate(cmd.Flags()); err != nil {
		return "", err
	}
	if AuthToken != "" {
		return AuthToken, nil
	}
	if len(AuthTokenCmd) < 1 {
		return "", &cliopts.UsageError{Msg: "please provide --auth-token or --auth-token-cmd"}
	}

	tokenCmdOutput, err := exec.CommandContext(cmd.Context(), AuthTokenCmd[0], AuthTokenCmd[1:]...).Output()
	if err != nil {
		return "", fmt.Errorf("junction: couldn't execute auth-token-cmd '%v': %w", AuthTokenCmd, err)
	}

	token := strings.TrimSpace(strings.Split(string(tokenCmdOutput), "\n")[0])
	if token == "" {
		return "", fmt.Errorf("junction: auth-token-cmd '%v' printed nothing", AuthTokenCmd)
	}
	return token, nil
}

type confluenceSettings struct {
	URL      string `flag:"confluence-url" validate:"required,url"`
	SpaceKey string `flag:"space-key" validate:"required"`
}

func validateSettings(s confluenceSettings) error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return "--" + fld.Tag.Get("flag")
	})

	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return fmt.Errorf("junction: settings validation error: %w", err)
	}
	messages := []string{}
	for _, e := range errs {
		msg := fmt.Sprintf("'%s' failed rule '%s'", e.Field(), e.Tag())
		if e.Value() != nil && e.Value() != "" {
			msg += fmt.Sprintf(", actual: '%v'", e.Value())
		}
		messages = append(messages, msg)
	}
	return &cliopts.UsageError{Msg: strings.Join(messages, "; ")}
}

// newContentAPI builds the Confluence client from flags and config.  With --with-vcr, traffic goes
// through a go-vcr recorder which is stopped by Execute.
func newContentAPI(cmd *cobra.Command) (*confluence.API, *confluence.ContentAPI, error) {
	if err := validateSettings(confluenceSettings{URL: ConfluenceURL, SpaceKey: SpaceKey}); err != nil {
		return nil, nil, err
	}

	token, err := resolveToken(cmd)
	if err != nil {
		return nil, nil, err
	}

	api, err := confluence.NewAPI(ConfluenceURL, token, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("junction: couldn't instantiate Confluence API: %w", err)
	}

	if WithVCR {
		r, err := confluence.NewRecorder(cassetteName, recorder.ModeReplayWithNewEpisodes, api.Client.Transport)
		if err != nil {
			return nil, nil, err
		}
		vcr = r
		api.Client = r.GetDefaultClient()
		logger.Debug().Str("cassette", cassetteName).Msg("Recording with go-vcr")
	}

	return api, confluence.NewContentAPI(api, SpaceKey), nil
}
