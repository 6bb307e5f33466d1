/*
Copyright © 2024 paul <paul@denknerd.org>
*/

package main

import (
	"errors"
	"fmt"
	"os"
	"reflect"

	"github.com/fatih/structs"
	"github.com/mitchellh/go-homedir"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/toothbrush/junction/internal/cliopts"
	"github.com/toothbrush/junction/internal/logging"
	"gopkg.in/yaml.v2"
)

const defaultConfigPath = "~/.config/junction.yaml"

var (
	// Store the result of binding cobra flags
	Config       string
	ConfigActual string
	Debug        bool
	WithVCR      bool

	ConfluenceURL string
	SpaceKey      string

	AuthToken string
	// Command to run to retrieve API Personal Access Token
	AuthTokenCmd []string

	ParsedConfig YamlConfig

	logger = zerolog.Nop()
)

var rootCmd = &cobra.Command{
	Use:   "junction",
	Short: "Publish markdown from a git branch to Confluence",
	Long: `
Keep a Confluence space in step with the markdown files in a git repository.  junction replays the
commits on a branch since a known commit, and creates, updates, renames or deletes the matching
Confluence pages.
`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := initializeConfig(cmd); err != nil {
			return fmt.Errorf("junction: failed to initialise config: %w", err)
		}
		logger = logging.New(os.Stderr, Debug)
		logger.Debug().Str("config", ConfigActual).Msg("Loaded config")
		return nil
	},
}

func init() {
	// Define cobra flags, the default value has the lowest (least significant) precedence
	rootCmd.PersistentFlags().StringVar(&Config, "config", "", "config file location (default: "+defaultConfigPath+", respects JUNCTION_CONFIG)")
	rootCmd.PersistentFlags().BoolVar(&Debug, "debug", false, "display debug output")
	rootCmd.PersistentFlags().BoolVar(&WithVCR, "with-vcr", false, "use go-vcr to record and replay Confluence responses")
	rootCmd.PersistentFlags().StringVar(&ConfluenceURL, "confluence-url", "", "Confluence REST API root, e.g. https://ORG.atlassian.net/wiki/rest/api")
	rootCmd.PersistentFlags().StringVar(&SpaceKey, "space-key", "", "key of the Confluence space to work in")
	rootCmd.PersistentFlags().StringVar(&AuthToken, "auth-token", "", "Atlassian personal access token")
	rootCmd.PersistentFlags().StringSliceVar(&AuthTokenCmd, "auth-token-cmd", []string{}, "shell command to retrieve Atlassian auth token")

	if err := tokenOption.Annotate(rootCmd.PersistentFlags()); err != nil {
		panic(err)
	}
}

// configPath works out which config file to read.  explicit is false when we fell back to the
// default location, in which case it's fine for the file not to exist.
func configPath(flagValue string) (path string, explicit bool, err error) {
	path, explicit = flagValue, true
	if path == "" {
		// Did the user provide an ENV?
		path = os.Getenv("JUNCTION_CONFIG")
	}
	if path == "" {
		path, explicit = defaultConfigPath, false
	}

	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", false, fmt.Errorf("junction: unable to expand homedir: %w", err)
	}
	return expanded, explicit, nil
}

func readConfig(path string, explicit bool) (YamlConfig, error) {
	var parsed YamlConfig

	yamlFile, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) && !explicit {
		return parsed, nil
	}
	if err != nil {
		return parsed, fmt.Errorf("junction: error reading config file: %w", err)
	}

	// I'd like to bark if a user sets a flag we don't recognise:
	if err := yaml.UnmarshalStrict(yamlFile, &parsed); err != nil {
		return parsed, fmt.Errorf("junction: issue parsing config file %s: %w", path, err)
	}
	return parsed, nil
}

func initializeConfig(cmd *cobra.Command) error {
	path, explicit, err := configPath(Config)
	if err != nil {
		return err
	}
	ConfigActual = path

	ParsedConfig, err = readConfig(path, explicit)
	if err != nil {
		return err
	}

	if err := bindFlags(cmd, ParsedConfig); err != nil {
		return fmt.Errorf("junction: failed to bind flags: %w", err)
	}

	return nil
}

type YamlConfig struct {
	WithVCR *bool `yaml:"with-vcr"`
	Debug   *bool `yaml:"debug"`
	DryRun  *bool `yaml:"dry-run"`

	ConfluenceURL string   `yaml:"confluence-url"`
	SpaceKey      string   `yaml:"space-key"`
	AuthTokenCmd  []string `yaml:"auth-token-cmd"`

	Repo        string `yaml:"repo"`
	Branch      string `yaml:"branch"`
	DocsDir     string `yaml:"docs-dir"`
	ParentID    string `yaml:"parent-id"`
	ContentType string `yaml:"type"`
}

// Flags which must not be filled in from the config file when the user gave one of their
// mutually exclusive alternatives.
var exclusiveFlags = map[string][]string{
	tokenOption.Alternatives[0]: {tokenOption.Name},
}

// Copy config file values into every flag of cmd the user didn't set explicitly.
func bindFlags(cmd *cobra.Command, v YamlConfig) error {
	for _, field := range structs.Fields(v) {
		key := field.Tag("yaml")
		if key == "" {
			return fmt.Errorf("junction: could not retrieve struct tag 'yaml'")
		}
		if flag := cmd.Flag(key); flag == nil {
			// the flag is unknown to this command, e.g. `history root` doesn't take --docs-dir.
			continue
		}
		if cmd.Flags().Changed(key) || alternativeChanged(cmd, key) {
			continue
		}

		switch field.Kind() {
		case reflect.Ptr:
			// YamlConfig only uses pointers for bools.
			b, ok := field.Value().(*bool)
			if !ok {
				return fmt.Errorf("junction: found unrecognised field: %+v", field.Name())
			}
			if b != nil {
				if err := cmd.Flags().Set(key, fmt.Sprintf("%v", *b)); err != nil {
					return fmt.Errorf("junction: couldn't set --%s: %w", key, err)
				}
			}

		case reflect.String:
			s, ok := field.Value().(string)
			if !ok {
				return fmt.Errorf("junction: found unrecognised field: %+v", field.Name())
			}
			if s != "" {
				if err := cmd.Flags().Set(key, s); err != nil {
					return fmt.Errorf("junction: couldn't set --%s: %w", key, err)
				}
			}

		case reflect.Slice:
			ss, ok := field.Value().([]string)
			if !ok {
				return fmt.Errorf("junction: found unrecognised field: %+v", field.Name())
			}
			for _, s := range ss {
				// yes, repeatedly calling Set() appends to the slice...
				if err := cmd.Flags().Set(key, s); err != nil {
					return fmt.Errorf("junction: couldn't set --%s: %w", key, err)
				}
			}

		default:
			return fmt.Errorf("junction: found unrecognised field: %+v", field.Name())
		}
	}

	return nil
}

func alternativeChanged(cmd *cobra.Command, key string) bool {
	for _, alt := range exclusiveFlags[key] {
		if cmd.Flags().Changed(alt) {
			return true
		}
	}
	return false
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	defer stopRecorder()

	cmd, err := rootCmd.ExecuteC()
	if err != nil {
		var usage *cliopts.UsageError
		if errors.As(err, &usage) {
			cmd.PrintErrln(cmd.UsageString())
		}
		return fmt.Errorf("junction: execution error: %w", err)
	}

	return nil
}
