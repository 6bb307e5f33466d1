/*
Copyright © 2024 paul <paul@denknerd.org>
*/

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"
)

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Output current config",
	Long: `
Is something not working for you?  Have a look whether your config is as you expect.
`,
	Args: cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		parsed, err := yaml.Marshal(ParsedConfig)
		if err != nil {
			return fmt.Errorf("config: couldn't render parsed config: %w", err)
		}

		// Note, you can only talk about persistent flags here.  Command-specific ones won't be
		// visible.
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Dump current config state:\n\n")
		fmt.Fprintf(out, "  Config file: %s\n", ConfigActual)
		fmt.Fprintf(out, "  Debug: %v\n", Debug)
		fmt.Fprintf(out, "  WithVCR: %v\n", WithVCR)
		fmt.Fprintln(out)
		fmt.Fprintf(out, "  Parsed YAML:\n%s\n", parsed)
		fmt.Fprintf(out, "  ConfluenceURL: %s\n", ConfluenceURL)
		fmt.Fprintf(out, "  SpaceKey: %s\n", SpaceKey)
		fmt.Fprintf(out, "  AuthToken: %s\n", redacted(AuthToken))
		fmt.Fprintf(out, "  AuthTokenCmd: %v\n", AuthTokenCmd)
		return nil
	},
}

func redacted(secret string) string {
	if secret == "" {
		return "(unset)"
	}
	return "(set)"
}

func init() {
	configCmd.AddCommand(configShowCmd)
}
