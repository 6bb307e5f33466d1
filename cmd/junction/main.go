/*
Copyright © 2024 paul <paul@denknerd.org>
*/

package main

import (
	"os"

	"github.com/toothbrush/junction/internal/logging"
)

func main() {
	if err := Execute(); err != nil {
		l := logging.New(os.Stderr, Debug)
		l.Fatal().Err(err).Msg("junction failed")
	}
}
