// Command facultyctl runs maintenance tasks against the data directory:
// checking the collection files, repairing records orphaned by interrupted
// writes and loading sample data.
package main

import (
	"os"

	"github.com/rs/zerolog/log"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Error().Err(err).Msg("facultyctl failed")
		os.Exit(1)
	}
}
