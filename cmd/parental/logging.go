package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

func newLogger(w io.Writer) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix: "parental",
	})
}

func setLevel(logger *log.Logger, level string, verbose bool) error {
	if verbose {
		logger.SetLevel(log.DebugLevel)

		return nil
	}

	lvl, err := log.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("unable to parse log level: %w", err)
	}

	logger.SetLevel(lvl)

	return nil
}
