package main

import (
	"fmt"
	"io"
	"os"

	"github.com/hack-pad/brief/dom"
	"github.com/hack-pad/brief/internal/log"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var logLevel string

	rootCmd := &cobra.Command{
		Use:   "brief",
		Short: "Query HTML documents and trace delegated events",
		Long: `brief loads an HTML file into an in-memory document.

Use it to check which elements a selector collects and which listeners
a delegated event reaches before wiring them into an application.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			log.SetOutput(cmd.ErrOrStderr())
			if logLevel == "" {
				return nil
			}
			level := log.ParseLevel(logLevel)
			if !level.Valid() {
				return errors.Errorf("unknown log level %q", logLevel)
			}
			log.SetLevel(level)
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, log, warn, error)")

	rootCmd.AddCommand(
		queryCmd(),
		traceCmd(),
	)
	return rootCmd
}

func loadDocument(path string) (*dom.Document, error) {
	var r io.Reader
	if path == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrap(err, "Failed opening document")
		}
		defer f.Close()
		r = f
	}
	return dom.Parse(r, dom.WithLayout(dom.AttributeLayout))
}
