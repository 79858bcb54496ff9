package main

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strconv"

	"github.com/atotto/clipboard"
	"github.com/bodgit/parental"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var version = "dev" // set by the linker

type app struct {
	stdout    io.Writer
	logger    *log.Logger
	clipboard func(string) error

	cfgFile string
	verbose bool
	config  config
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{
		stdout:    stdout,
		logger:    newLogger(stderr),
		clipboard: clipboard.WriteAll,
	}
}

func (a *app) derive(args []string) (*parental.MasterKey, error) {
	a.logger.Debug("deriving master key", "serial", args[0], "month", args[1], "day", args[2])

	mk, err := parental.New(args[0], args[1], args[2])
	if err != nil {
		return nil, err
	}

	a.logger.Debug("derived master key", "input", mk.ChecksumInput(), "checksum", hex32(mk.Checksum()), "key", mk.Key())

	return mk, nil
}

func (a *app) runKey(_ *cobra.Command, args []string) error {
	mk, err := a.derive(args)
	if err != nil {
		return err
	}

	key := strconv.Itoa(mk.Key())
	if a.config.Pad {
		key = mk.String()
	}

	if _, err := fmt.Fprintln(a.stdout, key); err != nil {
		return fmt.Errorf("unable to write master key: %w", err)
	}

	if a.config.Copy {
		if err := a.clipboard(key); err != nil {
			a.logger.Warn("unable to copy master key to clipboard", "err", err)
		} else {
			a.logger.Info("copied master key to clipboard")
		}
	}

	return nil
}

func (a *app) runExplain(_ *cobra.Command, args []string) error {
	mk, err := a.derive(args)
	if err != nil {
		return err
	}

	e := explain(mk)

	if a.config.Output == outputYAML {
		return e.writeYAML(a.stdout)
	}

	return e.writeText(a.stdout)
}

func buildVersion() string {
	if version != "dev" {
		return version
	}

	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}

	return version
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parental [flags] SERIAL MONTH DAY",
		Short: "Calculate the master key to reset Nintendo parental controls",
		Long: `Calculates the master key used to reset the parental controls on a
Nintendo console from the 8 digit confirmation number shown on the reset
screen and the month and day set on the console.`,
		Example:       "  parental 54033620 12 26",
		Args:          cobra.ExactArgs(3), //nolint:gomnd
		Version:       buildVersion(),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			c, err := loadConfig(cmd, a.cfgFile)
			if err != nil {
				return err
			}

			a.config = c

			return setLevel(a.logger, c.LogLevel, a.verbose)
		},
		RunE: a.runKey,
	}

	cmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is parental.yaml in the user config directory or .)")
	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	cmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")

	cmd.Flags().Bool("pad", true, "zero-pad the master key to 5 digits")
	cmd.Flags().Bool("copy", false, "copy the master key to the clipboard")

	explainCmd := &cobra.Command{
		Use:   "explain [flags] SERIAL MONTH DAY",
		Short: "Show each step of the master key calculation",
		Args:  cobra.ExactArgs(3), //nolint:gomnd
		RunE:  a.runExplain,
	}
	explainCmd.Flags().StringP("output", "o", outputText, "output format (text, yaml)")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			_, err := fmt.Fprintln(a.stdout, buildVersion())

			return err //nolint:wrapcheck
		},
	}

	cmd.AddCommand(explainCmd, versionCmd)

	return cmd
}

func main() {
	a := newApp(os.Stdout, os.Stderr)

	if err := newRootCmd(a).Execute(); err != nil {
		a.logger.Error(err)
		os.Exit(1)
	}
}
