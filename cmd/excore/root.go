package main

import (
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/next-trace/scg-exception/config"
	"github.com/next-trace/scg-exception/logging"
)

// app carries the state shared by every subcommand once the root has run.
type app struct {
	out    io.Writer
	errOut io.Writer

	cfgFile  string
	logLevel string

	cfg    *config.Config
	logger zerolog.Logger
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut, logger: zerolog.Nop()}

	cmd := &cobra.Command{
		Use:   "excore",
		Short: "Build structured error reports",
		Long: `excore turns error chains into structured reports.

Commands:
  build  - build a report from a message, its causes and classification codes
  scan   - print the correlation id embedded in each argument`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	cmd.SetOut(out)
	cmd.SetErr(errOut)

	cmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default: ./excore.yaml)")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level override (trace, debug, info, warn, error)")

	cmd.AddCommand(newBuildCmd(a), newScanCmd(a))

	return cmd
}

func (a *app) setup(_ *cobra.Command, _ []string) error {
	var opts []config.Option
	if a.cfgFile != "" {
		opts = append(opts, config.WithConfigFile(a.cfgFile))
	}

	cfg, err := config.Load(opts...)
	if err != nil {
		return err
	}

	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel

		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	a.cfg = cfg
	a.logger = logging.New(a.errOut, cfg.Log.Logging()).With().Str("application", cfg.Application).Logger()

	return nil
}
