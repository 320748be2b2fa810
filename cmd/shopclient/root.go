package main

import (
	"fmt"
	"os"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"
)

const (
	outputJSON  = "json"
	outputTable = "table"
)

// rootFlags are shared by every subcommand.
type rootFlags struct {
	configPath string
	verbose    bool
	output     string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "shopclient",
		Short:         "Read product and collection listings of a sales channel",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			switch flags.output {
			case outputJSON, outputTable:
				return nil
			default:
				return fmt.Errorf("unknown output format %q", flags.output)
			}
		},
	}
	cmd.Version = version

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "path to the YAML config file")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "log requests and cache activity to stderr")
	pf.StringVarP(&flags.output, "output", "o", outputTable, "output format: json or table")

	cmd.AddCommand(newProductsCmd(flags))
	cmd.AddCommand(newCollectionsCmd(flags))
	return cmd
}

// newLogger writes logfmt to stderr; debug lines only show up with --verbose.
func newLogger(verbose bool) log.Logger {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	logger = log.With(logger, "ts", log.DefaultTimestampUTC)
	if verbose {
		return level.NewFilter(logger, level.AllowDebug())
	}
	return level.NewFilter(logger, level.AllowInfo())
}
