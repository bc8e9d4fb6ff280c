package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"budgetwise/internal/cli"
	"budgetwise/internal/config"
	"budgetwise/internal/log"
)

var version = "dev"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "budgetwise",
		Short:         "Personal finance dashboard",
		Long:          "budgetwise serves a read-only spending dashboard over a fixed dataset and prints the same pages to the terminal.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("env-file", ".env", "dotenv file to load before reading configuration")

	root.AddCommand(serveCmd())
	root.AddCommand(reportCmd())
	root.AddCommand(migrateCmd())
	root.AddCommand(versionCmd())
	return root
}

func main() {
	ctx, stop := cli.SignalContext(context.Background())
	err := newRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// bootstrap loads the env file named by --env-file, then validated config
// and the logger built from it. Logs go to stderr so command output on
// stdout stays clean.
func bootstrap(cmd *cobra.Command) (*config.Config, *log.Logger, error) {
	envFile, _ := cmd.Flags().GetString("env-file")
	cli.LoadEnvFile(envFile)

	cfg, err := cli.LoadAndValidateConfig()
	if err != nil {
		return nil, nil, err
	}
	logger, err := cli.SetupLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "budgetwise %s\n", version)
		},
	}
}
