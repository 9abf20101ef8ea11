// Command mcuctl runs uploads and audit log maintenance without the HTTP
// server, against the same database and log directory.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type rootOptions struct {
	configPath string
	actor      string
}

func newRootCmd() *cobra.Command {
	var opts rootOptions

	cmd := &cobra.Command{
		Use:           "mcuctl",
		Short:         "Offline imports and upload log maintenance for mini-mcu",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to config file (default: ./config/config.yaml)")
	cmd.PersistentFlags().StringVar(&opts.actor, "actor", "mcuctl", "Actor recorded in audit logs")

	cmd.AddCommand(newImportCmd(&opts), newLogsCmd(&opts))
	return cmd
}
