package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/coursehub/internal/client/cli"
	"github.com/dmitrijs2005/coursehub/internal/client/config"
	"github.com/dmitrijs2005/coursehub/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var version = "dev"

func newRootCmd() (*cobra.Command, error) {
	v := viper.New()
	cmd := &cobra.Command{
		Use:           "coursehub",
		Short:         "Interactive client for the coursehub backend",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}

			log, err := logging.New(cfg.LogBackend, cfg.LogLevel, os.Stderr)
			if err != nil {
				return err
			}
			if s, ok := log.(interface{ Sync() error }); ok {
				defer func() { _ = s.Sync() }()
			}

			app, err := cli.NewApp(cmd.Context(), cfg, version, log)
			if err != nil {
				return err
			}
			app.Run(cmd.Context())
			return nil
		},
	}
	if err := config.BindFlags(cmd.Flags(), v); err != nil {
		return nil, err
	}
	return cmd, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd, err := newRootCmd()
	if err == nil {
		err = cmd.ExecuteContext(ctx)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
