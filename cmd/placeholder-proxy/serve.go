package main

import (
	"github.com/Sternrassler/placeholder-proxy/internal/config"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

func newServeCmd(cfgFile *string) *cobra.Command {
	v := config.New()

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := config.Load(v, *cfgFile)
			if err != nil {
				return err
			}
			fx.New(appOptions(cfg)...).Run()
			return nil
		},
	}

	if err := config.BindFlags(cmd, v); err != nil {
		panic(err)
	}
	return cmd
}
