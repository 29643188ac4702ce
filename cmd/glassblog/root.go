package main

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/eringen/glassblog"
)

type ctxKey string

const configKey ctxKey = "config"

// newRootCmd constructs the root command. Config is resolved once before any
// subcommand runs and stashed in the command context.
func newRootCmd() *cobra.Command {
	var cfgPath string

	cmd := &cobra.Command{
		Use:           "glassblog",
		Short:         "glassblog - a glass-styled blog served from a JSON posts file",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			v := viper.New()
			if cfgPath != "" {
				v.SetConfigFile(cfgPath)
			}
			cfg, err := glassblog.LoadConfig(v)
			if err != nil {
				return err
			}
			cmd.SetContext(context.WithValue(cmd.Context(), configKey, cfg))
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file (default ./config.yaml)")

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newShowCmd())
	cmd.AddCommand(newRenderCmd())
	cmd.AddCommand(newNewCmd())
	cmd.AddCommand(newVersionCmd())

	cmd.Run = func(cmd *cobra.Command, args []string) { _ = cmd.Help() }

	return cmd
}

func siteConfig(cmd *cobra.Command) glassblog.SiteConfig {
	cfg, _ := cmd.Context().Value(configKey).(glassblog.SiteConfig)
	return cfg
}

// postCache builds a cache over the configured data source for one-shot
// commands.
func postCache(cmd *cobra.Command) *glassblog.PostCache {
	cfg := siteConfig(cmd)
	return glassblog.NewPostCache(glassblog.NewSource(cfg.DataSource), cfg.CacheTTL)
}
