package main

import (
	"github.com/spf13/cobra"

	"github.com/nhle/whop-starter/internal/model"
)

func newConfigCmd(configPath *string, load func() (*model.AppConfig, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or write the configuration file",
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the effective configuration (without the API key) to the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			if err := model.SaveConfig(*configPath, cfg); err != nil {
				return err
			}
			cmd.Printf("wrote %s\n", *configPath)
			return nil
		},
	}

	cmd.AddCommand(initCmd)
	return cmd
}
