package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/nhle/whop-starter/internal/credential"
)

func newCredentialsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "credentials",
		Short: "Manage the Whop API key in the system keyring",
	}

	set := &cobra.Command{
		Use:   "set [api-key]",
		Short: "Store the Whop API key",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var key string
			if len(args) == 1 {
				key = args[0]
			} else {
				err := huh.NewInput().
					Title("Whop API key").
					EchoMode(huh.EchoModePassword).
					Value(&key).
					Run()
				if err != nil {
					return err
				}
			}
			key = strings.TrimSpace(key)
			if key == "" {
				return fmt.Errorf("api key is empty")
			}

			vault, err := credential.Open()
			if err != nil {
				return err
			}
			if err := vault.Set(credential.APIKeyName, key); err != nil {
				return err
			}
			cmd.Println("api key stored")
			return nil
		},
	}

	del := &cobra.Command{
		Use:   "delete",
		Short: "Remove the stored Whop API key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			vault, err := credential.Open()
			if err != nil {
				return err
			}
			if err := vault.Delete(credential.APIKeyName); err != nil && !credential.IsNotFound(err) {
				return err
			}
			cmd.Println("api key removed")
			return nil
		},
	}

	cmd.AddCommand(set, del)
	return cmd
}
