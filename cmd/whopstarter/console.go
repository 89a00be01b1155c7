package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/nhle/whop-starter/internal/app"
	"github.com/nhle/whop-starter/internal/model"
)

func newConsoleCmd(load func() (*model.AppConfig, error)) *cobra.Command {
	var scope app.Scope

	cmd := &cobra.Command{
		Use:   "console",
		Short: "Browse and edit one user's counter and todos in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			if err := app.PromptScope(&scope); err != nil {
				return err
			}

			db, err := openStore(cmd.Context(), cfg.Database)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			p := tea.NewProgram(app.New(db, scope), tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("running console: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&scope.ExperienceID, "experience", "", "experience id (exp_...)")
	cmd.Flags().StringVar(&scope.UserID, "user", "", "user id")
	return cmd
}
