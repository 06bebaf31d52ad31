package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/dqi/internal/app"
	"github.com/abhisek/dqi/internal/screens/admin"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Browse and export survey submissions",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		deps, err := newClientDeps(cfg)
		if err != nil {
			return err
		}
		defer deps.close()

		root := admin.New(admin.Deps{
			Lister:   deps.client,
			Exporter: deps.exporter,
			Log:      deps.log,
			Timeout:  cfg.API.Timeout,
		})
		if err := app.Run(root); err != nil {
			return fmt.Errorf("run admin: %w", err)
		}
		return nil
	},
}
