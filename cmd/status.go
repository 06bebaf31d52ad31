package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/dqi/internal/surveyapi"
	"github.com/abhisek/dqi/internal/versioncheck"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check that the survey service is reachable and compatible",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		client := surveyapi.NewClient(
			surveyapi.WithBaseURL(cfg.API.BaseURL),
			surveyapi.WithTimeout(cfg.API.Timeout),
		)

		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.API.Timeout)
		defer cancel()

		out := cmd.OutOrStdout()
		res, err := versioncheck.NewChecker(client).Check(ctx, &versioncheck.CheckInput{Version: version})
		if res != nil {
			fmt.Fprintf(out, "%s at %s (version %s)\n", res.Message, client.BaseURL(), res.ServiceVersion)
		}
		switch {
		case errors.Is(err, versioncheck.ErrDevBuild):
			fmt.Fprintln(out, "Development build: version compatibility not checked.")
			return nil
		case err != nil:
			return err
		case !res.Compatible:
			return fmt.Errorf("client %s is incompatible with service %s", res.ClientVersion, res.ServiceVersion)
		case res.UpdateAvailable:
			fmt.Fprintf(out, "A newer client (%s) is available.\n", res.ServiceVersion)
		default:
			fmt.Fprintln(out, "Client is up to date.")
		}
		return nil
	},
}
