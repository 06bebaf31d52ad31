package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/dqi/internal/app"
	"github.com/abhisek/dqi/internal/completeness"
	"github.com/abhisek/dqi/internal/questionbank"
	"github.com/abhisek/dqi/internal/screens/employee"
	"github.com/abhisek/dqi/internal/screens/survey"
	"github.com/abhisek/dqi/internal/session"
)

// runSurvey builds dependencies and launches the survey TUI.
func runSurvey(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	deps, err := newClientDeps(cfg)
	if err != nil {
		return err
	}
	defer deps.close()

	tree, err := surveyTree(cfg)
	if err != nil {
		return err
	}
	questions := questionbank.NewCache(questionSource(cfg))
	state := session.NewState(tree, time.Now())

	deps.log.Info("survey session started",
		zap.String("session_id", state.ID),
		zap.String("api_url", deps.client.BaseURL()),
		zap.Strings("datasets", tree.DatasetNames()),
	)

	root := survey.New(state, survey.Deps{
		Questions: questions,
		Validator: completeness.New(tree, questions, deps.log),
		Employee: employee.Deps{
			Submitter: deps.client,
			Exporter:  deps.exporter,
			Log:       deps.log,
			Timeout:   cfg.API.Timeout,
		},
		Log:     deps.log,
		Timeout: cfg.API.Timeout,
	})
	if err := app.Run(root); err != nil {
		return fmt.Errorf("run survey: %w", err)
	}
	return nil
}
