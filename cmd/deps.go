package cmd

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/dqi/internal/config"
	"github.com/abhisek/dqi/internal/export"
	"github.com/abhisek/dqi/internal/logging"
	"github.com/abhisek/dqi/internal/questionbank"
	"github.com/abhisek/dqi/internal/surveyapi"
	"github.com/abhisek/dqi/internal/surveytree"
)

// surveyTree returns the configured tree, or the embedded default.
func surveyTree(cfg config.Config) (*surveytree.Tree, error) {
	if cfg.TreeFile == "" {
		return surveytree.Default(), nil
	}
	return surveytree.LoadFile(cfg.TreeFile)
}

// questionSource returns the configured question bank, or the embedded one.
func questionSource(cfg config.Config) questionbank.Source {
	if cfg.QuestionsDir == "" {
		return questionbank.Embedded()
	}
	return questionbank.Dir(cfg.QuestionsDir)
}

// clientDeps are shared by the commands that talk to the survey service.
type clientDeps struct {
	log      *zap.Logger
	client   *surveyapi.Client
	exporter *export.Exporter
}

// newClientDeps validates cfg and builds a file logger, the API client,
// and the workbook exporter.
func newClientDeps(cfg config.Config) (*clientDeps, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	log, err := logging.NewFile(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	client := surveyapi.NewClient(
		surveyapi.WithBaseURL(cfg.API.BaseURL),
		surveyapi.WithTimeout(cfg.API.Timeout),
	)
	return &clientDeps{
		log:      log,
		client:   client,
		exporter: export.NewExporter(cfg.ExportDir, client, export.WithLogger(log)),
	}, nil
}

func (d *clientDeps) close() {
	_ = d.log.Sync()
}
