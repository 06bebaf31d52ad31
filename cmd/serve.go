package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/dqi/internal/logging"
	"github.com/abhisek/dqi/internal/questionbank"
	"github.com/abhisek/dqi/internal/server"
	"github.com/abhisek/dqi/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the survey service",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if v, _ := cmd.Flags().GetString("addr"); v != "" {
			cfg.Server.Addr = v
		}
		if err := cfg.ValidateServer(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		log, err := logging.NewConsole(cfg.Log.Level)
		if err != nil {
			return fmt.Errorf("create logger: %w", err)
		}
		defer func() { _ = log.Sync() }()

		dbPath, err := resolveDBPath(cmd, cfg)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()
		log.Info("store opened", zap.String("path", dbPath))

		tree, err := surveyTree(cfg)
		if err != nil {
			return err
		}
		catalog := server.NewCatalog(tree, questionbank.NewCache(questionSource(cfg)), log)

		gin.SetMode(gin.ReleaseMode)
		srv := server.New(st.Submissions(), catalog,
			server.WithLogger(log),
			server.WithVersion(version),
			server.WithWriteLimit(cfg.Server.WriteRate, cfg.Server.WriteBurst),
			server.WithAllowOrigins(cfg.Server.AllowOrigins...),
		)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return srv.Run(ctx, cfg.Server.Addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides DQI_ADDR)")
	serveCmd.Flags().String("db", "", "Path to SQLite database file (overrides DQI_DB)")
}
