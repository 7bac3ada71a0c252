package cli

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/nao1215/foodfinder/internal/catalog"
	"github.com/nao1215/foodfinder/internal/config"
	"github.com/nao1215/foodfinder/internal/store"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "HTTPサーバーを起動する",
		Long: `データストアを開いてスキーマを適用し、HTTPサーバーを起動します。
SIGINT/SIGTERMを受け取ると処理中のリクエストを待ってから終了します。`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}
	cmd.Flags().Bool("seed", false, "テーブルが空の場合にサンプルカタログを投入する")
	return cmd
}

// runServe はserveサブコマンドとルートコマンドの本体。
func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := GetConfig(cmd.Context())
	if err != nil {
		return err
	}
	logger := cfg.NewLogger(cmd.ErrOrStderr())
	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := openCatalog(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	server := catalog.NewServer(catalog.NewService(db), db, catalog.Options{
		Addr:            cfg.Addr(),
		CORSOrigins:     cfg.CORSOrigins,
		Logger:          logger,
		ShutdownTimeout: cfg.ShutdownTimeout,
	})
	return server.Run(ctx)
}

// openCatalog はデータストアを開き、スキーマを適用する。
// cfg.Seedが有効な場合はテーブルが空のときだけサンプルカタログを投入する。
func openCatalog(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*sql.DB, error) {
	db, err := store.Open(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	if err := catalog.InitSchema(ctx, db, logger); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("スキーマの適用に失敗: %w", err)
	}

	if cfg.Seed {
		seeded, err := catalog.Seed(ctx, db)
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("サンプルカタログの投入に失敗: %w", err)
		}
		if seeded {
			logger.Info("サンプルカタログを投入しました")
		} else {
			logger.Info("カタログが空でないためサンプルの投入をスキップしました")
		}
	}

	logger.Info("データストアを開きました", "path", cfg.DatabasePath)
	return db, nil
}
