package catalog

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"

	"github.com/nao1215/foodfinder/pkg/migration"
)

//go:embed migrations
var migrationsFS embed.FS

//go:embed seed/sample.sql
var sampleCatalog string

// InitSchema はマイグレーションを実行してカタログのスキーマを適用する。
func InitSchema(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	return migration.Run(ctx, db, migrationsFS, "migrations", logger)
}

// Seed はレストランと料理のテーブルが両方とも空の場合にサンプルカタログを投入する。
// 投入した場合はtrueを返す。既存データがある場合は何もしない。
func Seed(ctx context.Context, db *sql.DB) (bool, error) {
	var count int64
	err := db.QueryRowContext(ctx,
		`SELECT (SELECT COUNT(*) FROM restaurants) + (SELECT COUNT(*) FROM dishes)`,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("既存データ件数の取得に失敗: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("トランザクション開始に失敗: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, sampleCatalog); err != nil {
		return false, fmt.Errorf("サンプルカタログの投入に失敗: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("コミットに失敗: %w", err)
	}
	return true, nil
}
