package cli

import (
	"fmt"
	"maps"
	"slices"

	"github.com/nao1215/foodfinder/pkg/migration"
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "スキーマを適用して終了する",
		Long: `未適用のマイグレーションをデータストアに適用して終了します。
--seed を指定するとテーブルが空の場合にサンプルカタログを投入します。`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := GetConfig(cmd.Context())
			if err != nil {
				return err
			}
			logger := cfg.NewLogger(cmd.ErrOrStderr())

			db, err := openCatalog(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			applied, err := migration.AppliedVersions(cmd.Context(), db)
			if err != nil {
				return err
			}
			versions := slices.Sorted(maps.Keys(applied))

			fmt.Fprintf(cmd.OutOrStdout(), "%s: 適用済みマイグレーション %v\n", cfg.DatabasePath, versions)
			return nil
		},
	}
	cmd.Flags().Bool("seed", false, "テーブルが空の場合にサンプルカタログを投入する")
	return cmd
}
