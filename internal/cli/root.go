// Package cli はfoodfinderのコマンドラインインターフェースを提供する。
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/nao1215/foodfinder/internal/config"
	"github.com/spf13/cobra"
)

// Version はビルド時に埋め込むバージョン。
var Version = "0.1.0"

// configKey はコマンドのコンテキストに設定を格納するキー。
type configKey struct{}

// NewRootCmd はルートコマンドを生成する。
// サブコマンドを指定しない場合はserveと同じ動作になる。
func NewRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "foodfinder",
		Short: "レストランと料理のカタログを返す読み取り専用API",
		Long: `foodfinderはSQLiteに格納したレストランと料理のカタログを
HTTP/JSONで検索・絞り込み・並べ替えして返す読み取り専用APIサーバーです。`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.Load(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}
			cmd.SetContext(context.WithValue(cmd.Context(), configKey{}, cfg))
			return nil
		},
		RunE:          runServe,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "設定ファイル (default: ./foodfinder.yaml)")
	rootCmd.PersistentFlags().String("database", "", "SQLiteデータベースのパス（:memory: も可）")
	rootCmd.PersistentFlags().String("log-level", "", "ログレベル (debug|info|warn|error)")
	rootCmd.PersistentFlags().String("port", "", "HTTPサーバーのポート")
	rootCmd.Flags().Bool("seed", false, "テーブルが空の場合にサンプルカタログを投入する")

	_ = rootCmd.RegisterFlagCompletionFunc("log-level", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"debug", "info", "warn", "error"}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newMigrateCmd())
	rootCmd.AddCommand(newHealthcheckCmd())

	return rootCmd
}

// Execute はルートコマンドを実行する。
func Execute() error {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// GetConfig はコマンドのコンテキストから設定を取り出す。
func GetConfig(ctx context.Context) (*config.Config, error) {
	cfg, ok := ctx.Value(configKey{}).(*config.Config)
	if !ok {
		return nil, fmt.Errorf("設定が読み込まれていません")
	}
	return cfg, nil
}
