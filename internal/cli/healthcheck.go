package cli

import (
	"fmt"
	"time"

	"github.com/nao1215/foodfinder/pkg/httpclient"
	"github.com/spf13/cobra"
)

// healthResponse は/healthのレスポンス。
type healthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

func newHealthcheckCmd() *cobra.Command {
	var (
		baseURL string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "healthcheck",
		Short: "稼働中のサーバーの/healthを確認する",
		Long: `稼働中のサーバーの/healthに問い合わせ、200以外なら非ゼロで終了します。
コンテナのHEALTHCHECKから呼び出すことを想定しています。`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if baseURL == "" {
				cfg, err := GetConfig(cmd.Context())
				if err != nil {
					return err
				}
				baseURL = "http://localhost:" + cfg.Port
			}

			client := httpclient.New(baseURL, httpclient.WithTimeout(timeout))
			var resp healthResponse
			if err := client.GetJSON(cmd.Context(), "/health", &resp); err != nil {
				return fmt.Errorf("ヘルスチェックに失敗: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", resp.Service, resp.Status)
			return nil
		},
	}
	cmd.Flags().StringVar(&baseURL, "url", "", "サーバーのベースURL (default: http://localhost:<port>)")
	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Second, "リクエストのタイムアウト")
	return cmd
}
