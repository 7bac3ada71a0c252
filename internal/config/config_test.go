package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newFlagSet はCLIと同じフラグ定義を持つテスト用フラグセットを生成する。
func newFlagSet(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("port", "3000", "")
	fs.String("database", "", "")
	fs.String("log-level", "", "")
	fs.Bool("seed", false, "")
	fs.String("config", "", "")
	require.NoError(t, fs.Parse(args))
	return fs
}

// writeConfigFile はテスト用のYAML設定ファイルを一時ディレクトリに作成する。
func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "foodfinder.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("正常系_何も指定しない場合デフォルト値になること", func(t *testing.T) {
		cfg, err := Load("", nil)
		require.NoError(t, err)

		assert.Equal(t, "3000", cfg.Port)
		assert.Equal(t, "./database.sqlite", cfg.DatabasePath)
		assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, "text", cfg.LogFormat)
		assert.False(t, cfg.Seed)
		assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
		assert.Equal(t, ":3000", cfg.Addr())
	})

	t.Run("正常系_設定ファイルの値がデフォルト値を上書きすること", func(t *testing.T) {
		path := writeConfigFile(t, `
port: 8080
database_path: /data/catalog.db
cors_origins:
  - https://example.com
log_format: json
shutdown_timeout: 3s
`)

		cfg, err := Load(path, nil)
		require.NoError(t, err)

		assert.Equal(t, "8080", cfg.Port)
		assert.Equal(t, "/data/catalog.db", cfg.DatabasePath)
		assert.Equal(t, []string{"https://example.com"}, cfg.CORSOrigins)
		assert.Equal(t, "json", cfg.LogFormat)
		assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
	})

	t.Run("正常系_環境変数が設定ファイルより優先されること", func(t *testing.T) {
		path := writeConfigFile(t, "port: 8080\n")
		t.Setenv("FOODFINDER_PORT", "9090")
		t.Setenv("FOODFINDER_SEED", "true")
		t.Setenv("FOODFINDER_CORS_ORIGINS", "http://a.example,http://b.example")

		cfg, err := Load(path, nil)
		require.NoError(t, err)

		assert.Equal(t, "9090", cfg.Port)
		assert.True(t, cfg.Seed)
		assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.CORSOrigins)
	})

	t.Run("正常系_明示されたフラグが環境変数より優先されること", func(t *testing.T) {
		t.Setenv("FOODFINDER_PORT", "9090")
		t.Setenv("FOODFINDER_DATABASE_PATH", "/env/catalog.db")

		flags := newFlagSet(t, "--port", "7070", "--log-level", "debug", "--seed")

		cfg, err := Load("", flags)
		require.NoError(t, err)

		assert.Equal(t, "7070", cfg.Port)
		// --databaseは指定していないので環境変数の値が残る
		assert.Equal(t, "/env/catalog.db", cfg.DatabasePath)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.True(t, cfg.Seed)
	})

	t.Run("正常系_未指定のフラグのデフォルト値は反映されないこと", func(t *testing.T) {
		t.Setenv("FOODFINDER_PORT", "9090")

		cfg, err := Load("", newFlagSet(t))
		require.NoError(t, err)

		assert.Equal(t, "9090", cfg.Port)
	})

	t.Run("異常系_設定ファイルが存在しない場合エラーを返すこと", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
		assert.Error(t, err)
	})

	t.Run("異常系_不正な値は検証エラーになること", func(t *testing.T) {
		t.Setenv("FOODFINDER_PORT", "abc")
		t.Setenv("FOODFINDER_LOG_FORMAT", "xml")

		_, err := Load("", nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "port")
		assert.Contains(t, err.Error(), "log_format")
	})
}

func TestValidate(t *testing.T) {
	t.Parallel()

	valid := func() Config {
		return Config{
			Port:            "3000",
			DatabasePath:    ":memory:",
			LogLevel:        "info",
			LogFormat:       "text",
			ShutdownTimeout: time.Second,
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "正常系_妥当な設定", mutate: func(*Config) {}},
		{name: "異常系_ポート範囲外", mutate: func(c *Config) { c.Port = "70000" }, wantErr: "port"},
		{name: "異常系_データベースパスが空", mutate: func(c *Config) { c.DatabasePath = " " }, wantErr: "database_path"},
		{name: "異常系_ログレベル不正", mutate: func(c *Config) { c.LogLevel = "verbose" }, wantErr: "log_level"},
		{name: "異常系_タイムアウトが負", mutate: func(c *Config) { c.ShutdownTimeout = -time.Second }, wantErr: "shutdown_timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := valid()
			tt.mutate(&c)

			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewLogger(t *testing.T) {
	t.Parallel()

	t.Run("json形式で設定したレベル以上のみ出力されること", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		cfg := &Config{LogLevel: "warn", LogFormat: "json"}
		logger := cfg.NewLogger(&buf)

		logger.Info("出力されない")
		logger.Warn("出力される", "key", "value")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "出力される", entry["msg"])
		assert.Equal(t, "value", entry["key"])
	})
}
