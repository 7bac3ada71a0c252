// Package config はfoodfinderの設定を読み込む。
//
// 優先順位は フラグ > 環境変数(FOODFINDER_*) > 設定ファイル(YAML) > デフォルト値。
// カレントディレクトリに.envがあれば、環境変数より先に読み込む。
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// EnvPrefix は環境変数のプレフィックス。
const EnvPrefix = "FOODFINDER_"

// DefaultConfigFile は--config未指定時に探す設定ファイル名。
const DefaultConfigFile = "foodfinder.yaml"

// Config はプロセス全体の設定。
type Config struct {
	// Port はHTTPサーバーのリッスンポート。
	Port string `koanf:"port"`
	// DatabasePath はSQLiteデータベースのパス。":memory:"も指定できる。
	DatabasePath string `koanf:"database_path"`
	// CORSOrigins は許可するオリジン。"*"で全オリジンを許可する。
	CORSOrigins []string `koanf:"cors_origins"`
	// LogLevel はログレベル（debug, info, warn, error）。
	LogLevel string `koanf:"log_level"`
	// LogFormat はログ形式（text, json）。
	LogFormat string `koanf:"log_format"`
	// Seed はテーブルが空の場合にサンプルカタログを投入するかどうか。
	Seed bool `koanf:"seed"`
	// ShutdownTimeout はグレースフルシャットダウンの待ち時間。
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// defaults はデフォルト値。
func defaults() map[string]any {
	return map[string]any{
		"port":             "3000",
		"database_path":    "./database.sqlite",
		"cors_origins":     []string{"*"},
		"log_level":        "info",
		"log_format":       "text",
		"seed":             false,
		"shutdown_timeout": "10s",
	}
}

// flagKeys はフラグ名と設定キーの対応。ここにないフラグは設定に反映しない。
var flagKeys = map[string]string{
	"port":      "port",
	"database":  "database_path",
	"log-level": "log_level",
	"seed":      "seed",
}

// Load は設定を読み込んで検証する。
// cfgFileが空の場合はカレントディレクトリのfoodfinder.yamlを探し、無ければ読み込まない。
// flagsには明示的に指定されたフラグだけが反映される。nilでもよい。
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf(".envの読み込みに失敗: %w", err)
	}

	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("デフォルト値の読み込みに失敗: %w", err)
	}

	if cfgFile == "" {
		if _, err := os.Stat(DefaultConfigFile); err == nil {
			cfgFile = DefaultConfigFile
		}
	}
	if cfgFile != "" {
		if err := k.Load(file.Provider(cfgFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("設定ファイル %s の読み込みに失敗: %w", cfgFile, err)
		}
	}

	// FOODFINDER_DATABASE_PATH -> database_path
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("環境変数の読み込みに失敗: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			key, ok := flagKeys[f.Name]
			if !ok || !f.Changed {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("フラグの読み込みに失敗: %w", err)
		}
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			// FOODFINDER_CORS_ORIGINS="a,b" のようなカンマ区切りをスライスとして扱う
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
			Result:           &cfg,
			WeaklyTypedInput: true,
		},
	}); err != nil {
		return nil, fmt.Errorf("設定のデコードに失敗: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate は設定値を検証する。
func (c *Config) Validate() error {
	var errs []error

	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 1 || port > 65535 {
		errs = append(errs, fmt.Errorf("portが不正です: %q", c.Port))
	}
	if strings.TrimSpace(c.DatabasePath) == "" {
		errs = append(errs, errors.New("database_pathが空です"))
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		errs = append(errs, fmt.Errorf("log_formatが不正です: %q", c.LogFormat))
	}
	if c.ShutdownTimeout < 0 {
		errs = append(errs, fmt.Errorf("shutdown_timeoutが負の値です: %s", c.ShutdownTimeout))
	}

	return errors.Join(errs...)
}

// Addr はHTTPサーバーのリッスンアドレスを返す。
func (c *Config) Addr() string {
	return ":" + c.Port
}

// NewLogger は設定に従ってslogのロガーを生成する。
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// parseLevel はログレベル文字列をslog.Levelに変換する。
func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("log_levelが不正です: %q", s)
	}
	return level, nil
}
