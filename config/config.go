// Package config はアプリケーション設定を管理します。
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Config はアプリケーション全体の設定を保持します。
type Config struct {
	// HTTPサーバーのポート
	Port string `toml:"port"`

	// API認証キー
	APIKey string `toml:"api_key"`

	// ログレベル（debug, info, warn, error）
	LogLevel string `toml:"log_level"`

	// ログ形式（text または json）
	LogFormat string `toml:"log_format"`

	// SVGキャンバスの描画設定
	Canvas CanvasConfig `toml:"canvas"`
}

// CanvasConfig は /canvas の描画設定です。
type CanvasConfig struct {
	Padding    int     `toml:"padding"`
	UnitSize   float64 `toml:"unit_size"`
	FontSize   int     `toml:"font_size"`
	FontFamily string  `toml:"font_family"`
	Title      string  `toml:"title"`
}

// 環境変数名
const (
	EnvPort      = "SHAPEKIT_SERVER_PORT"
	EnvAPIKey    = "SHAPEKIT_API_KEY"
	EnvLogLevel  = "SHAPEKIT_LOG_LEVEL"
	EnvLogFormat = "SHAPEKIT_LOG_FORMAT"
)

// ErrMissingAPIKey はAPIキーが設定されていない場合のエラーです。
var ErrMissingAPIKey = errors.New("api key is not set (" + EnvAPIKey + ")")

// defaultConfig は既定値を返します。
func defaultConfig() *Config {
	return &Config{
		Port:      "8080",
		LogLevel:  "info",
		LogFormat: "text",
		Canvas: CanvasConfig{
			Padding:    10,
			UnitSize:   4,
			FontSize:   10,
			FontFamily: "sans-serif",
			Title:      "shapekit",
		},
	}
}

// NewConfig は設定ファイル（TOML、省略可）と環境変数から設定を読み込みます。
// 環境変数はファイルの値より優先されます。
func NewConfig(path string) (*Config, error) {
	cfg := defaultConfig()

	// 設定ファイルの読み込み
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open config file: %w", err)
		}
		defer f.Close()

		if err := toml.NewDecoder(f).DisallowUnknownFields().Decode(cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	// 環境変数による上書き
	if port := os.Getenv(EnvPort); port != "" {
		cfg.Port = port
	}
	if key := os.Getenv(EnvAPIKey); key != "" {
		cfg.APIKey = key
	}
	if level := os.Getenv(EnvLogLevel); level != "" {
		cfg.LogLevel = level
	}
	if format := os.Getenv(EnvLogFormat); format != "" {
		cfg.LogFormat = format
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate は設定値を検証します。
func (c *Config) Validate() error {
	// デフォルトのAPIキーは設定しない
	if c.APIKey == "" {
		return ErrMissingAPIKey
	}
	if c.Port == "" {
		return errors.New("port is required")
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("unsupported log format %q", c.LogFormat)
	}
	return nil
}
