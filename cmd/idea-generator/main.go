// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the idea-generator CLI. It drives the
// component catalog, idea generation and the HTTP API from the terminal.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/idea-generator/internal/secrets"
	"github.com/pdiddy/idea-generator/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// secretsDir holds one file per API key.
const secretsDir = ".secrets/"

var (
	// cfg is populated from viper before any subcommand runs.
	cfg types.Config

	// logger is built from cfg.Environment and cfg.LogLevel.
	logger = zap.NewNop()
)

// rootCmd is the base command for the idea-generator CLI.
var rootCmd = &cobra.Command{
	Use:   "idea-generator",
	Short: "Electronics project ideas from the parts you have",
	Long: `idea-generator keeps a catalog of electronic components and turns a
selection of them into project ideas using a hosted language model.

Without an API key, generation serves a fixed set of sample ideas. Ideas,
components and preferences live in a document store (SQLite by default,
DynamoDB, or in memory). The serve subcommand exposes the same operations
as a JSON API.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := viper.Unmarshal(&cfg); err != nil {
			return fmt.Errorf("reading configuration: %w", err)
		}

		l, err := newLogger(cfg.Environment, cfg.LogLevel)
		if err != nil {
			return err
		}
		logger = l

		s, err := secrets.Load(secretsDir, logger)
		if err != nil {
			return err
		}
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			logger.Debug("loaded secrets", zap.Strings("keys", keys))
		}
		cfg.AI.APIKey = secrets.ResolveAPIKey(cfg.AI.APIKey, s, os.Getenv)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./idea-generator.yaml or ~/.config/idea-generator/idea-generator.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("store", "", "document store backend: sqlite, dynamodb, memory")

	_ = viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("store.backend", rootCmd.PersistentFlags().Lookup("store"))
}

func initConfig() {
	setDefaults()

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("idea-generator")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "idea-generator"))
		}
	}

	viper.SetEnvPrefix("IDEA_GENERATOR")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// setDefaults registers every key so environment overrides apply even when
// no config file mentions the key.
func setDefaults() {
	viper.SetDefault("environment", "development")
	viper.SetDefault("log_level", "")
	viper.SetDefault("user_id", types.DefaultUserID)

	viper.SetDefault("store.backend", string(types.StoreSQLite))
	viper.SetDefault("store.path", "data/ideas.db")
	viper.SetDefault("store.dynamodb.table", "")
	viper.SetDefault("store.dynamodb.region", "")
	viper.SetDefault("store.dynamodb.endpoint", "")

	viper.SetDefault("session.path", "data/session.bolt")

	viper.SetDefault("ai.model", "gpt-3.5-turbo")
	viper.SetDefault("ai.api_key", "")
	viper.SetDefault("ai.base_url", "https://api.openai.com/v1")
	viper.SetDefault("ai.max_tokens", 2500)
	viper.SetDefault("ai.temperature", 0.8)

	viper.SetDefault("http.timeout", defaultHTTPTimeout)

	viper.SetDefault("server.addr", ":8001")
	viper.SetDefault("server.allowed_origins", []string{})
}

// newLogger builds the production logger in production and the development
// logger elsewhere. A non-empty level overrides the preset's level.
func newLogger(environment, level string) (*zap.Logger, error) {
	zcfg := zap.NewDevelopmentConfig()
	if environment == "production" {
		zcfg = zap.NewProductionConfig()
	}
	if level != "" {
		lvl, err := zap.ParseAtomicLevel(level)
		if err != nil {
			return nil, fmt.Errorf("parsing log level %q: %w", level, err)
		}
		zcfg.Level = lvl
	}
	l, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return l, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
