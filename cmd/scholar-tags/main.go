// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the scholar-tags CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/scholar-tags/internal/logging"
	"github.com/pdiddy/scholar-tags/internal/scholar"
	"github.com/pdiddy/scholar-tags/internal/tags"
	"github.com/pdiddy/scholar-tags/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// cfg and logger are populated by the root command before any subcommand runs.
var (
	cfg    types.Config
	logger = zap.NewNop()
)

// rootCmd is the base command for the scholar-tags CLI.
var rootCmd = &cobra.Command{
	Use:   "scholar-tags",
	Short: "Search Google Scholar by title and tag the authors you care about",
	Long: `scholar-tags searches Google Scholar by paper title, extracts the papers on
the first results page, and annotates every author with the tags you have given
them. Results can be narrowed to papers with at least one author carrying a
selected tag.

Tags are kept in a local file (JSON by default, or YAML or SQLite) and survive
across runs. The same operations are available over HTTP with "serve".`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("loading .env: %w", err)
		}
		c, err := loadConfig(viper.GetViper())
		if err != nil {
			return err
		}
		cfg = c

		l, err := logging.New(cfg.Log)
		if err != nil {
			return err
		}
		logger = l
		if f := viper.ConfigFileUsed(); f != "" {
			logger.Debug("using config file", zap.String("path", f))
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./scholar-tags.yaml or ~/.config/scholar-tags/scholar-tags.yaml)")
	pf.String("log-level", "", "log level (debug, info, warn, error)")
	pf.String("tags-backend", "", "tag storage backend (json, yaml, sqlite)")
	pf.String("tags-path", "", "tag storage file")

	_ = viper.BindPFlag("log.level", pf.Lookup("log-level"))
	_ = viper.BindPFlag("tags.backend", pf.Lookup("tags-backend"))
	_ = viper.BindPFlag("tags.path", pf.Lookup("tags-path"))

	setDefaults(viper.GetViper())
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("scholar-tags")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "scholar-tags"))
		}
	}

	bindEnv(viper.GetViper())

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			fmt.Fprintln(os.Stderr, "Reading config file:", err)
		}
	}
}

// setDefaults registers every config key so env overrides and Unmarshal see it.
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetDefault("scholar.base_url", scholar.DefaultBaseURL)
	v.SetDefault("scholar.user_agent", scholar.DefaultUserAgent)
	v.SetDefault("scholar.timeout", scholar.DefaultTimeout)
	v.SetDefault("scholar.max_results", scholar.DefaultMaxResults)
	v.SetDefault("scholar.rate_limit", scholar.DefaultRateLimit)
	v.SetDefault("scholar.max_retries", 3)

	v.SetDefault("tags.backend", string(types.TagBackendJSON))
	v.SetDefault("tags.path", "author_tags.json")

	v.SetDefault("server.addr", ":5000")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
}

// bindEnv maps SCHOLAR_TAGS_SECTION_KEY variables onto section.key.
func bindEnv(v *viper.Viper) {
	v.SetEnvPrefix("SCHOLAR_TAGS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

func loadConfig(v *viper.Viper) (types.Config, error) {
	var c types.Config
	if err := v.Unmarshal(&c); err != nil {
		return types.Config{}, fmt.Errorf("decoding config: %w", err)
	}
	return c, nil
}

// openStore opens the configured persister and loads the tag store.
func openStore() (*tags.Store, error) {
	p, err := tags.OpenPersister(cfg.Tags)
	if err != nil {
		return nil, err
	}
	return tags.NewStore(p, tags.WithLogger(logger)), nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
