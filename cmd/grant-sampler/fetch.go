package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/grant-sampler/internal/classify"
	"github.com/pdiddy/grant-sampler/internal/collect"
	"github.com/pdiddy/grant-sampler/internal/download"
	"github.com/pdiddy/grant-sampler/internal/httputil"
	"github.com/pdiddy/grant-sampler/internal/links"
	"github.com/pdiddy/grant-sampler/internal/logging"
	"github.com/pdiddy/grant-sampler/internal/sampler"
	"github.com/pdiddy/grant-sampler/internal/sources"
	"github.com/pdiddy/grant-sampler/pkg/types"
)

const (
	defaultOutDir       = "public/datasets/raw"
	defaultMaxPerSource = 15
)

// envReplacer maps nested keys like timeouts.page to GRANT_SAMPLER_TIMEOUTS_PAGE.
var envReplacer = strings.NewReplacer(".", "_", "-", "_")

// loadConfig assembles the run configuration from flags, environment, and
// the optional config file.
func loadConfig() (types.SamplerConfig, error) {
	cfg := types.SamplerConfig{
		HTTPConfig: types.HTTPConfig{
			UserAgent:       viper.GetString("user_agent"),
			PageTimeout:     viper.GetDuration("timeouts.page"),
			ProbeTimeout:    viper.GetDuration("timeouts.probe"),
			DownloadTimeout: viper.GetDuration("timeouts.download"),
		},
		OutDir:       viper.GetString("out"),
		MaxPerSource: viper.GetInt("max_per_source"),
		Force:        viper.GetBool("force"),
		Log: types.LogConfig{
			Level:      viper.GetString("log.level"),
			File:       viper.GetString("log.file"),
			MaxSizeMB:  viper.GetInt("log.max_size_mb"),
			MaxBackups: viper.GetInt("log.max_backups"),
			MaxAgeDays: viper.GetInt("log.max_age_days"),
			Compress:   viper.GetBool("log.compress"),
		},
	}
	if cfg.OutDir == "" {
		return cfg, fmt.Errorf("--out must not be empty")
	}
	if cfg.MaxPerSource < 1 {
		return cfg, fmt.Errorf("--max-per-source must be at least 1, got %d", cfg.MaxPerSource)
	}
	return cfg, nil
}

func runFetch(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, closer, err := logging.New(cfg.Log, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer closer.Close()

	list, err := sources.Builtin()
	if err != nil {
		return err
	}

	client := httputil.New(cfg.HTTPConfig, nil)
	collector := collect.New(classify.New(client, log), links.New(client), log)
	downloader := download.New(client, os.Stderr)

	_, err = sampler.New(cfg, collector, downloader, log).Run(cmd.Context(), list)
	return err
}
