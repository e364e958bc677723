// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the grant-sampler CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd fetches sample grant proposals from every built-in source.
var rootCmd = &cobra.Command{
	Use:   "grant-sampler",
	Short: "Fetch public grant proposal samples as PDFs",
	Long: `grant-sampler collects publicly posted grant proposal PDFs from a fixed
set of institutional sources (NEH, Wellcome, ERC). For each source it scrapes
the start pages one hop deep for PDF links, downloads up to --max-per-source
documents into <out>/<source>/, and writes a manifest.json per source plus
<out>/manifest.index.json.

Files that already exist are skipped unless --force is given. Failed pages
and downloads are logged and skipped; the run still exits 0.`,
	SilenceUsage: true,
	Args:         cobra.NoArgs,
	RunE:         runFetch,
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./grant-sampler.yaml or ~/.config/grant-sampler/config.yaml)")
	pf.String("log-level", "info", "log level (trace|debug|info|warn|error)")
	pf.String("log-file", "", "also write JSON logs to this file (rotated)")

	f := rootCmd.Flags()
	f.String("out", defaultOutDir, "output directory for downloaded PDFs")
	f.Int("max-per-source", defaultMaxPerSource, "maximum number of PDFs per source")
	f.Bool("force", false, "re-download even if the file exists")

	for key, flag := range map[string]string{
		"log.level":      "log-level",
		"log.file":       "log-file",
		"out":            "out",
		"max_per_source": "max-per-source",
		"force":          "force",
	} {
		fl := pf.Lookup(flag)
		if fl == nil {
			fl = f.Lookup(flag)
		}
		if err := viper.BindPFlag(key, fl); err != nil {
			panic(err)
		}
	}
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("grant-sampler")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "grant-sampler"))
		}
	}

	viper.SetEnvPrefix("GRANT_SAMPLER")
	viper.SetEnvKeyReplacer(envReplacer)
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
