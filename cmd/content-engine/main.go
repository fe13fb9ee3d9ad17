// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the content-engine CLI: projects,
// content planning, ingredient research, image generation, and settings.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mkweon/content-engine/internal/secrets"
	"github.com/mkweon/content-engine/internal/store"
	"github.com/mkweon/content-engine/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// cfg is populated from viper once the config file is read.
var cfg types.Config

// rootCmd is the base command for the content-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "content-engine",
	Short: "Turn a topic keyword into illustrated social-media posts",
	Long: `content-engine turns a cosmetic-ingredient keyword into a researched,
illustrated Instagram carousel: literature lookup, structured ingredient
analysis, content planning in a character persona, image generation, and
file-based project storage.

Each concern is a subcommand: project, content, research, image, keyword,
and settings.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./content-engine.yaml or ~/.config/content-engine/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("content-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "content-engine"))
		}
	}

	viper.SetEnvPrefix("CONTENT_ENGINE")
	viper.AutomaticEnv()

	viper.SetDefault("store.projects_dir", "projects")
	viper.SetDefault("lookup.max_results", 10)
	viper.SetDefault("lookup.cache_ttl", "24h")

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
	if err := viper.Unmarshal(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "warning: invalid config: %v\n", err)
	}
}

// projectStore opens the project store rooted at the configured directory.
func projectStore() (*store.Store, error) {
	root := cfg.Store.ProjectsDir
	if root == "" {
		root = "projects"
	}
	return store.New(root)
}

// settingsStore opens the settings store over the configured config dir.
func settingsStore() *store.Settings {
	dir := cfg.Store.ConfigDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			dir = ".config/content-engine"
		} else {
			dir = filepath.Join(home, ".config", "content-engine")
		}
	}
	return store.NewSettings(dir)
}

// apiKeyFor resolves a credential: an explicit flag wins, then settings.json,
// then the .secrets/ directory.
func apiKeyFor(provider, flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if settings, err := settingsStore().Load(); err == nil {
		if key := settings.APIKeys.ForProvider(provider); key != "" {
			return key
		}
	}
	name := provider
	if name == "gemini" {
		name = "google"
	}
	return loadedSecrets[name+"-api-key"]
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
