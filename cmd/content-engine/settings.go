// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mkweon/content-engine/internal/provider"
	"github.com/mkweon/content-engine/pkg/types"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Inspect and update the persisted application settings",
}

var settingsGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the current settings as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := settingsStore().Load()
		if err != nil {
			return err
		}
		return printJSON(settings)
	},
}

var settingsSetPathCmd = &cobra.Command{
	Use:   "set-path [path]",
	Short: "Set the default save path for generated assets",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := settingsStore().SetSavePath(args[0]); err != nil {
			return err
		}
		fmt.Printf("save path set to %s\n", args[0])
		return nil
	},
}

var settingsSetKeysCmd = &cobra.Command{
	Use:   "set-keys",
	Short: "Store provider API keys in settings.json",
	RunE: func(cmd *cobra.Command, args []string) error {
		openai, _ := cmd.Flags().GetString("openai")
		anthropic, _ := cmd.Flags().GetString("anthropic")
		google, _ := cmd.Flags().GetString("google")

		if err := settingsStore().SetAPIKeys(types.APIKeys{
			OpenAI:    openai,
			Anthropic: anthropic,
			Google:    google,
		}); err != nil {
			return err
		}
		fmt.Println("API keys updated")
		return nil
	},
}

var settingsValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Probe a provider credential with a minimal request",
	RunE: func(cmd *cobra.Command, args []string) error {
		providerName, _ := cmd.Flags().GetString("provider")
		apiKey, _ := cmd.Flags().GetString("api-key")

		key := apiKeyFor(providerName, apiKey)
		if key == "" {
			return fmt.Errorf("no API key configured for provider %q", providerName)
		}

		p := provider.ForText(providerName, key, nil)
		if err := provider.ValidateKey(context.Background(), p); err != nil {
			return err
		}
		fmt.Printf("%s key is valid\n", p.Name())
		return nil
	},
}

func init() {
	settingsSetKeysCmd.Flags().String("openai", "", "OpenAI API key")
	settingsSetKeysCmd.Flags().String("anthropic", "", "Anthropic API key")
	settingsSetKeysCmd.Flags().String("google", "", "Google API key")

	settingsValidateCmd.Flags().String("provider", "", "provider to validate: openai, anthropic, or google")
	settingsValidateCmd.Flags().String("api-key", "", "key to probe (falls back to settings, then .secrets/)")
	settingsValidateCmd.MarkFlagRequired("provider")

	settingsCmd.AddCommand(settingsGetCmd)
	settingsCmd.AddCommand(settingsSetPathCmd)
	settingsCmd.AddCommand(settingsSetKeysCmd)
	settingsCmd.AddCommand(settingsValidateCmd)

	rootCmd.AddCommand(settingsCmd)
}
