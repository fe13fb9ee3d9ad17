// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/mkweon/content-engine/internal/content"
	"github.com/mkweon/content-engine/internal/provider"
	"github.com/mkweon/content-engine/pkg/types"
)

var contentCmd = &cobra.Command{
	Use:   "content",
	Short: "Generate content plans, personas, and translations",
}

var contentPlanCmd = &cobra.Command{
	Use:   "plan",
	Short: "Draft a batch of carousel post items for a keyword",
	Long: `Plan asks the configured text provider for a batch of Instagram carousel
post drafts framed as the keyword character's research journal. With
--project the drafts are appended to the project as a new content group.`,
	RunE: runContentPlan,
}

func runContentPlan(cmd *cobra.Command, args []string) error {
	keyword, _ := cmd.Flags().GetString("keyword")
	promptID, _ := cmd.Flags().GetString("prompt-id")
	count, _ := cmd.Flags().GetInt("count")
	providerName := textProviderName(cmd)
	apiKey, _ := cmd.Flags().GetString("api-key")
	researchData, _ := cmd.Flags().GetString("research-data")
	projectID, _ := cmd.Flags().GetString("project")

	items, err := content.GeneratePlan(context.Background(), content.PlanRequest{
		Keyword:      keyword,
		PromptID:     promptID,
		Count:        count,
		APIKey:       apiKeyFor(providerName, apiKey),
		Provider:     providerName,
		ResearchData: researchData,
	})
	if err != nil {
		return err
	}

	if projectID != "" {
		s, err := projectStore()
		if err != nil {
			return err
		}
		p, err := s.Load(projectID)
		if err != nil {
			return err
		}
		p.ContentGroups = append(p.ContentGroups, types.ContentGroup{
			ID:        uuid.NewString(),
			Name:      keyword,
			Contents:  items,
			CreatedAt: time.Now().UTC(),
		})
		if err := s.Save(p); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "added %d items to project %s\n", len(items), projectID)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(items)
}

var contentPersonaCmd = &cobra.Command{
	Use:   "persona [keyword]",
	Short: "Derive the character persona for a keyword",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		persona, err := content.NewPersona(args[0])
		if err != nil {
			return err
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(persona)
	},
}

var contentTranslateCmd = &cobra.Command{
	Use:   "translate [text]",
	Short: "Translate English text to Korean",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		providerName := textProviderName(cmd)
		apiKey, _ := cmd.Flags().GetString("api-key")

		gen := provider.ForText(providerName, apiKeyFor(providerName, apiKey), nil)
		translated, err := content.TranslateToKorean(context.Background(), gen, strings.Join(args, " "))
		if err != nil {
			return err
		}
		fmt.Println(translated)
		return nil
	},
}

// textProviderName resolves the text provider: flag, then settings, then
// the factory default.
func textProviderName(cmd *cobra.Command) string {
	if name, _ := cmd.Flags().GetString("provider"); name != "" {
		return name
	}
	if settings, err := settingsStore().Load(); err == nil {
		return settings.APISelection.ContentGeneration
	}
	return ""
}

func init() {
	contentPlanCmd.Flags().String("keyword", "", "topic keyword (required)")
	contentPlanCmd.Flags().String("prompt-id", "", "content-prompt preset id")
	contentPlanCmd.Flags().Int("count", 10, "number of post items to draft (clamped to 1-20)")
	contentPlanCmd.Flags().String("provider", "", "text provider: openai, anthropic, or google")
	contentPlanCmd.Flags().String("api-key", "", "provider API key (falls back to settings, then .secrets/)")
	contentPlanCmd.Flags().String("research-data", "", "extra research context for the prompt")
	contentPlanCmd.Flags().String("project", "", "append the drafts to this project as a content group")
	contentPlanCmd.MarkFlagRequired("keyword")

	contentTranslateCmd.Flags().String("provider", "", "text provider: openai, anthropic, or google")
	contentTranslateCmd.Flags().String("api-key", "", "provider API key (falls back to settings, then .secrets/)")

	contentCmd.AddCommand(contentPlanCmd)
	contentCmd.AddCommand(contentPersonaCmd)
	contentCmd.AddCommand(contentTranslateCmd)

	rootCmd.AddCommand(contentCmd)
}
