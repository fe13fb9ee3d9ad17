// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/mkweon/content-engine/internal/research"
	"github.com/mkweon/content-engine/internal/search"
	"github.com/mkweon/content-engine/pkg/types"
)

var researchCmd = &cobra.Command{
	Use:   "research",
	Short: "Analyze ingredients and search literature, news, and the web",
}

var researchAnalyzeCmd = &cobra.Command{
	Use:   "analyze [ingredient]",
	Short: "Run a structured ingredient analysis",
	Long: `Analyze gathers PubMed literature for the ingredient and asks the text
provider for a structured safety and efficacy assessment. With --project
the result is appended to the project as a research item.`,
	Args: cobra.ExactArgs(1),
	RunE: runResearchAnalyze,
}

func runResearchAnalyze(cmd *cobra.Command, args []string) error {
	providerName := textProviderName(cmd)
	apiKey, _ := cmd.Flags().GetString("api-key")
	projectID, _ := cmd.Flags().GetString("project")

	pubmed, closeCache := newPubMed()
	defer closeCache()

	analysis, err := research.AnalyzeIngredient(context.Background(), pubmed, research.AnalyzeRequest{
		IngredientName: args[0],
		APIKey:         apiKeyFor(providerName, apiKey),
		Provider:       providerName,
	})
	if err != nil {
		return err
	}

	if projectID != "" {
		if err := appendResearchItem(projectID, analysis); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "added research item to project %s\n", projectID)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(analysis)
}

func appendResearchItem(projectID string, analysis *types.IngredientAnalysis) error {
	s, err := projectStore()
	if err != nil {
		return err
	}
	p, err := s.Load(projectID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	p.ResearchItems = append(p.ResearchItems, types.ResearchItem{
		ID:     uuid.NewString(),
		Prompt: analysis.IngredientName,
		Title:  analysis.IngredientName,
		FullReport: types.ResearchReport{
			IngredientAnalysis: &types.IngredientAnalysisResult{
				IngredientName:           analysis.IngredientName,
				KoreanName:               analysis.KoreanName,
				EWGScore:                 analysis.EWGScore,
				Benefits:                 analysis.Benefits,
				Cautions:                 analysis.Cautions,
				RecommendedConcentration: analysis.RecommendedConcentration,
			},
			Papers: analysis.RelatedPapers,
		},
		CreatedAt: now,
		UpdatedAt: now,
	})
	return s.Save(p)
}

var researchPapersCmd = &cobra.Command{
	Use:   "papers [keyword]",
	Short: "Search PubMed for ingredient-related papers",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pubmed, closeCache := newPubMed()
		defer closeCache()

		papers, err := pubmed.SearchIngredient(context.Background(), args[0], lookupLimit(cmd))
		if err != nil {
			return err
		}
		return printJSON(papers)
	},
}

var researchWebCmd = &cobra.Command{
	Use:   "web [query]",
	Short: "Search the web via Google Custom Search",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		apiKey, _ := cmd.Flags().GetString("api-key")
		cx, _ := cmd.Flags().GetString("cx")
		if cx == "" {
			cx = loadedSecrets["google-search-cx"]
		}

		ws := &search.WebSearch{APIKey: apiKeyFor("google", apiKey), CX: cx}
		results, err := ws.Search(context.Background(), args[0])
		if err != nil {
			return err
		}
		return printJSON(results)
	},
}

var researchNewsCmd = &cobra.Command{
	Use:   "news [keyword]",
	Short: "Search Yonhap and CNN RSS feeds for matching items",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n := &search.News{}
		results := n.SearchAll(context.Background(), args[0], os.Stderr)
		return printJSON(results)
	},
}

var researchConferencesCmd = &cobra.Command{
	Use:   "conferences [keyword]",
	Short: "Search CrossRef for papers and conference proceedings",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cache := openLookupCache()
		defer cache.Close()

		c := &search.CrossRef{Cache: cache}
		results, err := c.Search(context.Background(), args[0], lookupLimit(cmd))
		if err != nil {
			return err
		}
		return printJSON(results)
	},
}

// newPubMed builds a PubMed backend with the optional lookup cache. The
// returned func closes the cache.
func newPubMed() (*search.PubMed, func()) {
	cache := openLookupCache()
	return &search.PubMed{Cache: cache}, func() { cache.Close() }
}

// openLookupCache opens the configured SQLite lookup cache. Caching is
// best-effort: a missing path or open failure yields a nil cache.
func openLookupCache() *search.Cache {
	if cfg.Lookup.CachePath == "" {
		return nil
	}
	cache, err := search.OpenCache(cfg.Lookup.CachePath, cfg.Lookup.CacheTTL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: lookup cache disabled: %v\n", err)
		return nil
	}
	return cache
}

// lookupLimit resolves the result limit: an explicit flag wins over the
// configured default.
func lookupLimit(cmd *cobra.Command) int {
	if cmd.Flags().Changed("limit") {
		limit, _ := cmd.Flags().GetInt("limit")
		return limit
	}
	return cfg.Lookup.MaxResults
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	researchAnalyzeCmd.Flags().String("provider", "", "text provider: openai, anthropic, or google")
	researchAnalyzeCmd.Flags().String("api-key", "", "provider API key (falls back to settings, then .secrets/)")
	researchAnalyzeCmd.Flags().String("project", "", "append the analysis to this project")

	researchPapersCmd.Flags().Int("limit", 10, "maximum number of papers")

	researchWebCmd.Flags().String("api-key", "", "Google API key (falls back to settings, then .secrets/)")
	researchWebCmd.Flags().String("cx", "", "Custom Search engine id (falls back to .secrets/google-search-cx)")

	researchConferencesCmd.Flags().Int("limit", 10, "maximum number of results")

	researchCmd.AddCommand(researchAnalyzeCmd)
	researchCmd.AddCommand(researchPapersCmd)
	researchCmd.AddCommand(researchWebCmd)
	researchCmd.AddCommand(researchNewsCmd)
	researchCmd.AddCommand(researchConferencesCmd)

	rootCmd.AddCommand(researchCmd)
}
