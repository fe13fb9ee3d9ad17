// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/mkweon/content-engine/internal/image"
	"github.com/mkweon/content-engine/pkg/types"
)

var imageCmd = &cobra.Command{
	Use:   "image",
	Short: "Render and download illustrations for content items",
}

var imageGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Render a single image from a concept",
	RunE:  runImageGenerate,
}

func runImageGenerate(cmd *cobra.Command, args []string) error {
	concept, _ := cmd.Flags().GetString("concept")
	style, _ := cmd.Flags().GetString("style")
	output, _ := cmd.Flags().GetString("output")

	result, err := image.Generate(context.Background(), types.ImageRequest{
		ImageConcept: concept,
		StylePrompt:  style,
	}, imageOptions(cmd))
	if err != nil {
		return err
	}

	if output != "" {
		saved, err := image.Download(context.Background(), nil, result.URL, output)
		if err != nil {
			return err
		}
		fmt.Printf("saved %s\n", saved)
		return nil
	}
	return printJSON(result)
}

var imageBatchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Render images for every item of a project's content group",
	Long: `Batch renders one image per content item in the group, pacing requests
to stay under provider rate limits. Failed items are skipped; the results
are recorded on the project.`,
	RunE: runImageBatch,
}

func runImageBatch(cmd *cobra.Command, args []string) error {
	projectID, _ := cmd.Flags().GetString("project")
	groupID, _ := cmd.Flags().GetString("group")
	style, _ := cmd.Flags().GetString("style")

	s, err := projectStore()
	if err != nil {
		return err
	}
	p, err := s.Load(projectID)
	if err != nil {
		return err
	}
	group, err := findGroup(p, groupID)
	if err != nil {
		return err
	}

	if style == "" {
		style = defaultStylePrompt()
	}

	reqs := make([]types.ImageRequest, 0, len(group.Contents))
	for _, item := range group.Contents {
		reqs = append(reqs, types.ImageRequest{
			ContentID:    item.ID,
			ImageConcept: item.ImageConcept,
			StylePrompt:  style,
		})
	}

	results, summary, err := image.GenerateBatch(context.Background(), reqs, imageOptions(cmd), os.Stdout)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	imageByContent := make(map[string]string, len(results))
	for _, img := range results {
		p.GeneratedImages = append(p.GeneratedImages, types.GeneratedImageRecord{
			ID:             img.ID,
			ContentID:      img.ContentID,
			ContentGroupID: group.ID,
			ImageURL:       img.URL,
			CreatedAt:      now,
		})
		imageByContent[img.ContentID] = img.ID
	}
	for i := range group.Contents {
		if id, ok := imageByContent[group.Contents[i].ID]; ok {
			group.Contents[i].GeneratedImageID = id
			group.Contents[i].Status = types.StatusCompleted
		}
	}
	if err := s.Save(p); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "recorded %d images on project %s (%d failed)\n",
		summary.Generated, projectID, summary.Failed)
	return nil
}

var imageDownloadCmd = &cobra.Command{
	Use:   "download",
	Short: "Save a project's generated images to disk",
	RunE:  runImageDownload,
}

func runImageDownload(cmd *cobra.Command, args []string) error {
	projectID, _ := cmd.Flags().GetString("project")
	dir, _ := cmd.Flags().GetString("dir")

	s, err := projectStore()
	if err != nil {
		return err
	}
	p, err := s.Load(projectID)
	if err != nil {
		return err
	}

	if dir == "" {
		dir, err = s.ImagesDir(projectID)
		if err != nil {
			return err
		}
	}

	images := make([]types.GeneratedImage, 0, len(p.GeneratedImages))
	for _, rec := range p.GeneratedImages {
		images = append(images, types.GeneratedImage{
			ID:        rec.ID,
			ContentID: rec.ContentID,
			URL:       rec.ImageURL,
		})
	}

	saved, err := image.DownloadAll(context.Background(), nil, images, dir, os.Stdout)
	if err != nil {
		return err
	}

	// Record where each image landed. Files are named by position, so a
	// record's path is known even when other downloads failed.
	savedSet := make(map[string]bool, len(saved))
	for _, path := range saved {
		savedSet[path] = true
	}
	for i := range p.GeneratedImages {
		path := filepath.Join(dir, fmt.Sprintf("carousel_%02d.png", i+1))
		if savedSet[path] {
			p.GeneratedImages[i].LocalPath = path
		}
	}
	if err := s.Save(p); err != nil {
		return err
	}

	fmt.Printf("saved %d images to %s\n", len(saved), dir)
	return nil
}

// imageOptions collects the provider selection flags shared by generate and
// batch.
func imageOptions(cmd *cobra.Command) image.Options {
	apiKey, _ := cmd.Flags().GetString("api-key")
	model, _ := cmd.Flags().GetString("model")
	aspectRatio, _ := cmd.Flags().GetString("aspect-ratio")
	negative, _ := cmd.Flags().GetString("negative-prompt")

	providerName := imageProviderName(cmd)
	return image.Options{
		APIKey:         apiKeyFor(providerName, apiKey),
		Provider:       providerName,
		Model:          model,
		AspectRatio:    aspectRatio,
		NegativePrompt: negative,
	}
}

// imageProviderName resolves the image provider: flag, then settings, then
// the factory default.
func imageProviderName(cmd *cobra.Command) string {
	if name, _ := cmd.Flags().GetString("provider"); name != "" {
		return name
	}
	if settings, err := settingsStore().Load(); err == nil {
		return settings.APISelection.ImageGeneration
	}
	return ""
}

// defaultStylePrompt returns the default image-prompt preset from settings,
// or empty when none is marked default.
func defaultStylePrompt() string {
	settings, err := settingsStore().Load()
	if err != nil {
		return ""
	}
	for _, p := range settings.ImagePrompts {
		if p.IsDefault {
			return p.Prompt
		}
	}
	return ""
}

func findGroup(p *types.Project, groupID string) (*types.ContentGroup, error) {
	for i := range p.ContentGroups {
		if p.ContentGroups[i].ID == groupID {
			return &p.ContentGroups[i], nil
		}
	}
	return nil, fmt.Errorf("content group %s not found in project %s", groupID, p.ID)
}

func init() {
	for _, c := range []*cobra.Command{imageGenerateCmd, imageBatchCmd} {
		c.Flags().String("provider", "", "image provider: openai or google")
		c.Flags().String("api-key", "", "provider API key (falls back to settings, then .secrets/)")
		c.Flags().String("model", "", "provider-specific model override")
		c.Flags().String("aspect-ratio", "", "aspect ratio, e.g. 1:1, 4:3, 9:16 (default 1:1)")
		c.Flags().String("negative-prompt", "", "elements to avoid in the image")
		c.Flags().String("style", "", "style prompt appended to the concept")
	}

	imageGenerateCmd.Flags().String("concept", "", "image concept (required)")
	imageGenerateCmd.Flags().String("output", "", "save the image to this path instead of printing JSON")
	imageGenerateCmd.MarkFlagRequired("concept")

	imageBatchCmd.Flags().String("project", "", "project id (required)")
	imageBatchCmd.Flags().String("group", "", "content group id (required)")
	imageBatchCmd.MarkFlagRequired("project")
	imageBatchCmd.MarkFlagRequired("group")

	imageDownloadCmd.Flags().String("project", "", "project id (required)")
	imageDownloadCmd.Flags().String("dir", "", "target directory (default: the project's images dir)")
	imageDownloadCmd.MarkFlagRequired("project")

	imageCmd.AddCommand(imageGenerateCmd)
	imageCmd.AddCommand(imageBatchCmd)
	imageCmd.AddCommand(imageDownloadCmd)

	rootCmd.AddCommand(imageCmd)
}
