// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// AppSettings is the persisted application configuration (settings.json).
type AppSettings struct {
	APIKeys          APIKeys           `json:"apiKeys" yaml:"api_keys"`
	APISelection     APISelection      `json:"apiSelection" yaml:"api_selection"`
	ImagePrompts     []ImagePrompt     `json:"imagePrompts" yaml:"image_prompts"`
	ContentPrompts   []ContentPrompt   `json:"contentPrompts" yaml:"content_prompts"`
	SavePath         string            `json:"savePath" yaml:"save_path"`
	ImageSizePresets []ImageSizePreset `json:"imageSizePresets,omitempty" yaml:"image_size_presets,omitempty"`
}

// APIKeys holds per-provider credentials.
type APIKeys struct {
	Google    string `json:"google,omitempty" yaml:"google,omitempty"`
	OpenAI    string `json:"openai,omitempty" yaml:"openai,omitempty"`
	Anthropic string `json:"anthropic,omitempty" yaml:"anthropic,omitempty"`
}

// ForProvider returns the credential stored for the named provider.
func (k APIKeys) ForProvider(name string) string {
	switch name {
	case "google", "gemini":
		return k.Google
	case "anthropic":
		return k.Anthropic
	case "openai":
		return k.OpenAI
	}
	return ""
}

// APISelection names the provider used for each operation kind.
type APISelection struct {
	ContentGeneration string `json:"contentGeneration" yaml:"content_generation"`
	ImageGeneration   string `json:"imageGeneration" yaml:"image_generation"`
}

// ImagePrompt is a reusable style-prompt preset for image generation.
type ImagePrompt struct {
	ID             string `json:"id" yaml:"id"`
	Name           string `json:"name" yaml:"name"`
	Prompt         string `json:"prompt" yaml:"prompt"`
	StyleImagePath string `json:"styleImagePath,omitempty" yaml:"style_image_path,omitempty"`
	IsDefault      bool   `json:"isDefault" yaml:"is_default"`
}

// ContentPrompt is a reusable prompt preset for content-plan generation.
type ContentPrompt struct {
	ID        string `json:"id" yaml:"id"`
	Name      string `json:"name" yaml:"name"`
	Prompt    string `json:"prompt" yaml:"prompt"`
	IsDefault bool   `json:"isDefault" yaml:"is_default"`
}

// ImageSizePreset is a named output size.
type ImageSizePreset struct {
	ID     string `json:"id" yaml:"id"`
	Name   string `json:"name" yaml:"name"`
	Width  int    `json:"width" yaml:"width"`
	Height int    `json:"height" yaml:"height"`
}
