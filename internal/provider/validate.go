// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"context"
	"fmt"
	"strings"
)

// validationPrompt is the trivial request used to probe a credential.
const validationPrompt = "Say 'ok' if you can hear me."

// ValidateKey probes the provider with a minimal text request and translates
// common failure signatures into actionable messages. A nil error means the
// credential works.
func ValidateKey(ctx context.Context, p Provider) error {
	_, err := p.GenerateText(ctx, validationPrompt, "")
	if err == nil {
		return nil
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "invalid_api_key"),
		strings.Contains(msg, "api_key_invalid"),
		strings.Contains(msg, "401"):
		return fmt.Errorf("%s: API key rejected, check the key in the provider dashboard", p.Name())
	case strings.Contains(msg, "insufficient_quota"),
		strings.Contains(msg, "429"),
		strings.Contains(msg, "rate_limit"):
		return fmt.Errorf("%s: quota exhausted or rate limited, check billing and retry later", p.Name())
	case strings.Contains(msg, "model_not_found"):
		return fmt.Errorf("%s: model unavailable for this key", p.Name())
	default:
		return fmt.Errorf("validating %s key: %w", p.Name(), err)
	}
}
