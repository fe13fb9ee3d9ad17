// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package image

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/mkweon/content-engine/pkg/types"
)

// interItemDelay paces sequential renders to stay under provider rate
// limits. Tests override this to avoid real sleeps.
var interItemDelay = 500 * time.Millisecond

// BatchSummary holds counts from a batch render.
type BatchSummary struct {
	Generated int
	Failed    int
}

// GenerateBatch renders the requests strictly in order, pausing between
// items. A failed item is logged to w and skipped; the batch fails only
// when every item fails.
func GenerateBatch(ctx context.Context, reqs []types.ImageRequest, opts Options, w io.Writer) ([]types.GeneratedImage, BatchSummary, error) {
	var results []types.GeneratedImage
	var summary BatchSummary
	total := len(reqs)

	for i, req := range reqs {
		fmt.Fprintf(w, "generating image %d/%d\n", i+1, total)

		img, err := Generate(ctx, req, opts)
		if err != nil {
			fmt.Fprintf(w, "warning: image %d failed: %v\n", i+1, err)
			summary.Failed++
		} else {
			results = append(results, *img)
			summary.Generated++
		}

		if i < total-1 {
			select {
			case <-ctx.Done():
				return results, summary, ctx.Err()
			case <-time.After(interItemDelay):
			}
		}
	}

	fmt.Fprintf(w, "\ngenerated: %d, failed: %d\n", summary.Generated, summary.Failed)

	if total > 0 && len(results) == 0 {
		return nil, summary, errors.New("all image generations failed")
	}
	return results, summary, nil
}
