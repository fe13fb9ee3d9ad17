// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package image

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mkweon/content-engine/pkg/types"
)

var downloadClient = &http.Client{Timeout: 60 * time.Second}

// Download saves an image to savePath. The source is either an embedded
// data URI, decoded in place, or a remote URL fetched over HTTP. The parent
// directory is created as needed. Returns the path written.
func Download(ctx context.Context, client *http.Client, imageURL, savePath string) (string, error) {
	if isBlank(imageURL) {
		return "", errors.New("image URL is required")
	}
	if isBlank(savePath) {
		return "", errors.New("save path is required")
	}

	if dir := filepath.Dir(savePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("creating directory: %w", err)
		}
	}

	if strings.HasPrefix(imageURL, "data:image/") {
		return savePath, writeDataURI(imageURL, savePath)
	}

	if client == nil {
		client = downloadClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return "", fmt.Errorf("creating download request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("downloading image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("downloading image: HTTP %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading image data: %w", err)
	}
	if err := os.WriteFile(savePath, data, 0o644); err != nil {
		return "", fmt.Errorf("saving image: %w", err)
	}
	return savePath, nil
}

// writeDataURI decodes the base64 payload after the comma and writes it.
func writeDataURI(uri, savePath string) error {
	_, payload, found := strings.Cut(uri, ",")
	if !found {
		return errors.New("malformed data URI: missing payload")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return fmt.Errorf("decoding base64 image: %w", err)
	}
	if err := os.WriteFile(savePath, data, 0o644); err != nil {
		return fmt.Errorf("saving image: %w", err)
	}
	return nil
}

// DownloadAll saves every image under basePath, named carousel_NN.png by
// position. A failed download is logged to w and skipped; the call fails
// only when no image could be saved.
func DownloadAll(ctx context.Context, client *http.Client, images []types.GeneratedImage, basePath string, w io.Writer) ([]string, error) {
	if len(images) == 0 {
		return nil, errors.New("no images to download")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("creating directory: %w", err)
	}

	var saved []string
	total := len(images)
	for i, img := range images {
		path := filepath.Join(basePath, fmt.Sprintf("carousel_%02d.png", i+1))
		fmt.Fprintf(w, "downloading image %d/%d\n", i+1, total)

		got, err := Download(ctx, client, img.URL, path)
		if err != nil {
			fmt.Fprintf(w, "warning: image %d failed: %v\n", i+1, err)
			continue
		}
		saved = append(saved, got)
	}

	if len(saved) == 0 {
		return nil, errors.New("all image downloads failed")
	}
	return saved, nil
}
