// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package image

import (
	"bytes"
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mkweon/content-engine/pkg/types"
)

func TestDownloadDataURI(t *testing.T) {
	payload := []byte("fake png bytes")
	uri := "data:image/png;base64," + base64.StdEncoding.EncodeToString(payload)
	path := filepath.Join(t.TempDir(), "nested", "out.png")

	got, err := Download(context.Background(), nil, uri, path)
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	if got != path {
		t.Errorf("returned path = %q, want %q", got, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading saved file: %v", err)
	}
	if !bytes.Equal(data, payload) {
		t.Errorf("saved bytes = %q, want original payload", data)
	}
}

func TestDownloadMalformedDataURI(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	if _, err := Download(context.Background(), nil, "data:image/png;base64", path); err == nil {
		t.Error("expected error for data URI without comma")
	}
	if _, err := Download(context.Background(), nil, "data:image/png;base64,!!!", path); err == nil {
		t.Error("expected error for invalid base64 payload")
	}
}

func TestDownloadHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("image body"))
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "out.png")
	if _, err := Download(context.Background(), srv.Client(), srv.URL+"/img.png", path); err != nil {
		t.Fatalf("Download: %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "image body" {
		t.Errorf("saved bytes = %q", data)
	}
}

func TestDownloadHTTPFailureStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "out.png")
	_, err := Download(context.Background(), srv.Client(), srv.URL+"/missing.png", path)
	if err == nil {
		t.Fatal("expected error for HTTP 404")
	}
	if !strings.Contains(err.Error(), "404") {
		t.Errorf("err = %v, should carry the status code", err)
	}
}

func TestDownloadValidation(t *testing.T) {
	if _, err := Download(context.Background(), nil, "", "p"); err == nil {
		t.Error("expected error for blank URL")
	}
	if _, err := Download(context.Background(), nil, "https://x", "  "); err == nil {
		t.Error("expected error for blank save path")
	}
}

func TestDownloadAll(t *testing.T) {
	good := "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("ok"))
	images := []types.GeneratedImage{
		{ID: "1", URL: good},
		{ID: "2", URL: "data:image/png;base64,%%%"},
		{ID: "3", URL: good},
	}

	base := filepath.Join(t.TempDir(), "carousel")
	var buf bytes.Buffer
	saved, err := DownloadAll(context.Background(), nil, images, base, &buf)
	if err != nil {
		t.Fatalf("DownloadAll: %v", err)
	}
	if len(saved) != 2 {
		t.Fatalf("len(saved) = %d, want 2", len(saved))
	}
	// Names follow the position in the input, including skipped items.
	if filepath.Base(saved[0]) != "carousel_01.png" || filepath.Base(saved[1]) != "carousel_03.png" {
		t.Errorf("saved = %v, want positional names", saved)
	}
	if !strings.Contains(buf.String(), "warning: image 2 failed") {
		t.Errorf("output = %q, want a warning for item 2", buf.String())
	}
}

func TestDownloadAllEmpty(t *testing.T) {
	if _, err := DownloadAll(context.Background(), nil, nil, t.TempDir(), &bytes.Buffer{}); err == nil {
		t.Error("expected error for empty image list")
	}
}

func TestDownloadAllAllFail(t *testing.T) {
	images := []types.GeneratedImage{
		{URL: "data:image/png;base64,%%%"},
		{URL: "data:image/png;base64"},
	}
	if _, err := DownloadAll(context.Background(), nil, images, t.TempDir(), &bytes.Buffer{}); err == nil {
		t.Error("expected error when every download fails")
	}
}
