// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mkweon/content-engine/pkg/types"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "projects"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func TestCreateProject(t *testing.T) {
	s := newTestStore(t)

	p, err := s.Create("레티놀 연구")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !strings.HasPrefix(p.ID, "proj_") || len(p.ID) != len("proj_")+12 {
		t.Errorf("ID = %q, want proj_ plus 12 characters", p.ID)
	}
	if p.CreatedAt.IsZero() || !p.CreatedAt.Equal(p.UpdatedAt) {
		t.Errorf("timestamps = %v / %v, want equal non-zero", p.CreatedAt, p.UpdatedAt)
	}

	for _, sub := range []string{"research", "content", "images"} {
		if _, err := os.Stat(filepath.Join(s.Root(), p.ID, sub)); err != nil {
			t.Errorf("missing %s subdirectory: %v", sub, err)
		}
	}
	if _, err := os.Stat(filepath.Join(s.Root(), p.ID, "project.json")); err != nil {
		t.Errorf("missing project.json: %v", err)
	}

	metas, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(metas) != 1 || metas[0].ID != p.ID || metas[0].Name != "레티놀 연구" {
		t.Errorf("metas = %+v", metas)
	}
}

func TestLoadRoundTrip(t *testing.T) {
	s := newTestStore(t)

	p, err := s.Create("원본")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	p.ResearchItems = append(p.ResearchItems, types.ResearchItem{ID: "r1", Title: "연구 1"})
	p.ContentGroups = append(p.ContentGroups, types.ContentGroup{
		ID:       "g1",
		Name:     "그룹",
		Contents: []types.ContentItem{{ID: "c1", Title: "포스트", Status: types.StatusPending}},
	})
	if err := s.Save(p); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := s.Load(p.ID)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.ID != p.ID || loaded.Name != "원본" {
		t.Errorf("loaded = %+v", loaded)
	}
	if len(loaded.ResearchItems) != 1 || loaded.ResearchItems[0].Title != "연구 1" {
		t.Errorf("ResearchItems = %+v", loaded.ResearchItems)
	}
	if len(loaded.ContentGroups) != 1 || loaded.ContentGroups[0].Contents[0].ID != "c1" {
		t.Errorf("ContentGroups = %+v", loaded.ContentGroups)
	}
}

func TestLoadMissingProject(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.Load("proj_missing00000"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestSaveRefreshesUpdatedAtAndWritesItemFiles(t *testing.T) {
	s := newTestStore(t)

	p, err := s.Create("p")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	created := p.UpdatedAt

	time.Sleep(5 * time.Millisecond)
	p.ResearchItems = append(p.ResearchItems, types.ResearchItem{ID: "r1"})
	p.ContentGroups = append(p.ContentGroups, types.ContentGroup{ID: "g1"})
	if err := s.Save(p); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if !p.UpdatedAt.After(created) {
		t.Errorf("UpdatedAt = %v, want refreshed past %v", p.UpdatedAt, created)
	}
	if _, err := os.Stat(filepath.Join(s.Root(), p.ID, "research", "r1.json")); err != nil {
		t.Errorf("missing research item file: %v", err)
	}
	if _, err := os.Stat(filepath.Join(s.Root(), p.ID, "content", "g1.json")); err != nil {
		t.Errorf("missing content group file: %v", err)
	}
}

func TestSaveKeepsStaleItemFiles(t *testing.T) {
	s := newTestStore(t)

	p, err := s.Create("p")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	p.ResearchItems = []types.ResearchItem{{ID: "old"}}
	if err := s.Save(p); err != nil {
		t.Fatalf("Save: %v", err)
	}

	// Drop the item from the aggregate; its file must survive the next save.
	p.ResearchItems = []types.ResearchItem{{ID: "new"}}
	if err := s.Save(p); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if _, err := os.Stat(filepath.Join(s.Root(), p.ID, "research", "old.json")); err != nil {
		t.Errorf("stale item file should not be pruned: %v", err)
	}
	if _, err := os.Stat(filepath.Join(s.Root(), p.ID, "research", "new.json")); err != nil {
		t.Errorf("missing new item file: %v", err)
	}
}

func TestListSortedByUpdatedAtDescending(t *testing.T) {
	s := newTestStore(t)

	first, _ := s.Create("first")
	time.Sleep(5 * time.Millisecond)
	second, _ := s.Create("second")
	time.Sleep(5 * time.Millisecond)
	if err := s.Save(first); err != nil {
		t.Fatalf("Save: %v", err)
	}

	metas, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(metas) != 2 {
		t.Fatalf("len(metas) = %d, want 2", len(metas))
	}
	// first was saved last, so it sorts before second.
	if metas[0].ID != first.ID || metas[1].ID != second.ID {
		t.Errorf("order = %q, %q; want most recently updated first", metas[0].ID, metas[1].ID)
	}
}

func TestListMissingIndex(t *testing.T) {
	s := newTestStore(t)
	metas, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(metas) != 0 {
		t.Errorf("metas = %+v, want empty", metas)
	}
}

func TestListCorruptIndex(t *testing.T) {
	s := newTestStore(t)
	if err := os.WriteFile(filepath.Join(s.Root(), "projects_index.json"), []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	metas, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(metas) != 0 {
		t.Errorf("metas = %+v, want empty for corrupt index", metas)
	}
}

func TestIndexCounts(t *testing.T) {
	s := newTestStore(t)

	p, _ := s.Create("p")
	p.ResearchItems = []types.ResearchItem{{ID: "r1"}, {ID: "r2"}}
	p.ContentGroups = []types.ContentGroup{
		{ID: "g1", Contents: []types.ContentItem{{ID: "c1"}, {ID: "c2"}}},
		{ID: "g2", Contents: []types.ContentItem{{ID: "c3"}}},
	}
	p.GeneratedImages = []types.GeneratedImageRecord{{ID: "i1"}}
	if err := s.Save(p); err != nil {
		t.Fatalf("Save: %v", err)
	}

	metas, _ := s.List()
	if len(metas) != 1 {
		t.Fatalf("len(metas) = %d, want 1 (save replaces the entry)", len(metas))
	}
	m := metas[0]
	if m.ResearchCount != 2 || m.ContentCount != 3 || m.ImageCount != 1 {
		t.Errorf("counts = %d/%d/%d, want 2/3/1", m.ResearchCount, m.ContentCount, m.ImageCount)
	}
}

func TestDeleteProject(t *testing.T) {
	s := newTestStore(t)

	p, _ := s.Create("doomed")
	if err := s.Delete(p.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := os.Stat(filepath.Join(s.Root(), p.ID)); !os.IsNotExist(err) {
		t.Errorf("project directory should be gone, stat err = %v", err)
	}
	metas, _ := s.List()
	if len(metas) != 0 {
		t.Errorf("metas = %+v, want empty after delete", metas)
	}

	// Deleting again is a no-op.
	if err := s.Delete(p.ID); err != nil {
		t.Errorf("second Delete: %v", err)
	}
}

func TestImagesDir(t *testing.T) {
	s := newTestStore(t)
	p, _ := s.Create("p")

	dir, err := s.ImagesDir(p.ID)
	if err != nil {
		t.Fatalf("ImagesDir: %v", err)
	}
	if filepath.Base(dir) != "images" {
		t.Errorf("dir = %q", dir)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("images dir missing: %v", err)
	}
}
