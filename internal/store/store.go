// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists projects as JSON files on disk. Each project owns
// a directory with a project.json aggregate, per-item secondary files, and
// an images directory; a shared projects_index.json powers fast listing.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mkweon/content-engine/pkg/types"
)

// ErrNotFound is returned when a project id has no directory on disk.
var ErrNotFound = errors.New("project not found")

const (
	projectFile = "project.json"
	indexFile   = "projects_index.json"

	researchDir = "research"
	contentDir  = "content"
	imagesDir   = "images"
)

// Store manages the projects directory.
type Store struct {
	root string
}

// New creates the projects directory if needed and returns a store over it.
func New(root string) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("creating projects directory: %w", err)
	}
	return &Store{root: root}, nil
}

// Root returns the projects directory.
func (s *Store) Root() string { return s.root }

// newProjectID builds a "proj_" id with 12 hex characters from a UUID.
func newProjectID() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "proj_" + raw[:12]
}

// Create makes a new named project with its directory skeleton and adds it
// to the index.
func (s *Store) Create(name string) (*types.Project, error) {
	now := time.Now().UTC()
	project := &types.Project{
		ID:              newProjectID(),
		Name:            name,
		CreatedAt:       now,
		UpdatedAt:       now,
		ResearchItems:   []types.ResearchItem{},
		ContentGroups:   []types.ContentGroup{},
		GeneratedImages: []types.GeneratedImageRecord{},
	}

	if err := s.createSkeleton(project.ID); err != nil {
		return nil, err
	}
	if err := s.writeProject(project); err != nil {
		return nil, err
	}
	if err := s.updateIndex(project.Meta(), false); err != nil {
		return nil, err
	}
	return project, nil
}

// Load reads a project aggregate from its project.json.
func (s *Store) Load(id string) (*types.Project, error) {
	data, err := os.ReadFile(filepath.Join(s.root, id, projectFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading project file: %w", err)
	}

	var project types.Project
	if err := json.Unmarshal(data, &project); err != nil {
		return nil, fmt.Errorf("parsing project file: %w", err)
	}
	return &project, nil
}

// Save writes the aggregate, refreshes UpdatedAt, rewrites the per-item
// secondary files, and updates the index. Secondary files for items that no
// longer exist in the aggregate are left in place.
func (s *Store) Save(project *types.Project) error {
	if err := s.createSkeleton(project.ID); err != nil {
		return err
	}

	project.UpdatedAt = time.Now().UTC()

	if err := s.writeProject(project); err != nil {
		return err
	}

	dir := filepath.Join(s.root, project.ID)
	for _, item := range project.ResearchItems {
		writeJSONBestEffort(filepath.Join(dir, researchDir, item.ID+".json"), item)
	}
	for _, group := range project.ContentGroups {
		writeJSONBestEffort(filepath.Join(dir, contentDir, group.ID+".json"), group)
	}

	return s.updateIndex(project.Meta(), false)
}

// Delete removes the project directory and its index entry. Deleting a
// project that does not exist is not an error.
func (s *Store) Delete(id string) error {
	if err := os.RemoveAll(filepath.Join(s.root, id)); err != nil {
		return fmt.Errorf("removing project directory: %w", err)
	}
	return s.updateIndex(types.ProjectMeta{ID: id}, true)
}

// List returns the index entries sorted by UpdatedAt descending. A missing
// or corrupt index yields an empty list.
func (s *Store) List() ([]types.ProjectMeta, error) {
	metas := s.readIndex()
	sort.Slice(metas, func(i, j int) bool {
		return metas[i].UpdatedAt.After(metas[j].UpdatedAt)
	})
	return metas, nil
}

// ImagesDir returns the project's images directory, creating it if needed.
func (s *Store) ImagesDir(id string) (string, error) {
	dir := filepath.Join(s.root, id, imagesDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating images directory: %w", err)
	}
	return dir, nil
}

// SaveResearchItem writes one research item's secondary file.
func (s *Store) SaveResearchItem(projectID string, item types.ResearchItem) error {
	dir := filepath.Join(s.root, projectID, researchDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating research directory: %w", err)
	}
	return writeJSON(filepath.Join(dir, item.ID+".json"), item)
}

// SaveContentGroup writes one content group's secondary file.
func (s *Store) SaveContentGroup(projectID string, group types.ContentGroup) error {
	dir := filepath.Join(s.root, projectID, contentDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating content directory: %w", err)
	}
	return writeJSON(filepath.Join(dir, group.ID+".json"), group)
}

func (s *Store) createSkeleton(id string) error {
	for _, sub := range []string{researchDir, contentDir, imagesDir} {
		if err := os.MkdirAll(filepath.Join(s.root, id, sub), 0o755); err != nil {
			return fmt.Errorf("creating %s directory: %w", sub, err)
		}
	}
	return nil
}

func (s *Store) writeProject(project *types.Project) error {
	return writeJSON(filepath.Join(s.root, project.ID, projectFile), project)
}

// updateIndex rewrites projects_index.json with the entry replaced (or
// dropped, when remove is set). The read-modify-write is not guarded
// against concurrent writers; the last writer wins, and the per-project
// files remain the source of truth.
func (s *Store) updateIndex(meta types.ProjectMeta, remove bool) error {
	metas := s.readIndex()

	kept := metas[:0]
	for _, m := range metas {
		if m.ID != meta.ID {
			kept = append(kept, m)
		}
	}
	if !remove {
		kept = append(kept, meta)
	}

	if err := writeJSON(filepath.Join(s.root, indexFile), kept); err != nil {
		return fmt.Errorf("writing index: %w", err)
	}
	return nil
}

// readIndex loads the index, treating a missing or corrupt file as empty.
func (s *Store) readIndex() []types.ProjectMeta {
	data, err := os.ReadFile(filepath.Join(s.root, indexFile))
	if err != nil {
		return nil
	}
	var metas []types.ProjectMeta
	if err := json.Unmarshal(data, &metas); err != nil {
		return nil
	}
	return metas
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	return nil
}

// writeJSONBestEffort is writeJSON with failures swallowed; used for
// secondary files where the aggregate remains authoritative.
func writeJSONBestEffort(path string, v any) {
	_ = writeJSON(path, v)
}
