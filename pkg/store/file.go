package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/McKayRansom/auto-factorio/pkg/problem"
)

// FileStore stores each result as a JSON file named after its id.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a file-based store rooted at baseDir.
// If baseDir is empty, defaults to ~/.local/share/beltroute/results.
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		baseDir = filepath.Join(home, ".local", "share", "beltroute", "results")
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create result dir: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

// resultPath rejects ids that are not UUIDs so a request can never name a
// file outside the store.
func (s *FileStore) resultPath(id string) (string, error) {
	if _, err := uuid.Parse(id); err != nil {
		return "", fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return filepath.Join(s.baseDir, id+".json"), nil
}

func (s *FileStore) Get(_ context.Context, id string) (*problem.Result, error) {
	path, err := s.resultPath(id)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	res, err := problem.ImportResult(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read result: %w", err)
	}
	return res, nil
}

func (s *FileStore) Put(_ context.Context, res *problem.Result) error {
	path, err := s.resultPath(res.ID)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write result file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("write result file: %w", err)
	}
	return nil
}

func (s *FileStore) Delete(_ context.Context, id string) error {
	path, err := s.resultPath(id)
	if err != nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove result file: %w", err)
	}
	return nil
}

func (s *FileStore) List(_ context.Context, limit int) ([]*problem.Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("read result dir: %w", err)
	}
	var out []*problem.Result
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		res, err := problem.ImportResult(filepath.Join(s.baseDir, entry.Name()))
		if err != nil {
			continue
		}
		if res.ID != strings.TrimSuffix(entry.Name(), ".json") {
			continue
		}
		out = append(out, res)
	}
	sortNewestFirst(out)
	return out[:min(len(out), listLimit(limit))], nil
}

func (s *FileStore) Close() error { return nil }

// Path returns the directory holding result files.
func (s *FileStore) Path() string {
	return s.baseDir
}

var _ Store = (*FileStore)(nil)
