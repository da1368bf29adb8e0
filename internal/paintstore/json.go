// Package paintstore provides persistent paintsync.Store implementations
// and a watcher for edits made outside the running viewer.
package paintstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/meshpaint/internal/logger"
)

// JSONStore keeps all models' edits in one JSON file:
//
//	{"robot": {"12": "#00ff00"}}
//
// Every update rewrites the file through a temp file and rename.
type JSONStore struct {
	path string
	mu   sync.Mutex

	// written is the file content this store last loaded, wrote or
	// acknowledged; foreign is set when a write finds the file changed by
	// someone else since then.
	written []byte
	known   bool
	foreign bool
}

// NewJSONStore returns a store backed by path. The file is created on the
// first update.
func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

// Path returns the backing file.
func (s *JSONStore) Path() string {
	return s.path
}

// Load returns the edits for modelID; a missing file or model has none.
func (s *JSONStore) Load(ctx context.Context, modelID string) (map[string]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.readRaw()
	if err != nil {
		return nil, err
	}
	all, err := s.decode(data)
	if err != nil {
		return nil, err
	}
	s.written = data
	s.known = true

	edits := all[modelID]
	if edits == nil {
		edits = make(map[string]string)
	}
	return edits, nil
}

// Update merges edits into modelID, last write wins per vertex.
func (s *JSONStore) Update(ctx context.Context, modelID string, edits map[string]string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.readForWrite()
	if err != nil {
		return err
	}
	m := all[modelID]
	if m == nil {
		m = make(map[string]string, len(edits))
		all[modelID] = m
	}
	for k, v := range edits {
		m[k] = v
	}

	if err := s.write(all); err != nil {
		return err
	}
	logger.Debug("json store updated",
		zap.String("path", s.path),
		zap.String("model", modelID),
		zap.Int("entries", len(edits)),
	)
	return nil
}

// Replace overwrites all edits of modelID.
func (s *JSONStore) Replace(ctx context.Context, modelID string, edits map[string]string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.readForWrite()
	if err != nil {
		return err
	}
	if len(edits) == 0 {
		delete(all, modelID)
	} else {
		m := make(map[string]string, len(edits))
		for k, v := range edits {
			m[k] = v
		}
		all[modelID] = m
	}
	return s.write(all)
}

// Models lists the stored model IDs in order.
func (s *JSONStore) Models(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.read()
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// ExternallyModified reports whether the file changed other than through
// this store since the previous call. The current content becomes the new
// baseline, so each outside change is reported once.
func (s *JSONStore) ExternallyModified() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.readRaw()
	if err != nil {
		return false, err
	}
	changed := s.foreign || !s.known || !bytes.Equal(data, s.written)
	s.written = data
	s.known = true
	s.foreign = false
	return changed, nil
}

func (s *JSONStore) readRaw() ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read paint file: %w", err)
	}
	return data, nil
}

func (s *JSONStore) read() (map[string]map[string]string, error) {
	data, err := s.readRaw()
	if err != nil {
		return nil, err
	}
	return s.decode(data)
}

// readForWrite is read plus detection of outside changes since the last
// write.
func (s *JSONStore) readForWrite() (map[string]map[string]string, error) {
	data, err := s.readRaw()
	if err != nil {
		return nil, err
	}
	if s.known && !bytes.Equal(data, s.written) {
		s.foreign = true
	}
	return s.decode(data)
}

func (s *JSONStore) decode(data []byte) (map[string]map[string]string, error) {
	all := make(map[string]map[string]string)
	if len(data) == 0 {
		return all, nil
	}
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, fmt.Errorf("parse paint file %s: %w", s.path, err)
	}
	return all, nil
}

func (s *JSONStore) write(all map[string]map[string]string) error {
	data, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		return fmt.Errorf("encode paint file: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create paint dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp paint file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write paint file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close paint file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace paint file: %w", err)
	}
	s.written = data
	s.known = true
	return nil
}
