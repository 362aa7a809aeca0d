package out

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"formnav/internal/modules/bookmark/domain"
	bookmarkout "formnav/internal/modules/bookmark/port/out"
)

// FileStore keeps namespaced records in one JSON document, so several keys
// can share a storage file the way extension sync storage does.
type FileStore struct {
	path string
	key  string
	mu   sync.Mutex
}

func NewFileStore(path, key string) bookmarkout.Store {
	return &FileStore{path: path, key: key}
}

func (s *FileStore) Load(_ context.Context, defaults domain.List) (domain.List, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	records, err := s.readAll()
	if err != nil {
		return nil, err
	}
	raw, ok := records[s.key]
	if !ok {
		return defaults, nil
	}
	return decodeRecord(raw)
}

func (s *FileStore) Save(ctx context.Context, list domain.List) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	records, err := s.readAll()
	if err != nil {
		return err
	}
	payload, err := encodeRecord(list)
	if err != nil {
		return err
	}
	records[s.key] = payload
	doc, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal storage file: %w", err)
	}
	return writeFileAtomic(s.path, doc)
}

func (s *FileStore) readAll() (map[string]json.RawMessage, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]json.RawMessage{}, nil
		}
		return nil, fmt.Errorf("read storage file: %w", err)
	}
	records := map[string]json.RawMessage{}
	if len(b) == 0 {
		return records, nil
	}
	if err := json.Unmarshal(b, &records); err != nil {
		return nil, fmt.Errorf("decode storage file: %w", err)
	}
	return records, nil
}

func writeFileAtomic(path string, payload []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create storage dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".storage-*.json")
	if err != nil {
		return fmt.Errorf("create temp storage file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(payload); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write temp storage file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close temp storage file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace storage file: %w", err)
	}
	return nil
}
