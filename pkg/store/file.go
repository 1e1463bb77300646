package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/yuliitezarygml/tg-bor-arend/pkg/logger"
)

// fileStore keeps each collection as <dir>/<name>.json holding an object of
// id -> record. Writes go through a temp file plus rename so a crash mid-write
// never leaves a truncated collection behind.
type fileStore struct {
	dir string
	log logger.Interface
	mu  sync.Mutex
}

func NewFile(dir string, log logger.Interface) (Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("store: create dir %s: %w", dir, err)
	}

	return &fileStore{
		dir: dir,
		log: log,
	}, nil
}

func (s *fileStore) path(collection string) string {
	return filepath.Join(s.dir, collection+".json")
}

func (s *fileStore) Load(_ context.Context, collection string) (Collection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path(collection))
	if err != nil {
		if os.IsNotExist(err) {
			return Collection{}, nil
		}

		s.log.Error("store - file - load %s: %v", collection, err)

		return nil, fmt.Errorf("store: load %s: %w", collection, err)
	}

	records := Collection{}
	if err := json.Unmarshal(data, &records); err != nil {
		s.log.Error("store - file - decode %s: %v", collection, err)

		return nil, fmt.Errorf("store: decode %s: %w", collection, err)
	}

	return records, nil
}

func (s *fileStore) Save(_ context.Context, collection string, records Collection) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if records == nil {
		records = Collection{}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", collection, err)
	}

	tmp := s.path(collection) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		s.log.Error("store - file - save %s: %v", collection, err)

		return fmt.Errorf("store: save %s: %w", collection, err)
	}

	if err := os.Rename(tmp, s.path(collection)); err != nil {
		s.log.Error("store - file - rename %s: %v", collection, err)

		return fmt.Errorf("store: save %s: %w", collection, err)
	}

	return nil
}
