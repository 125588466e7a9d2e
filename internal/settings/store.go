package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/gofrs/flock"
	"go.uber.org/zap"
)

// Store is the single source of truth for the settings document. The
// in-memory document is guarded by a reader/writer lock and mirrored to a
// pretty-printed JSON file on every successful mutation (write-through: a
// failed file write leaves the in-memory document authoritative until the
// next restart).
type Store struct {
	mu     sync.RWMutex
	doc    Settings
	path   string
	lock   *flock.Flock
	logger *zap.Logger
}

// NewStore loads the settings document from path, falling back to the
// built-in defaults when no file exists yet (the file is only created on
// the first write). It also takes a process lock next to the settings file
// so two idleview instances cannot interleave persisted writes.
func NewStore(path string, logger *zap.Logger) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, &StorageError{Op: "init", Err: fmt.Errorf("creating settings directory: %w", err)}
	}

	lock := flock.New(path + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return nil, &StorageError{Op: "init", Err: fmt.Errorf("acquiring settings lock: %w", err)}
	}
	if !locked {
		return nil, &StorageError{Op: "init", Err: fmt.Errorf("settings file %s is locked by another idleview instance", path)}
	}

	doc, err := load(path)
	if err != nil {
		_ = lock.Unlock()
		return nil, err
	}

	logger.Info("Settings store initialized",
		zap.String("path", path),
		zap.String("theme", doc.Display.Theme))

	return &Store{
		doc:    doc,
		path:   path,
		lock:   lock,
		logger: logger,
	}, nil
}

func load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return Settings{}, &StorageError{Op: "read", Err: err}
	}

	doc := Default()
	if err := json.Unmarshal(data, &doc); err != nil {
		return Settings{}, &StorageError{Op: "read", Err: fmt.Errorf("parsing settings file: %w", err)}
	}
	return doc, nil
}

// Get returns a snapshot of the current document.
func (s *Store) Get() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc
}

// Replace atomically swaps in a full document and persists it. On a
// persistence failure the in-memory swap has already happened; the error is
// surfaced so the caller can inform the user, but the new value stands.
func (s *Store) Replace(doc Settings) error {
	if err := doc.validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc = doc
	return s.persist(doc)
}

// MergePatch applies a JSON merge patch to the current document: for every
// key in the patch, objects merge recursively and any other value replaces
// the current one. The result must still decode as a valid document, or the
// store is left untouched and a ValidationError is returned. Returns the
// resulting document.
func (s *Store) MergePatch(patch []byte) (Settings, error) {
	var patchTree map[string]interface{}
	if err := json.Unmarshal(patch, &patchTree); err != nil {
		return Settings{}, &ValidationError{Reason: fmt.Sprintf("patch must be a JSON object: %v", err)}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := json.Marshal(s.doc)
	if err != nil {
		return Settings{}, &StorageError{Op: "merge", Err: fmt.Errorf("serializing current settings: %w", err)}
	}

	var currentTree map[string]interface{}
	if err := json.Unmarshal(current, &currentTree); err != nil {
		return Settings{}, &StorageError{Op: "merge", Err: fmt.Errorf("decoding current settings: %w", err)}
	}

	mergeJSON(currentTree, patchTree)

	merged, err := json.Marshal(currentTree)
	if err != nil {
		return Settings{}, &StorageError{Op: "merge", Err: fmt.Errorf("serializing merged settings: %w", err)}
	}

	doc, err := Decode(merged)
	if err != nil {
		return Settings{}, err
	}

	s.doc = doc
	if err := s.persist(doc); err != nil {
		return doc, err
	}
	return doc, nil
}

// Reset restores the built-in defaults and persists them.
func (s *Store) Reset() (Settings, error) {
	doc := Default()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc = doc
	if err := s.persist(doc); err != nil {
		return doc, err
	}
	return doc, nil
}

// Close releases the process lock on the settings file.
func (s *Store) Close() {
	if err := s.lock.Unlock(); err != nil {
		s.logger.Warn("Failed to release settings lock", zap.Error(err))
	}
}

// Path returns the durable settings file location.
func (s *Store) Path() string { return s.path }

// persist is called with the write lock held, which sequences concurrent
// mutations on disk: the last writer to take the lock writes last.
func (s *Store) persist(doc Settings) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return &StorageError{Op: "write", Err: fmt.Errorf("serializing settings: %w", err)}
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		s.logger.Error("Failed to persist settings",
			zap.String("path", s.path),
			zap.Error(err))
		return &StorageError{Op: "write", Err: err}
	}

	s.logger.Debug("Settings persisted", zap.String("path", s.path))
	return nil
}
