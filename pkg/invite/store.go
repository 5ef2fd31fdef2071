// Package invite validates invite codes against a JSON file on disk. The
// file can be edited while the server runs; an fsnotify watcher reloads it.
package invite

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
)

type codesFile struct {
	Codes []string `json:"codes"`
}

type Store struct {
	path string

	mu    sync.RWMutex
	codes map[string]struct{} // upper-cased
}

func NewStore(path string) (*Store, error) {
	s := &Store{path: path, codes: map[string]struct{}{}}
	if err := s.reload(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) reload() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			// Missing file means no codes yet, not a fatal condition.
			s.mu.Lock()
			s.codes = map[string]struct{}{}
			s.mu.Unlock()
			return nil
		}
		return err
	}

	var parsed codesFile
	if err := json.Unmarshal(data, &parsed); err != nil {
		return err
	}

	codes := make(map[string]struct{}, len(parsed.Codes))
	for _, c := range parsed.Codes {
		codes[strings.ToUpper(strings.TrimSpace(c))] = struct{}{}
	}

	s.mu.Lock()
	s.codes = codes
	s.mu.Unlock()
	return nil
}

// Verify reports whether code is registered. Matching ignores case.
func (s *Store) Verify(code string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.codes[strings.ToUpper(strings.TrimSpace(code))]
	return ok
}

// Count returns how many codes are currently loaded.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.codes)
}

// Watch reloads the code file whenever it changes, until ctx is done.
func (s *Store) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	// Watch the directory: editors typically replace the file, which would
	// invalidate a watch on the file itself.
	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		watcher.Close()
		return err
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Name != s.path {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				if err := s.reload(); err != nil {
					log.Printf("[WARN] Invite code reload failed: %v", err)
				} else {
					log.Printf("[INFO] Invite codes reloaded (%d active)", s.Count())
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("[WARN] Invite code watcher: %v", err)
			}
		}
	}()
	return nil
}
