// Package document loads JSON files from disk and caches the decoded value
// per path, invalidating on file modification time.
package document

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	json "github.com/goccy/go-json"
)

var (
	// ErrUnreadable indicates the file could not be resolved, stat'ed or read.
	ErrUnreadable = errors.New("cannot read document")
	// ErrInvalidJSON indicates the file contents failed to decode as JSON.
	ErrInvalidJSON = errors.New("invalid JSON document")
	// ErrForbidden indicates the path resolves outside every allowed root.
	ErrForbidden = errors.New("document path outside allowed roots")
)

type cacheEntry struct {
	data    any
	modTime time.Time
}

// Loader reads and decodes JSON documents. With caching enabled it keeps at
// most one decoded entry per resolved path and serves it back as long as the
// file's modification time is unchanged. Cached values are shared between
// callers; the query engines never mutate them.
type Loader struct {
	mu      sync.RWMutex
	entries map[string]*cacheEntry
	roots   []string
	caching bool
}

// NewLoader creates a Loader. roots, when non-empty, is an allow-list of
// directories documents must live under.
func NewLoader(roots []string, caching bool) *Loader {
	return &Loader{
		entries: make(map[string]*cacheEntry),
		roots:   roots,
		caching: caching,
	}
}

// Load returns the decoded JSON value for path. The cache is keyed by the
// resolved absolute path; a hit requires an identical modification time,
// otherwise the file is re-read and the entry replaced. Concurrent loads of
// the same path may both read the file; they store the same content, so the
// last write wins harmlessly.
func (l *Loader) Load(path string) (any, error) {
	resolved, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrUnreadable, path, err)
	}
	resolved = filepath.Clean(resolved)

	if err := l.checkRoots(resolved); err != nil {
		return nil, err
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrUnreadable, path, err)
	}

	if l.caching {
		l.mu.RLock()
		entry, ok := l.entries[resolved]
		l.mu.RUnlock()
		if ok && entry.modTime.Equal(info.ModTime()) {
			return entry.data, nil
		}
	}

	raw, err := os.ReadFile(resolved)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrUnreadable, path, err)
	}

	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrInvalidJSON, path, err)
	}

	if l.caching {
		l.mu.Lock()
		l.entries[resolved] = &cacheEntry{data: data, modTime: info.ModTime()}
		l.mu.Unlock()
	}

	return data, nil
}

func (l *Loader) checkRoots(resolved string) error {
	if len(l.roots) == 0 {
		return nil
	}

	for _, root := range l.roots {
		absRoot, err := filepath.Abs(root)
		if err != nil {
			continue
		}
		rel, err := filepath.Rel(absRoot, resolved)
		if err != nil {
			continue
		}
		if rel == "." || (!strings.HasPrefix(rel, ".."+string(filepath.Separator)) && rel != "..") {
			return nil
		}
	}

	return fmt.Errorf("%w: %s", ErrForbidden, resolved)
}
