// Package seen persists the per-source fingerprint sets across runs.
package seen

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	mapset "github.com/deckarep/golang-set/v2"
)

// Store maps source names to the fingerprints already reported for them. It
// is owned by the run loop and handed to the reconciler one source at a
// time; it is not safe for concurrent use.
type Store struct {
	path    string
	sources map[string]mapset.Set[string]
}

// Load reads the store at path. A missing file is a fresh start and a
// corrupt one is logged and treated as empty: losing the seen-set costs at
// worst a one-time burst of duplicate notifications, which beats refusing to
// run.
func Load(path string, logger *slog.Logger) *Store {
	st := &Store{path: path, sources: make(map[string]mapset.Set[string])}

	b, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("seen store unreadable, starting empty", "path", path, "error", err)
		}
		return st
	}

	var raw map[string][]string
	if err := json.Unmarshal(b, &raw); err != nil {
		logger.Warn("seen store corrupt, starting empty", "path", path, "error", err)
		return st
	}

	for name, fps := range raw {
		st.sources[name] = mapset.NewThreadUnsafeSet(fps...)
	}
	return st
}

// ForSource returns the fingerprint set for a source, creating an empty one
// on first sight. The returned set is live: the reconciler mutates it in
// place.
func (s *Store) ForSource(name string) mapset.Set[string] {
	set, ok := s.sources[name]
	if !ok {
		set = mapset.NewThreadUnsafeSet[string]()
		s.sources[name] = set
	}
	return set
}

// HasSource reports whether the store already holds any fingerprints for the
// source. Used to detect a source's bootstrap cycle.
func (s *Store) HasSource(name string) bool {
	set, ok := s.sources[name]
	return ok && set.Cardinality() > 0
}

// SaveAtomic writes the store with replace semantics: marshal to a temp file
// next to the target, then rename over it, so a crash mid-write can never
// leave a half-written store behind.
func (s *Store) SaveAtomic() error {
	raw := make(map[string][]string, len(s.sources))
	for name, set := range s.sources {
		fps := set.ToSlice()
		if fps == nil {
			fps = []string{}
		}
		sort.Strings(fps)
		raw[name] = fps
	}

	b, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
