// Package snapshot persists the last-known follower set to a JSON file.
package snapshot

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"

	"followerwatch/internal/follower"
	"followerwatch/internal/logger"
)

// document is the on-disk shape. It must round-trip the login set exactly;
// last_updated is informational only.
type document struct {
	Followers   []string `json:"followers"`
	LastUpdated string   `json:"last_updated"`
}

type Store struct {
	Path string

	nowFn func() time.Time
}

func NewStore(path string) *Store {
	return &Store{Path: path, nowFn: time.Now}
}

// Load returns the persisted follower set. A missing file means a first run
// and a corrupt file is treated the same way: both yield an empty set with a
// log record, never a failure.
func (s *Store) Load() *follower.Set {
	raw, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Infof("no previous followers file found, starting fresh")
		} else {
			logger.Warnf("reading followers file: %v, starting fresh", err)
		}
		return follower.NewSet()
	}

	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		logger.Warnf("followers file is malformed: %v, starting fresh", err)
		return follower.NewSet()
	}
	return follower.NewSet(doc.Followers...)
}

// Save replaces the snapshot with the given set, creating the file if absent.
func (s *Store) Save(set *follower.Set) error {
	now := time.Now
	if s.nowFn != nil {
		now = s.nowFn
	}
	doc := document{
		Followers:   set.Logins(),
		LastUpdated: now().UTC().Format(time.RFC3339),
	}
	if doc.Followers == nil {
		doc.Followers = []string{}
	}

	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding followers")
	}
	if err := os.WriteFile(s.Path, raw, 0o644); err != nil {
		return errors.Wrap(err, "writing followers file")
	}
	logger.Debugf("saved %d followers to %s", set.Len(), s.Path)
	return nil
}

// Check verifies that the snapshot location is usable without touching the
// file itself.
func (s *Store) Check() error {
	if s.Path == "" {
		return errors.New("followers file path is empty")
	}
	dir := filepath.Dir(s.Path)
	info, err := os.Stat(dir)
	if err != nil {
		return errors.Wrapf(err, "followers file directory %s", dir)
	}
	if !info.IsDir() {
		return errors.Errorf("followers file parent %s is not a directory", dir)
	}
	return nil
}
