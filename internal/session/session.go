// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package session keeps device-local flags between CLI runs: whether the
// user finished onboarding and which components they selected for the next
// generation request. Values live in one bbolt bucket as JSON.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.etcd.io/bbolt"
)

const bucketSession = "session"

// Keys in the session bucket.
const (
	keyOnboarding = "onboarding_complete" // JSON bool
	keySelected   = "selected_components" // JSON []string
	keyUpdatedAt  = "updated_at"          // RFC 3339 text
)

// DefaultPath is used when configuration names no session file.
const DefaultPath = "data/session.bolt"

// State is a snapshot of everything in the session bucket.
type State struct {
	OnboardingComplete bool      `json:"onboardingComplete" yaml:"onboarding_complete"`
	SelectedComponents []string  `json:"selectedComponents" yaml:"selected_components"`
	UpdatedAt          time.Time `json:"updatedAt,omitempty" yaml:"updated_at,omitempty"`
}

// Store is a bbolt-backed session store.
type Store struct {
	db *bbolt.DB
}

// Open opens or creates the session database at path.
func Open(path string) (*Store, error) {
	if path == "" {
		path = DefaultPath
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating session directory: %w", err)
		}
	}

	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening session store %s: %w", path, err)
	}

	if err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketSession))
		return err
	}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating session bucket: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the database file lock.
func (s *Store) Close() error {
	return s.db.Close()
}

// State reads the whole session. Missing keys read as zero values.
func (s *Store) State() (State, error) {
	var st State
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucketSession))
		if raw := b.Get([]byte(keyOnboarding)); raw != nil {
			if err := json.Unmarshal(raw, &st.OnboardingComplete); err != nil {
				return fmt.Errorf("decoding %s: %w", keyOnboarding, err)
			}
		}
		if raw := b.Get([]byte(keySelected)); raw != nil {
			if err := json.Unmarshal(raw, &st.SelectedComponents); err != nil {
				return fmt.Errorf("decoding %s: %w", keySelected, err)
			}
		}
		if raw := b.Get([]byte(keyUpdatedAt)); raw != nil {
			t, err := time.Parse(time.RFC3339Nano, string(raw))
			if err != nil {
				return fmt.Errorf("decoding %s: %w", keyUpdatedAt, err)
			}
			st.UpdatedAt = t
		}
		return nil
	})
	if err != nil {
		return State{}, err
	}
	if st.SelectedComponents == nil {
		st.SelectedComponents = []string{}
	}
	return st, nil
}

// OnboardingComplete reports whether onboarding was marked done.
func (s *Store) OnboardingComplete() (bool, error) {
	st, err := s.State()
	return st.OnboardingComplete, err
}

// SetOnboardingComplete records the onboarding flag.
func (s *Store) SetOnboardingComplete(done bool) error {
	return s.put(keyOnboarding, done)
}

// SelectedComponents returns the component names chosen for generation.
func (s *Store) SelectedComponents() ([]string, error) {
	st, err := s.State()
	return st.SelectedComponents, err
}

// SetSelectedComponents replaces the selection. Blank names are dropped and
// duplicates collapse, keeping first-seen order.
func (s *Store) SetSelectedComponents(names []string) error {
	seen := make(map[string]bool, len(names))
	cleaned := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		cleaned = append(cleaned, n)
	}
	return s.put(keySelected, cleaned)
}

// Reset removes every session key.
func (s *Store) Reset() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.DeleteBucket([]byte(bucketSession)); err != nil {
			return fmt.Errorf("clearing session: %w", err)
		}
		_, err := tx.CreateBucket([]byte(bucketSession))
		return err
	})
}

func (s *Store) put(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucketSession))
		if err := b.Put([]byte(key), data); err != nil {
			return fmt.Errorf("writing %s: %w", key, err)
		}
		now := time.Now().UTC().Format(time.RFC3339Nano)
		return b.Put([]byte(keyUpdatedAt), []byte(now))
	})
}
