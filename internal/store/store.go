// Package store persists game sessions as a single JSON collection on disk,
// the way the browser original kept one array under one localStorage key.
// Every operation is a full read-modify-write of the collection, serialized
// by a mutex, and writes are atomic so readers never see a torn file.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/coder/quartz"
	"github.com/rs/zerolog"

	"github.com/lox/scorekeeper/internal/fileutil"
	"github.com/lox/scorekeeper/internal/game"
)

// DefaultRetentionCap is the maximum number of stored sessions kept when no
// cap is configured. Oldest sessions are evicted first once exceeded.
const DefaultRetentionCap = 20

// NotFoundError reports a load of a session id that is not in the store.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("saved game %s not found", e.ID)
}

// StorageError reports a persistence write that failed even after eviction
// and retry. The in-memory session is still valid; only durability was lost.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s failed, data may be lost: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Store is a durable keyed collection of sessions backed by one file.
type Store struct {
	path   string
	cap    int
	clock  quartz.Clock
	logger zerolog.Logger

	mu sync.Mutex
}

// Option configures a Store.
type Option func(*Store)

// WithRetentionCap overrides the maximum number of stored sessions.
func WithRetentionCap(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.cap = n
		}
	}
}

// WithClock injects the clock used for save timestamps.
func WithClock(clock quartz.Clock) Option {
	return func(s *Store) { s.clock = clock }
}

// New creates a store backed by the file at path. The file and its directory
// are created lazily on first save.
func New(path string, logger zerolog.Logger, opts ...Option) *Store {
	s := &Store{
		path:   path,
		cap:    DefaultRetentionCap,
		clock:  quartz.NewReal(),
		logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns every stored session, newest first. Callers filter by
// Finished to build the resumable list.
func (s *Store) List() []*game.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortNewestFirst(s.read())
}

// Unfinished returns resumable sessions, newest first.
func (s *Store) Unfinished() []*game.Session {
	var out []*game.Session
	for _, sess := range s.List() {
		if !sess.Finished {
			out = append(out, sess)
		}
	}
	return out
}

// Load returns the stored session with the given id. Malformed records are
// reconstructed defensively during decoding; only an id that is absent (or
// whose record is unreadable beyond repair) fails, with *NotFoundError.
func (s *Store) Load(id string) (*game.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, sess := range s.read() {
		if sess.ID == id {
			return sess, nil
		}
	}
	return nil, &NotFoundError{ID: id}
}

// Save upserts the session by id and stamps its update time. When the
// collection exceeds the retention cap the oldest sessions are evicted, never
// the one being saved. A failed write is retried once with everything but the
// saved session evicted; if that also fails the save is dropped and a
// *StorageError is returned while the in-memory session stays usable.
func (s *Store) Save(sess *game.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess.UpdatedAt = s.clock.Now()

	sessions := s.read()
	replaced := false
	for i, existing := range sessions {
		if existing.ID == sess.ID {
			sessions[i] = sess
			replaced = true
			break
		}
	}
	if !replaced {
		sessions = append(sessions, sess)
	}

	sessions = s.evict(sessions, sess.ID)

	err := s.write(sessions)
	if err == nil {
		return nil
	}
	s.logger.Warn().Err(err).Str("id", sess.ID).
		Msg("save failed, evicting older games and retrying")

	// Last resort: keep only the active session.
	if err := s.write([]*game.Session{sess}); err != nil {
		s.logger.Error().Err(err).Str("id", sess.ID).Msg("save failed after retry")
		return &StorageError{Op: "save", Err: err}
	}
	s.logger.Warn().Int("evicted", len(sessions)-1).
		Msg("older saved games were dropped to free storage")
	return nil
}

// Delete removes the session with the given id. Deleting an absent id is a
// no-op.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions := s.read()
	kept := sessions[:0]
	for _, sess := range sessions {
		if sess.ID != id {
			kept = append(kept, sess)
		}
	}

	if err := s.write(kept); err != nil {
		return &StorageError{Op: "delete", Err: err}
	}
	return nil
}

// evict trims the collection to the retention cap, dropping oldest first but
// always keeping the session with activeID.
func (s *Store) evict(sessions []*game.Session, activeID string) []*game.Session {
	if len(sessions) <= s.cap {
		return sessions
	}

	sorted := sortNewestFirst(sessions)
	kept := sorted[:s.cap]

	keepsActive := false
	for _, sess := range kept {
		if sess.ID == activeID {
			keepsActive = true
			break
		}
	}
	if !keepsActive {
		for _, sess := range sorted[s.cap:] {
			if sess.ID == activeID {
				kept[len(kept)-1] = sess
				break
			}
		}
	}

	s.logger.Info().Int("evicted", len(sessions)-len(kept)).
		Msg("retention cap exceeded, dropping oldest saved games")
	return kept
}

// read loads the whole collection. A missing file is an empty store; a
// corrupt file or corrupt individual records are skipped with a warning
// rather than failing the caller, since stored data is untrusted.
func (s *Store) read() []*game.Session {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn().Err(err).Msg("could not read saved games")
		}
		return nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		s.logger.Warn().Err(err).Msg("saved games file is corrupt, starting empty")
		return nil
	}

	sessions := make([]*game.Session, 0, len(raw))
	for _, r := range raw {
		var sess game.Session
		if err := json.Unmarshal(r, &sess); err != nil {
			s.logger.Warn().Err(err).Msg("skipping malformed saved game")
			continue
		}
		sessions = append(sessions, &sess)
	}
	return sessions
}

func (s *Store) write(sessions []*game.Session) error {
	if sessions == nil {
		sessions = []*game.Session{}
	}
	data, err := json.Marshal(sessions)
	if err != nil {
		return fmt.Errorf("encode saved games: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create save dir: %w", err)
	}
	return fileutil.WriteFileAtomic(s.path, data, 0o644)
}

func sortNewestFirst(sessions []*game.Session) []*game.Session {
	sorted := make([]*game.Session, len(sessions))
	copy(sorted, sessions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].UpdatedAt.After(sorted[j].UpdatedAt)
	})
	return sorted
}
