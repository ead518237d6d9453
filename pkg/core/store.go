package core

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// Store handles the business logic for notes.
//
// Every operation reads the whole collection from the slot, works on it in
// memory and, for mutations, rewrites the whole collection. Read and write
// failures are recovered here: a broken read degrades to an empty collection
// and a failed write is reported but not retried or rolled back.
//
// Store keeps no note state between calls. Two stores (or processes) sharing
// a slot may overwrite each other's changes.
type Store struct {
	slot        Slot
	key         string
	now         func() time.Time
	newID       func() string
	logger      *slog.Logger
	diagnostics func(Diagnostic)

	mu    sync.RWMutex
	stats storeStats
}

type storeStats struct {
	reads         int
	writes        int
	readFailures  int
	writeFailures int
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithKey sets the slot key holding the collection.
func WithKey(key string) StoreOption {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides the ID generator (default NewID).
func WithIDGenerator(gen func() string) StoreOption {
	return func(s *Store) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// WithLogger sets the logger receiving swallowed failures.
func WithLogger(logger *slog.Logger) StoreOption {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithDiagnostics registers a callback invoked for every swallowed failure.
func WithDiagnostics(fn func(Diagnostic)) StoreOption {
	return func(s *Store) {
		s.diagnostics = fn
	}
}

// NewStore creates a Store over slot.
func NewStore(slot Slot, opts ...StoreOption) *Store {
	s := &Store{
		slot:   slot,
		key:    DefaultKey,
		now:    time.Now,
		newID:  NewID,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Key returns the slot key this store reads and writes.
func (s *Store) Key() string {
	return s.key
}

// ListAll returns every note in storage order.
// It never fails: an unreadable collection is reported and treated as empty.
func (s *Store) ListAll(ctx context.Context) []Note {
	return s.load(ctx, "list")
}

// GetByID returns the note with the given ID.
// The boolean is false when no such note exists.
func (s *Store) GetByID(ctx context.Context, id string) (Note, bool) {
	for _, n := range s.load(ctx, "get") {
		if n.ID == id {
			return n, true
		}
	}
	return Note{}, false
}

// Create appends a new note and persists the collection.
// A blank title becomes DefaultTitle. Create always returns the new note,
// even when persisting it failed.
func (s *Store) Create(ctx context.Context, in NoteInput) Note {
	notes := s.load(ctx, "create")

	title := in.Title
	if strings.TrimSpace(title) == "" {
		title = DefaultTitle
	}

	now := s.stamp()
	note := Note{
		ID:        freshID(s.newID, notes),
		Title:     title,
		Body:      in.Body,
		CreatedAt: now,
		UpdatedAt: now,
	}

	notes = append(notes, note)
	s.save(ctx, "create", notes)
	return note
}

// Update merges patch into the note with the given ID and persists the
// collection. ID and CreatedAt are never changed. The boolean is false when
// no such note exists, in which case nothing is written.
func (s *Store) Update(ctx context.Context, id string, patch NotePatch) (Note, bool) {
	notes := s.load(ctx, "update")

	for i := range notes {
		if notes[i].ID != id {
			continue
		}

		n := &notes[i]
		if patch.Title != nil {
			n.Title = *patch.Title
		}
		if patch.Body != nil {
			n.Body = *patch.Body
		}
		n.UpdatedAt = s.touch(*n)

		s.save(ctx, "update", notes)
		return *n, true
	}

	return Note{}, false
}

// Delete removes the note with the given ID and persists the remaining
// collection. It reports whether a note was removed.
func (s *Store) Delete(ctx context.Context, id string) bool {
	notes := s.load(ctx, "delete")

	kept := make([]Note, 0, len(notes))
	for _, n := range notes {
		if n.ID != id {
			kept = append(kept, n)
		}
	}

	if len(kept) == len(notes) {
		return false
	}

	s.save(ctx, "delete", kept)
	return true
}

// Search returns notes whose title or body contains query, ignoring case.
// A blank query returns the same notes as ListAll.
func (s *Store) Search(ctx context.Context, query string) []Note {
	notes := s.load(ctx, "search")
	if strings.TrimSpace(query) == "" {
		return notes
	}

	needle := strings.ToLower(query)
	matches := make([]Note, 0, len(notes))
	for _, n := range notes {
		if strings.Contains(strings.ToLower(n.Title), needle) ||
			strings.Contains(strings.ToLower(n.Body), needle) {
			matches = append(matches, n)
		}
	}
	return matches
}

// stamp returns the current time in the persisted precision.
func (s *Store) stamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}

// touch returns the UpdatedAt value for an update of n.
// It never goes backwards, and always moves past the previous stamp.
func (s *Store) touch(n Note) time.Time {
	floor := n.UpdatedAt
	if n.CreatedAt.After(floor) {
		floor = n.CreatedAt
	}

	now := s.stamp()
	if !now.After(floor) {
		now = floor.Add(time.Millisecond)
	}
	return now
}

func (s *Store) load(ctx context.Context, op string) []Note {
	raw, found, err := s.slot.Get(ctx, s.key)
	s.record(func(st *storeStats) { st.reads++ })
	if err != nil {
		s.report(Diagnostic{Kind: ErrReadCorruption, Op: op, Key: s.key, Err: err})
		return []Note{}
	}
	if !found {
		return []Note{}
	}

	notes, err := DecodeNotes(raw)
	if err != nil {
		s.report(Diagnostic{Kind: ErrReadCorruption, Op: op, Key: s.key, Err: err})
		return []Note{}
	}
	return notes
}

func (s *Store) save(ctx context.Context, op string, notes []Note) {
	data, err := EncodeNotes(notes)
	if err == nil {
		err = s.slot.Set(ctx, s.key, data)
	}
	s.record(func(st *storeStats) { st.writes++ })
	if err != nil {
		s.report(Diagnostic{Kind: ErrWriteFailure, Op: op, Key: s.key, Err: err})
		return
	}
	s.logger.Debug("notes persisted", "op", op, "key", s.key, "count", len(notes))
}

func (s *Store) report(d Diagnostic) {
	if errors.Is(d.Kind, ErrWriteFailure) {
		s.record(func(st *storeStats) { st.writeFailures++ })
		s.logger.Error("failed to persist notes", "op", d.Op, "key", d.Key, "error", d.Err)
	} else {
		s.record(func(st *storeStats) { st.readFailures++ })
		s.logger.Warn("failed to read notes, using empty collection", "op", d.Op, "key", d.Key, "error", d.Err)
	}

	if s.diagnostics != nil {
		s.diagnostics(d)
	}
}

func (s *Store) record(fn func(*storeStats)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.stats)
}
