package core

import "github.com/google/uuid"

// maxIDAttempts bounds how often an injected generator may collide
// before the store falls back to a random UUID.
const maxIDAttempts = 8

// NewID returns a time-ordered UUIDv7 string.
// The random tail keeps back-to-back calls distinct even within the same
// millisecond, unlike purely timestamp-derived identifiers.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// freshID draws an ID from gen that is not already used in notes.
func freshID(gen func() string, notes []Note) string {
	taken := make(map[string]struct{}, len(notes))
	for _, n := range notes {
		taken[n.ID] = struct{}{}
	}

	for i := 0; i < maxIDAttempts; i++ {
		id := gen()
		if _, dup := taken[id]; id != "" && !dup {
			return id
		}
	}

	for {
		id := uuid.NewString()
		if _, dup := taken[id]; !dup {
			return id
		}
	}
}
