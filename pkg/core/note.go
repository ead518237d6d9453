package core

import "time"

// DefaultTitle is assigned to notes created without a title.
const DefaultTitle = "Untitled Note"

// Note is the central entity of the domain.
// It represents one piece of user text identified by an ID.
// It is agnostic to storage backend (file, SQL, object store).
type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NoteInput carries the caller-settable fields for Create.
// Zero values mean "absent" and are replaced by defaults.
type NoteInput struct {
	Title string `json:"title,omitempty"`
	Body  string `json:"body,omitempty"`
}

// NotePatch carries the fields to change on Update.
// A nil pointer leaves the field untouched; a pointer to "" clears it.
type NotePatch struct {
	Title *string `json:"title,omitempty"`
	Body  *string `json:"body,omitempty"`
}
