package core

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// TimeLayout is the ISO-8601 form used for persisted timestamps
// (UTC, millisecond precision).
const TimeLayout = "2006-01-02T15:04:05.000Z07:00"

// record is the persisted shape of a Note.
// Unknown fields are ignored and absent ones decode to zero values.
type record struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// EncodeNotes serializes the collection as a JSON array.
// A nil collection encodes as "[]".
func EncodeNotes(notes []Note) (string, error) {
	records := make([]record, 0, len(notes))
	for _, n := range notes {
		records = append(records, record{
			ID:        n.ID,
			Title:     n.Title,
			Body:      n.Body,
			CreatedAt: formatTime(n.CreatedAt),
			UpdatedAt: formatTime(n.UpdatedAt),
		})
	}

	data, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("failed to encode notes: %w", err)
	}
	return string(data), nil
}

// DecodeNotes parses a persisted collection.
// An empty or "null" value is an empty collection. Anything else that is not
// a JSON array of note objects yields an error wrapping ErrReadCorruption.
func DecodeNotes(raw string) ([]Note, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || trimmed == "null" {
		return []Note{}, nil
	}

	// Unmarshal rejects anything after the array, including stray brackets.
	var records []record
	if err := json.Unmarshal([]byte(trimmed), &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadCorruption, err)
	}

	notes := make([]Note, 0, len(records))
	for i, r := range records {
		created, err := parseTime(r.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("%w: record %d createdAt: %v", ErrReadCorruption, i, err)
		}
		updated, err := parseTime(r.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("%w: record %d updatedAt: %v", ErrReadCorruption, i, err)
		}
		notes = append(notes, Note{
			ID:        r.ID,
			Title:     r.Title,
			Body:      r.Body,
			CreatedAt: created,
			UpdatedAt: updated,
		})
	}
	return notes, nil
}

// formatTime writes millisecond-aligned times in TimeLayout. Finer times,
// written by other clients, keep their full precision so a rewrite of the
// collection does not alter them.
func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	t = t.UTC()
	if t.Equal(t.Truncate(time.Millisecond)) {
		return t.Format(TimeLayout)
	}
	return t.Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
