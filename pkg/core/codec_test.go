package core_test

import (
	"testing"
	"time"

	"github.com/aretw0/jot/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestDecodeNotes_Empty(t *testing.T) {
	for _, raw := range []string{"", "   ", "null", "[]"} {
		notes, err := core.DecodeNotes(raw)
		require.NoError(t, err, "raw=%q", raw)
		assert.NotNil(t, notes)
		assert.Empty(t, notes)
	}
}

func TestDecodeNotes_Corrupt(t *testing.T) {
	cases := map[string]string{
		"truncated":     `[{"id":"1"`,
		"object":        `{"id":"1"}`,
		"scalar array":  `[1,2,3]`,
		"trailing":      `[] []`,
		"extra bracket": `[]]`,
		"extra brace":   `[]}`,
		"note then }":   `[{"id":"a"}]}`,
		"note then ]]":  `[{"id":"a"}]]`,
		"bad timestamp": `[{"id":"1","createdAt":"yesterday"}]`,
		"plain text":    `hello`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := core.DecodeNotes(raw)
			assert.ErrorIs(t, err, core.ErrReadCorruption)
		})
	}
}

func TestDecodeNotes_ToleratesAdditiveFields(t *testing.T) {
	raw := `[{"id":"1700000000000","title":"Old","createdAt":"2023-11-14T22:13:20.000Z","updatedAt":"2023-11-14T22:13:20.000Z","pinned":true}]`

	notes, err := core.DecodeNotes(raw)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "1700000000000", notes[0].ID)
	assert.Equal(t, "Old", notes[0].Title)
	assert.Equal(t, "", notes[0].Body)
	assert.True(t, notes[0].CreatedAt.Equal(time.Date(2023, 11, 14, 22, 13, 20, 0, time.UTC)))
}

func TestEncodeNotes_KeepsForeignPrecision(t *testing.T) {
	raw := `[{"id":"x","title":"t","body":"","createdAt":"2026-10-19T00:00:00.123456789+02:00","updatedAt":"2026-10-19T08:30:00.123Z"}]`

	notes, err := core.DecodeNotes(raw)
	require.NoError(t, err)

	out, err := core.EncodeNotes(notes)
	require.NoError(t, err)
	assert.Contains(t, out, `"createdAt":"2026-10-18T22:00:00.123456789Z"`)
	assert.Contains(t, out, `"updatedAt":"2026-10-19T08:30:00.123Z"`)

	again, err := core.DecodeNotes(out)
	require.NoError(t, err)
	assert.True(t, again[0].CreatedAt.Equal(notes[0].CreatedAt))
}

func TestEncodeNotes_Nil(t *testing.T) {
	raw, err := core.EncodeNotes(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", raw)
}

// noteGenerator draws notes with millisecond timestamps, the persisted precision.
func noteGenerator() *rapid.Generator[core.Note] {
	return rapid.Custom(func(t *rapid.T) core.Note {
		created := time.UnixMilli(rapid.Int64Range(0, 4102444800000).Draw(t, "created")).UTC()
		delta := time.Duration(rapid.Int64Range(0, 1e6).Draw(t, "delta")) * time.Millisecond
		return core.Note{
			ID:        rapid.StringMatching(`[a-z0-9-]{1,36}`).Draw(t, "id"),
			Title:     rapid.String().Draw(t, "title"),
			Body:      rapid.String().Draw(t, "body"),
			CreatedAt: created,
			UpdatedAt: created.Add(delta),
		}
	})
}

func testCodec_Roundtrip(t *rapid.T) {
	notes := rapid.SliceOf(noteGenerator()).Draw(t, "notes")

	raw, err := core.EncodeNotes(notes)
	if err != nil {
		t.Fatalf("EncodeNotes failed: %v", err)
	}
	decoded, err := core.DecodeNotes(raw)
	if err != nil {
		t.Fatalf("DecodeNotes failed: %v", err)
	}

	if len(decoded) != len(notes) {
		t.Fatalf("length mismatch: want %d, got %d", len(notes), len(decoded))
	}
	for i := range notes {
		want, got := notes[i], decoded[i]
		if want.ID != got.ID || want.Title != got.Title || want.Body != got.Body {
			t.Fatalf("record %d mismatch: want %+v, got %+v", i, want, got)
		}
		if !want.CreatedAt.Equal(got.CreatedAt) || !want.UpdatedAt.Equal(got.UpdatedAt) {
			t.Fatalf("record %d timestamps mismatch: want %v/%v, got %v/%v",
				i, want.CreatedAt, want.UpdatedAt, got.CreatedAt, got.UpdatedAt)
		}
	}
}

func TestCodec_Roundtrip(t *testing.T) {
	t.Parallel()
	rapid.Check(t, testCodec_Roundtrip)
}
