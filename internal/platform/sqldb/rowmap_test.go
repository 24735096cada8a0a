package sqldb

import (
	"errors"
	"testing"
	"time"

	"github.com/phrazzld/memoboard-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapPost(t *testing.T) {
	t.Parallel()

	regDate := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

	t.Run("all columns", func(t *testing.T) {
		r := row{entity: "post", values: map[string]any{
			"br_seq":     int64(7),
			"br_cd":      "B1",
			"br_title":   "hello",
			"br_content": []byte("body"),
			"br_file":    nil,
			"br_reg_id":  "user",
			"br_reg_dt":  regDate,
		}}

		p, err := mapPost(r)
		require.NoError(t, err)
		assert.Equal(t, int64(7), p.Seq)
		assert.Equal(t, "B1", p.Category)
		assert.Equal(t, "hello", p.Title)
		assert.Equal(t, "body", p.Content)
		assert.Empty(t, p.File)
		assert.Equal(t, "user", p.RegID)
		assert.True(t, regDate.Equal(p.RegDate))
	})

	t.Run("missing column", func(t *testing.T) {
		r := row{entity: "post", values: map[string]any{
			"br_seq": int64(7),
			"br_cd":  "B1",
		}}

		_, err := mapPost(r)
		require.Error(t, err)
		assert.True(t, errors.Is(err, store.ErrMapping))

		var mapErr *store.MappingError
		require.True(t, errors.As(err, &mapErr))
		assert.Equal(t, "br_title", mapErr.Column)
		assert.Equal(t, "post", mapErr.Entity)
	})
}

func TestMapMemo_NullOptionalFields(t *testing.T) {
	t.Parallel()

	r := row{entity: "memo", values: map[string]any{
		"fid":         "12",
		"ftitle":      nil,
		"fcontent":    nil,
		"fcreated_at": nil,
	}}

	m, err := mapMemo(r)
	require.NoError(t, err)
	assert.Equal(t, int64(12), m.ID)
	assert.Empty(t, m.Title)
	assert.Empty(t, m.Content)
	assert.True(t, m.CreatedAt.IsZero())
}

func TestRowTime(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value any
		want  time.Time
	}{
		{"sqlite text", "2024-05-06 07:08:09", time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)},
		{"rfc3339", "2024-05-06T07:08:09Z", time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)},
		{"bytes", []byte("2024-05-06 07:08:09"), time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)},
		{"date only", "2024-05-06", time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := row{entity: "memo", values: map[string]any{"ts": tt.value}}
			got, err := r.time("ts")
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %v", got)
		})
	}
}

func TestRowErrors(t *testing.T) {
	t.Parallel()

	r := row{entity: "memo", values: map[string]any{
		"null_id": nil,
		"bad_id":  "x1",
		"bad_ts":  "yesterday",
		"number":  int64(3),
	}}

	tests := []struct {
		name string
		read func() error
	}{
		{"null integer", func() error { _, err := r.int64("null_id"); return err }},
		{"non-numeric integer", func() error { _, err := r.int64("bad_id"); return err }},
		{"unparseable time", func() error { _, err := r.time("bad_ts"); return err }},
		{"number as string", func() error { _, err := r.string("number"); return err }},
		{"missing", func() error { _, err := r.string("nope"); return err }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.read()
			require.Error(t, err)
			assert.ErrorIs(t, err, store.ErrMapping)
		})
	}
}

func TestMapAll_StopsAtFirstError(t *testing.T) {
	t.Parallel()

	rows := []row{
		{entity: "memo", values: map[string]any{"fid": int64(1), "ftitle": "a", "fcreated_at": nil}},
		{entity: "memo", values: map[string]any{"ftitle": "b", "fcreated_at": nil}},
	}

	got, err := mapAll(rows, mapMemoSummary)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, store.ErrMapping)
}
