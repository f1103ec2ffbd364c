package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/review-digest/internal/review"
)

func num(f float64) *float64 { return &f }

func sampleStore() review.Store {
	return review.Aggregate([]review.Record{
		{No: "1", Review: "좋아요 <b>", Length: num(120), Category: "가전", Product: "P", Expertise: "Low", Priority: num(9)},
		{No: "2", Review: "meh", Length: num(3), Score: num(0.5), Category: "가전", Product: "P", Expertise: "High", Priority: nil},
		{No: "3", Review: "ok", Category: "Books", Product: "Novel", Priority: num(1)},
	}, 0)
}

func TestEncodeJSON_Layout(t *testing.T) {
	s := review.Aggregate([]review.Record{
		{No: "1", Review: "좋아요 <b>", Length: num(120), Category: "가전", Product: "P", Expertise: "Low", Priority: num(9)},
	}, 0)
	b, err := EncodeJSON(s)
	require.NoError(t, err)
	want := `{
    "가전": {
        "P": [
            {
                "No": "1",
                "Review": "좋아요 <b>",
                "Length": 120,
                "LSM_Score": null,
                "Category": "가전",
                "Product": "P",
                "Expertise": "Low",
                "Priority": 9
            }
        ]
    }
}`
	assert.Equal(t, want, string(b))
}

func TestEncodeJSON_Empty(t *testing.T) {
	for _, s := range []review.Store{nil, {}} {
		b, err := EncodeJSON(s)
		require.NoError(t, err)
		assert.Equal(t, "{}", string(b))
	}
}

func TestWriteJSON_OverwritesAndIsIdempotent(t *testing.T) {
	p := filepath.Join(t.TempDir(), "review_data.json")
	require.NoError(t, os.WriteFile(p, []byte("stale content that is longer than the new one"), 0o644))

	first, err := WriteJSON(p, sampleStore())
	require.NoError(t, err)
	onDisk1, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, first, onDisk1)

	_, err = WriteJSON(p, sampleStore())
	require.NoError(t, err)
	onDisk2, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, onDisk1, onDisk2)
}

func TestWriteJSON_Unwritable(t *testing.T) {
	p := filepath.Join(t.TempDir(), "missing-dir", "review_data.json")
	_, err := WriteJSON(p, sampleStore())
	assert.Error(t, err)
}

func TestWriteSQLite(t *testing.T) {
	p := filepath.Join(t.TempDir(), "reviews.db")
	ctx := context.Background()

	n, err := WriteSQLite(ctx, p, sampleStore())
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	// A second run replaces the table instead of appending.
	n, err = WriteSQLite(ctx, p, sampleStore())
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	db, err := sql.Open("sqlite", p)
	require.NoError(t, err)
	defer db.Close()

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM reviews`).Scan(&count))
	assert.Equal(t, 3, count)

	var no string
	var priority sql.NullFloat64
	require.NoError(t, db.QueryRow(
		`SELECT no, priority FROM reviews WHERE category = ? AND product = ? AND rank = 2`, "가전", "P",
	).Scan(&no, &priority))
	assert.Equal(t, "2", no)
	assert.False(t, priority.Valid)
}
