package store

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	_ "modernc.org/sqlite"

	"github.com/KaramelBytes/review-digest/internal/review"
)

const reviewsTable = "reviews"

// WriteSQLite replaces the reviews table in the database at path with one
// row per stored record. Rank is the 1-based position inside its product.
func WriteSQLite(ctx context.Context, path string, s review.Store) (int, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return 0, fmt.Errorf("open sqlite: %w", err)
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{
		`DROP TABLE IF EXISTS "` + reviewsTable + `"`,
		`CREATE TABLE "` + reviewsTable + `" (
			"category" TEXT NOT NULL,
			"product" TEXT NOT NULL,
			"rank" INTEGER NOT NULL,
			"no" TEXT,
			"review" TEXT,
			"length" REAL,
			"lsm_score" REAL,
			"expertise" TEXT,
			"priority" REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_reviews_category_product ON "` + reviewsTable + `"(category, product)`,
	} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return 0, fmt.Errorf("prepare schema: %w", err)
		}
	}

	ins, err := tx.PrepareContext(ctx, `INSERT INTO "`+reviewsTable+`"
		(category, product, rank, no, review, length, lsm_score, expertise, priority)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer ins.Close()

	n := 0
	for _, category := range s.Categories() {
		products := s[category]
		names := make([]string, 0, len(products))
		for p := range products {
			names = append(names, p)
		}
		sort.Strings(names)
		for _, product := range names {
			for i, r := range products[product] {
				if _, err := ins.ExecContext(ctx, category, product, i+1,
					r.No, r.Review, nullable(r.Length), nullable(r.Score), r.Expertise, nullable(r.Priority)); err != nil {
					return n, fmt.Errorf("insert %s/%s: %w", category, product, err)
				}
				n++
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return n, nil
}

func nullable(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}
