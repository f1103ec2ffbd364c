// Package store mirrors the aggregated review store to disk.
package store

import (
	"fmt"

	"github.com/KaramelBytes/review-digest/internal/review"
	"github.com/KaramelBytes/review-digest/internal/utils"
)

// EncodeJSON renders the store the way it is persisted and served: UTF-8,
// four-space indent, keys sorted. A nil store encodes as {}.
func EncodeJSON(s review.Store) ([]byte, error) {
	if s == nil {
		s = review.Store{}
	}
	b, err := utils.PrettyJSON(s)
	if err != nil {
		return nil, fmt.Errorf("encode store: %w", err)
	}
	return b, nil
}

// WriteJSON encodes s and replaces the file at path. The encoded bytes are
// returned so callers can serve exactly what was written.
func WriteJSON(path string, s review.Store) ([]byte, error) {
	b, err := EncodeJSON(s)
	if err != nil {
		return nil, err
	}
	if err := utils.SafeWriteFile(path, b); err != nil {
		return nil, fmt.Errorf("persist %s: %w", path, err)
	}
	return b, nil
}
