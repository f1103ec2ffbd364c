// Package review turns repaired rows into typed review records and groups
// them into the category/product store served to clients.
package review

import (
	"math"
	"strconv"
	"strings"

	"github.com/KaramelBytes/review-digest/internal/loader"
)

// Record is a typed review. Numeric fields are nil when the source text
// could not be parsed as a number.
type Record struct {
	No        string   `json:"No"`
	Review    string   `json:"Review"`
	Length    *float64 `json:"Length"`
	Score     *float64 `json:"LSM_Score"`
	Category  string   `json:"Category"`
	Product   string   `json:"Product"`
	Expertise string   `json:"Expertise"`
	Priority  *float64 `json:"Priority"`
}

// Coerce converts a repaired row into a Record.
func Coerce(row loader.Row) Record {
	return Record{
		No:        row[loader.FieldNo],
		Review:    row[loader.FieldReview],
		Length:    parseNumber(row[loader.FieldLength]),
		Score:     parseNumber(row[loader.FieldScore]),
		Category:  strings.TrimSpace(row[loader.FieldCategory]),
		Product:   strings.TrimSpace(row[loader.FieldProduct]),
		Expertise: row[loader.FieldExpertise],
		Priority:  parseNumber(row[loader.FieldPriority]),
	}
}

// CoerceAll converts rows in order.
func CoerceAll(rows []loader.Row) []Record {
	out := make([]Record, len(rows))
	for i, row := range rows {
		out[i] = Coerce(row)
	}
	return out
}

// parseNumber returns nil for anything that is not a finite number.
func parseNumber(s string) *float64 {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}
