package loader

import "strings"

// NumFields is the number of logical columns in a review row.
const NumFields = 8

// Field positions inside a Row.
const (
	FieldNo = iota
	FieldReview
	FieldLength
	FieldScore
	FieldCategory
	FieldProduct
	FieldExpertise
	FieldPriority
)

// ColumnNames holds the logical column names in field order.
var ColumnNames = [NumFields]string{
	"No", "Review", "Length", "LSM_Score",
	"Category", "Product", "Expertise", "Priority",
}

// trailingFields is how many columns follow the review text.
const trailingFields = NumFields - 2

// Row is a raw record after repair: always exactly NumFields text fields.
type Row [NumFields]string

// Repair turns a parsed record into a Row.
//
// Records with more than NumFields fields are assumed to carry unescaped
// delimiters inside the review text: the first field and the last six are
// kept, everything in between is joined back with delim. Records with fewer
// fields cannot be recovered and ok is false.
func Repair(fields []string, delim rune) (row Row, ok bool) {
	n := len(fields)
	switch {
	case n == NumFields:
		copy(row[:], fields)
	case n > NumFields:
		row[FieldNo] = fields[0]
		row[FieldReview] = strings.Join(fields[1:n-trailingFields], string(delim))
		copy(row[FieldReview+1:], fields[n-trailingFields:])
	default:
		return Row{}, false
	}
	return row, true
}
