package review

import "sort"

// MaxPerProduct is how many records are kept for each product.
const MaxPerProduct = 10

// Store maps category -> product -> records ordered by descending priority.
// It is built once by Aggregate and must not be modified afterwards.
type Store map[string]map[string][]Record

// Aggregate orders records by priority (highest first, missing priorities
// last, ties keep input order), groups them by category and product and
// keeps at most limit records per product. A limit <= 0 means MaxPerProduct.
func Aggregate(records []Record, limit int) Store {
	if limit <= 0 {
		limit = MaxPerProduct
	}
	sorted := make([]Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return higherPriority(sorted[i], sorted[j])
	})

	out := Store{}
	for _, rec := range sorted {
		products, ok := out[rec.Category]
		if !ok {
			products = map[string][]Record{}
			out[rec.Category] = products
		}
		if len(products[rec.Product]) < limit {
			products[rec.Product] = append(products[rec.Product], rec)
		}
	}
	return out
}

// higherPriority is a strict ordering: a known priority beats a missing one.
func higherPriority(a, b Record) bool {
	switch {
	case a.Priority == nil:
		return false
	case b.Priority == nil:
		return true
	default:
		return *a.Priority > *b.Priority
	}
}

// Categories returns the category names in ascending order.
func (s Store) Categories() []string {
	out := make([]string, 0, len(s))
	for c := range s {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of records held by the store.
func (s Store) Len() int {
	n := 0
	for _, products := range s {
		for _, recs := range products {
			n += len(recs)
		}
	}
	return n
}
