package loader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepair_ExactlyEight(t *testing.T) {
	in := []string{"1", "fine", "10", "0.2", "Toys", "Ball", "High", "4"}
	row, ok := Repair(in, ',')
	require.True(t, ok)
	assert.Equal(t, in, row[:])
}

func TestRepair_EmbeddedDelimiter(t *testing.T) {
	in := []string{"1", "good", "product", "120", "0.5", "Electronics", "PhoneX", "Low", "9"}
	row, ok := Repair(in, ',')
	require.True(t, ok)
	assert.Equal(t, Row{"1", "good,product", "120", "0.5", "Electronics", "PhoneX", "Low", "9"}, row)
}

func TestRepair_ManyExtraFields(t *testing.T) {
	in := []string{"7", "a", "b", "c", "d", "e", "L", "S", "C", "P", "E", "9"}
	row, ok := Repair(in, ';')
	require.True(t, ok)
	assert.Equal(t, "7", row[FieldNo])
	assert.Equal(t, "a;b;c;d;e", row[FieldReview])
	assert.Equal(t, in[len(in)-6:], row[2:])
}

func TestRepair_TooFewFields(t *testing.T) {
	for n := 0; n < NumFields; n++ {
		_, ok := Repair(make([]string, n), ',')
		assert.False(t, ok, "fields=%d", n)
	}
}
