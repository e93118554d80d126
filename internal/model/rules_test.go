package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsCellCorrect(t *testing.T) {
	b := NewBoard()
	require.NoError(t, b.Set(0, 0, 5))

	tests := []struct {
		name       string
		row, col   int
		value      int
		wantResult bool
	}{
		{"same row", 0, 8, 5, false},
		{"same column", 8, 0, 5, false},
		{"same square", 2, 2, 5, false},
		{"other value", 0, 8, 4, true},
		{"unrelated cell", 4, 4, 5, true},
		{"the cell itself", 0, 0, 5, true},
		{"empty value", 0, 1, 0, true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.wantResult, b.IsCellCorrect(test.row, test.col, test.value))
		})
	}
}

func TestConflictsAndSolved(t *testing.T) {
	b, err := FromMatrix(solvedGrid)
	require.NoError(t, err)
	assert.Empty(t, b.Conflicts())
	assert.True(t, b.IsSolved())

	// swap two values in a row: both columns now repeat
	require.NoError(t, b.Set(0, 0, 3))
	require.NoError(t, b.Set(0, 1, 5))
	assert.NotEmpty(t, b.Conflicts())
	assert.False(t, b.IsSolved())

	empty := NewBoard()
	assert.Empty(t, empty.Conflicts())
	assert.False(t, empty.IsSolved())
}
