package keyboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaginationButtons(t *testing.T) {
	assert.Nil(t, PaginationButtons("p:", 0, 1))

	first := PaginationButtons("p:", 0, 3)
	require.Len(t, first, 2)
	assert.Equal(t, "noop", first[0].CallbackData)
	assert.Equal(t, "p:1", first[1].CallbackData)

	middle := PaginationButtons("p:", 1, 3)
	require.Len(t, middle, 3)
	assert.Equal(t, "p:0", middle[0].CallbackData)
	assert.Equal(t, "📄 2/3", middle[1].Text)

	last := PaginationButtons("p:", 2, 3)
	require.Len(t, last, 2)
	assert.Equal(t, "p:1", last[0].CallbackData)
}

func TestPage(t *testing.T) {
	tests := []struct {
		name                           string
		total, page, perPage           int
		start, end, fixedPage, totalPg int
	}{
		{"first page", 12, 0, 5, 0, 5, 0, 3},
		{"last partial page", 12, 2, 5, 10, 12, 2, 3},
		{"page past the end", 12, 9, 5, 10, 12, 2, 3},
		{"negative page", 12, -1, 5, 0, 5, 0, 3},
		{"empty", 0, 0, 5, 0, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, page, total := Page(tt.total, tt.page, tt.perPage)
			assert.Equal(t, tt.start, start)
			assert.Equal(t, tt.end, end)
			assert.Equal(t, tt.fixedPage, page)
			assert.Equal(t, tt.totalPg, total)
		})
	}
}

func TestBuilder_Grid(t *testing.T) {
	kb := NewBuilder().
		Grid(3, Button("1", "a"), Button("2", "b"), Button("3", "c"), Button("4", "d")).
		AddBackToMainButton().
		Build()

	require.Len(t, kb.InlineKeyboard, 3)
	assert.Len(t, kb.InlineKeyboard[0], 3)
	assert.Len(t, kb.InlineKeyboard[1], 1)
	assert.Equal(t, "back_to_main", kb.InlineKeyboard[2][0].CallbackData)
}
