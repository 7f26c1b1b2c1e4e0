package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	tests := []struct {
		name       string
		page, size int
		want       []int
		totalPages int
	}{
		{"first page", 1, 2, []int{1, 2}, 3},
		{"last partial page", 3, 2, []int{5}, 3},
		{"past the end", 9, 2, []int{}, 3},
		{"no size returns all", 4, 0, []int{1, 2, 3, 4, 5}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, info := Paginate(items, tt.page, tt.size)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.totalPages, info.TotalPages)
			assert.Equal(t, 5, info.TotalItems)
		})
	}
}

func TestNewPaginationInfoEmpty(t *testing.T) {
	info := NewPaginationInfo(0, 1, 10)
	assert.Equal(t, 1, info.TotalPages)
	assert.Equal(t, 1, info.CurrentPage)
}
