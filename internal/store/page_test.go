package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		number     int
		size       int
		wantNumber int
		wantSize   int
	}{
		{"defaults", 0, 0, 1, DefaultPageSize},
		{"negative number", -3, 10, 1, 10},
		{"explicit", 4, 25, 4, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := NewPage(tt.number, tt.size)
			assert.Equal(t, tt.wantNumber, page.Number)
			assert.Equal(t, tt.wantSize, page.Size)
		})
	}
}

func TestPageOffset(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, NewPage(1, 15).Offset())
	assert.Equal(t, 15, NewPage(2, 15).Offset())
	assert.Equal(t, 60, NewPage(5, 15).Offset())
}

func TestPageTotalPages(t *testing.T) {
	t.Parallel()

	page := NewPage(1, 15)

	tests := []struct {
		total int64
		want  int
	}{
		{0, 0},
		{1, 1},
		{15, 1},
		{16, 2},
		{30, 2},
		{31, 3},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, page.TotalPages(tt.total), "total=%d", tt.total)
	}
}
