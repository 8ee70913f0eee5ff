package listing

import (
	"fmt"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestPageWindow(t *testing.T) {
	const gap = Ellipsis

	tests := []struct {
		current int
		total   int
		want    []int
	}{
		{current: 1, total: 0, want: nil},
		{current: 1, total: 1, want: nil},
		{current: 1, total: 3, want: []int{1, 2, 3}},
		{current: 2, total: 5, want: []int{1, 2, 3, 4, 5}},
		{current: 1, total: 10, want: []int{1, 2, 3, 4, gap, 10}},
		{current: 3, total: 10, want: []int{1, 2, 3, 4, gap, 10}},
		{current: 5, total: 10, want: []int{1, gap, 4, 5, 6, gap, 10}},
		{current: 8, total: 10, want: []int{1, gap, 7, 8, 9, 10}},
		{current: 10, total: 10, want: []int{1, gap, 7, 8, 9, 10}},
		{current: 3, total: 6, want: []int{1, 2, 3, 4, gap, 6}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d_of_%d", tt.current, tt.total), func(t *testing.T) {
			assert.Equal(t, tt.want, PageWindow(tt.current, tt.total))
		})
	}
}
