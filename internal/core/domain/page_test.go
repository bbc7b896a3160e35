package domain

import (
	"errors"
	"math"
	"testing"
)

func TestPageState_Window(t *testing.T) {
	tests := []struct {
		name       string
		page       PageState
		total      int
		start, end int
	}{
		{"first page", PageState{PageIndex: 0, PageSize: 10}, 23, 0, 10},
		{"last partial page", PageState{PageIndex: 2, PageSize: 10}, 23, 20, 23},
		{"exact end", PageState{PageIndex: 2, PageSize: 10}, 20, 20, 20},
		{"past the end", PageState{PageIndex: 5, PageSize: 10}, 23, 23, 23},
		{"empty collection", PageState{PageIndex: 0, PageSize: 10}, 0, 0, 0},
		{"index overflowing the offset", PageState{PageIndex: math.MaxInt/10 + 1, PageSize: 10}, 2, 2, 2},
		{"max index", PageState{PageIndex: math.MaxInt, PageSize: 100}, 150, 150, 150},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := tt.page.Window(tt.total)
			if start != tt.start || end != tt.end {
				t.Fatalf("Window(%d) = [%d, %d), want [%d, %d)", tt.total, start, end, tt.start, tt.end)
			}
		})
	}
}

func TestPageState_Validate(t *testing.T) {
	if err := (PageState{PageIndex: math.MaxInt, PageSize: 25}).Validate(); err != nil {
		t.Fatalf("large index must be valid: %v", err)
	}
	for _, p := range []PageState{{PageIndex: -1, PageSize: 10}, {PageIndex: 0, PageSize: 7}} {
		if err := p.Validate(); !errors.Is(err, ErrInvalidPageState) {
			t.Fatalf("Validate(%+v) = %v, want ErrInvalidPageState", p, err)
		}
	}
}
