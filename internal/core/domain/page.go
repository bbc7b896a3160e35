package domain

import (
	"fmt"
	"slices"
)

// PageSizeOptions are the page sizes a list may be displayed with.
var PageSizeOptions = []int{10, 25, 50, 100}

// PageState is the pagination cursor of a list.
type PageState struct {
	PageIndex int `json:"page"`
	PageSize  int `json:"page_size"`
}

// DefaultPageState is the cursor a list starts with.
func DefaultPageState() PageState {
	return PageState{PageIndex: 0, PageSize: PageSizeOptions[0]}
}

// Validate checks the cursor against the allowed page sizes.
func (p PageState) Validate() error {
	if p.PageIndex < 0 {
		return fmt.Errorf("%w: page index %d is negative", ErrInvalidPageState, p.PageIndex)
	}
	if !slices.Contains(PageSizeOptions, p.PageSize) {
		return fmt.Errorf("%w: page size %d not in %v", ErrInvalidPageState, p.PageSize, PageSizeOptions)
	}
	return nil
}

// Window returns the [start, end) bounds of the page inside a collection of
// total rows. A page past the end yields an empty window, however large its
// index.
func (p PageState) Window(total int) (int, int) {
	if total <= 0 || p.PageSize <= 0 || p.PageIndex < 0 || p.PageIndex > total/p.PageSize {
		return total, total
	}
	start := p.PageIndex * p.PageSize
	return start, start + min(p.PageSize, total-start)
}
