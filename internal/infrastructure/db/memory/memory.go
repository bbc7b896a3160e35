// Package memory keeps reference API data in process memory. Data is lost on
// restart; it backs tests and local runs without MongoDB.
package memory

import (
	"sort"

	"github.com/99minutos/admin-dashboard/internal/core/ports"
)

// paginate returns the slice of ids inside a 1-based page. A zero page
// returns every id.
func paginate(ids []int64, page ports.Page) []int64 {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	if page.Limit <= 0 {
		return ids
	}
	start := (page.Page - 1) * page.Limit
	if start < 0 {
		start = 0
	}
	if start >= len(ids) {
		return nil
	}
	end := start + page.Limit
	if end > len(ids) {
		end = len(ids)
	}
	return ids[start:end]
}
