package domain

import "math"

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 200
)

type Page struct {
	Page  int
	Limit int
}

// NewPage clamps page to [1, math.MaxInt/limit] and limit to [1, MaxLimit],
// so Offset never overflows.
func NewPage(page, limit int) Page {
	if limit < 1 {
		limit = 1
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if page < 1 {
		page = 1
	}
	if maxPage := math.MaxInt / limit; page > maxPage {
		page = maxPage
	}
	return Page{Page: page, Limit: limit}
}

func (p Page) Offset() int {
	return (p.Page - 1) * p.Limit
}
