// Package pagination slices in memory result sets into pages. Inputs are clamped, never rejected.
package pagination

import "slices"

// DefaultPageSize is used whenever a non positive page size is given.
const DefaultPageSize = 10

func normalize(page int, pageSize int) (int, int) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	return max(1, page), pageSize
}

// Paginate returns a copy of the items on the 1 based page, empty when page is past the end.
func Paginate[T any](items []T, page int, pageSize int) []T {
	page, pageSize = normalize(page, pageSize)

	if pastEnd(page, pageSize, len(items)) {
		return []T{}
	}

	start := (page - 1) * pageSize
	end := start + min(pageSize, len(items)-start)

	return slices.Clone(items[start:end])
}

func TotalPages(totalItems int, pageSize int) int {
	_, pageSize = normalize(1, pageSize)
	if totalItems <= 0 {
		return 0
	}

	pages := totalItems / pageSize
	if totalItems%pageSize != 0 {
		pages++
	}

	return pages
}

// pastEnd reports a page holding no items. Offsets are only multiplied out once this is false,
// which keeps them below totalItems.
func pastEnd(page int, pageSize int, totalItems int) bool {
	return page-1 >= TotalPages(totalItems, pageSize)
}

func IsFirstPage(page int) bool {
	return page <= 1
}

// IsLastPage reports page == TotalPages. An empty collection has no last page.
func IsLastPage(page int, totalItems int, pageSize int) bool {
	return page == TotalPages(totalItems, pageSize)
}

// StartIndex is the 1 based position of the first item on page, for "showing X-Y of N".
func StartIndex(page int, pageSize int, totalItems int) int {
	page, pageSize = normalize(page, pageSize)
	if pastEnd(page, pageSize, totalItems) {
		return max(0, totalItems)
	}

	return (page-1)*pageSize + 1
}

func EndIndex(page int, pageSize int, totalItems int) int {
	page, pageSize = normalize(page, pageSize)
	if page >= TotalPages(totalItems, pageSize) {
		return max(0, totalItems)
	}

	return page * pageSize
}

// Pager holds the page state of a single view.
type Pager struct {
	page     int
	pageSize int
}

func NewPager(pageSize int) *Pager {
	_, pageSize = normalize(1, pageSize)

	return &Pager{page: 1, pageSize: pageSize}
}

func (p *Pager) Page() int {
	return p.page
}

func (p *Pager) PageSize() int {
	return p.pageSize
}

func (p *Pager) SetPage(page int) {
	p.page = max(1, page)
}

// SetPageSize changes the page size and moves back to the first page.
func (p *Pager) SetPageSize(pageSize int) {
	_, p.pageSize = normalize(1, pageSize)
	p.page = 1
}

// Next advances unless already on the last page of totalItems.
func (p *Pager) Next(totalItems int) bool {
	if p.page >= TotalPages(totalItems, p.pageSize) {
		return false
	}

	p.page++

	return true
}

func (p *Pager) Prev() bool {
	if IsFirstPage(p.page) {
		return false
	}

	p.page--

	return true
}

// Clamp pulls the page back inside the data after the collection shrank.
func (p *Pager) Clamp(totalItems int) {
	p.page = max(1, min(p.page, TotalPages(totalItems, p.pageSize)))
}

func (p *Pager) Summary(totalItems int) (int, int) {
	return StartIndex(p.page, p.pageSize, totalItems), EndIndex(p.page, p.pageSize, totalItems)
}
