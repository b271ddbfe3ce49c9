package browse

import "strings"

const DefaultPageSize = 20

var PageSizes = []int{10, 20, 50, 100}

// PageState is the paging and search input of one listing.
type PageState struct {
	Page     int
	PageSize int
	Search   string
}

func NewPageState() PageState {
	return PageState{Page: 1, PageSize: DefaultPageSize}
}

func (p *PageState) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	p.Page = page
}

// SetPageSize switches to size when it is one of PageSizes and returns to
// the first page. It reports whether the size was accepted.
func (p *PageState) SetPageSize(size int) bool {
	if !validPageSize(size) {
		return false
	}
	p.PageSize = size
	p.Page = 1
	return true
}

// NextPageSize cycles through PageSizes.
func (p *PageState) NextPageSize() {
	for i, size := range PageSizes {
		if size == p.PageSize {
			p.SetPageSize(PageSizes[(i+1)%len(PageSizes)])
			return
		}
	}
	p.SetPageSize(DefaultPageSize)
}

func (p *PageState) SetSearch(search string) {
	search = strings.TrimSpace(search)
	if search == p.Search {
		return
	}
	p.Search = search
	p.Page = 1
}

// Clamp keeps the page within 1..max(totalPages, 1).
func (p *PageState) Clamp(totalPages int) {
	if totalPages < 1 {
		totalPages = 1
	}
	if p.Page > totalPages {
		p.Page = totalPages
	}
	if p.Page < 1 {
		p.Page = 1
	}
}

func validPageSize(size int) bool {
	for _, allowed := range PageSizes {
		if size == allowed {
			return true
		}
	}
	return false
}
