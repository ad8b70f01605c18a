package listview

import "slices"

// DefaultPageSize is the page size of a freshly opened list.
const DefaultPageSize = 10

// PageSizes are the only page sizes a list accepts.
var PageSizes = []int{5, 10, 15, 20}

// State is the search and pagination state of one list.
type State struct {
	Search string `json:"search"`
	Page   int    `json:"page"`
	Size   int    `json:"size"`
}

func NewState() State {
	return State{Page: 1, Size: DefaultPageSize}
}

// SetSearch changes the search term and returns to the first page.
func (s *State) SetSearch(term string) {
	if term != s.Search {
		s.Page = 1
	}
	s.Search = term
}

// SetSize changes the page size and always returns to the first page.
// Sizes outside PageSizes are ignored.
func (s *State) SetSize(size int) bool {
	if !slices.Contains(PageSizes, size) {
		return false
	}
	s.Size = size
	s.Page = 1
	return true
}

// SetPage moves to page n. Values below 1 are treated as 1; the upper bound
// is applied when the page is computed.
func (s *State) SetPage(n int) {
	if n < 1 {
		n = 1
	}
	s.Page = n
}

func (s State) size() int {
	if !slices.Contains(PageSizes, s.Size) {
		return DefaultPageSize
	}
	return s.Size
}

// Page is one window over a filtered collection.
type Page[T any] struct {
	Items      []T
	Page       int
	Size       int
	Total      int
	TotalPages int
	HasPrev    bool
	HasNext    bool
	Links      []Link
}

// Paginate returns the page of items selected by s. A page past the end is
// clamped to the last page.
func Paginate[T any](items []T, s State) Page[T] {
	size := s.size()
	total := len(items)
	totalPages := TotalPages(total, size)

	page := s.Page
	if page < 1 {
		page = 1
	}
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}

	start := (page - 1) * size
	end := min(start+size, total)
	if start > total {
		start = total
	}

	return Page[T]{
		Items:      items[start:end],
		Page:       page,
		Size:       size,
		Total:      total,
		TotalPages: totalPages,
		HasPrev:    page > 1,
		HasNext:    page < totalPages,
		Links:      Links(page, totalPages),
	}
}

// TotalPages is ceil(count / size).
func TotalPages(count, size int) int {
	if size <= 0 {
		return 0
	}
	return (count + size - 1) / size
}

// Link is one entry of the page selector. Ellipsis entries have no number.
type Link struct {
	Number   int
	Current  bool
	Ellipsis bool
}

// Links lists the first page, the last page and the pages around current,
// with an ellipsis marker for every gap.
func Links(current, totalPages int) []Link {
	if totalPages <= 0 {
		return nil
	}

	var links []Link
	prev := 0
	for n := 1; n <= totalPages; n++ {
		if n != 1 && n != totalPages && (n < current-1 || n > current+1) {
			continue
		}
		if prev != 0 && n-prev > 1 {
			links = append(links, Link{Ellipsis: true})
		}
		links = append(links, Link{Number: n, Current: n == current})
		prev = n
	}
	return links
}
