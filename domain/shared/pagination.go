package shared

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// SortOrder is one "property,direction" pair of a page request.
type SortOrder struct {
	Property  string
	Ascending bool
}

// PageRequest is a zero-based page window.
type PageRequest struct {
	Page int
	Size int
	Sort []SortOrder
}

// NewPageRequest clamps page and size into valid bounds.
func NewPageRequest(page, size int) PageRequest {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return PageRequest{Page: page, Size: size}
}

func (p PageRequest) Offset() int {
	return p.Page * p.Size
}

func (p PageRequest) WithSort(orders ...SortOrder) PageRequest {
	p.Sort = orders
	return p
}

// Page is one slice of a larger result set.
type Page[T any] struct {
	Items         []T
	TotalElements int64
	CurrentPage   int
	PageSize      int
}

func NewPage[T any](items []T, total int64, req PageRequest) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{Items: items, TotalElements: total, CurrentPage: req.Page, PageSize: req.Size}
}

func (p Page[T]) TotalPages() int {
	if p.PageSize <= 0 {
		return 0
	}
	return int((p.TotalElements + int64(p.PageSize) - 1) / int64(p.PageSize))
}

// MapPage converts the items of a page while keeping its window.
func MapPage[T, R any](p Page[T], fn func(T) R) Page[R] {
	items := make([]R, len(p.Items))
	for i, item := range p.Items {
		items[i] = fn(item)
	}
	return Page[R]{Items: items, TotalElements: p.TotalElements, CurrentPage: p.CurrentPage, PageSize: p.PageSize}
}
