package domain

import (
	"fmt"
	"math"
)

// MaxPageSize is the largest page size any listing serves. Configured
// limits may be lower, never higher.
const MaxPageSize = 1000

// ErrPageSizeTooLarge is returned for a page size above the allowed limit.
var ErrPageSizeTooLarge = fmt.Errorf("%w: page size too large", ErrInvalidArgument)

// PageRequest is a validated page window. Page is 1-based.
type PageRequest struct {
	Page int
	Size int
}

// NewPageRequest is NewBoundedPageRequest with MaxPageSize as the limit.
func NewPageRequest(page, size int) (PageRequest, error) {
	return NewBoundedPageRequest(page, size, MaxPageSize)
}

// NewBoundedPageRequest clamps page to at least 1 and accepts sizes in
// 1..maxSize. A maxSize outside 1..MaxPageSize means MaxPageSize. Pages
// whose offset would not fit in an int are rejected.
func NewBoundedPageRequest(page, size, maxSize int) (PageRequest, error) {
	if maxSize <= 0 || maxSize > MaxPageSize {
		maxSize = MaxPageSize
	}
	if size <= 0 {
		return PageRequest{}, NewValidationError("size", "must be greater than 0", ErrInvalidArgument)
	}
	if size > maxSize {
		return PageRequest{}, NewValidationError("size",
			fmt.Sprintf("must not exceed %d", maxSize), ErrPageSizeTooLarge)
	}
	if page < 1 {
		page = 1
	}
	if page-1 > math.MaxInt/size {
		return PageRequest{}, NewValidationError("page", "is out of range", ErrInvalidArgument)
	}
	return PageRequest{Page: page, Size: size}, nil
}

// Offset returns the number of rows skipped before this page.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Size
}

// TotalPages returns ceil(total/size), or 0 when there is nothing to page.
func TotalPages(total int64, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	pages := total / int64(size)
	if total%int64(size) != 0 {
		pages++
	}
	if pages > math.MaxInt {
		return math.MaxInt
	}
	return int(pages)
}

// Page is one window of an ordered result set.
type Page[T any] struct {
	Items       []T
	TotalCount  int64
	TotalPages  int
	CurrentPage int
	Size        int
}

// NewPage assembles a page from the window items and the total row count.
// A nil req describes an unbounded listing: everything fits on page 1.
func NewPage[T any](items []T, total int64, req *PageRequest) Page[T] {
	if items == nil {
		items = []T{}
	}
	if req == nil {
		pages := 0
		if total > 0 {
			pages = 1
		}
		return Page[T]{
			Items:       items,
			TotalCount:  total,
			TotalPages:  pages,
			CurrentPage: 1,
			Size:        int(total),
		}
	}
	return Page[T]{
		Items:       items,
		TotalCount:  total,
		TotalPages:  TotalPages(total, req.Size),
		CurrentPage: req.Page,
		Size:        req.Size,
	}
}

// EmptyPage is the page reported when a listing could not be produced.
func EmptyPage[T any](req *PageRequest) Page[T] {
	return NewPage[T](nil, 0, req)
}
