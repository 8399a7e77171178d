package store

// DefaultPageSize is the number of items returned per page unless the
// caller overrides it.
const DefaultPageSize = 15

// Page describes which slice of a collection to fetch. It replaces the
// original mutable query-builder chaining with an explicit value passed
// to each List call.
type Page struct {
	Number int // 1-based page number
	Size   int // items per page
}

// NewPage returns a Page normalized to sane bounds: page numbers start
// at 1 and a non-positive size falls back to DefaultPageSize.
func NewPage(number, size int) Page {
	if number < 1 {
		number = 1
	}
	if size < 1 {
		size = DefaultPageSize
	}
	return Page{Number: number, Size: size}
}

// Offset returns the number of rows to skip for this page.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// TotalPages returns the number of pages needed to hold total items.
func (p Page) TotalPages(total int64) int {
	if total <= 0 {
		return 0
	}
	pages := total / int64(p.Size)
	if total%int64(p.Size) != 0 {
		pages++
	}
	return int(pages)
}

// PostFilter restricts post listings. Zero values mean "no restriction";
// set fields are combined conjunctively.
type PostFilter struct {
	UserID int64 // only posts owned by this user
}

// CommentFilter restricts comment listings.
type CommentFilter struct {
	PostID int64 // only comments on this post
}
