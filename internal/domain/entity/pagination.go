package entity

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Page is one slice of a larger listing
type Page[T any] struct {
	Items    []T
	Total    int64
	Page     int
	PageSize int
}

// NormalizePage clamps page to >= 1 and pageSize to 1..MaxPageSize
func NormalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}

// Offset returns the row offset for a normalized page
func Offset(page, pageSize int) int {
	return (page - 1) * pageSize
}
