package domain

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 50
)

// PageRequest is a normalized page/limit pair.
type PageRequest struct {
	Page  int
	Limit int
}

// NewPageRequest clamps page to >= 1 and limit to [1, MaxLimit].
func NewPageRequest(page, limit int) PageRequest {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return PageRequest{Page: page, Limit: limit}
}

// Skip is the number of records preceding this page.
func (r PageRequest) Skip() int {
	return (r.Page - 1) * r.Limit
}

// TotalPages returns ceil(total / limit).
func (r PageRequest) TotalPages(total int64) int {
	if total <= 0 {
		return 0
	}
	limit := int64(r.Limit)
	return int((total + limit - 1) / limit)
}

// TransactionPage is one page of a user's transactions, newest first.
type TransactionPage struct {
	Items       []*Transaction
	TotalInPage int
	Total       int64
	Page        int
	TotalPages  int
	HasMore     bool
}
