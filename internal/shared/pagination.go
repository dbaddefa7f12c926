package shared

// Pagination describes the window of a list response.
type Pagination struct {
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	Total   int  `json:"total"`
	HasMore bool `json:"has_more"`
}

// NewPagination computes window metadata from the request bounds and the
// total row count.
func NewPagination(limit, offset, total int) Pagination {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return Pagination{Limit: limit, Offset: offset, Total: total, HasMore: offset+limit < total}
}
