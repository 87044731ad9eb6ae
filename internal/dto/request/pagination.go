package request

const (
	DefaultPerPage = 10
	MaxPerPage     = 100
)

// PaginatedRequest is read from ?page=&per_page= on list endpoints.
type PaginatedRequest struct {
	Page    int `json:"page" validate:"min=1"`
	PerPage int `json:"per_page" validate:"min=1,max=100"`
}

// NewPaginatedRequest clamps out-of-range values instead of rejecting them.
func NewPaginatedRequest(page, perPage int) *PaginatedRequest {
	p := &PaginatedRequest{Page: page, PerPage: perPage}
	if p.Page < 1 {
		p.Page = 1
	}
	p.PerPage = p.Limit()
	return p
}

func (p PaginatedRequest) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit()
}

func (p PaginatedRequest) Limit() int {
	switch {
	case p.PerPage < 1:
		return DefaultPerPage
	case p.PerPage > MaxPerPage:
		return MaxPerPage
	default:
		return p.PerPage
	}
}
