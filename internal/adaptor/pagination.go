package adaptor

import (
	"net/http"

	"venue-booking/internal/dto/request"
	"venue-booking/pkg/utils"
)

func paginationFromQuery(r *http.Request) *request.PaginatedRequest {
	query := r.URL.Query()
	return request.NewPaginatedRequest(
		utils.ParseInt(query.Get("page"), 1),
		utils.ParseInt(query.Get("per_page"), request.DefaultPerPage),
	)
}
