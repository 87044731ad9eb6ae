package adaptor

import (
	"encoding/json"
	"net/http"

	"venue-booking/internal/dto/request"
	"venue-booking/internal/usecase"
	"venue-booking/pkg/utils"

	"go.uber.org/zap"
)

type VenueHandler struct {
	service usecase.VenueService
	log     *zap.Logger
}

func NewVenueHandler(service usecase.VenueService, log *zap.Logger) *VenueHandler {
	return &VenueHandler{
		service: service,
		log:     log.With(zap.String("handler", "venue")),
	}
}

// GetVenue handles GET /api/venues/{id}
func (h *VenueHandler) GetVenue(w http.ResponseWriter, r *http.Request) {
	venueID, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	venue, err := h.service.GetVenue(r.Context(), venueID)
	if err != nil {
		handleServiceError(h.log, w, err, "get venue")
		return
	}

	utils.ResponseSuccess(w, "success", venue)
}

// Quote handles GET /api/venues/{id}/quote?start=&end=&service=
func (h *VenueHandler) Quote(w http.ResponseWriter, r *http.Request) {
	venueID, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	query := r.URL.Query()
	req := &request.QuoteRequest{
		Start:   query.Get("start"),
		End:     query.Get("end"),
		Service: query.Get("service"),
	}

	quote, err := h.service.Quote(r.Context(), venueID, req)
	if err != nil {
		handleServiceError(h.log, w, err, "quote venue")
		return
	}

	utils.ResponseSuccess(w, "success", quote)
}

// CreateVenue handles POST /api/manager/venues
func (h *VenueHandler) CreateVenue(w http.ResponseWriter, r *http.Request) {
	userID, ok := actor(w, r)
	if !ok {
		return
	}

	var req request.CreateVenueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	venue, err := h.service.CreateVenue(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create venue")
		return
	}

	utils.ResponseCreated(w, "Venue created", venue)
}

// UpdatePricing handles PUT /api/manager/venues/{id}/pricing
func (h *VenueHandler) UpdatePricing(w http.ResponseWriter, r *http.Request) {
	userID, ok := actor(w, r)
	if !ok {
		return
	}
	venueID, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	var req request.VenuePricingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	venue, err := h.service.UpdatePricing(r.Context(), userID, venueID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update venue pricing")
		return
	}

	utils.ResponseSuccess(w, "Pricing updated", venue)
}
