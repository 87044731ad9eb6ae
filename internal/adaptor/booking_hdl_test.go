package adaptor

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"venue-booking/internal/data/entity"
	"venue-booking/internal/dto/request"
	"venue-booking/internal/dto/response"
	"venue-booking/internal/usecase"
	"venue-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// stubBookingService panics on any method a test did not set up.
type stubBookingService struct {
	usecase.BookingService
	create  func(actorID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	approve func(actorID, bookingID uuid.UUID) (*response.TransitionResponse, error)
	purge   func(actorID, bookingID uuid.UUID) error
}

func (s *stubBookingService) CreateBooking(_ context.Context, actorID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	return s.create(actorID, req)
}

func (s *stubBookingService) ApproveBooking(_ context.Context, actorID, bookingID uuid.UUID) (*response.TransitionResponse, error) {
	return s.approve(actorID, bookingID)
}

func (s *stubBookingService) PurgeBooking(_ context.Context, actorID, bookingID uuid.UUID) error {
	return s.purge(actorID, bookingID)
}

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  json.RawMessage `json:"errors"`
}

func newTestRouter(svc usecase.BookingService, userID uuid.UUID) http.Handler {
	h := NewBookingHandler(svc, zap.NewNop())

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if userID != uuid.Nil {
				r = r.WithContext(utils.SetUserContext(r.Context(), userID, "planner"))
			}
			next.ServeHTTP(w, r)
		})
	})
	r.Post("/api/bookings", h.CreateBooking)
	r.Put("/api/manager/bookings/{id}/approve", h.ApproveBooking)
	r.Delete("/api/admin/bookings/{id}", h.PurgeBooking)
	return r
}

func do(t *testing.T, handler http.Handler, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
	return rec, env
}

func TestCreateBooking_StatusMapping(t *testing.T) {
	userID := uuid.New()
	start := time.Date(2026, 11, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{name: "created", wantCode: http.StatusCreated},
		{
			name:     "validation",
			err:      &usecase.ValidationError{Fields: []utils.FieldError{{Field: "name", Message: "Name is required"}}},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "overlap",
			err:      &usecase.BookingConflictError{VenueID: uuid.New(), StartAt: start, EndAt: start.Add(time.Hour)},
			wantCode: http.StatusConflict,
		},
		{name: "unknown venue", err: usecase.ErrNotFound, wantCode: http.StatusNotFound},
		{name: "store failure", err: errors.New("pool exhausted"), wantCode: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubBookingService{
				create: func(actorID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
					if actorID != userID {
						t.Errorf("actor = %s, want %s", actorID, userID)
					}
					if tt.err != nil {
						return nil, tt.err
					}
					return &response.BookingResponse{ID: uuid.NewString(), Status: entity.BookingStatusPending, ContactName: req.Name}, nil
				},
			}

			rec, env := do(t, newTestRouter(svc, userID), http.MethodPost, "/api/bookings", `{"name":"Ayu"}`)
			if rec.Code != tt.wantCode {
				t.Errorf("code = %d, want %d", rec.Code, tt.wantCode)
			}
			if env.Status != (tt.err == nil) {
				t.Errorf("status = %v", env.Status)
			}
		})
	}
}

func TestCreateBooking_ValidationFieldsReturned(t *testing.T) {
	fields := []utils.FieldError{
		{Field: "name", Message: "Name is required"},
		{Field: "end_time", Message: "End must be after start"},
	}
	svc := &stubBookingService{
		create: func(uuid.UUID, *request.CreateBookingRequest) (*response.BookingResponse, error) {
			return nil, &usecase.ValidationError{Fields: fields}
		},
	}

	_, env := do(t, newTestRouter(svc, uuid.New()), http.MethodPost, "/api/bookings", `{}`)

	var got []utils.FieldError
	if err := json.Unmarshal(env.Errors, &got); err != nil {
		t.Fatalf("decode errors: %v", err)
	}
	if len(got) != 2 || got[0].Field != "name" || got[1].Field != "end_time" {
		t.Errorf("errors = %+v", got)
	}
}

func TestCreateBooking_Unauthenticated(t *testing.T) {
	svc := &stubBookingService{}

	rec, _ := do(t, newTestRouter(svc, uuid.Nil), http.MethodPost, "/api/bookings", `{}`)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("code = %d, want 401", rec.Code)
	}
}

func TestCreateBooking_BadBody(t *testing.T) {
	svc := &stubBookingService{}

	rec, _ := do(t, newTestRouter(svc, uuid.New()), http.MethodPost, "/api/bookings", `{not json`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("code = %d, want 400", rec.Code)
	}
}

func TestApproveBooking_StatusMapping(t *testing.T) {
	bookingID := uuid.New()

	tests := []struct {
		name     string
		path     string
		err      error
		wantCode int
	}{
		{name: "approved", path: bookingID.String(), wantCode: http.StatusOK},
		{name: "bad id", path: "not-a-uuid", wantCode: http.StatusBadRequest},
		{name: "not owner", path: bookingID.String(), err: usecase.ErrForbidden, wantCode: http.StatusForbidden},
		{
			name: "already decided",
			path: bookingID.String(),
			err: &usecase.PreconditionFailedError{
				BookingID: bookingID,
				Event:     usecase.EventApprove,
				Allowed:   []entity.BookingStatus{entity.BookingStatusPending},
				Actual:    entity.BookingStatusCancelled,
			},
			wantCode: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubBookingService{
				approve: func(_, id uuid.UUID) (*response.TransitionResponse, error) {
					if id != bookingID {
						t.Errorf("booking = %s, want %s", id, bookingID)
					}
					if tt.err != nil {
						return nil, tt.err
					}
					return &response.TransitionResponse{
						Booking: response.BookingResponse{ID: id.String(), Status: entity.BookingStatusConfirmedForDownpayment},
					}, nil
				},
			}

			rec, _ := do(t, newTestRouter(svc, uuid.New()), http.MethodPut, "/api/manager/bookings/"+tt.path+"/approve", "")
			if rec.Code != tt.wantCode {
				t.Errorf("code = %d, want %d", rec.Code, tt.wantCode)
			}
		})
	}
}

func TestApproveBooking_PreconditionBody(t *testing.T) {
	bookingID := uuid.New()
	svc := &stubBookingService{
		approve: func(uuid.UUID, uuid.UUID) (*response.TransitionResponse, error) {
			return nil, &usecase.PreconditionFailedError{
				BookingID: bookingID,
				Event:     usecase.EventApprove,
				Allowed:   []entity.BookingStatus{entity.BookingStatusPending},
				Actual:    entity.BookingStatusConfirmedPaid,
			}
		},
	}

	_, env := do(t, newTestRouter(svc, uuid.New()), http.MethodPut, "/api/manager/bookings/"+bookingID.String()+"/approve", "")

	var got struct {
		Expected []entity.BookingStatus `json:"expected"`
		Actual   entity.BookingStatus   `json:"actual"`
	}
	if err := json.Unmarshal(env.Errors, &got); err != nil {
		t.Fatalf("decode errors: %v", err)
	}
	if got.Actual != entity.BookingStatusConfirmedPaid || len(got.Expected) != 1 || got.Expected[0] != entity.BookingStatusPending {
		t.Errorf("errors = %+v", got)
	}
}

func TestPurgeBooking(t *testing.T) {
	bookingID := uuid.New()

	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{name: "deleted", wantCode: http.StatusOK},
		{
			name:     "not cancelled",
			err:      &usecase.PreconditionFailedError{BookingID: bookingID, Event: usecase.EventPurge, Actual: entity.BookingStatusPending},
			wantCode: http.StatusConflict,
		},
		{name: "missing", err: usecase.ErrNotFound, wantCode: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubBookingService{
				purge: func(uuid.UUID, uuid.UUID) error { return tt.err },
			}

			rec, _ := do(t, newTestRouter(svc, uuid.New()), http.MethodDelete, "/api/admin/bookings/"+bookingID.String(), "")
			if rec.Code != tt.wantCode {
				t.Errorf("code = %d, want %d", rec.Code, tt.wantCode)
			}
		})
	}
}
