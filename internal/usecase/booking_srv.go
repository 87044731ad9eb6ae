package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"venue-booking/internal/data/entity"
	"venue-booking/internal/data/repository"
	"venue-booking/internal/dto/request"
	"venue-booking/internal/dto/response"
	"venue-booking/internal/notifier"
	"venue-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BookingService drives a booking from submission through its lifecycle.
// actorID is the authenticated caller; uuid.Nil means no caller.
type BookingService interface {
	CreateBooking(ctx context.Context, actorID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	GetBooking(ctx context.Context, actorID, bookingID uuid.UUID) (*response.BookingResponse, error)
	GetUserBookings(ctx context.Context, actorID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	GetVenueBookings(ctx context.Context, actorID, venueID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	GetBookingPayments(ctx context.Context, actorID, bookingID uuid.UUID) ([]response.PaymentResponse, error)

	// Manager transitions, restricted to the venue owner
	ApproveBooking(ctx context.Context, actorID, bookingID uuid.UUID) (*response.TransitionResponse, error)
	DeclineBooking(ctx context.Context, actorID, bookingID uuid.UUID) (*response.TransitionResponse, error)
	ResetBooking(ctx context.Context, actorID, bookingID uuid.UUID) (*response.TransitionResponse, error)

	// ConfirmPayment is triggered by an admin or by the payment worker, which
	// passes uuid.Nil.
	ConfirmPayment(ctx context.Context, actorID, bookingID uuid.UUID) (*response.TransitionResponse, error)
	PurgeBooking(ctx context.Context, actorID, bookingID uuid.UUID) error
}

type BookingOptions struct {
	Location        *time.Location
	PaymentLinkBase string
}

type bookingService struct {
	repo     *repository.Repository
	ledger   PaymentLedger
	notifier notifier.Notifier
	opts     BookingOptions
	log      *zap.Logger
}

func NewBookingService(repo *repository.Repository, n notifier.Notifier, opts BookingOptions, log *zap.Logger) BookingService {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	return &bookingService{
		repo:     repo,
		ledger:   NewPaymentLedger(repo.Payment, log),
		notifier: n,
		opts:     opts,
		log:      log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, actorID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if actorID == uuid.Nil {
		return nil, ErrUnauthenticated
	}

	result := ValidateBookingRequest(req, s.opts.Location)
	if !result.Valid() {
		s.log.Warn("Create booking validation failed", zap.Any("errors", result.Fields))
		return nil, result.Err()
	}

	venueID, err := uuid.Parse(req.VenueID)
	if err != nil {
		return nil, &ValidationError{Fields: []utils.FieldError{{Field: "venue_id", Message: "Must be a valid UUID"}}}
	}

	venue, err := s.repo.Venue.FindByID(ctx, venueID)
	if err != nil {
		return nil, fmt.Errorf("find venue %s: %w", venueID, err)
	}
	if venue == nil {
		return nil, fmt.Errorf("venue %s: %w", venueID, ErrNotFound)
	}

	now := time.Now()
	booking := &entity.Booking{
		Base: entity.NewBase(now),
		VenueID:      venueID,
		RequesterID:  actorID,
		StartAt:      result.StartAt,
		EndAt:        result.EndAt,
		Status:       entity.BookingStatusPending,
		ContactName:  req.Name,
		ContactEmail: req.Email,
		ContactPhone: req.Phone,
		ServiceLabel: req.Service,
		Message:      req.Message,
	}

	if err := s.repo.Booking.Insert(ctx, booking); err != nil {
		if errors.Is(err, repository.ErrBookingOverlap) {
			s.log.Info("Booking conflicts with an existing booking",
				zap.String("venue_id", venueID.String()),
				zap.Time("start_at", booking.StartAt),
				zap.Time("end_at", booking.EndAt),
			)
			return nil, &BookingConflictError{VenueID: venueID, StartAt: booking.StartAt, EndAt: booking.EndAt}
		}
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("venue_id", venueID.String()),
		zap.String("requester_id", actorID.String()),
	)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) GetBooking(ctx context.Context, actorID, bookingID uuid.UUID) (*response.BookingResponse, error) {
	booking, _, err := s.loadVisible(ctx, actorID, bookingID)
	if err != nil {
		return nil, err
	}

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) GetUserBookings(ctx context.Context, actorID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	if actorID == uuid.Nil {
		return nil, ErrUnauthenticated
	}

	bookings, err := s.repo.Booking.FindByRequesterID(ctx, actorID, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("get user bookings: %w", err)
	}

	total, err := s.repo.Booking.CountByRequesterID(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("count user bookings: %w", err)
	}

	return response.NewPaginatedResponse(bookingsToResponse(bookings), req.Page, req.Limit(), total), nil
}

func (s *bookingService) GetVenueBookings(ctx context.Context, actorID, venueID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	if actorID == uuid.Nil {
		return nil, ErrUnauthenticated
	}

	venue, err := s.repo.Venue.FindByID(ctx, venueID)
	if err != nil {
		return nil, fmt.Errorf("find venue %s: %w", venueID, err)
	}
	if venue == nil {
		return nil, fmt.Errorf("venue %s: %w", venueID, ErrNotFound)
	}
	if venue.OwnerID != actorID {
		return nil, ErrForbidden
	}

	bookings, err := s.repo.Booking.FindByVenueID(ctx, venueID, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("get venue bookings: %w", err)
	}

	total, err := s.repo.Booking.CountByVenueID(ctx, venueID)
	if err != nil {
		return nil, fmt.Errorf("count venue bookings: %w", err)
	}

	return response.NewPaginatedResponse(bookingsToResponse(bookings), req.Page, req.Limit(), total), nil
}

func (s *bookingService) GetBookingPayments(ctx context.Context, actorID, bookingID uuid.UUID) ([]response.PaymentResponse, error) {
	if _, _, err := s.loadVisible(ctx, actorID, bookingID); err != nil {
		return nil, err
	}

	payments, err := s.ledger.ListByBooking(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("get booking payments: %w", err)
	}

	return response.PaymentsToResponse(payments), nil
}

func (s *bookingService) ApproveBooking(ctx context.Context, actorID, bookingID uuid.UUID) (*response.TransitionResponse, error) {
	booking, venue, _, err := s.transition(ctx, actorID, bookingID, EventApprove, true)
	if err != nil {
		return nil, err
	}

	quote := ComputeDownpayment(venue.VenuePricing, booking.StartAt, booking.EndAt, booking.ServiceLabel, venue.Services)
	if quote.Degraded {
		s.log.Warn("Venue has no usable price, downpayment resolved to zero",
			zap.String("booking_id", booking.ID.String()),
			zap.String("venue_id", venue.ID.String()),
		)
	}

	var payments []*entity.Payment
	if p := s.recordObligation(ctx, booking, quote.DownpaymentAmount, entity.PaymentTypeDownpayment); p != nil {
		payments = append(payments, p)
	}
	if quote.ServiceFeeAmount != nil {
		if p := s.recordObligation(ctx, booking, *quote.ServiceFeeAmount, entity.PaymentTypeServiceFee); p != nil {
			payments = append(payments, p)
		}
	}

	msg := fmt.Sprintf("Your booking at %s on %s was approved. Please pay the downpayment of %s.",
		venue.Name, s.formatDate(booking.StartAt), formatAmount(quote.DownpaymentAmount))
	s.dispatch(ctx, newNotification(booking.RequesterID, actorID, entity.NotificationBookingApproved, msg, s.paymentLink(booking.ID)))

	s.log.Info("Booking approved",
		zap.String("booking_id", booking.ID.String()),
		zap.String("basis", string(quote.Basis)),
		zap.Float64("downpayment", quote.DownpaymentAmount),
	)

	return &response.TransitionResponse{
		Booking:  response.BookingToResponse(booking),
		Payments: response.PaymentsToResponse(payments),
		Quote:    quoteToResponse(quote),
	}, nil
}

func (s *bookingService) DeclineBooking(ctx context.Context, actorID, bookingID uuid.UUID) (*response.TransitionResponse, error) {
	booking, venue, from, err := s.transition(ctx, actorID, bookingID, EventDecline, true)
	if err != nil {
		return nil, err
	}
	s.voidObligations(ctx, booking.ID, from)

	msg := fmt.Sprintf("Your booking at %s on %s was declined.", venue.Name, s.formatDate(booking.StartAt))
	s.dispatch(ctx, newNotification(booking.RequesterID, actorID, entity.NotificationBookingDeclined, msg, bookingLink(booking.ID)))

	s.log.Info("Booking declined", zap.String("booking_id", booking.ID.String()))

	return &response.TransitionResponse{Booking: response.BookingToResponse(booking)}, nil
}

func (s *bookingService) ResetBooking(ctx context.Context, actorID, bookingID uuid.UUID) (*response.TransitionResponse, error) {
	booking, venue, from, err := s.transition(ctx, actorID, bookingID, EventReset, true)
	if err != nil {
		return nil, err
	}
	s.voidObligations(ctx, booking.ID, from)

	msg := fmt.Sprintf("Your booking at %s on %s is pending again.", venue.Name, s.formatDate(booking.StartAt))
	s.dispatch(ctx, newNotification(booking.RequesterID, actorID, entity.NotificationBookingReset, msg, bookingLink(booking.ID)))

	s.log.Info("Booking reset to pending", zap.String("booking_id", booking.ID.String()))

	return &response.TransitionResponse{Booking: response.BookingToResponse(booking)}, nil
}

func (s *bookingService) ConfirmPayment(ctx context.Context, actorID, bookingID uuid.UUID) (*response.TransitionResponse, error) {
	booking, venue, _, err := s.transition(ctx, actorID, bookingID, EventConfirmPayment, false)
	if err != nil {
		return nil, err
	}

	if _, err := s.ledger.CompletePending(ctx, booking.ID, entity.PaymentTypeDownpayment); err != nil {
		s.log.Error("Failed to complete downpayment obligations",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
		)
	}

	date := s.formatDate(booking.StartAt)
	s.dispatch(ctx, newNotification(booking.RequesterID, actorID, entity.NotificationBookingPaid,
		fmt.Sprintf("Your booking at %s on %s is confirmed.", venue.Name, date), bookingLink(booking.ID)))
	s.dispatch(ctx, newNotification(venue.OwnerID, actorID, entity.NotificationBookingPaid,
		fmt.Sprintf("The downpayment for %s on %s has been paid.", venue.Name, date), bookingLink(booking.ID)))

	s.log.Info("Booking paid", zap.String("booking_id", booking.ID.String()))

	payments, err := s.ledger.ListByBooking(ctx, booking.ID)
	if err != nil {
		s.log.Warn("Failed to load payments after confirmation", zap.Error(err), zap.String("booking_id", booking.ID.String()))
	}

	return &response.TransitionResponse{
		Booking:  response.BookingToResponse(booking),
		Payments: response.PaymentsToResponse(payments),
	}, nil
}

func (s *bookingService) PurgeBooking(ctx context.Context, actorID, bookingID uuid.UUID) error {
	if actorID == uuid.Nil {
		return ErrUnauthenticated
	}

	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		return fmt.Errorf("find booking %s: %w", bookingID, err)
	}
	if booking == nil {
		return fmt.Errorf("booking %s: %w", bookingID, ErrNotFound)
	}
	if !CanPurge(booking.Status) {
		return s.purgeRejected(bookingID, booking.Status)
	}

	if err := s.repo.Booking.Delete(ctx, bookingID); err != nil {
		if errors.Is(err, repository.ErrNotCancelled) {
			return s.purgeRejected(bookingID, s.currentStatus(ctx, bookingID))
		}
		return fmt.Errorf("purge booking %s: %w", bookingID, err)
	}

	s.log.Info("Cancelled booking purged",
		zap.String("booking_id", bookingID.String()),
		zap.String("actor_id", actorID.String()),
	)
	return nil
}

// ==================== HELPER METHODS ====================

// transition applies event to the booking with a conditional status update.
// Side effects belong to the caller and run only after this returns.
func (s *bookingService) transition(ctx context.Context, actorID, bookingID uuid.UUID, event Event, ownerOnly bool) (*entity.Booking, *entity.Venue, entity.BookingStatus, error) {
	if ownerOnly && actorID == uuid.Nil {
		return nil, nil, "", ErrUnauthenticated
	}

	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		return nil, nil, "", fmt.Errorf("find booking %s: %w", bookingID, err)
	}
	if booking == nil {
		return nil, nil, "", fmt.Errorf("booking %s: %w", bookingID, ErrNotFound)
	}

	venue, err := s.repo.Venue.FindByID(ctx, booking.VenueID)
	if err != nil {
		return nil, nil, "", fmt.Errorf("find venue %s: %w", booking.VenueID, err)
	}
	if venue == nil {
		return nil, nil, "", fmt.Errorf("venue %s: %w", booking.VenueID, ErrNotFound)
	}

	if ownerOnly && venue.OwnerID != actorID {
		s.log.Warn("Transition attempted by non-owner",
			zap.String("booking_id", bookingID.String()),
			zap.String("actor_id", actorID.String()),
			zap.String("event", string(event)),
		)
		return nil, nil, "", ErrForbidden
	}

	next, ok := NextStatus(booking.Status, event)
	if !ok {
		return nil, nil, "", &PreconditionFailedError{
			BookingID: bookingID,
			Event:     event,
			Allowed:   AllowedFrom(event),
			Actual:    booking.Status,
		}
	}

	updated, err := s.repo.Booking.UpdateStatus(ctx, bookingID, next, booking.Status, time.Now())
	if err != nil {
		if errors.Is(err, repository.ErrStatusMismatch) {
			s.log.Info("Booking changed concurrently",
				zap.String("booking_id", bookingID.String()),
				zap.String("event", string(event)),
			)
			return nil, nil, "", &PreconditionFailedError{
				BookingID: bookingID,
				Event:     event,
				Allowed:   AllowedFrom(event),
				Actual:    s.currentStatus(ctx, bookingID),
			}
		}
		return nil, nil, "", fmt.Errorf("update booking %s to %s: %w", bookingID, next, err)
	}

	return updated, venue, booking.Status, nil
}

// loadVisible returns the booking when the actor requested it or owns its venue.
func (s *bookingService) loadVisible(ctx context.Context, actorID, bookingID uuid.UUID) (*entity.Booking, *entity.Venue, error) {
	if actorID == uuid.Nil {
		return nil, nil, ErrUnauthenticated
	}

	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		return nil, nil, fmt.Errorf("find booking %s: %w", bookingID, err)
	}
	if booking == nil {
		return nil, nil, fmt.Errorf("booking %s: %w", bookingID, ErrNotFound)
	}

	if booking.RequesterID == actorID {
		return booking, nil, nil
	}

	venue, err := s.repo.Venue.FindByID(ctx, booking.VenueID)
	if err != nil {
		return nil, nil, fmt.Errorf("find venue %s: %w", booking.VenueID, err)
	}
	if venue == nil || venue.OwnerID != actorID {
		return nil, nil, ErrForbidden
	}

	return booking, venue, nil
}

func (s *bookingService) currentStatus(ctx context.Context, bookingID uuid.UUID) entity.BookingStatus {
	current, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil || current == nil {
		return ""
	}
	return current.Status
}

func (s *bookingService) purgeRejected(bookingID uuid.UUID, actual entity.BookingStatus) error {
	return &PreconditionFailedError{
		BookingID: bookingID,
		Event:     EventPurge,
		Allowed:   []entity.BookingStatus{entity.BookingStatusCancelled},
		Actual:    actual,
	}
}

func (s *bookingService) recordObligation(ctx context.Context, booking *entity.Booking, amount float64, paymentType entity.PaymentType) *entity.Payment {
	p, err := s.ledger.RecordPaymentObligation(ctx, booking.ID, booking.RequesterID, booking.VenueID, amount, paymentType)
	if err != nil {
		s.log.Error("Failed to record payment obligation",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
			zap.String("payment_type", string(paymentType)),
		)
		return nil
	}
	return p
}

// voidObligations fails the pending obligations of the approval the booking
// just left.
func (s *bookingService) voidObligations(ctx context.Context, bookingID uuid.UUID, from entity.BookingStatus) {
	if from != entity.BookingStatusConfirmedForDownpayment {
		return
	}
	if _, err := s.ledger.VoidPending(ctx, bookingID); err != nil {
		s.log.Error("Failed to void payment obligations",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
	}
}

// dispatch never fails the caller.
func (s *bookingService) dispatch(ctx context.Context, n *entity.Notification) {
	if err := s.notifier.Notify(ctx, n); err != nil {
		s.log.Error("Failed to dispatch notification",
			zap.Error(err),
			zap.String("recipient_id", n.RecipientID.String()),
			zap.String("type", string(n.Type)),
		)
	}
}

func (s *bookingService) paymentLink(bookingID uuid.UUID) string {
	return s.opts.PaymentLinkBase + "/" + bookingID.String()
}

func (s *bookingService) formatDate(t time.Time) string {
	return t.In(s.opts.Location).Format("2006-01-02 15:04")
}

func bookingLink(bookingID uuid.UUID) string {
	return "/bookings/" + bookingID.String()
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func newNotification(recipientID, senderID uuid.UUID, t entity.NotificationType, message, link string) *entity.Notification {
	n := &entity.Notification{
		Record: entity.NewRecord(time.Now()),
		RecipientID: recipientID,
		Type:        t,
		Message:     message,
		Link:        link,
	}
	if senderID != uuid.Nil {
		sender := senderID
		n.SenderID = &sender
	}
	return n
}

func bookingsToResponse(bookings []*entity.Booking) []response.BookingResponse {
	out := make([]response.BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, response.BookingToResponse(b))
	}
	return out
}

func quoteToResponse(q Quote) *response.QuoteResponse {
	return &response.QuoteResponse{
		Basis:             string(q.Basis),
		BaseAmount:        q.BaseAmount,
		DownpaymentAmount: q.DownpaymentAmount,
		ServiceFeeAmount:  q.ServiceFeeAmount,
		Degraded:          q.Degraded,
	}
}
