package usecase

import (
	"fmt"
	"time"

	"venue-booking/internal/data/repository"
	"venue-booking/internal/notifier"
	"venue-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth         AuthService
	Venue        VenueService
	Booking      BookingService
	Notification NotificationService
}

func NewService(repo *repository.Repository, n notifier.Notifier, config *utils.Config, log *zap.Logger) (*Service, error) {
	loc, err := time.LoadLocation(config.Booking.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load booking timezone %q: %w", config.Booking.Timezone, err)
	}

	return &Service{
		Auth:  NewAuthService(repo, config.Session, log),
		Venue: NewVenueService(repo.Venue, log),
		Booking: NewBookingService(repo, n, BookingOptions{
			Location:        loc,
			PaymentLinkBase: config.Booking.PaymentLinkBase,
		}, log),
		Notification: NewNotificationService(repo.Notification, log),
	}, nil
}
