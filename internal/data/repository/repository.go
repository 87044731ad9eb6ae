package repository

import (
	"venue-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User         UserRepository
	Session      SessionRepository
	Venue        VenueRepository
	Booking      BookingRepository
	Payment      PaymentRepository
	Notification NotificationRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:         NewUserRepository(db, log),
		Session:      NewSessionRepository(db, log),
		Venue:        NewVenueRepository(db, log),
		Booking:      NewBookingRepository(db, log),
		Payment:      NewPaymentRepository(db, log),
		Notification: NewNotificationRepository(db, log),
	}
}
