package wire

import (
	"net/http"

	"venue-booking/internal/adaptor"
	"venue-booking/internal/data/repository"
	"venue-booking/internal/notifier"
	"venue-booking/internal/usecase"
	"venue-booking/pkg/middleware"
	"venue-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// App holds the wired router and the services background workers need.
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

func Wiring(repo *repository.Repository, n notifier.Notifier, config *utils.Config, logger *zap.Logger) (*App, error) {
	service, err := usecase.NewService(repo, n, config, logger)
	if err != nil {
		return nil, err
	}
	handler := adaptor.NewHandler(service, logger)

	return &App{
		Router:  setupRouter(handler, repo, logger),
		Service: service,
	}, nil
}

func setupRouter(handler *adaptor.Handler, repo *repository.Repository, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))

	auth := middleware.AuthSession(repo.Session, repo.User, logger)

	wireAuth(r, handler.Auth, auth)
	wireVenue(r, handler.Venue, auth, logger)
	wireBooking(r, handler.Booking, auth, logger)
	wireNotification(r, handler.Notification, auth)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseSuccess(w, "OK", nil)
	})

	return r
}
