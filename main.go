package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"venue-booking/cmd"
	"venue-booking/internal/data/repository"
	"venue-booking/internal/events"
	"venue-booking/internal/notifier"
	"venue-booking/internal/wire"
	"venue-booking/internal/worker"
	"venue-booking/pkg/database"
	"venue-booking/pkg/mq"
	"venue-booking/pkg/utils"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := utils.InitLogger(config.App)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using zap production logger.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
		zap.Bool("broker", config.Broker.Enabled()),
	)

	db, err := database.InitDB(ctx, config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if config.Database.Migrate {
		if err := database.Migrate(ctx, db); err != nil {
			logger.Fatal("Failed to apply schema", zap.Error(err))
		}
		logger.Info("Database schema applied")
	}

	repos := repository.NewRepository(db, logger)

	notifiers := notifier.Multi{notifier.NewStoreNotifier(repos.Notification, logger)}
	if config.Broker.Enabled() {
		pub, err := mq.NewPublisher(config.Broker.URL, config.Broker.Exchange)
		if err != nil {
			logger.Fatal("Failed to connect publisher", zap.Error(err))
		}
		defer pub.Close()
		notifiers = append(notifiers, notifier.NewBrokerNotifier(pub))
	}

	app, err := wire.Wiring(repos, notifiers, config, logger)
	if err != nil {
		logger.Fatal("Failed to wire application", zap.Error(err))
	}

	if config.Broker.Enabled() {
		broker := config.Broker
		subscribe := func(ctx context.Context) (<-chan amqp.Delivery, func() error, error) {
			consumer, err := mq.NewConsumer(broker.URL, broker.Exchange, broker.PaymentQueue,
				[]string{events.RKPaymentCompleted}, 8)
			if err != nil {
				return nil, nil, err
			}
			deliveries, err := consumer.Deliveries(ctx)
			if err != nil {
				_ = consumer.Close()
				return nil, nil, err
			}
			return deliveries, consumer.Close, nil
		}

		payments := worker.NewPaymentConsumer(worker.FromBookingService(app.Service.Booking), logger)
		go payments.RunReconnecting(ctx, subscribe, 5*time.Second)
	}

	if err := cmd.APIServer(ctx, app.Router, config.App.Port, logger); err != nil {
		logger.Error("Server stopped with error", zap.Error(err))
	}
}
