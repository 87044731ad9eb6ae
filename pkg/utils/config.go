package utils

import (
	"errors"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Session  SessionConfig
	Booking  BookingConfig
	Broker   BrokerConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
	Migrate  bool
}

type SessionConfig struct {
	ExpiryHours int
}

type BookingConfig struct {
	// IANA zone used to combine the date and time fields of a booking request
	Timezone        string
	PaymentLinkBase string
}

// BrokerConfig is optional: an empty URL disables event publishing and the payment worker.
type BrokerConfig struct {
	URL          string
	Exchange     string
	PaymentQueue string
}

func (b BrokerConfig) Enabled() bool {
	return b.URL != ""
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("APP_NAME", "venue-booking")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("DB_MIGRATE", true)
	viper.SetDefault("SESSION_EXPIRY_HOURS", 24)
	viper.SetDefault("BOOKING_TIMEZONE", "UTC")
	viper.SetDefault("PAYMENT_LINK_BASE", "/payments")
	viper.SetDefault("AMQP_EXCHANGE", "venue-booking.events")
	viper.SetDefault("AMQP_PAYMENT_QUEUE", "venue-booking.payments")

	// .env is optional, the environment alone is enough in containers
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !isMissingFile(err) {
			return nil, err
		}
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
			Migrate:  viper.GetBool("DB_MIGRATE"),
		},
		Session: SessionConfig{
			ExpiryHours: viper.GetInt("SESSION_EXPIRY_HOURS"),
		},
		Booking: BookingConfig{
			Timezone:        viper.GetString("BOOKING_TIMEZONE"),
			PaymentLinkBase: viper.GetString("PAYMENT_LINK_BASE"),
		},
		Broker: BrokerConfig{
			URL:          viper.GetString("AMQP_URL"),
			Exchange:     viper.GetString("AMQP_EXCHANGE"),
			PaymentQueue: viper.GetString("AMQP_PAYMENT_QUEUE"),
		},
	}

	return config, nil
}
