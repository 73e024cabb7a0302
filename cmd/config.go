package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"courierbot/internal/adapters/out/memory"
	"courierbot/internal/adapters/out/postgres"
	"courierbot/internal/core/application/usecases/commands"
	"courierbot/internal/core/domain/model/kernel"
	"courierbot/internal/core/domain/model/order"

	"github.com/joho/godotenv"
)

// Messenger backends.
const (
	MessengerLog   = "log"
	MessengerKafka = "kafka"
	MessengerAMQP  = "amqp"
)

type Config struct {
	HTTPPort         string
	JWTSecret        string
	OperatorIDs      []kernel.ActorID
	DefaultPayment   order.PaymentMethod
	HistoryRetention int
	ReminderDelay    time.Duration
	LogLevel         string

	Messenger               string
	KafkaHost               string
	KafkaNotificationsTopic string
	AMQPURL                 string
	AMQPExchange            string

	DB postgres.Config
}

// LoadConfig reads the configuration from the environment. A .env file in the
// working directory, when present, seeds variables that are not already set.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env file: %w", err)
	}
	return ConfigFromEnv(os.Getenv)
}

// ConfigFromEnv builds a Config from the given lookup, applying defaults.
// All invalid values are reported together.
func ConfigFromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{
		HTTPPort:                withDefault(getenv("HTTP_PORT"), "8080"),
		JWTSecret:               getenv("JWT_SECRET"),
		HistoryRetention:        memory.DefaultHistoryRetention,
		ReminderDelay:           commands.DefaultReminderDelay,
		LogLevel:                withDefault(getenv("LOG_LEVEL"), "info"),
		Messenger:               strings.ToLower(withDefault(getenv("MESSENGER"), MessengerLog)),
		KafkaHost:               getenv("KAFKA_HOST"),
		KafkaNotificationsTopic: withDefault(getenv("KAFKA_NOTIFICATIONS_TOPIC"), "courierbot.notifications"),
		AMQPURL:                 getenv("AMQP_URL"),
		AMQPExchange:            withDefault(getenv("AMQP_EXCHANGE"), "courierbot.notifications"),
		DB: postgres.Config{
			Host:     getenv("DB_HOST"),
			Port:     getenv("DB_PORT"),
			User:     getenv("DB_USER"),
			Password: getenv("DB_PASSWORD"),
			Name:     getenv("DB_NAME"),
			SSLMode:  getenv("DB_SSLMODE"),
		},
	}

	var errs []error

	if cfg.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}

	for _, raw := range strings.Split(getenv("OPERATOR_IDS"), ",") {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		id, err := kernel.NewActorID(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("OPERATOR_IDS: %w", err))
			continue
		}
		cfg.OperatorIDs = append(cfg.OperatorIDs, id)
	}

	cfg.DefaultPayment = order.PaymentCash
	if raw := getenv("DEFAULT_PAYMENT"); raw != "" {
		method, err := order.ParsePaymentMethod(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("DEFAULT_PAYMENT: %w", err))
		}
		cfg.DefaultPayment = method
	}

	if raw := getenv("HISTORY_RETENTION"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			errs = append(errs, fmt.Errorf("HISTORY_RETENTION: %q is not a positive integer", raw))
		}
		cfg.HistoryRetention = n
	}

	if raw := getenv("REMINDER_DELAY"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			errs = append(errs, fmt.Errorf("REMINDER_DELAY: %q is not a positive duration", raw))
		}
		cfg.ReminderDelay = d
	}

	switch cfg.Messenger {
	case MessengerLog:
	case MessengerKafka:
		if cfg.KafkaHost == "" {
			errs = append(errs, errors.New("KAFKA_HOST is required for the kafka messenger"))
		}
	case MessengerAMQP:
		if cfg.AMQPURL == "" {
			errs = append(errs, errors.New("AMQP_URL is required for the amqp messenger"))
		}
	default:
		errs = append(errs, fmt.Errorf("MESSENGER: unknown backend %q", cfg.Messenger))
	}

	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func withDefault(value, def string) string {
	if value == "" {
		return def
	}
	return value
}
