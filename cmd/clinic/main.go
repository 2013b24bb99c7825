package main

import (
	bookinghandler "clinicbook/internal/bookings/handler"
	bookingrepo "clinicbook/internal/bookings/repository"
	bookingservice "clinicbook/internal/bookings/service"
	bookingvalidator "clinicbook/internal/bookings/validator"
	userhandler "clinicbook/internal/users/handler"
	userrepo "clinicbook/internal/users/repository"
	userservice "clinicbook/internal/users/service"
	uservalidator "clinicbook/internal/users/validator"
	"clinicbook/pkg/app"
	"clinicbook/pkg/config"
	"clinicbook/pkg/kafka"
	kafka_config "clinicbook/pkg/kafka/config"
)

const ServiceName = "clinic-api"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting Clinic API service")

	producer := initEventProducer(cfg)
	if producer != nil {
		defer producer.Close()
	}

	bookingService := initBookingService(cfg, producer)
	userService := initUserService(cfg)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(
		userhandler.NewAuthHandler(userService, cfg.Log),
		bookinghandler.NewBookingHandler(bookingService, cfg),
	)
	serverApp.Run()
}

// initEventProducer returns nil when event publication is disabled, which
// the booking service treats as a no-op publisher.
func initEventProducer(cfg *config.Config) *kafka.Producer {
	if !cfg.KafkaEnabled {
		cfg.Log.Info("Kafka disabled, booking events will not be published")
		return nil
	}

	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}

	producer, err := kafka.NewProducer(kafkaCfg, cfg.BookingEventsTopic)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}

	cfg.Log.Info("Kafka producer initialized",
		"topic", cfg.BookingEventsTopic,
		"brokers", kafkaCfg.Brokers,
	)
	return producer
}

func initBookingService(cfg *config.Config, producer *kafka.Producer) bookingservice.BookingService {
	var events bookingservice.EventPublisher
	if producer != nil {
		events = producer
	}

	svc := bookingservice.NewBookingService(
		bookingrepo.NewMongoBookingRepository(cfg),
		bookingvalidator.NewBookingValidator(cfg.Log),
		events,
		cfg,
	)

	cfg.Log.Info("Booking service initialized", "database", cfg.MongoDatabaseName)
	return svc
}

func initUserService(cfg *config.Config) userservice.UserService {
	svc := userservice.NewUserService(
		userrepo.NewMongoUserRepository(cfg),
		uservalidator.NewUserValidator(cfg.Log),
		cfg,
	)

	cfg.Log.Info("User service initialized", "database", cfg.MongoDatabaseName)
	return svc
}
