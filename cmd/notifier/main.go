package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"clinicbook/internal/notifier"
	"clinicbook/pkg/config"
	"clinicbook/pkg/kafka"
	kafka_config "clinicbook/pkg/kafka/config"
)

const (
	ServiceName     = "clinic-notifier"
	ConsumerGroupID = "clinic-notifier"
)

func main() {
	cfg := config.Load(ServiceName)

	cfg.Log.Info("Starting notifier worker")

	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}

	handler := notifier.New(cfg.Log)
	consumer, err := kafka.NewConsumer(kafkaCfg, cfg.BookingEventsTopic, ConsumerGroupID, handler.Handle)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka consumer", "error", err)
	}
	defer consumer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg.Log.Info("Consuming booking events",
		"topic", cfg.BookingEventsTopic,
		"group_id", ConsumerGroupID,
		"brokers", kafkaCfg.Brokers,
	)

	if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		cfg.Log.Error("Consumer stopped with error", "error", err)
	}

	cfg.Log.Info("Notifier worker stopped")
}
