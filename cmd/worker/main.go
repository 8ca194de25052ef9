package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/travelagent/config"
	"github.com/Domenick1991/travelagent/internal/domain"
	"github.com/Domenick1991/travelagent/internal/email"
	hotelClient "github.com/Domenick1991/travelagent/internal/integrations/hotel"
	taxiClient "github.com/Domenick1991/travelagent/internal/integrations/taxi"
	"github.com/Domenick1991/travelagent/internal/kafka"
	"github.com/Domenick1991/travelagent/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
	kafkaGo "github.com/segmentio/kafka-go"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	failureRepo := repository.NewFailedCompensationRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	taxi := taxiClient.NewClient(cfg.Taxi.BaseURL, cfg.Taxi.Timeout())
	hotel := hotelClient.NewClient(cfg.Hotel.BaseURL, cfg.Hotel.Timeout())

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic)
	defer consumer.Close()

	emailSender := email.NewSender()

	go func() {
		if err := consumer.Consume(ctx, func(ctx context.Context, msg kafkaGo.Message) error {
			var event kafka.TripEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				log.Printf("decode event error: %v", err)
				return nil
			}
			return emailSender.Send(ctx, event)
		}); err != nil {
			log.Printf("consumer stopped: %v", err)
		}
	}()

	sweep := time.NewTicker(cfg.Worker.SweepInterval())
	defer sweep.Stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-sweep.C:
			if err := reconcile(ctx, failureRepo, bookingRepo, taxi, hotel); err != nil {
				log.Printf("reconcile error: %v", err)
			}
		case s := <-sig:
			log.Printf("received signal %v, shutting down", s)
			return
		}
	}
}

// reconcile retries compensations that failed during booking or
// cancellation: reservations the remote systems may still hold even though
// the local state says they are gone.
func reconcile(ctx context.Context, failures repository.FailedCompensationRepository, bookings repository.BookingRepository, taxi *taxiClient.Client, hotel *hotelClient.Client) error {
	pending, err := failures.List(ctx)
	if err != nil {
		return err
	}

	for _, fc := range pending {
		var delErr error
		switch fc.Resource {
		case domain.ResourceTaxi:
			delErr = taxi.DeleteBooking(ctx, fc.ReservationID)
			if errors.Is(delErr, taxiClient.ErrBookingNotFound) {
				delErr = nil
			}
		case domain.ResourceHotel:
			delErr = hotel.DeleteBooking(ctx, fc.ReservationID)
			if errors.Is(delErr, hotelClient.ErrBookingNotFound) {
				delErr = nil
			}
		case domain.ResourceFlightBooking:
			delErr = bookings.Delete(ctx, fc.ReservationID)
			if errors.Is(delErr, repository.ErrNotFound) {
				delErr = nil
			}
		default:
			log.Printf("skipping unknown compensation resource %q (id=%d)", fc.Resource, fc.ID)
			continue
		}

		if delErr != nil {
			log.Printf("retry release %s reservation %d (trip %s): %v", fc.Resource, fc.ReservationID, fc.TripRef, delErr)
			continue
		}
		if err := failures.Delete(ctx, fc.ID); err != nil {
			log.Printf("clear reconciled compensation %d: %v", fc.ID, err)
			continue
		}
		log.Printf("released orphaned %s reservation %d (trip %s)", fc.Resource, fc.ReservationID, fc.TripRef)
	}
	return nil
}
