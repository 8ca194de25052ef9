package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/travelagent/config"
	"github.com/Domenick1991/travelagent/internal/bootstrap"
	"github.com/Domenick1991/travelagent/internal/cache"
	hotelClient "github.com/Domenick1991/travelagent/internal/integrations/hotel"
	taxiClient "github.com/Domenick1991/travelagent/internal/integrations/taxi"
	"github.com/Domenick1991/travelagent/internal/kafka"
	"github.com/Domenick1991/travelagent/internal/repository"
	"github.com/Domenick1991/travelagent/internal/service/booking"
	"github.com/Domenick1991/travelagent/internal/service/customers"
	"github.com/Domenick1991/travelagent/internal/service/flights"
	"github.com/Domenick1991/travelagent/internal/service/travelagent"
	"github.com/jackc/pgx/v5/pgxpool"
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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis, cfg.Booking.CacheTTL())
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	taxi := taxiClient.NewClient(cfg.Taxi.BaseURL, cfg.Taxi.Timeout())
	hotel := hotelClient.NewClient(cfg.Hotel.BaseURL, cfg.Hotel.Timeout())

	customerRepo := repository.NewCustomerRepository(pool)
	flightRepo := repository.NewFlightRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	tripRepo := repository.NewTripRepository(pool)
	failureRepo := repository.NewFailedCompensationRepository(pool)

	customerService := customers.NewCustomerService(customerRepo)
	flightService := flights.NewFlightService(flightRepo, redisCache)
	bookingService := booking.NewBookingService(
		bookingRepo,
		customerRepo,
		flightRepo,
		redisCache,
		cfg.Booking.LockTTL(),
	)
	tripService := travelagent.NewTravelAgentService(
		tripRepo,
		failureRepo,
		bookingService,
		customerService,
		taxi,
		hotel,
		producer,
		cfg.Kafka.TripEventsTopic,
		travelagent.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
	)

	if err := bootstrap.Run(ctx, cfg, flightService, bookingService, customerService, tripService); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
