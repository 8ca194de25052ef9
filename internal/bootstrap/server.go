package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Domenick1991/travelagent/api"
	"github.com/Domenick1991/travelagent/config"
	"github.com/Domenick1991/travelagent/internal/service/booking"
	"github.com/Domenick1991/travelagent/internal/service/customers"
	"github.com/Domenick1991/travelagent/internal/service/flights"
	"github.com/Domenick1991/travelagent/internal/service/travelagent"
	"github.com/gin-gonic/gin"
)

// Run starts the HTTP server and blocks until the context is canceled or the
// server fails.
func Run(
	ctx context.Context,
	cfg *config.Config,
	flightSvc flights.FlightUseCase,
	bookingSvc booking.BookingUseCase,
	customerSvc customers.CustomerUseCase,
	tripSvc travelagent.TravelAgentUseCase,
) error {
	router := newRouter(flightSvc, bookingSvc, customerSvc, tripSvc)

	srv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

func newRouter(
	flightSvc flights.FlightUseCase,
	bookingSvc booking.BookingUseCase,
	customerSvc customers.CustomerUseCase,
	tripSvc travelagent.TravelAgentUseCase,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	flightHandler := api.NewFlightHandler(flightSvc)
	bookingHandler := api.NewBookingHandler(bookingSvc)
	customerHandler := api.NewCustomerHandler(customerSvc)
	tripHandler := api.NewTripHandler(tripSvc)

	v1 := router.Group("/api/v1")
	flightHandler.Register(v1.Group("/flights"))
	bookingHandler.Register(v1.Group("/bookings"))
	bookingHandler.RegisterGuest(v1.Group("/guest-bookings"))
	customerHandler.Register(v1.Group("/customers"))
	bookingHandler.RegisterByCustomer(v1.Group("/customers"))
	bookingHandler.RegisterByFlight(v1.Group("/flights"))
	tripHandler.Register(v1.Group("/trips"))

	return router
}
