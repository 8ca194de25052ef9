package api

import (
	"errors"
	"net/http"

	"github.com/Domenick1991/travelagent/internal/domain"
	"github.com/Domenick1991/travelagent/internal/integrations/hotel"
	"github.com/Domenick1991/travelagent/internal/integrations/taxi"
	"github.com/Domenick1991/travelagent/internal/service/booking"
	"github.com/Domenick1991/travelagent/internal/service/customers"
	"github.com/Domenick1991/travelagent/internal/service/flights"
	"github.com/Domenick1991/travelagent/internal/service/travelagent"
	"github.com/gin-gonic/gin"
)

// respondError maps service errors onto stable categories: validation ->
// 400 with a field map, duplicates/conflicts -> 409, missing references ->
// 404, everything else -> 500. Raw internals never reach the caller.
func respondError(c *gin.Context, err error) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation", "fields": verr.Fields})
		return
	}

	var cerr *travelagent.CompensationError
	if errors.As(err, &cerr) {
		details := make([]gin.H, 0, len(cerr.Failures))
		for _, f := range cerr.Failures {
			details = append(details, gin.H{"resource": f.Resource, "reservation_id": f.ReservationID})
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "compensation_failed", "orphaned": details})
		return
	}

	switch {
	case errors.Is(err, booking.ErrDuplicateBooking),
		errors.Is(err, flights.ErrFlightExists),
		errors.Is(err, taxi.ErrRejected),
		errors.Is(err, hotel.ErrRejected):
		c.JSON(http.StatusConflict, gin.H{"error": "conflict", "reason": err.Error()})
	case errors.Is(err, booking.ErrBookingNotFound),
		errors.Is(err, booking.ErrCustomerNotFound),
		errors.Is(err, booking.ErrFlightNotFound),
		errors.Is(err, customers.ErrCustomerNotFound),
		errors.Is(err, flights.ErrFlightNotFound),
		errors.Is(err, travelagent.ErrTripNotFound),
		errors.Is(err, taxi.ErrTaxiNotFound),
		errors.Is(err, hotel.ErrHotelNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "reason": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal"})
	}
}
