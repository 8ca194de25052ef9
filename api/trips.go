package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Domenick1991/travelagent/internal/domain"
	"github.com/Domenick1991/travelagent/internal/service/travelagent"
	"github.com/gin-gonic/gin"
)

type TripHandler struct {
	service travelagent.TravelAgentUseCase
}

type bookTripRequest struct {
	CustomerID  int64  `json:"customer_id"`
	FlightID    int64  `json:"flight_id"`
	BookingDate string `json:"booking_date"`
	TaxiID      int64  `json:"taxi_id"`
	HotelID     int64  `json:"hotel_id"`
}

type tripResponse struct {
	ID               int64  `json:"id"`
	Reference        string `json:"reference"`
	FlightBookingID  int64  `json:"flight_booking_id"`
	TaxiBookingID    int64  `json:"taxi_booking_id"`
	TaxiID           int64  `json:"taxi_id"`
	HotelBookingID   int64  `json:"hotel_booking_id"`
	HotelID          int64  `json:"hotel_id"`
	AgentBookingDate string `json:"agent_booking_date"`
}

func NewTripHandler(service travelagent.TravelAgentUseCase) *TripHandler {
	return &TripHandler{service: service}
}

func (h *TripHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.list)
	router.POST("/", h.book)
	router.GET("/:id", h.get)
	router.DELETE("/:id", h.cancel)
}

func (h *TripHandler) book(c *gin.Context) {
	var req bookTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date, err := time.Parse(time.RFC3339, req.BookingDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation", "fields": gin.H{"booking_date": "must be RFC3339"}})
		return
	}

	trip, err := h.service.BookTrip(c.Request.Context(), travelagent.BookTripInput{
		CustomerID:  req.CustomerID,
		FlightID:    req.FlightID,
		BookingDate: date,
		TaxiID:      req.TaxiID,
		HotelID:     req.HotelID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toTripResponse(trip))
}

func (h *TripHandler) cancel(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.service.CancelTrip(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *TripHandler) get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	trip, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTripResponse(trip))
}

func (h *TripHandler) list(c *gin.Context) {
	trips, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]tripResponse, 0, len(trips))
	for _, t := range trips {
		resp = append(resp, toTripResponse(&t))
	}
	c.JSON(http.StatusOK, resp)
}

func toTripResponse(t *domain.TripBooking) tripResponse {
	return tripResponse{
		ID:               t.ID,
		Reference:        t.Reference,
		FlightBookingID:  t.FlightBookingID,
		TaxiBookingID:    t.TaxiBookingID,
		TaxiID:           t.TaxiID,
		HotelBookingID:   t.HotelBookingID,
		HotelID:          t.HotelID,
		AgentBookingDate: t.AgentBookingDate.Format(time.RFC3339),
	}
}
