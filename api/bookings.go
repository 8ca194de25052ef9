package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Domenick1991/travelagent/internal/domain"
	"github.com/Domenick1991/travelagent/internal/service/booking"
	"github.com/Domenick1991/travelagent/internal/service/customers"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

type createBookingRequest struct {
	CustomerID  int64  `json:"customer_id"`
	FlightID    int64  `json:"flight_id"`
	BookingDate string `json:"booking_date"`
}

type guestBookingRequest struct {
	Customer    customers.CreateCustomerInput `json:"customer"`
	FlightID    int64                         `json:"flight_id"`
	BookingDate string                        `json:"booking_date"`
}

type bookingResponse struct {
	ID          int64  `json:"id"`
	CustomerID  int64  `json:"customer_id"`
	FlightID    int64  `json:"flight_id"`
	BookingDate string `json:"booking_date"`
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.list)
	router.POST("/", h.create)
	router.GET("/:id", h.get)
	router.DELETE("/:id", h.delete)
}

// RegisterGuest mounts the guest flow: customer and booking created in one
// request.
func (h *BookingHandler) RegisterGuest(router *gin.RouterGroup) {
	router.POST("/", h.createGuest)
}

// RegisterByCustomer mounts the per-customer booking history route.
func (h *BookingHandler) RegisterByCustomer(router *gin.RouterGroup) {
	router.GET("/:id/bookings", h.listByCustomer)
}

// RegisterByFlight mounts the per-flight booking list route.
func (h *BookingHandler) RegisterByFlight(router *gin.RouterGroup) {
	router.GET("/:id/bookings", h.listByFlight)
}

func (h *BookingHandler) create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date, err := time.Parse(time.RFC3339, req.BookingDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation", "fields": gin.H{"booking_date": "must be RFC3339"}})
		return
	}

	b, err := h.service.Create(c.Request.Context(), booking.CreateBookingInput{
		CustomerID:  req.CustomerID,
		FlightID:    req.FlightID,
		BookingDate: date,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toBookingResponse(b))
}

func (h *BookingHandler) createGuest(c *gin.Context) {
	var req guestBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date, err := time.Parse(time.RFC3339, req.BookingDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation", "fields": gin.H{"booking_date": "must be RFC3339"}})
		return
	}

	b, customer, err := h.service.CreateForGuest(c.Request.Context(), booking.GuestBookingInput{
		Customer:    req.Customer,
		FlightID:    req.FlightID,
		BookingDate: date,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"booking": toBookingResponse(b),
		"customer": gin.H{
			"id":    customer.ID,
			"name":  customer.Name,
			"email": customer.Email,
		},
	})
}

func (h *BookingHandler) get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	b, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(b))
}

func (h *BookingHandler) delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *BookingHandler) list(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponses(list))
}

func (h *BookingHandler) listByCustomer(c *gin.Context) {
	customerID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	list, err := h.service.ListByCustomer(c.Request.Context(), customerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponses(list))
}

func (h *BookingHandler) listByFlight(c *gin.Context) {
	flightID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	list, err := h.service.ListByFlight(c.Request.Context(), flightID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponses(list))
}

func toBookingResponse(b *domain.Booking) bookingResponse {
	return bookingResponse{
		ID:          b.ID,
		CustomerID:  b.CustomerID,
		FlightID:    b.FlightID,
		BookingDate: b.BookingDate.Format(time.RFC3339),
	}
}

func toBookingResponses(list []domain.Booking) []bookingResponse {
	resp := make([]bookingResponse, 0, len(list))
	for _, b := range list {
		resp = append(resp, toBookingResponse(&b))
	}
	return resp
}
