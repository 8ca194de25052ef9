package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Domenick1991/travelagent/internal/domain"
	"github.com/Domenick1991/travelagent/internal/service/flights"
	"github.com/gin-gonic/gin"
)

type FlightHandler struct {
	service flights.FlightUseCase
}

type createFlightRequest struct {
	FlightNo    string `json:"flight_no"`
	StartPlace  string `json:"start_place"`
	Destination string `json:"destination"`
	SeatsNumber string `json:"seats_number"`
	FlightDate  string `json:"flight_date"`
}

type flightResponse struct {
	ID          int64  `json:"id"`
	FlightNo    string `json:"flight_no"`
	StartPlace  string `json:"start_place"`
	Destination string `json:"destination"`
	SeatsNumber string `json:"seats_number"`
	FlightDate  string `json:"flight_date"`
}

func NewFlightHandler(service flights.FlightUseCase) *FlightHandler {
	return &FlightHandler{service: service}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.list)
	router.GET("/:id", h.get)
	router.POST("/", h.create)
}

func (h *FlightHandler) list(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]flightResponse, 0, len(list))
	for _, f := range list {
		resp = append(resp, toFlightResponse(&f))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *FlightHandler) get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	flight, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toFlightResponse(flight))
}

func (h *FlightHandler) create(c *gin.Context) {
	var req createFlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	flightDate, err := time.Parse(time.RFC3339, req.FlightDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation", "fields": gin.H{"flight_date": "must be RFC3339"}})
		return
	}

	flight, err := h.service.Create(c.Request.Context(), flights.CreateFlightInput{
		FlightNo:    req.FlightNo,
		StartPlace:  req.StartPlace,
		Destination: req.Destination,
		SeatsNumber: req.SeatsNumber,
		FlightDate:  flightDate,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toFlightResponse(flight))
}

func toFlightResponse(f *domain.Flight) flightResponse {
	return flightResponse{
		ID:          f.ID,
		FlightNo:    f.FlightNo,
		StartPlace:  f.StartPlace,
		Destination: f.Destination,
		SeatsNumber: f.SeatsNumber,
		FlightDate:  f.FlightDate.Format(time.RFC3339),
	}
}
