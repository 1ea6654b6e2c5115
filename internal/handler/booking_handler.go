package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/mosikk/nosql-airbnb/internal/application"
	"github.com/mosikk/nosql-airbnb/internal/domain"
	"github.com/mosikk/nosql-airbnb/internal/response"
)

// BookingHandler handles HTTP requests for the booking admission workflows.
type BookingHandler struct {
	service *application.BookingService
}

// NewBookingHandler creates a BookingHandler.
func NewBookingHandler(service *application.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

// RegisterRoutes registers booking routes on the given group.
func (h *BookingHandler) RegisterRoutes(r *gin.RouterGroup) {
	bookings := r.Group("/bookings")
	{
		bookings.POST("/book_room", h.BookRoom)
		bookings.POST("/pay_booking", h.PayBooking)
		bookings.GET("/:id", h.GetBooking)
	}
}

// BookRoom handles POST /bookings/book_room. Every rejection the caller can
// fix — bad id, missing client or room, unavailable range — is a 400.
func (h *BookingHandler) BookRoom(c *gin.Context) {
	var req application.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	id, err := h.service.CreateBooking(c.Request.Context(), req)
	if err != nil {
		if domain.IsClientError(err) {
			response.BadRequest(c, err.Error())
			return
		}
		response.Error(c, err)
		return
	}
	response.OK(c, id)
}

// payBookingRequest is the body for POST /bookings/pay_booking.
type payBookingRequest struct {
	BookingID string `json:"booking_id" binding:"required"`
}

// PayBooking handles POST /bookings/pay_booking. A bad id or unknown booking
// is a 400; a booking that cannot be paid again is a 404.
func (h *BookingHandler) PayBooking(c *gin.Context) {
	var req payBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.PayBooking(c.Request.Context(), req.BookingID)
	if err != nil {
		switch domain.CodeOf(err) {
		case domain.CodeInvalidID, domain.CodeNotFound:
			response.BadRequest(c, err.Error())
		case domain.CodeAlreadyPaid:
			response.NotFound(c, err.Error())
		default:
			response.Error(c, err)
		}
		return
	}
	response.OK(c, result)
}

// GetBooking handles GET /bookings/:id.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	result, err := h.service.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}
