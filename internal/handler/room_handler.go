package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/mosikk/nosql-airbnb/internal/application"
	"github.com/mosikk/nosql-airbnb/internal/domain/room"
	"github.com/mosikk/nosql-airbnb/internal/response"
)

// RoomHandler handles HTTP requests for room operations and room discovery.
type RoomHandler struct {
	service *application.RoomService
}

// NewRoomHandler creates a RoomHandler.
func NewRoomHandler(service *application.RoomService) *RoomHandler {
	return &RoomHandler{service: service}
}

// RegisterRoutes registers room CRUD and search routes on the given group.
func (h *RoomHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/rooms", h.CreateRoom)
	r.GET("/rooms/:id", h.GetRoom)

	r.GET("/country/:name", h.searchBy(room.FieldCountry))
	r.GET("/city/:name", h.searchBy(room.FieldCity))
	r.GET("/room_name/:name", h.searchBy(room.FieldName))
	r.GET("/address/:name", h.searchBy(room.FieldAddress))
}

// CreateRoom handles POST /rooms.
func (h *RoomHandler) CreateRoom(c *gin.Context) {
	var req application.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	id, err := h.service.CreateRoom(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, id)
}

// GetRoom handles GET /rooms/:id.
func (h *RoomHandler) GetRoom(c *gin.Context) {
	result, err := h.service.GetRoom(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

// searchBy builds a handler for one discovery route. Index read failures are
// reported as not found, never as server errors.
func (h *RoomHandler) searchBy(field room.SearchField) gin.HandlerFunc {
	return func(c *gin.Context) {
		rooms, err := h.service.SearchRooms(c.Request.Context(), field, c.Param("name"))
		if err != nil {
			response.NotFound(c, "no rooms found")
			return
		}
		response.OK(c, gin.H{"rooms": rooms})
	}
}
