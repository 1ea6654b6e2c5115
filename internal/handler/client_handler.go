package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/mosikk/nosql-airbnb/internal/application"
	"github.com/mosikk/nosql-airbnb/internal/response"
)

// ClientHandler handles HTTP requests for client operations.
type ClientHandler struct {
	service *application.ClientService
}

// NewClientHandler creates a ClientHandler.
func NewClientHandler(service *application.ClientService) *ClientHandler {
	return &ClientHandler{service: service}
}

// RegisterRoutes registers client routes on the given group.
func (h *ClientHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/clients", h.CreateClient)
	r.GET("/clients/:id", h.GetClient)
}

// CreateClient handles POST /clients.
func (h *ClientHandler) CreateClient(c *gin.Context) {
	var req application.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	id, err := h.service.CreateClient(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, id)
}

// GetClient handles GET /clients/:id.
func (h *ClientHandler) GetClient(c *gin.Context) {
	result, err := h.service.GetClient(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}
