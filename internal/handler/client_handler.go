package handler

import (
	"github.com/aurelia-hotels/service-reservation/internal/application"
	"github.com/aurelia-hotels/service-reservation/internal/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ClientHandler exposes guest management over HTTP.
type ClientHandler struct {
	clients  *application.ClientService
	bookings *application.ReservationService
}

// NewClientHandler creates a new ClientHandler.
func NewClientHandler(clients *application.ClientService, bookings *application.ReservationService) *ClientHandler {
	return &ClientHandler{clients: clients, bookings: bookings}
}

// RegisterRoutes registers the client routes on the router group.
func (h *ClientHandler) RegisterRoutes(rg *gin.RouterGroup) {
	clients := rg.Group("/clients")
	{
		clients.POST("", h.Create)
		clients.GET("", h.List)
		clients.GET("/:id", h.Get)
		clients.PATCH("/:id", h.Update)
		clients.DELETE("/:id", h.Delete)
		clients.POST("/:id/refresh-vip", h.RefreshVIP)
		clients.GET("/:id/bookings", h.ListBookings)
	}
}

// Create handles POST /clients.
func (h *ClientHandler) Create(c *gin.Context) {
	var req application.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	guest, err := h.clients.CreateClient(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, guest)
}

// List handles GET /clients.
func (h *ClientHandler) List(c *gin.Context) {
	clients, err := h.clients.ListClients(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, clients)
}

// Get handles GET /clients/:id.
func (h *ClientHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid client id")
		return
	}

	guest, err := h.clients.GetClient(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, guest)
}

// Update handles PATCH /clients/:id.
func (h *ClientHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid client id")
		return
	}

	var req application.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	guest, err := h.clients.UpdateClient(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, guest)
}

// Delete handles DELETE /clients/:id.
func (h *ClientHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid client id")
		return
	}

	if err := h.clients.DeleteClient(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// RefreshVIP handles POST /clients/:id/refresh-vip.
func (h *ClientHandler) RefreshVIP(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid client id")
		return
	}

	guest, err := h.clients.RefreshVIP(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, guest)
}

// ListBookings handles GET /clients/:id/bookings.
func (h *ClientHandler) ListBookings(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid client id")
		return
	}

	bookings, err := h.bookings.GetClientBookings(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, bookings)
}
