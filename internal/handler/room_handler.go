package handler

import (
	"github.com/aurelia-hotels/service-reservation/internal/application"
	"github.com/aurelia-hotels/service-reservation/internal/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RoomHandler exposes room inventory operations over HTTP.
type RoomHandler struct {
	rooms    *application.RoomService
	bookings *application.ReservationService
}

// NewRoomHandler creates a new RoomHandler.
func NewRoomHandler(rooms *application.RoomService, bookings *application.ReservationService) *RoomHandler {
	return &RoomHandler{rooms: rooms, bookings: bookings}
}

// RegisterRoutes registers the room routes on the router group.
func (h *RoomHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rooms := rg.Group("/rooms")
	{
		rooms.POST("", h.Create)
		rooms.GET("", h.List)
		rooms.GET("/available", h.FindAvailable)
		rooms.GET("/:id", h.Get)
		rooms.PATCH("/:id", h.Update)
		rooms.DELETE("/:id", h.Deactivate)
		rooms.GET("/:id/bookings", h.ListBookings)
	}
}

// Create handles POST /rooms.
func (h *RoomHandler) Create(c *gin.Context) {
	var req application.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	room, err := h.rooms.CreateRoom(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, room)
}

// List handles GET /rooms.
func (h *RoomHandler) List(c *gin.Context) {
	rooms, err := h.rooms.ListRooms(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, rooms)
}

// FindAvailable handles GET /rooms/available?check_in=...&check_out=...&type=...
func (h *RoomHandler) FindAvailable(c *gin.Context) {
	checkIn := c.Query("check_in")
	checkOut := c.Query("check_out")
	if checkIn == "" || checkOut == "" {
		response.BadRequest(c, "check_in and check_out query parameters are required")
		return
	}

	rooms, err := h.rooms.FindAvailableRooms(c.Request.Context(), checkIn, checkOut, c.Query("type"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, rooms)
}

// Get handles GET /rooms/:id.
func (h *RoomHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid room id")
		return
	}

	room, err := h.rooms.GetRoom(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, room)
}

// Update handles PATCH /rooms/:id.
func (h *RoomHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid room id")
		return
	}

	var req application.UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	room, err := h.rooms.UpdateRoom(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, room)
}

// Deactivate handles DELETE /rooms/:id (soft delete).
func (h *RoomHandler) Deactivate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid room id")
		return
	}

	if err := h.rooms.DeactivateRoom(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListBookings handles GET /rooms/:id/bookings.
func (h *RoomHandler) ListBookings(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid room id")
		return
	}

	bookings, err := h.bookings.GetRoomBookings(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, bookings)
}
