package handler

import (
	"strconv"

	"github.com/aurelia-hotels/service-reservation/internal/application"
	"github.com/aurelia-hotels/service-reservation/internal/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	defaultPage  = 1
	defaultLimit = 20
	maxLimit     = 100
)

// AdminHandler exposes operational endpoints for back-office tooling.
type AdminHandler struct {
	service *application.ReservationService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(service *application.ReservationService) *AdminHandler {
	return &AdminHandler{service: service}
}

// RegisterRoutes registers the admin routes on the router group.
func (h *AdminHandler) RegisterRoutes(rg *gin.RouterGroup) {
	admin := rg.Group("/admin")
	{
		admin.GET("/bookings", h.ListBookings)
		admin.GET("/bookings/stats", h.Stats)
		admin.DELETE("/bookings/:id", h.DeleteBooking)
		admin.POST("/bookings/sweep", h.Sweep)
	}
}

// ListBookings handles GET /admin/bookings with pagination.
func (h *AdminHandler) ListBookings(c *gin.Context) {
	page := queryInt(c, "page", defaultPage)
	limit := queryInt(c, "limit", defaultLimit)
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 || limit > maxLimit {
		limit = defaultLimit
	}

	result, err := h.service.ListAllBookings(c.Request.Context(), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, result.Items, result.Total, result.Page, result.Limit)
}

// Stats handles GET /admin/bookings/stats.
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.service.GetBookingStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, stats)
}

// DeleteBooking handles DELETE /admin/bookings/:id (hard delete).
func (h *AdminHandler) DeleteBooking(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid booking id")
		return
	}

	if err := h.service.DeleteBooking(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Sweep handles POST /admin/bookings/sweep, running one checkout sweep on
// demand instead of waiting for the background interval.
func (h *AdminHandler) Sweep(c *gin.Context) {
	completed, err := h.service.CompleteDueStays(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"completed": completed})
}

func queryInt(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
