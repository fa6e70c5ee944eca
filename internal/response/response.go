package response

import (
	"errors"
	"net/http"

	"github.com/aurelia-hotels/service-reservation/internal/domain"
	"github.com/gin-gonic/gin"
)

// Success writes a 200 response with the standard envelope.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

// Created writes a 201 response with the standard envelope.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": data})
}

// NoContent writes a 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// BadRequest writes a 400 response with the given message.
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": gin.H{
		"code":    domain.CodeValidation,
		"message": message,
	}})
}

// Paginated writes a 200 response carrying a page of items plus metadata.
func Paginated(c *gin.Context, items interface{}, total int64, page, limit int) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    items,
		"meta": gin.H{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// Error maps a domain error to its HTTP status and writes the envelope.
// Unrecognized errors become opaque 500s.
func Error(c *gin.Context, err error) {
	var de *domain.Error
	if !errors.As(err, &de) {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": gin.H{
			"code":    "internal_error",
			"message": "internal server error",
		}})
		return
	}

	status := http.StatusInternalServerError
	switch de.Code {
	case domain.CodeValidation:
		status = http.StatusBadRequest
	case domain.CodeNotFound:
		status = http.StatusNotFound
	case domain.CodeConflict:
		status = http.StatusConflict
	case domain.CodeInvalidState:
		status = http.StatusBadRequest
	case domain.CodeLockTimeout:
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, gin.H{"success": false, "error": gin.H{
		"code":    de.Code,
		"message": de.Message,
	}})
}
