// Package response maps application results and domain errors onto the HTTP
// surface. All knowledge of status codes lives here and in the handlers.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mosikk/nosql-airbnb/internal/domain"
)

// OK writes a 200 with the given payload.
func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// BadRequest writes a 400 with an error message.
func BadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

// NotFound writes a 404 with an error message.
func NotFound(c *gin.Context, msg string) {
	c.JSON(http.StatusNotFound, gin.H{"error": msg})
}

// Error maps a domain error to its default HTTP status. Routes with
// route-specific mappings (booking admission, payment) do their own switch
// in the handler instead.
func Error(c *gin.Context, err error) {
	switch domain.CodeOf(err) {
	case domain.CodeInvalidID, domain.CodeValidation, domain.CodeUnavailable:
		BadRequest(c, err.Error())
	case domain.CodeNotFound, domain.CodeAlreadyPaid:
		NotFound(c, err.Error())
	case domain.CodeStoreFailure:
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "record store unavailable, retry later"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
