package handler

import (
	"log"
	"net/http"

	"basemap/internal/apperrors"

	"github.com/gin-gonic/gin"
)

// respondData writes the success envelope around a payload.
func respondData(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

// respondMessage writes a success envelope with a human-readable message and
// optional payload.
func respondMessage(c *gin.Context, status int, message string, data interface{}) {
	body := gin.H{"success": true, "message": message}
	if data != nil {
		body["data"] = data
	}
	c.JSON(status, body)
}

// respondError maps a service error onto the error envelope. Untyped errors
// become opaque 500s; the detail goes to the log, not the client.
func respondError(c *gin.Context, err error) {
	if ae, ok := apperrors.As(err); ok {
		body := gin.H{"success": false, "error": ae.Message}
		if ae.Details != nil {
			body["details"] = ae.Details
		}
		if ae.Err != nil {
			log.Printf("%s %s: %s: %v", c.Request.Method, c.Request.URL.Path, ae.Code, ae.Err)
		}
		c.JSON(ae.HTTPCode, body)
		return
	}
	log.Printf("%s %s: unhandled error: %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "internal server error"})
}

// bindError wraps a JSON binding failure as a client error.
func bindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body", "details": err.Error()})
}
