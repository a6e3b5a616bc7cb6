package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jascaniojs/parking-business-api/internal/service"
)

const internalErrorMessage = "internal server error"

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrSessionAlreadyFinished):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrResidencyMismatch):
		return http.StatusUnprocessableEntity
	}
	switch service.KindOf(err) {
	case service.KindValidation:
		return http.StatusBadRequest
	case service.KindConflict:
		return http.StatusConflict
	case service.KindNotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// respondError writes err as {"error": ...}. Only client-correctable
// errors carry their message; the rest are logged and hidden.
func respondError(c *gin.Context, op string, err error) {
	status := statusFor(err)
	if !service.KindOf(err).ClientCorrectable() {
		log.Printf("%s %s: %s failed: %v", c.Request.Method, c.FullPath(), op, err)
		c.JSON(status, gin.H{"error": internalErrorMessage})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
}

func pathID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}
