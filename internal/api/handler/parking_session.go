package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jascaniojs/parking-business-api/internal/domain"
	"github.com/jascaniojs/parking-business-api/internal/service"
)

type ParkingSessionHandler struct {
	parkingService *service.ParkingService
}

func NewParkingSessionHandler(ps *service.ParkingService) *ParkingSessionHandler {
	return &ParkingSessionHandler{parkingService: ps}
}

// POST /parking-sessions/check-in
func (h *ParkingSessionHandler) CheckIn(c *gin.Context) {
	var dto domain.CheckInDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.parkingService.CheckIn(c.Request.Context(), dto)
	if err != nil {
		respondError(c, "check-in", err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// POST /parking-sessions/check-out
func (h *ParkingSessionHandler) CheckOut(c *gin.Context) {
	var dto domain.CheckOutDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.parkingService.CheckOut(c.Request.Context(), dto)
	if err != nil {
		respondError(c, "check-out", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GET /parking-sessions/history
func (h *ParkingSessionHandler) History(c *gin.Context) {
	var q domain.HistoryQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err)
		return
	}

	page, err := h.parkingService.GetHistory(c.Request.Context(), q)
	if err != nil {
		respondError(c, "history", err)
		return
	}
	c.JSON(http.StatusOK, page)
}
