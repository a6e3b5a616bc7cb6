package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jascaniojs/parking-business-api/internal/service"
)

type OccupancyHandler struct {
	occupancy *service.OccupancyService
}

func NewOccupancyHandler(svc *service.OccupancyService) *OccupancyHandler {
	return &OccupancyHandler{occupancy: svc}
}

// GET /parking-spaces/occupation
func (h *OccupancyHandler) Occupation(c *gin.Context) {
	views, err := h.occupancy.GetOccupation(c.Request.Context())
	if err != nil {
		respondError(c, "occupation", err)
		return
	}
	c.JSON(http.StatusOK, views)
}

// GET /buildings/:id/dashboard
func (h *OccupancyHandler) Dashboard(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	dashboard, err := h.occupancy.GetDashboard(c.Request.Context(), id)
	if err != nil {
		respondError(c, "dashboard", err)
		return
	}
	c.JSON(http.StatusOK, dashboard)
}
