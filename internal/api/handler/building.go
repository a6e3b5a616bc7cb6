package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jascaniojs/parking-business-api/internal/domain"
	"github.com/jascaniojs/parking-business-api/internal/service"
)

type BuildingHandler struct {
	buildings *service.BuildingService
}

func NewBuildingHandler(bs *service.BuildingService) *BuildingHandler {
	return &BuildingHandler{buildings: bs}
}

// POST /buildings
func (h *BuildingHandler) CreateBuilding(c *gin.Context) {
	var dto domain.BuildingDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		respondBindError(c, err)
		return
	}
	building, err := h.buildings.CreateBuilding(c.Request.Context(), dto)
	if err != nil {
		respondError(c, "create building", err)
		return
	}
	c.JSON(http.StatusCreated, building)
}

// GET /buildings
func (h *BuildingHandler) ListBuildings(c *gin.Context) {
	buildings, err := h.buildings.ListBuildings(c.Request.Context())
	if err != nil {
		respondError(c, "list buildings", err)
		return
	}
	c.JSON(http.StatusOK, buildings)
}

// GET /buildings/:id
func (h *BuildingHandler) GetBuilding(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	building, err := h.buildings.GetBuilding(c.Request.Context(), id)
	if err != nil {
		respondError(c, "get building", err)
		return
	}
	c.JSON(http.StatusOK, building)
}

// POST /buildings/:id/spaces
func (h *BuildingHandler) CreateParkingSpace(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var dto domain.ParkingSpaceDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		respondBindError(c, err)
		return
	}
	space, err := h.buildings.CreateParkingSpace(c.Request.Context(), id, dto)
	if err != nil {
		respondError(c, "create parking space", err)
		return
	}
	c.JSON(http.StatusCreated, space)
}

// GET /buildings/:id/spaces
func (h *BuildingHandler) ListParkingSpaces(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	spaces, err := h.buildings.ListParkingSpaces(c.Request.Context(), id)
	if err != nil {
		respondError(c, "list parking spaces", err)
		return
	}
	c.JSON(http.StatusOK, spaces)
}

// PUT /buildings/:id/prices
func (h *BuildingHandler) SetPrice(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var dto domain.PriceDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		respondBindError(c, err)
		return
	}
	price, err := h.buildings.SetPrice(c.Request.Context(), id, dto)
	if err != nil {
		respondError(c, "set price", err)
		return
	}
	c.JSON(http.StatusOK, price)
}

// GET /buildings/:id/prices
func (h *BuildingHandler) ListPrices(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	prices, err := h.buildings.ListPrices(c.Request.Context(), id)
	if err != nil {
		respondError(c, "list prices", err)
		return
	}
	c.JSON(http.StatusOK, prices)
}
