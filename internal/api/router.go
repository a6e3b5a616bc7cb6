package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jascaniojs/parking-business-api/internal/api/handler"
	"github.com/jascaniojs/parking-business-api/internal/api/middleware"
	"github.com/jascaniojs/parking-business-api/internal/repository"
	"github.com/jascaniojs/parking-business-api/internal/service"
)

// Services bundles what the router hands to its handlers.
type Services struct {
	Parking   *service.ParkingService
	Occupancy *service.OccupancyService
	Buildings *service.BuildingService
	Store     repository.Store
}

func SetupRouter(svc Services, authMw *middleware.AuthMiddleware, wsManager *handler.WebSocketManager) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	r.GET("/healthz", func(c *gin.Context) {
		if err := svc.Store.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Live occupancy feed for dashboards; carries no tenant data.
	wsHandler := handler.NewWebSocketHandler(wsManager)
	r.GET("/ws", wsHandler.HandleWebSocket)

	admin := authMw.AuthorizeRole(service.RoleAdmin)

	v1 := r.Group("/api/v1")
	v1.Use(authMw.Authenticate())
	{
		sessionH := handler.NewParkingSessionHandler(svc.Parking)
		sessionRoutes := v1.Group("/parking-sessions")
		{
			sessionRoutes.POST("/check-in", sessionH.CheckIn)
			sessionRoutes.POST("/check-out", sessionH.CheckOut)
			sessionRoutes.GET("/history", admin, sessionH.History)
		}

		occupancyH := handler.NewOccupancyHandler(svc.Occupancy)
		v1.GET("/parking-spaces/occupation", occupancyH.Occupation)

		buildingH := handler.NewBuildingHandler(svc.Buildings)
		buildingRoutes := v1.Group("/buildings")
		{
			buildingRoutes.POST("", admin, buildingH.CreateBuilding)
			buildingRoutes.GET("", buildingH.ListBuildings)
			buildingRoutes.GET("/:id", buildingH.GetBuilding)
			buildingRoutes.GET("/:id/dashboard", occupancyH.Dashboard)

			buildingRoutes.POST("/:id/spaces", admin, buildingH.CreateParkingSpace)
			buildingRoutes.GET("/:id/spaces", buildingH.ListParkingSpaces)

			buildingRoutes.PUT("/:id/prices", admin, buildingH.SetPrice)
			buildingRoutes.GET("/:id/prices", buildingH.ListPrices)
		}
	}
	return r
}
