package api

import (
	"parking_booking/internal/api/handler"
	"parking_booking/internal/api/middleware"
	"parking_booking/internal/service"

	"github.com/gin-gonic/gin"
)

func SetupRouter(as *service.AuthService, rs *service.ReservationService, cs *service.ReconcileService,
	authMw *middleware.AuthMiddleware, wsManager *handler.WebSocketManager) *gin.Engine {
	r := gin.Default()

	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	// Live slot status feed; no auth needed for the read-only stream.
	wsHandler := handler.NewWebSocketHandler(wsManager)
	r.GET("/ws", wsHandler.HandleWebSocket)

	authHandler := handler.NewAuthHandler(as)
	authRoutes := r.Group("/auth")
	{
		authRoutes.POST("/register", authHandler.Register)
		authRoutes.POST("/login", authHandler.Login)
	}

	v1 := r.Group("/api/v1")
	v1.Use(authMw.Authenticate())
	{
		areaH := handler.NewAreaHandler(rs)
		areaRoutes := v1.Group("/areas")
		{
			areaRoutes.PUT("", authMw.AuthorizeRole("admin"), areaH.CreateOrResizeArea)
			areaRoutes.GET("", areaH.GetAllAreas)
			areaRoutes.GET("/:id", areaH.GetAreaByID)
			areaRoutes.GET("/:id/slots", areaH.ListSlots)
		}

		reservationH := handler.NewReservationHandler(rs)
		reservationRoutes := v1.Group("/reservations")
		{
			reservationRoutes.POST("", reservationH.ReserveSlot)
			reservationRoutes.POST("/complete", authMw.AuthorizeRole("operator", "admin"), reservationH.CompleteBooking)
		}

		bookingRoutes := v1.Group("/bookings")
		{
			bookingRoutes.GET("", reservationH.ListMyBookings)
			bookingRoutes.GET("/:code", reservationH.GetBookingByCode)
		}

		reconcileH := handler.NewReconcileHandler(cs)
		adminRoutes := v1.Group("/admin")
		adminRoutes.Use(authMw.AuthorizeRole("admin"))
		{
			adminRoutes.GET("/reconcile", reconcileH.CheckInventory)
		}
	}

	return r
}
