// README: HTTP router registration.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"cabdesk/internal/http/handlers"
	"cabdesk/internal/http/middleware"
	"cabdesk/internal/modules/booking"
	"cabdesk/internal/modules/fleet"
	"cabdesk/internal/modules/pricing"
)

type RouterDeps struct {
	Booking *booking.Service
	Fleet   *fleet.Service
	Pricing *pricing.Service
	Log     *slog.Logger
}

func NewRouter(deps RouterDeps) *gin.Engine {
	log := deps.Log
	if log == nil {
		log = slog.Default()
	}
	r := gin.New()
	r.Use(middleware.Recovery(log), middleware.Logging(log))

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	api := r.Group("/api")

	catalog := handlers.NewCatalogHandler(deps.Pricing)
	api.GET("/vehicles", catalog.Vehicles)
	api.GET("/packages", catalog.Packages)

	bookings := handlers.NewBookingHandler(deps.Booking)
	api.POST("/quotes", bookings.Quote)
	api.POST("/bookings", bookings.Create)
	api.GET("/bookings", bookings.List)
	api.GET("/bookings/:id", bookings.Get)
	api.GET("/bookings/:id/events", bookings.Events)
	api.POST("/bookings/:id/accept", bookings.Accept)
	api.POST("/bookings/:id/start", bookings.Start)
	api.POST("/bookings/:id/complete", bookings.Complete)
	api.POST("/bookings/:id/cancel", bookings.Cancel)

	drivers := handlers.NewDriverHandler(deps.Fleet)
	api.GET("/drivers", drivers.List)
	api.POST("/drivers", drivers.Create)
	api.POST("/drivers/:id/online", drivers.SetOnline)
	api.POST("/drivers/:id/toggle", drivers.Toggle)

	return r
}
