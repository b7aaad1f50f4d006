package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"salonassist/handlers"
	"salonassist/utils"
)

// RegisterRoutes wires all endpoints for the booking core.
func RegisterRoutes(r *gin.Engine, bookingHandler *handlers.BookingHandler, sessionHandler *handlers.SessionHandler) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, utils.GetHealthStatus())
	})

	api := r.Group("/api")
	{
		api.GET("/services", bookingHandler.ListServicesHandler)
		api.GET("/availability", bookingHandler.CheckAvailabilityHandler)

		api.POST("/appointments", bookingHandler.BookAppointmentHandler)
		api.DELETE("/appointments/:appointmentID", bookingHandler.CancelAppointmentHandler)

		api.POST("/session/resolve", sessionHandler.ResolveSessionHandler)
		api.POST("/session/:sessionID/summary", sessionHandler.AppendSummaryHandler)

		api.PUT("/clients/:phone", sessionHandler.UpdateClientHandler)
		api.GET("/clients/:phone/appointments", bookingHandler.ListUpcomingHandler)
	}
}
