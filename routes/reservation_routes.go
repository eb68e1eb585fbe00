package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/work-spot/api-go/controllers"
)

func SetupReservationRoutes(protected *gin.RouterGroup, reservationController *controllers.ReservationController) {
	reservations := protected.Group("/reservations")
	{
		reservations.GET("", reservationController.ListReservations)
		reservations.DELETE("/:id", reservationController.CancelReservation)
	}

	offices := protected.Group("/offices")
	{
		offices.POST("/:id/reservations", reservationController.CreateReservation)
	}
}
