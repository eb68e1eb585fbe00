package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/work-spot/api-go/controllers"
	"github.com/work-spot/api-go/middleware"
	"github.com/work-spot/api-go/utils"
)

func SetupOfficeRoutes(protected *gin.RouterGroup, officeController *controllers.OfficeController) {
	offices := protected.Group("/offices")
	{
		offices.POST("", middleware.RequireScope(utils.ScopeOfficeCreate), officeController.CreateOffice)
		offices.PUT("/:id", officeController.UpdateOffice)
		offices.DELETE("/:id", officeController.DeleteOffice)
	}
}
