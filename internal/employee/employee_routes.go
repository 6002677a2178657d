package employee

import (
	"github.com/gin-gonic/gin"

	"github.com/thetaf313/gestion-salaires-multi-entreprise-sub000/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware())
	{
		employees.GET("", handler.GetAll)
		employees.GET("/:id", handler.GetById)
	}
}
