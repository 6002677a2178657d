package payment

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/thetaf313/gestion-salaires-multi-entreprise-sub000/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rdb *redis.Client) {
	payslips := r.Group("/payslips")
	payslips.Use(middleware.AuthMiddleware())
	{
		payslips.GET("/:id/payments", handler.ListByPayslip)
		payslips.GET("/:id/remaining", handler.GetRemaining)
		payslips.POST("/:id/payments",
			middleware.RoleMiddleware("ADMIN", "SUPER_ADMIN", "CASHIER"),
			middleware.Idempotency(rdb),
			handler.Apply,
		)
	}

	payments := r.Group("/payments")
	payments.Use(middleware.AuthMiddleware())
	{
		payments.POST("/:id/reverse", middleware.RoleMiddleware("ADMIN", "SUPER_ADMIN"), handler.Reverse)
	}
}
