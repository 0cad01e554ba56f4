package attendance

import (
	"go-attendance/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, auth gin.HandlerFunc, rbacService middleware.RBACService, rdb redis.Cmdable) {
	attendances := r.Group("/attendance")
	attendances.Use(auth)
	{
		attendances.GET("", middleware.RBACAuthorize(rbacService, "attendance", "read"), h.GetByDate)
		attendances.GET("/range", middleware.RBACAuthorize(rbacService, "attendance", "read"), h.GetRange)
		attendances.POST("/check-location",
			middleware.RBACAuthorize(rbacService, "attendance", "create"),
			middleware.RateLimitByUser(2, 10),
			h.CheckLocation,
		)
		attendances.POST("/clock-in",
			middleware.RBACAuthorize(rbacService, "attendance", "create"),
			middleware.RateLimitByUser(0.5, 3),
			middleware.Idempotency(rdb),
			h.ClockIn,
		)
		attendances.POST("/clock-out",
			middleware.RBACAuthorize(rbacService, "attendance", "create"),
			middleware.RateLimitByUser(0.5, 3),
			middleware.Idempotency(rdb),
			h.ClockOut,
		)
	}
}
