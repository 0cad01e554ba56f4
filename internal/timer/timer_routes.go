package timer

import (
	"go-attendance/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, auth gin.HandlerFunc, rbacService middleware.RBACService) {
	t := r.Group("/timer")
	t.Use(auth, middleware.RBACAuthorize(rbacService, "timer", "use"))
	{
		t.GET("", h.Get)
		t.POST("/break/start", h.StartBreak)
		t.POST("/break/end", h.EndBreak)
	}
}
