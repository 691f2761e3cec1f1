package server

import (
	"github.com/gin-gonic/gin"
	"github.com/go-kit/log/level"
)

func (s *Server) setupRoutes(r *gin.Engine) {
	r.GET("/health", s.health)

	api := r.Group("/api")
	{
		api.GET("/attendance/:roll", s.checkAttendance)
		api.GET("/courses", s.listCourses)

		admin := api.Group("/")
		if len(s.jwtSecret) > 0 {
			admin.Use(AuthMiddleware(s.jwtSecret))
		} else {
			level.Warn(s.logger).Log("msg", "JWT secret not set, reload endpoint is unauthenticated", "route", "POST /api/reload")
		}
		admin.POST("/reload", s.reload)
	}
}
