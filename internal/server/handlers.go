package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ukaji3/attendance-go/pkg/attendance"
	"github.com/ukaji3/attendance-go/pkg/attendance/manifest"
)

func (s *Server) health(c *gin.Context) {
	idx := s.svc.Index()
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"courses": idx.Len(),
	})
}

func (s *Server) checkAttendance(c *gin.Context) {
	report, err := s.svc.Check(c.Param("roll"))
	switch {
	case errors.Is(err, attendance.ErrNoData):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "No attendance data available"})
		return
	case errors.Is(err, attendance.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Roll number not found"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, report)
}

type sourceView struct {
	Name      string `json:"name"`
	URL       string `json:"url"`
	ViewerURL string `json:"viewer_url,omitempty"`
}

type courseView struct {
	Name     string       `json:"name"`
	Students int          `json:"students"`
	Sources  []sourceView `json:"sources"`
}

func (s *Server) listCourses(c *gin.Context) {
	idx := s.svc.Index()
	courses := []courseView{}
	for _, name := range idx.Courses() {
		view := courseView{Name: name, Students: idx.Students(name), Sources: []sourceView{}}
		for _, src := range idx.Sources(name) {
			view.Sources = append(view.Sources, sourceView{
				Name:      src.Name,
				URL:       src.URL,
				ViewerURL: manifest.ViewerURL(src),
			})
		}
		courses = append(courses, view)
	}
	c.JSON(http.StatusOK, gin.H{"courses": courses})
}

func (s *Server) reload(c *gin.Context) {
	stats := s.svc.Reload(context.WithoutCancel(c.Request.Context()))
	c.JSON(http.StatusOK, stats)
}
