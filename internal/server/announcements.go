package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	announcementdomain "github.com/smallbiznis/estatehub/internal/announcement/domain"
	"github.com/smallbiznis/estatehub/pkg/repository"
)

type createAnnouncementRequest struct {
	EstateID string `json:"estate_id"`
	Title    string `json:"title"`
	Message  string `json:"message"`
}

type updateAnnouncementRequest struct {
	Title    *string `json:"title"`
	Message  *string `json:"message"`
	IsActive *bool   `json:"is_active"`
}

func (s *Server) ListAnnouncements(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	estateID, ok := queryID(c, "estate_id")
	if !ok {
		return
	}
	isActive, ok := queryBool(c, "is_active")
	if !ok {
		return
	}

	seq, err := s.announcementSvc.List(c.Request.Context(), p, announcementdomain.ListAnnouncementRequest{
		EstateID: estateID,
		IsActive: isActive,
		Search:   strings.TrimSpace(c.Query("search")),
		OrderBy:  strings.TrimSpace(c.Query("ordering")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	items, err := repository.Collect(seq)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": items})
}

func (s *Server) CreateAnnouncement(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req createAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	estateID, err := parseOptionalSnowflakeID(req.EstateID)
	if err != nil {
		AbortWithError(c, invalidIDError("estate_id"))
		return
	}

	resp, err := s.announcementSvc.Create(c.Request.Context(), p, announcementdomain.CreateAnnouncementRequest{
		EstateID: estateID,
		Title:    req.Title,
		Message:  req.Message,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) GetAnnouncementByID(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	resp, err := s.announcementSvc.Get(c.Request.Context(), p, id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateAnnouncement(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req updateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.announcementSvc.Update(c.Request.Context(), p, id, announcementdomain.UpdateAnnouncementRequest{
		Title:    req.Title,
		Message:  req.Message,
		IsActive: req.IsActive,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// DeactivateAnnouncement backs DELETE; the row is kept with is_active false.
func (s *Server) DeactivateAnnouncement(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	resp, err := s.announcementSvc.Deactivate(c.Request.Context(), p, id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
