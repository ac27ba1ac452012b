package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	estatedomain "github.com/smallbiznis/estatehub/internal/estate/domain"
	"github.com/smallbiznis/estatehub/pkg/repository"
)

type createEstateRequest struct {
	Name         string                 `json:"name"`
	Type         estatedomain.EstateType `json:"type"`
	FeeFrequency estatedomain.Frequency  `json:"fee_frequency"`
	Address      string                 `json:"address"`
}

type updateEstateRequest struct {
	Name         *string                 `json:"name"`
	Type         *estatedomain.EstateType `json:"type"`
	FeeFrequency *estatedomain.Frequency  `json:"fee_frequency"`
	Address      *string                 `json:"address"`
	IsActive     *bool                   `json:"is_active"`
}

func (s *Server) ListEstates(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	isActive, ok := queryBool(c, "is_active")
	if !ok {
		return
	}

	seq, err := s.estateSvc.List(c.Request.Context(), p, estatedomain.ListEstateRequest{
		Search:   strings.TrimSpace(c.Query("search")),
		Type:     estatedomain.EstateType(strings.ToUpper(strings.TrimSpace(c.Query("type")))),
		IsActive: isActive,
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

func (s *Server) CreateEstate(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req createEstateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.estateSvc.Create(c.Request.Context(), p, estatedomain.CreateEstateRequest{
		Name:         req.Name,
		Type:         req.Type,
		FeeFrequency: req.FeeFrequency,
		Address:      req.Address,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) GetEstateByID(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	resp, err := s.estateSvc.Get(c.Request.Context(), p, id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateEstate(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req updateEstateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.estateSvc.Update(c.Request.Context(), p, id, estatedomain.UpdateEstateRequest{
		Name:         req.Name,
		Type:         req.Type,
		FeeFrequency: req.FeeFrequency,
		Address:      req.Address,
		IsActive:     req.IsActive,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteEstate(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := s.estateSvc.Delete(c.Request.Context(), p, id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
