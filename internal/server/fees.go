package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	estatedomain "github.com/smallbiznis/estatehub/internal/estate/domain"
	feedomain "github.com/smallbiznis/estatehub/internal/fee/domain"
	"github.com/smallbiznis/estatehub/pkg/repository"
)

type createFeeRequest struct {
	EstateID    string                 `json:"estate_id"`
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Amount      int64                  `json:"amount"`
	Frequency   estatedomain.Frequency `json:"frequency"`
	DueDay      int                    `json:"due_day"`
}

type updateFeeRequest struct {
	Name        *string                 `json:"name"`
	Description *string                 `json:"description"`
	Amount      *int64                  `json:"amount"`
	Frequency   *estatedomain.Frequency `json:"frequency"`
	DueDay      *int                    `json:"due_day"`
	IsActive    *bool                   `json:"is_active"`
}

func (s *Server) ListFees(c *gin.Context) {
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

	seq, err := s.feeSvc.List(c.Request.Context(), p, feedomain.ListFeeRequest{
		EstateID:  estateID,
		Search:    strings.TrimSpace(c.Query("search")),
		Frequency: estatedomain.Frequency(strings.ToUpper(strings.TrimSpace(c.Query("frequency")))),
		IsActive:  isActive,
		OrderBy:   strings.TrimSpace(c.Query("ordering")),
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

func (s *Server) CreateFee(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req createFeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	estateID, err := parseOptionalSnowflakeID(req.EstateID)
	if err != nil {
		AbortWithError(c, invalidIDError("estate_id"))
		return
	}

	resp, err := s.feeSvc.Create(c.Request.Context(), p, feedomain.CreateFeeRequest{
		EstateID:    estateID,
		Name:        req.Name,
		Description: req.Description,
		Amount:      req.Amount,
		Frequency:   req.Frequency,
		DueDay:      req.DueDay,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) GetFeeByID(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	resp, err := s.feeSvc.Get(c.Request.Context(), p, id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateFee(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req updateFeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.feeSvc.Update(c.Request.Context(), p, id, feedomain.UpdateFeeRequest{
		Name:        req.Name,
		Description: req.Description,
		Amount:      req.Amount,
		Frequency:   req.Frequency,
		DueDay:      req.DueDay,
		IsActive:    req.IsActive,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteFee(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := s.feeSvc.Delete(c.Request.Context(), p, id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
