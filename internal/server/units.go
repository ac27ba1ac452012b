package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	unitdomain "github.com/smallbiznis/estatehub/internal/unit/domain"
	"github.com/smallbiznis/estatehub/pkg/repository"
)

type createUnitRequest struct {
	EstateID      string         `json:"estate_id"`
	UnitNumber    string         `json:"unit_number"`
	Block         string         `json:"block"`
	OccupantName  string         `json:"occupant_name"`
	OccupantPhone string         `json:"occupant_phone"`
	IsOccupied    bool           `json:"is_occupied"`
	Metadata      map[string]any `json:"metadata"`
}

type updateUnitRequest struct {
	UnitNumber    *string        `json:"unit_number"`
	Block         *string        `json:"block"`
	OccupantName  *string        `json:"occupant_name"`
	OccupantPhone *string        `json:"occupant_phone"`
	IsOccupied    *bool          `json:"is_occupied"`
	Metadata      map[string]any `json:"metadata"`
}

func (s *Server) ListUnits(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	estateID, ok := queryID(c, "estate_id")
	if !ok {
		return
	}
	isOccupied, ok := queryBool(c, "is_occupied")
	if !ok {
		return
	}

	seq, err := s.unitSvc.List(c.Request.Context(), p, unitdomain.ListUnitRequest{
		EstateID:   estateID,
		Search:     strings.TrimSpace(c.Query("search")),
		Block:      strings.TrimSpace(c.Query("block")),
		IsOccupied: isOccupied,
		OrderBy:    strings.TrimSpace(c.Query("ordering")),
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

func (s *Server) CreateUnit(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req createUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	estateID, err := parseOptionalSnowflakeID(req.EstateID)
	if err != nil {
		AbortWithError(c, invalidIDError("estate_id"))
		return
	}

	resp, err := s.unitSvc.Create(c.Request.Context(), p, unitdomain.CreateUnitRequest{
		EstateID:      estateID,
		UnitNumber:    req.UnitNumber,
		Block:         req.Block,
		OccupantName:  req.OccupantName,
		OccupantPhone: req.OccupantPhone,
		IsOccupied:    req.IsOccupied,
		Metadata:      req.Metadata,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) GetUnitByID(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	resp, err := s.unitSvc.Get(c.Request.Context(), p, id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateUnit(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req updateUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.unitSvc.Update(c.Request.Context(), p, id, unitdomain.UpdateUnitRequest{
		UnitNumber:    req.UnitNumber,
		Block:         req.Block,
		OccupantName:  req.OccupantName,
		OccupantPhone: req.OccupantPhone,
		IsOccupied:    req.IsOccupied,
		Metadata:      req.Metadata,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteUnit(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := s.unitSvc.Delete(c.Request.Context(), p, id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
