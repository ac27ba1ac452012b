package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	identity "github.com/smallbiznis/estatehub/internal/identity/domain"
	maintenancedomain "github.com/smallbiznis/estatehub/internal/maintenance/domain"
	"github.com/smallbiznis/estatehub/pkg/repository"
)

type createTicketRequest struct {
	EstateID    string                     `json:"estate_id"`
	UnitID      string                     `json:"unit_id"`
	Title       string                     `json:"title"`
	Description string                     `json:"description"`
	Category    maintenancedomain.Category `json:"category"`
}

type updateTicketRequest struct {
	Title       *string                     `json:"title"`
	Description *string                     `json:"description"`
	Category    *maintenancedomain.Category `json:"category"`
}

func (s *Server) ListTickets(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	estateID, ok := queryID(c, "estate_id")
	if !ok {
		return
	}
	unitID, ok := queryID(c, "unit_id")
	if !ok {
		return
	}

	seq, err := s.ticketSvc.List(c.Request.Context(), p, maintenancedomain.ListTicketRequest{
		EstateID: estateID,
		UnitID:   unitID,
		Status:   maintenancedomain.Status(strings.ToUpper(strings.TrimSpace(c.Query("status")))),
		Category: maintenancedomain.Category(strings.ToUpper(strings.TrimSpace(c.Query("category")))),
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

func (s *Server) CreateTicket(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req createTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	estateID, err := parseOptionalSnowflakeID(req.EstateID)
	if err != nil {
		AbortWithError(c, invalidIDError("estate_id"))
		return
	}
	unitID, err := parseOptionalSnowflakeID(req.UnitID)
	if err != nil {
		AbortWithError(c, invalidIDError("unit_id"))
		return
	}

	create := maintenancedomain.CreateTicketRequest{
		EstateID:    estateID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
	}
	if unitID != 0 {
		create.UnitID = &unitID
	}

	resp, err := s.ticketSvc.Create(c.Request.Context(), p, create)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) GetTicketByID(c *gin.Context) {
	s.ticketAction(c, s.ticketSvc.Get)
}

func (s *Server) UpdateTicket(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req updateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.ticketSvc.Update(c.Request.Context(), p, id, maintenancedomain.UpdateTicketRequest{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ResolveTicket(c *gin.Context) {
	s.ticketAction(c, s.ticketSvc.Resolve)
}

func (s *Server) ReopenTicket(c *gin.Context) {
	s.ticketAction(c, s.ticketSvc.Reopen)
}

func (s *Server) DeleteTicket(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := s.ticketSvc.Delete(c.Request.Context(), p, id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) ticketAction(c *gin.Context, fn func(context.Context, identity.Principal, snowflake.ID) (maintenancedomain.Ticket, error)) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	resp, err := fn(c.Request.Context(), p, id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
