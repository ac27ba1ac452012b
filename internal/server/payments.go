package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	identity "github.com/smallbiznis/estatehub/internal/identity/domain"
	paymentdomain "github.com/smallbiznis/estatehub/internal/payment/domain"
	"github.com/smallbiznis/estatehub/pkg/repository"
)

type createPaymentRequest struct {
	FeeID     string               `json:"fee_id"`
	UnitID    string               `json:"unit_id"`
	Amount    int64                `json:"amount"`
	Method    paymentdomain.Method `json:"method"`
	Status    paymentdomain.Status `json:"status"`
	Reference string               `json:"reference"`
}

type updatePaymentRequest struct {
	Amount    *int64                `json:"amount"`
	Method    *paymentdomain.Method `json:"method"`
	Reference *string               `json:"reference"`
}

func (s *Server) ListPayments(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	estateID, ok := queryID(c, "estate_id")
	if !ok {
		return
	}
	feeID, ok := queryID(c, "fee_id")
	if !ok {
		return
	}
	unitID, ok := queryID(c, "unit_id")
	if !ok {
		return
	}

	seq, err := s.paymentSvc.List(c.Request.Context(), p, paymentdomain.ListPaymentRequest{
		EstateID: estateID,
		FeeID:    feeID,
		UnitID:   unitID,
		Status:   paymentdomain.Status(strings.ToUpper(strings.TrimSpace(c.Query("status")))),
		Method:   paymentdomain.Method(strings.ToUpper(strings.TrimSpace(c.Query("method")))),
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

func (s *Server) CreatePayment(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req createPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	feeID, err := parseOptionalSnowflakeID(req.FeeID)
	if err != nil {
		AbortWithError(c, invalidIDError("fee_id"))
		return
	}
	unitID, err := parseOptionalSnowflakeID(req.UnitID)
	if err != nil {
		AbortWithError(c, invalidIDError("unit_id"))
		return
	}

	resp, err := s.paymentSvc.Create(c.Request.Context(), p, paymentdomain.CreatePaymentRequest{
		FeeID:     feeID,
		UnitID:    unitID,
		Amount:    req.Amount,
		Method:    req.Method,
		Status:    req.Status,
		Reference: req.Reference,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) GetPaymentByID(c *gin.Context) {
	s.paymentAction(c, s.paymentSvc.Get)
}

func (s *Server) UpdatePayment(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req updatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.paymentSvc.Update(c.Request.Context(), p, id, paymentdomain.UpdatePaymentRequest{
		Amount:    req.Amount,
		Method:    req.Method,
		Reference: req.Reference,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) MarkPaymentPaid(c *gin.Context) {
	s.paymentAction(c, s.paymentSvc.MarkPaid)
}

func (s *Server) MarkPaymentUnpaid(c *gin.Context) {
	s.paymentAction(c, s.paymentSvc.MarkUnpaid)
}

func (s *Server) DeletePayment(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := s.paymentSvc.Delete(c.Request.Context(), p, id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) paymentAction(c *gin.Context, fn func(context.Context, identity.Principal, snowflake.ID) (paymentdomain.Payment, error)) {
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
