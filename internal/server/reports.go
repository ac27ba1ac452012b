package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	pdfContentType  = "application/pdf"
)

func (s *Server) GetFeePaymentStatus(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	resp, err := s.reportSvc.FeePaymentStatus(c.Request.Context(), p, id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ExportFeePaymentStatusPDF(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	report, err := s.reportSvc.FeePaymentStatus(c.Request.Context(), p, id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	data, err := s.exporter.FeePaymentStatusPDF(report)
	if err != nil {
		AbortWithError(c, fmt.Errorf("render payment status: %w", err))
		return
	}

	attachment(c, fmt.Sprintf("payment-status-%s.pdf", id), pdfContentType, data)
}

func (s *Server) GetEstateSummary(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	resp, err := s.reportSvc.EstateSummary(c.Request.Context(), p, id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ExportEstateSummary(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	summary, err := s.reportSvc.EstateSummary(c.Request.Context(), p, id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	data, err := s.exporter.EstateSummary(summary)
	if err != nil {
		AbortWithError(c, fmt.Errorf("render estate summary: %w", err))
		return
	}

	attachment(c, fmt.Sprintf("estate-summary-%s.xlsx", id), xlsxContentType, data)
}

func (s *Server) ExportEstateSummaryPDF(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	summary, err := s.reportSvc.EstateSummary(c.Request.Context(), p, id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	data, err := s.exporter.EstateSummaryPDF(summary)
	if err != nil {
		AbortWithError(c, fmt.Errorf("render estate summary: %w", err))
		return
	}

	attachment(c, fmt.Sprintf("estate-summary-%s.pdf", id), pdfContentType, data)
}

func (s *Server) GetOverallSummary(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	resp, err := s.reportSvc.OverallSummary(c.Request.Context(), p)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ExportOverallSummary(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	overall, err := s.reportSvc.OverallSummary(c.Request.Context(), p)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	data, err := s.exporter.OverallSummary(overall)
	if err != nil {
		AbortWithError(c, fmt.Errorf("render overall summary: %w", err))
		return
	}

	attachment(c, "overall-summary.xlsx", xlsxContentType, data)
}

func attachment(c *gin.Context, filename, contentType string, data []byte) {
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, contentType, data)
}
