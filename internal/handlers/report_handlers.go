package handlers

import (
	"net/http"
	"time"

	"foodie_express_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// ReportHandler serves owner analytics.
type ReportHandler struct {
	reportService services.ReportService
	now           func() time.Time
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(rs services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: rs, now: time.Now}
}

func (h *ReportHandler) CategoryPerformance(c *gin.Context) {
	report, err := h.reportService.CategoryPerformance()
	if err != nil {
		respondServiceError(c, err, "CategoryPerformance")
		return
	}
	c.JSON(http.StatusOK, report)
}

// SalesSummary reports the current month to date.
func (h *ReportHandler) SalesSummary(c *gin.Context) {
	summary, err := h.reportService.SalesSummary(h.now())
	if err != nil {
		respondServiceError(c, err, "SalesSummary")
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *ReportHandler) PeakHours(c *gin.Context) {
	hours, err := h.reportService.PeakHours()
	if err != nil {
		respondServiceError(c, err, "PeakHours")
		return
	}
	c.JSON(http.StatusOK, hours)
}

func (h *ReportHandler) TopSelling(c *gin.Context) {
	limit, ok := queryInt(c, "limit", services.DefaultTopSellingLimit)
	if !ok {
		return
	}
	items, err := h.reportService.TopSelling(limit)
	if err != nil {
		respondServiceError(c, err, "TopSelling")
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *ReportHandler) SalesDetails(c *gin.Context) {
	details, err := h.reportService.SalesDetails()
	if err != nil {
		respondServiceError(c, err, "SalesDetails")
		return
	}
	c.JSON(http.StatusOK, details)
}
