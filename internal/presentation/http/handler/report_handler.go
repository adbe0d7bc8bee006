package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/trimtally-api/internal/application/service"
	"github.com/sangkips/trimtally-api/internal/presentation/http/dto/response"
)

// ReportHandler handles income report HTTP requests
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// BySource handles the income-by-source report
func (h *ReportHandler) BySource(c *gin.Context) {
	rng, ok := parseDateRange(c)
	if !ok {
		return
	}

	summaries, err := h.reportService.IncomeBySource(scopedContext(c), rng)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Income by source retrieved successfully", summaries)
}

// ByDate handles the income-by-date report
func (h *ReportHandler) ByDate(c *gin.Context) {
	rng, ok := parseDateRange(c)
	if !ok {
		return
	}

	granularity := service.ParseGranularity(c.Query("granularity"))

	buckets, err := h.reportService.IncomeByDate(scopedContext(c), rng, granularity)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Income by date retrieved successfully", buckets)
}

// Total handles the income totals report
func (h *ReportHandler) Total(c *gin.Context) {
	rng, ok := parseDateRange(c)
	if !ok {
		return
	}

	totals, err := h.reportService.TotalIncome(scopedContext(c), rng)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Income totals retrieved successfully", totals)
}

// TrendsBySource handles the per-person trend report
func (h *ReportHandler) TrendsBySource(c *gin.Context) {
	rng, ok := parseDateRange(c)
	if !ok {
		return
	}

	granularity := service.ParseGranularity(c.Query("granularity"))
	source := c.Query("source")

	buckets, err := h.reportService.IncomeTrendsBySource(scopedContext(c), source, rng, granularity)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Income trends retrieved successfully", buckets)
}

// Dashboard handles the shop overview
func (h *ReportHandler) Dashboard(c *gin.Context) {
	stats, err := h.reportService.DashboardStats(scopedContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Dashboard stats retrieved successfully", stats)
}
