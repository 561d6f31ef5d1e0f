package handler

import (
	"net/http"
	"strconv"

	"github.com/damoang/angple-messaging/internal/common"
	"github.com/damoang/angple-messaging/internal/domain"
	"github.com/damoang/angple-messaging/internal/service"
	"github.com/gin-gonic/gin"
)

// ReportHandler handles report API endpoints
type ReportHandler struct {
	resolver  *CallerResolver
	reportSvc *service.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(resolver *CallerResolver, reportSvc *service.ReportService) *ReportHandler {
	return &ReportHandler{resolver: resolver, reportSvc: reportSvc}
}

// Create handles POST /api/v2/reports
func (h *ReportHandler) Create(c *gin.Context) {
	caller, err := h.resolver.Resolve(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var req domain.CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "요청 형식이 올바르지 않습니다", err)
		return
	}

	report, err := h.reportSvc.Create(caller, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	common.Created(c, report)
}

// GetMyReports handles GET /api/v2/reports/my
func (h *ReportHandler) GetMyReports(c *gin.Context) {
	caller, err := h.resolver.Resolve(c)
	if err != nil {
		respondError(c, err)
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit < 1 || limit > 100 {
		limit = 20
	}
	reports, total, err := h.reportSvc.GetMyReports(caller.ID, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessWithMeta(c, reports, common.NewMeta(1, limit, total))
}
