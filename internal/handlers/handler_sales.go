package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/boutique_ops/internal/core/ports/services"
	"github.com/SscSPs/boutique_ops/internal/dto"
	"github.com/SscSPs/boutique_ops/internal/middleware"
	"github.com/gin-gonic/gin"
)

type salesHandler struct {
	salesService portssvc.SalesLedgerSvc
}

func registerSalesRoutes(rg *gin.RouterGroup, salesService portssvc.SalesLedgerSvc) {
	h := &salesHandler{salesService: salesService}

	summaries := rg.Group("/sales/summaries")
	{
		summaries.PUT("", h.upsertSummary)
		summaries.PUT("/:summaryId/lines", h.upsertLine)
		summaries.GET("/:summaryId/reconciliation", h.reconciliation)
		summaries.POST("/:summaryId/lock", h.lock)
	}
}

// upsertSummary godoc
// @Summary Declare a daily sales total
// @Tags sales
// @Accept json
// @Produce json
// @Param summary body dto.UpsertSalesSummaryRequest true "Daily total in whole SAR"
// @Success 200 {object} domain.SalesSummary
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Ledger locked"
// @Security BearerAuth
// @Router /sales/summaries [put]
func (h *salesHandler) upsertSummary(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}
	var req dto.UpsertSalesSummaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	summary, err := h.salesService.UpsertSalesSummary(c.Request.Context(), identity, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// upsertLine godoc
// @Summary Set an employee's sales line
// @Tags sales
// @Accept json
// @Produce json
// @Param summaryId path string true "Summary ID"
// @Param line body dto.UpsertSalesLineRequest true "Employee amount in whole SAR"
// @Success 200 {object} domain.SalesLine
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Ledger locked"
// @Security BearerAuth
// @Router /sales/summaries/{summaryId}/lines [put]
func (h *salesHandler) upsertLine(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}
	var req dto.UpsertSalesLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	line, err := h.salesService.UpsertSalesLine(c.Request.Context(), identity, c.Param("summaryId"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, line)
}

// reconciliation godoc
// @Summary Reconcile a summary against its lines
// @Tags sales
// @Produce json
// @Param summaryId path string true "Summary ID"
// @Success 200 {object} domain.Reconciliation
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /sales/summaries/{summaryId}/reconciliation [get]
func (h *salesHandler) reconciliation(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}
	rec, err := h.salesService.GetReconciliation(c.Request.Context(), identity, c.Param("summaryId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// lock godoc
// @Summary Lock a reconciled summary
// @Tags sales
// @Produce json
// @Param summaryId path string true "Summary ID"
// @Success 200 {object} domain.SalesSummary
// @Failure 409 {object} dto.ErrorResponse "Lines do not add up, or already locked"
// @Security BearerAuth
// @Router /sales/summaries/{summaryId}/lock [post]
func (h *salesHandler) lock(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}
	summaryID := c.Param("summaryId")
	summary, err := h.salesService.LockSalesSummary(c.Request.Context(), identity, summaryID)
	if err != nil {
		respondError(c, err)
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Sales summary locked", slog.String("summary_id", summaryID))
	c.JSON(http.StatusOK, summary)
}
