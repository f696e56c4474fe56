package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/boutique_ops/internal/core/ports/services"
	"github.com/SscSPs/boutique_ops/internal/dto"
	"github.com/SscSPs/boutique_ops/internal/middleware"
	"github.com/gin-gonic/gin"
)

type targetHandler struct {
	targetService portssvc.TargetSvcFacade
}

func registerTargetRoutes(rg *gin.RouterGroup, targetService portssvc.TargetSvcFacade) {
	h := &targetHandler{targetService: targetService}

	targets := rg.Group("/targets")
	{
		targets.PUT("/boutique", h.upsertBoutiqueTarget)
		targets.POST("/generate", h.generate)
		targets.POST("/reset", h.reset)
		targets.GET("/employees", h.listEmployeeTargets)
		targets.GET("/metrics", h.metrics)
	}
	rg.GET("/dashboard/sales", h.dashboard)
}

// upsertBoutiqueTarget godoc
// @Summary Set the monthly boutique target
// @Tags targets
// @Accept json
// @Produce json
// @Param target body dto.UpsertBoutiqueTargetRequest true "Target in halalas"
// @Success 200 {object} dto.BoutiqueTargetResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /targets/boutique [put]
func (h *targetHandler) upsertBoutiqueTarget(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}
	var req dto.UpsertBoutiqueTargetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	target, err := h.targetService.UpsertBoutiqueTarget(c.Request.Context(), identity, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToBoutiqueTargetResponse(target))
}

// generate godoc
// @Summary Generate employee targets
// @Description Splits the boutique target across employees by role weight and presence, replacing any earlier rows of the month
// @Tags targets
// @Accept json
// @Produce json
// @Param month body dto.MonthTargetRequest true "Boutique month"
// @Success 201 {array} dto.EmployeeTargetResponse
// @Failure 404 {object} dto.ErrorResponse "No boutique target"
// @Failure 409 {object} dto.ErrorResponse "Generation in progress"
// @Security BearerAuth
// @Router /targets/generate [post]
func (h *targetHandler) generate(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}
	var req dto.MonthTargetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	rows, err := h.targetService.GenerateTargets(c.Request.Context(), identity, req)
	if err != nil {
		respondError(c, err)
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Employee targets generated",
		slog.String("month", req.Month), slog.Int("employees", len(rows)))
	c.JSON(http.StatusCreated, dto.ToEmployeeTargetResponses(rows))
}

// reset godoc
// @Summary Reset employee targets
// @Tags targets
// @Accept json
// @Produce json
// @Param month body dto.MonthTargetRequest true "Boutique month"
// @Success 200 {object} dto.ResetTargetsResponse
// @Failure 403 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /targets/reset [post]
func (h *targetHandler) reset(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}
	var req dto.MonthTargetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	deleted, err := h.targetService.ResetTargets(c.Request.Context(), identity, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ResetTargetsResponse{BoutiqueID: req.BoutiqueID, Month: req.Month, Deleted: deleted})
}

// listEmployeeTargets godoc
// @Summary List employee targets of a month
// @Tags targets
// @Produce json
// @Param month query string true "Month (YYYY-MM)"
// @Param boutiqueId query string false "Requested boutique"
// @Success 200 {array} dto.EmployeeTargetResponse
// @Security BearerAuth
// @Router /targets/employees [get]
func (h *targetHandler) listEmployeeTargets(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}
	var q dto.TargetsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err)
		return
	}
	rows, err := h.targetService.ListEmployeeTargets(c.Request.Context(), identity, q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToEmployeeTargetResponses(rows))
}

// metrics godoc
// @Summary Target achievement metrics
// @Tags targets
// @Produce json
// @Param month query string true "Month (YYYY-MM)"
// @Param userId query string false "One employee instead of the boutique"
// @Success 200 {object} domain.TargetMetrics
// @Security BearerAuth
// @Router /targets/metrics [get]
func (h *targetHandler) metrics(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}
	var q dto.TargetMetricsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err)
		return
	}
	m, err := h.targetService.GetTargetMetrics(c.Request.Context(), identity, q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

// dashboard godoc
// @Summary Sales dashboard
// @Tags dashboard
// @Produce json
// @Param month query string true "Month (YYYY-MM)"
// @Param boutiqueId query string false "Requested boutique"
// @Param global query bool false "Every active boutique (admins only)"
// @Success 200 {object} domain.DashboardSalesMetrics
// @Security BearerAuth
// @Router /dashboard/sales [get]
func (h *targetHandler) dashboard(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}
	var q dto.DashboardQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err)
		return
	}
	m, err := h.targetService.GetDashboardSalesMetrics(c.Request.Context(), identity, q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}
