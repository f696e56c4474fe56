package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/SscSPs/boutique_ops/internal/apperrors"
	portssvc "github.com/SscSPs/boutique_ops/internal/core/ports/services"
	"github.com/SscSPs/boutique_ops/internal/dto"
	"github.com/SscSPs/boutique_ops/internal/middleware"
	"github.com/gin-gonic/gin"
)

// scheduleHandler serves roster reads, overrides, guest coverage, locks and coverage rules.
type scheduleHandler struct {
	scheduleService portssvc.ScheduleSvcFacade
}

func registerScheduleRoutes(rg *gin.RouterGroup, scheduleService portssvc.ScheduleSvcFacade) {
	h := &scheduleHandler{scheduleService: scheduleService}

	schedule := rg.Group("/schedule")
	{
		schedule.GET("/day", h.getDay)
		schedule.GET("/week", h.getWeek)
		schedule.PUT("/overrides", h.setOverride)
		schedule.DELETE("/overrides", h.clearOverride)
		schedule.POST("/guests", h.addGuest)
		schedule.POST("/locks/day", h.lockDay)
		schedule.DELETE("/locks/day", h.unlockDay)
		schedule.POST("/locks/week", h.lockWeek)
		schedule.DELETE("/locks/week", h.unlockWeek)
	}

	rules := rg.Group("/coverage-rules")
	{
		rules.GET("", h.listCoverageRules)
		rules.PUT("/:dayOfWeek", h.upsertCoverageRule)
	}
}

// getDay godoc
// @Summary Day roster
// @Description Returns AM/PM rosters, guests, coverage validation and lock state for one date
// @Tags schedule
// @Produce json
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param boutiqueId query string false "Requested boutique"
// @Success 200 {object} domain.DaySchedule
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /schedule/day [get]
func (h *scheduleHandler) getDay(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}
	var q dto.DayScheduleQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err)
		return
	}
	day, err := h.scheduleService.GetDaySchedule(c.Request.Context(), identity, q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, day)
}

// getWeek godoc
// @Summary Week roster
// @Description Returns the Saturday-start week containing weekStart
// @Tags schedule
// @Produce json
// @Param weekStart query string true "Any date in the week (YYYY-MM-DD)"
// @Param boutiqueId query string false "Requested boutique"
// @Success 200 {object} domain.WeekSchedule
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /schedule/week [get]
func (h *scheduleHandler) getWeek(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}
	var q dto.WeekScheduleQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err)
		return
	}
	week, err := h.scheduleService.GetWeekSchedule(c.Request.Context(), identity, q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, week)
}

// setOverride godoc
// @Summary Set a shift override
// @Tags schedule
// @Accept json
// @Produce json
// @Param override body dto.SetShiftOverrideRequest true "Override"
// @Success 200 {object} domain.ShiftOverride
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 423 {object} dto.ErrorResponse "Day or week locked"
// @Security BearerAuth
// @Router /schedule/overrides [put]
func (h *scheduleHandler) setOverride(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}
	var req dto.SetShiftOverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	override, err := h.scheduleService.SetShiftOverride(c.Request.Context(), identity, req)
	if err != nil {
		respondError(c, err)
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Shift override set",
		slog.String("emp_id", req.EmpID), slog.String("date", req.Date), slog.String("shift", req.OverrideShift))
	c.JSON(http.StatusOK, override)
}

// clearOverride godoc
// @Summary Clear a shift override
// @Tags schedule
// @Accept json
// @Param override body dto.ClearShiftOverrideRequest true "Override key"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Failure 423 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /schedule/overrides [delete]
func (h *scheduleHandler) clearOverride(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}
	var req dto.ClearShiftOverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if err := h.scheduleService.ClearShiftOverride(c.Request.Context(), identity, req); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// addGuest godoc
// @Summary Add guest coverage
// @Description Places an employee from another boutique on the host boutique's roster for one date
// @Tags schedule
// @Accept json
// @Produce json
// @Param guest body dto.AddGuestCoverageRequest true "Guest shift"
// @Success 201 {object} domain.ShiftOverride
// @Failure 400 {object} dto.ErrorResponse
// @Failure 423 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /schedule/guests [post]
func (h *scheduleHandler) addGuest(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}
	var req dto.AddGuestCoverageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	guest, err := h.scheduleService.AddGuestCoverage(c.Request.Context(), identity, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, guest)
}

// lockDay godoc
// @Summary Lock a day
// @Description Idempotent; locking an already locked day returns the existing lock
// @Tags schedule
// @Accept json
// @Produce json
// @Param lock body dto.DayLockRequest true "Day"
// @Success 200 {object} domain.ScheduleDayLock
// @Failure 403 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /schedule/locks/day [post]
func (h *scheduleHandler) lockDay(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}
	var req dto.DayLockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	lock, err := h.scheduleService.LockDay(c.Request.Context(), identity, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lock)
}

// unlockDay godoc
// @Summary Unlock a day
// @Tags schedule
// @Accept json
// @Param lock body dto.DayLockRequest true "Day"
// @Success 204
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Day not locked"
// @Security BearerAuth
// @Router /schedule/locks/day [delete]
func (h *scheduleHandler) unlockDay(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}
	var req dto.DayLockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if err := h.scheduleService.UnlockDay(c.Request.Context(), identity, req); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// lockWeek godoc
// @Summary Lock a week
// @Tags schedule
// @Accept json
// @Produce json
// @Param lock body dto.WeekLockRequest true "Week"
// @Success 200 {object} domain.ScheduleWeekLock
// @Failure 403 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /schedule/locks/week [post]
func (h *scheduleHandler) lockWeek(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}
	var req dto.WeekLockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	lock, err := h.scheduleService.LockWeek(c.Request.Context(), identity, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lock)
}

// unlockWeek godoc
// @Summary Unlock a week
// @Tags schedule
// @Accept json
// @Param lock body dto.WeekLockRequest true "Week"
// @Success 204
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Week not locked"
// @Security BearerAuth
// @Router /schedule/locks/week [delete]
func (h *scheduleHandler) unlockWeek(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}
	var req dto.WeekLockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if err := h.scheduleService.UnlockWeek(c.Request.Context(), identity, req); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// listCoverageRules godoc
// @Summary List coverage rules
// @Tags coverage-rules
// @Produce json
// @Success 200 {array} domain.CoverageRule
// @Security BearerAuth
// @Router /coverage-rules [get]
func (h *scheduleHandler) listCoverageRules(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}
	rules, err := h.scheduleService.ListCoverageRules(c.Request.Context(), identity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rules)
}

// upsertCoverageRule godoc
// @Summary Set a weekday coverage rule
// @Tags coverage-rules
// @Accept json
// @Produce json
// @Param dayOfWeek path int true "0=Sunday .. 6=Saturday"
// @Param rule body dto.UpsertCoverageRuleRequest true "Rule"
// @Success 200 {object} domain.CoverageRule
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /coverage-rules/{dayOfWeek} [put]
func (h *scheduleHandler) upsertCoverageRule(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}
	day, err := strconv.Atoi(c.Param("dayOfWeek"))
	if err != nil || day < 0 || day > 6 {
		respondError(c, apperrors.NewValidationFailedError("dayOfWeek", "must be an integer from 0 to 6"))
		return
	}
	var req dto.UpsertCoverageRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	rule, err := h.scheduleService.UpsertCoverageRule(c.Request.Context(), identity, time.Weekday(day), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rule)
}
