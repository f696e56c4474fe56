package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/boutique_ops/internal/core/ports/services"
	"github.com/SscSPs/boutique_ops/internal/dto"
	"github.com/SscSPs/boutique_ops/internal/middleware"
	"github.com/gin-gonic/gin"
)

// employeeHandler serves employee lifecycle and inventory zone routes.
type employeeHandler struct {
	employeeService portssvc.EmployeeSvcFacade
}

func registerEmployeeRoutes(rg *gin.RouterGroup, employeeService portssvc.EmployeeSvcFacade) {
	h := &employeeHandler{employeeService: employeeService}

	rg.POST("/employees/:empId/deactivate", h.deactivate)

	zones := rg.Group("/zones")
	{
		zones.PUT("/:zoneId/assignment", h.assignZone)
		zones.GET("/assignments", h.listZoneAssignments)
	}
}

// deactivate godoc
// @Summary Deactivate an employee
// @Description Reassigns their task plans, deletes their shift overrides, closes zone assignments and removes rotation and queue entries in one step
// @Tags employees
// @Produce json
// @Param empId path string true "Employee ID"
// @Success 200 {object} domain.DeactivationReport
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Already inactive"
// @Security BearerAuth
// @Router /employees/{empId}/deactivate [post]
func (h *employeeHandler) deactivate(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}
	empID := c.Param("empId")
	report, err := h.employeeService.DeactivateEmployee(c.Request.Context(), identity, empID)
	if err != nil {
		respondError(c, err)
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Employee deactivated",
		slog.String("emp_id", empID), slog.Int64("task_plans_reassigned", report.TaskPlansReassigned))
	c.JSON(http.StatusOK, report)
}

// assignZone godoc
// @Summary Assign an inventory zone
// @Tags zones
// @Accept json
// @Produce json
// @Param zoneId path string true "Zone ID"
// @Param assignment body dto.AssignZoneRequest true "Assignee"
// @Success 200 {object} domain.ZoneAssignment
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /zones/{zoneId}/assignment [put]
func (h *employeeHandler) assignZone(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}
	var req dto.AssignZoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	assignment, err := h.employeeService.AssignZone(c.Request.Context(), identity, c.Param("zoneId"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, assignment)
}

// listZoneAssignments godoc
// @Summary Active zone assignments in scope
// @Tags zones
// @Produce json
// @Param boutiqueId query string false "Requested boutique"
// @Success 200 {array} domain.ZoneAssignment
// @Security BearerAuth
// @Router /zones/assignments [get]
func (h *employeeHandler) listZoneAssignments(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}
	var q dto.ZoneAssignmentsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err)
		return
	}
	rows, err := h.employeeService.ListZoneAssignments(c.Request.Context(), identity, q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}
