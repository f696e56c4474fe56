package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/boutique_ops/internal/core/ports/services"
	"github.com/SscSPs/boutique_ops/internal/dto"
	"github.com/gin-gonic/gin"
)

type taskHandler struct {
	taskService portssvc.TaskSvc
}

func registerTaskRoutes(rg *gin.RouterGroup, taskService portssvc.TaskSvc) {
	h := &taskHandler{taskService: taskService}

	tasks := rg.Group("/tasks")
	{
		tasks.GET("/assignments", h.assignments)
		tasks.POST("/reminders", h.reminders)
	}
}

// assignments godoc
// @Summary Who does which task on a date
// @Tags tasks
// @Produce json
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param boutiqueId query string false "Requested boutique"
// @Success 200 {array} domain.TaskAssignment
// @Security BearerAuth
// @Router /tasks/assignments [get]
func (h *taskHandler) assignments(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}
	var q dto.TaskAssignmentsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err)
		return
	}
	rows, err := h.taskService.ListTaskAssignments(c.Request.Context(), identity, q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// reminders godoc
// @Summary Send "task due tomorrow" reminders
// @Tags tasks
// @Accept json
// @Produce json
// @Param reminders body dto.SendTaskRemindersRequest true "Reference date"
// @Success 200 {object} dto.TaskRemindersResponse
// @Security BearerAuth
// @Router /tasks/reminders [post]
func (h *taskHandler) reminders(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}
	var req dto.SendTaskRemindersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	resp, err := h.taskService.SendTaskReminders(c.Request.Context(), identity, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
