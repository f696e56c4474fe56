package handlers

import (
	"net/http"

	"github.com/SscSPs/boutique_ops/internal/core/domain"
	portssvc "github.com/SscSPs/boutique_ops/internal/core/ports/services"
	"github.com/SscSPs/boutique_ops/internal/dto"
	"github.com/gin-gonic/gin"
)

type leaveHandler struct {
	leaveService portssvc.LeaveSvcFacade
}

func registerLeaveRoutes(rg *gin.RouterGroup, leaveService portssvc.LeaveSvcFacade) {
	h := &leaveHandler{leaveService: leaveService}

	leaves := rg.Group("/leaves")
	{
		leaves.POST("", h.create)
		leaves.GET("", h.list)
		leaves.POST("/:leaveId/approve", h.decide(domain.LeaveActionApprove))
		leaves.POST("/:leaveId/reject", h.decide(domain.LeaveActionReject))
		leaves.POST("/:leaveId/escalate", h.decide(domain.LeaveActionEscalate))
		leaves.POST("/:leaveId/cancel", h.decide(domain.LeaveActionCancel))
	}
}

// create godoc
// @Summary File a leave request
// @Tags leaves
// @Accept json
// @Produce json
// @Param leave body dto.CreateLeaveRequest true "Leave"
// @Success 201 {object} domain.LeaveRequest
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Overlaps an existing request"
// @Security BearerAuth
// @Router /leaves [post]
func (h *leaveHandler) create(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}
	var req dto.CreateLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	leave, err := h.leaveService.CreateLeave(c.Request.Context(), identity, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, leave)
}

// list godoc
// @Summary List leave requests
// @Tags leaves
// @Produce json
// @Param status query string false "Status filter"
// @Param limit query int false "Page size (max 200)"
// @Param nextToken query string false "Token from the previous page"
// @Param boutiqueId query string false "Requested boutique"
// @Success 200 {object} dto.ListLeavesResponse
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /leaves [get]
func (h *leaveHandler) list(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}
	var q dto.ListLeavesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err)
		return
	}
	leaves, next, err := h.leaveService.ListLeaves(c.Request.Context(), identity, q)
	if err != nil {
		respondError(c, err)
		return
	}
	if leaves == nil {
		leaves = []domain.LeaveRequest{}
	}
	c.JSON(http.StatusOK, dto.ListLeavesResponse{Leaves: leaves, NextToken: next})
}

// decide godoc
// @Summary Approve, reject, escalate or cancel a leave request
// @Tags leaves
// @Accept json
// @Produce json
// @Param leaveId path string true "Leave ID"
// @Param decision body dto.LeaveDecisionRequest false "Optional note"
// @Success 200 {object} domain.LeaveRequest
// @Failure 403 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Already decided"
// @Security BearerAuth
// @Router /leaves/{leaveId}/approve [post]
// @Router /leaves/{leaveId}/reject [post]
// @Router /leaves/{leaveId}/escalate [post]
// @Router /leaves/{leaveId}/cancel [post]
func (h *leaveHandler) decide(action domain.LeaveAction) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := identityOrAbort(c)
		if !ok {
			return
		}
		var req dto.LeaveDecisionRequest
		if c.Request.ContentLength > 0 {
			if err := c.ShouldBindJSON(&req); err != nil {
				respondBindError(c, err)
				return
			}
		}
		leave, err := h.leaveService.DecideLeave(c.Request.Context(), identity, c.Param("leaveId"), action, req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, leave)
	}
}
