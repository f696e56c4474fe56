package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/boutique_ops/internal/core/domain"
	portssvc "github.com/SscSPs/boutique_ops/internal/core/ports/services"
	"github.com/SscSPs/boutique_ops/internal/dto"
	"github.com/SscSPs/boutique_ops/internal/middleware"
	"github.com/gin-gonic/gin"
)

type scopeHandler struct {
	scopeService portssvc.ScopeSvc
}

func registerScopeRoutes(rg *gin.RouterGroup, scopeService portssvc.ScopeSvc) {
	h := &scopeHandler{scopeService: scopeService}
	rg.GET("/scope", h.getScope)
}

// getScope godoc
// @Summary Resolve the caller's operational scope
// @Description Returns the boutiques the caller may read for the optional boutique or global hint
// @Tags scope
// @Produce json
// @Param boutiqueId query string false "Requested boutique"
// @Param global query bool false "Request every active boutique (admins only)"
// @Success 200 {object} dto.ScopeResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /scope [get]
func (h *scopeHandler) getScope(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}
	var q dto.ScopeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err)
		return
	}

	scope, err := h.scopeService.ResolveScope(c.Request.Context(), identity, domain.ScopeRequest{
		BoutiqueID: q.BoutiqueID,
		Global:     q.Global,
		Module:     "scope",
		Access:     domain.AccessRead,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Debug("Scope resolved",
		slog.String("user_id", scope.UserID), slog.Int("boutiques", len(scope.BoutiqueIDs)))
	c.JSON(http.StatusOK, dto.ToScopeResponse(scope))
}
