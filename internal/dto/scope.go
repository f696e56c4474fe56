package dto

import "github.com/SscSPs/boutique_ops/internal/core/domain"

// ScopeQuery carries the optional boutique filter and global flag. Both are hints: EMPLOYEE and
// ASSISTANT_MANAGER callers have them ignored.
type ScopeQuery struct {
	BoutiqueID string `form:"boutiqueId" json:"boutiqueId"`
	Global     bool   `form:"global" json:"global"`
}

// ScopeResponse is returned by GET /scope.
type ScopeResponse struct {
	UserID              string   `json:"userId"`
	Role                string   `json:"role"`
	BoutiqueIDs         []string `json:"boutiqueIds"`
	EffectiveBoutiqueID string   `json:"effectiveBoutiqueId,omitempty"`
	IsGlobal            bool     `json:"isGlobal"`
}

// ToScopeResponse converts a resolved scope for the API.
func ToScopeResponse(s *domain.Scope) ScopeResponse {
	return ScopeResponse{
		UserID:              s.UserID,
		Role:                string(s.Role),
		BoutiqueIDs:         s.BoutiqueIDs,
		EffectiveBoutiqueID: s.EffectiveBoutiqueID,
		IsGlobal:            s.IsGlobal,
	}
}
