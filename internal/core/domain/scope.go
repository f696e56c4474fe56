package domain

import "slices"

// ScopeRequest is what the caller asks for; the resolver decides what is granted.
type ScopeRequest struct {
	BoutiqueID string
	Global     bool
	Module     string
	Access     MembershipAccess
}

// Scope is the authoritative set of boutiques a caller may touch for one request.
type Scope struct {
	UserID              string           `json:"userId"`
	Role                Role             `json:"role"`
	BoutiqueIDs         []string         `json:"boutiqueIds"`
	EffectiveBoutiqueID string           `json:"effectiveBoutiqueId,omitempty"`
	IsGlobal            bool             `json:"isGlobal"`
	Access              MembershipAccess `json:"access"`
}

// Contains reports whether boutiqueID is inside the scope.
func (s Scope) Contains(boutiqueID string) bool {
	return boutiqueID != "" && slices.Contains(s.BoutiqueIDs, boutiqueID)
}
