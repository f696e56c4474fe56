package domain

import (
	"fmt"
	"time"
)

// Boutique represents a single retail location, the tenancy boundary for operational data.
type Boutique struct {
	BoutiqueID string `json:"boutiqueId"`
	Code       string `json:"code"`
	Name       string `json:"name"`
	RegionID   string `json:"regionId"`
	IsActive   bool   `json:"isActive"`
	AuditFields
}

// MembershipAccess defines what a boutique membership allows.
type MembershipAccess string

const (
	AccessRead  MembershipAccess = "READ"
	AccessWrite MembershipAccess = "WRITE"
)

// ParseMembershipAccess validates a stored access value.
func ParseMembershipAccess(s string) (MembershipAccess, error) {
	switch MembershipAccess(s) {
	case AccessRead, AccessWrite:
		return MembershipAccess(s), nil
	default:
		return "", fmt.Errorf("unknown membership access %q", s)
	}
}

// Allows reports whether a membership with this access satisfies the requested access.
func (a MembershipAccess) Allows(requested MembershipAccess) bool {
	switch requested {
	case AccessRead:
		return a == AccessRead || a == AccessWrite
	case AccessWrite:
		return a == AccessWrite
	default:
		return false
	}
}

// BoutiqueMembership represents a user's access to a boutique beyond their home assignment.
type BoutiqueMembership struct {
	UserID     string           `json:"userId"`
	BoutiqueID string           `json:"boutiqueId"`
	Access     MembershipAccess `json:"access"`
	IsActive   bool             `json:"isActive"`
	JoinedAt   time.Time        `json:"joinedAt"`
}
