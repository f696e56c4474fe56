package domain

import "fmt"

// Role is the operational role carried by a user identity.
type Role string

const (
	RoleEmployee         Role = "EMPLOYEE"
	RoleAssistantManager Role = "ASSISTANT_MANAGER"
	RoleManager          Role = "MANAGER"
	RoleAdmin            Role = "ADMIN"
	RoleSuperAdmin       Role = "SUPER_ADMIN"
)

// AllRoles lists every role in ascending order of privilege.
var AllRoles = []Role{RoleEmployee, RoleAssistantManager, RoleManager, RoleAdmin, RoleSuperAdmin}

// ParseRole converts a stored or token-supplied value into a Role, rejecting unknown values.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleEmployee, RoleAssistantManager, RoleManager, RoleAdmin, RoleSuperAdmin:
		return Role(s), nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// IsBoutiqueLocked reports whether the role is pinned to the session boutique regardless of input.
func (r Role) IsBoutiqueLocked() bool {
	switch r {
	case RoleEmployee, RoleAssistantManager:
		return true
	case RoleManager, RoleAdmin, RoleSuperAdmin:
		return false
	default:
		return true
	}
}

// CanEditSchedule reports whether the role may write shift overrides and schedule locks.
func (r Role) CanEditSchedule() bool {
	switch r {
	case RoleManager, RoleAssistantManager, RoleAdmin, RoleSuperAdmin:
		return true
	case RoleEmployee:
		return false
	default:
		return false
	}
}

// CanLockSchedule reports whether the role may lock or unlock days and weeks.
func (r Role) CanLockSchedule() bool {
	switch r {
	case RoleManager, RoleAdmin, RoleSuperAdmin:
		return true
	case RoleEmployee, RoleAssistantManager:
		return false
	default:
		return false
	}
}

// CanDecideLeave reports whether the role may approve or reject leave requests.
func (r Role) CanDecideLeave() bool {
	switch r {
	case RoleManager, RoleAdmin, RoleSuperAdmin:
		return true
	case RoleEmployee, RoleAssistantManager:
		return false
	default:
		return false
	}
}

// CanEscalateLeave reports whether the role may escalate a pending leave request to ADMIN.
func (r Role) CanEscalateLeave() bool {
	switch r {
	case RoleManager, RoleAssistantManager:
		return true
	case RoleEmployee, RoleAdmin, RoleSuperAdmin:
		return false
	default:
		return false
	}
}

// CanManageTargets reports whether the role may set, generate or reset monthly targets.
func (r Role) CanManageTargets() bool {
	switch r {
	case RoleManager, RoleAdmin, RoleSuperAdmin:
		return true
	case RoleEmployee, RoleAssistantManager:
		return false
	default:
		return false
	}
}

// CanManageSalesLedger reports whether the role may write summaries, lines and lock the ledger.
func (r Role) CanManageSalesLedger() bool {
	switch r {
	case RoleManager, RoleAssistantManager, RoleAdmin, RoleSuperAdmin:
		return true
	case RoleEmployee:
		return false
	default:
		return false
	}
}

// CanManageEmployees reports whether the role may deactivate employees and assign zones.
func (r Role) CanManageEmployees() bool {
	switch r {
	case RoleManager, RoleAdmin, RoleSuperAdmin:
		return true
	case RoleEmployee, RoleAssistantManager:
		return false
	default:
		return false
	}
}

// CanEditCoverageRules reports whether the role may change coverage rules. Only ADMIN can.
func (r Role) CanEditCoverageRules() bool {
	switch r {
	case RoleAdmin:
		return true
	case RoleEmployee, RoleAssistantManager, RoleManager, RoleSuperAdmin:
		return false
	default:
		return false
	}
}

// Identity is the already-authenticated caller handed to the core by the session layer.
type Identity struct {
	UserID     string `json:"userId"`
	Role       Role   `json:"role"`
	BoutiqueID string `json:"boutiqueId"`
	EmpID      string `json:"empId"`
}
