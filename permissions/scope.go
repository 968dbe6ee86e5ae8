package permissions

import (
	"slices"

	"lodgehub/shared/constant"
)

// HasGlobalAccess reports whether the role sees every lodge. Admins and
// managers are not scoped to assigned lodges.
func HasGlobalAccess(role string) bool {
	return role == constant.RoleAdmin || role == constant.RoleManager
}

// CanAccessLodge reports whether a user with the given role and lodge
// assignments may operate on the given lodge.
func CanAccessLodge(role string, assignedLodges []string, lodgeID string) bool {
	if HasGlobalAccess(role) {
		return true
	}

	return slices.Contains(assignedLodges, lodgeID)
}

// AccessibleLodges filters allLodges down to the set the user may see.
// Globally-scoped roles see everything; the rest see the intersection with
// their assignments.
func AccessibleLodges(role string, assignedLodges, allLodges []string) []string {
	if HasGlobalAccess(role) {
		return allLodges
	}

	accessible := []string{}
	for _, lodgeID := range assignedLodges {
		if slices.Contains(allLodges, lodgeID) {
			accessible = append(accessible, lodgeID)
		}
	}

	return accessible
}

// CanManageStaff reports whether the actor may manage the given staff member.
// Admins and managers manage everyone. Supervisors manage staff who share at
// least one assigned lodge with them, or who report directly to them.
func CanManageStaff(actorRole, actorID string, actorLodges []string, staffLodges []string, staffSupervisorID string) bool {
	if HasGlobalAccess(actorRole) {
		return true
	}

	if actorRole != constant.RoleSupervisor {
		return false
	}

	if staffSupervisorID != "" && staffSupervisorID == actorID {
		return true
	}

	for _, lodgeID := range staffLodges {
		if slices.Contains(actorLodges, lodgeID) {
			return true
		}
	}

	return false
}
