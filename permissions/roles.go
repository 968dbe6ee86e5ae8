package permissions

import (
	"slices"

	"lodgehub/shared/constant"
)

// rolePermissions maps each staff role to the capabilities it grants. Roles
// with the "global_access" capability see every lodge; the rest are scoped
// to their assigned lodges.
var rolePermissions = map[string][]string{
	constant.RoleAdmin: {
		"view_dashboard", "manage_lodges", "manage_bookings", "manage_customers",
		"manage_staff", "manage_invoices", "manage_payments", "view_reports",
		"manage_settings", "view_analytics", "manage_rooms", "manage_pricing",
		"system_admin", "user_management", "global_access",
	},
	constant.RoleManager: {
		"view_dashboard", "manage_lodges", "manage_bookings", "manage_customers",
		"view_staff", "manage_staff_assigned", "manage_invoices", "manage_payments",
		"view_reports", "manage_rooms", "lodge_management",
	},
	constant.RoleSupervisor: {
		"view_dashboard", "view_lodges", "manage_bookings", "manage_customers",
		"view_staff", "manage_staff_assigned", "create_invoices", "view_payments",
		"manage_rooms", "view_reports_assigned",
	},
	constant.RoleReceptionist: {
		"view_dashboard", "view_lodges_assigned", "manage_bookings_assigned",
		"manage_customers_assigned", "create_invoices", "view_payments_assigned",
		"manage_rooms_assigned", "checkin_checkout",
	},
	constant.RoleCleaner: {
		"view_dashboard", "view_rooms_assigned", "view_bookings_assigned",
		"update_room_status", "cleaning_schedule", "maintenance_requests",
	},
	constant.RoleMaintenance: {
		"view_dashboard", "view_rooms_assigned", "update_room_status",
		"maintenance_schedule", "maintenance_reports", "inventory_management",
	},
}

// For returns the permission set granted by the given role. Unknown roles
// get no permissions.
func For(role string) []string {
	perms, ok := rolePermissions[role]
	if !ok {
		return nil
	}

	return slices.Clone(perms)
}

// HasPermission reports whether the given role grants the named permission.
func HasPermission(role, permission string) bool {
	return slices.Contains(rolePermissions[role], permission)
}

// IsValidRole reports whether the role is one of the known staff roles.
func IsValidRole(role string) bool {
	_, ok := rolePermissions[role]

	return ok
}
