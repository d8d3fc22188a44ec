package auth

// Capability names an action a role may or may not perform. Services consult
// the matrix through Can instead of branching on roles inline, so the role
// rules stay in one auditable place.
type Capability string

const (
	CapListOwnBookings   Capability = "list_own_bookings"
	CapListAllBookings   Capability = "list_all_bookings"
	CapCreateBooking     Capability = "create_booking"
	CapOverrideBooking   Capability = "override_booking"
	CapApproveBooking    Capability = "approve_booking"
	CapRejectBooking     Capability = "reject_booking"
	CapCancelOwnBooking  Capability = "cancel_own_booking"
	CapCancelAnyBooking  Capability = "cancel_any_booking"
	CapManageResources   Capability = "manage_resources"
	CapViewResources     Capability = "view_resources"
	CapAutoApproveOnBook Capability = "auto_approve_on_book"
)

// capabilityMatrix is the single source of truth for role permissions.
var capabilityMatrix = map[Capability]map[Role]bool{
	CapListOwnBookings:   {RoleStudent: true, RoleStaff: true, RoleAdmin: true},
	CapListAllBookings:   {RoleAdmin: true},
	CapCreateBooking:     {RoleStudent: true, RoleStaff: true, RoleAdmin: true},
	CapOverrideBooking:   {RoleAdmin: true},
	CapApproveBooking:    {RoleAdmin: true},
	CapRejectBooking:     {RoleAdmin: true},
	CapCancelOwnBooking:  {RoleStudent: true, RoleStaff: true, RoleAdmin: true},
	CapCancelAnyBooking:  {RoleAdmin: true},
	CapManageResources:   {RoleAdmin: true},
	CapViewResources:     {RoleStudent: true, RoleStaff: true, RoleAdmin: true},
	CapAutoApproveOnBook: {RoleAdmin: true},
}

// Can reports whether the role holds the capability. Unknown roles and
// unknown capabilities are denied.
func Can(role Role, cap Capability) bool {
	allowed, ok := capabilityMatrix[cap]
	if !ok {
		return false
	}
	return allowed[role]
}
