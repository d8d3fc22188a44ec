package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCan(t *testing.T) {
	cases := []struct {
		cap     Capability
		student bool
		staff   bool
		admin   bool
	}{
		{CapListOwnBookings, true, true, true},
		{CapListAllBookings, false, false, true},
		{CapCreateBooking, true, true, true},
		{CapOverrideBooking, false, false, true},
		{CapApproveBooking, false, false, true},
		{CapRejectBooking, false, false, true},
		{CapCancelOwnBooking, true, true, true},
		{CapCancelAnyBooking, false, false, true},
		{CapManageResources, false, false, true},
		{CapViewResources, true, true, true},
		{CapAutoApproveOnBook, false, false, true},
	}

	for _, tc := range cases {
		t.Run(string(tc.cap), func(t *testing.T) {
			assert.Equal(t, tc.student, Can(RoleStudent, tc.cap), "student")
			assert.Equal(t, tc.staff, Can(RoleStaff, tc.cap), "staff")
			assert.Equal(t, tc.admin, Can(RoleAdmin, tc.cap), "admin")
		})
	}
}

func TestCanDeniesUnknowns(t *testing.T) {
	assert.False(t, Can(Role("JANITOR"), CapCreateBooking))
	assert.False(t, Can(Role(""), CapViewResources))
	assert.False(t, Can(RoleAdmin, Capability("teleport")))
}
