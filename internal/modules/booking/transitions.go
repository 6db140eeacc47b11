package booking

import "github.com/lusakatech/rentiva-backend/internal/modules/user"

// RoleSystem marks transitions driven by the platform itself: payment
// capture, hold expiry, and completion after return.
const RoleSystem user.Role = "SYSTEM"

type transition struct {
	From Status
	To   Status
}

// transitionTable is the single source of truth for the lifecycle state
// machine: which roles may move a booking between two states. Anything not
// listed is rejected, including every move out of a terminal state.
var transitionTable = map[transition][]user.Role{
	{StatusPending, StatusConfirmed}: {RoleSystem},
	{StatusPending, StatusApproved}:  {user.RoleProvider, user.RoleAdmin},
	{StatusPending, StatusRejected}:  {user.RoleProvider, user.RoleAdmin},
	{StatusPending, StatusCancelled}: {user.RoleCustomer, user.RoleAdmin, RoleSystem},

	{StatusConfirmed, StatusApproved}:  {user.RoleProvider, user.RoleAdmin},
	{StatusConfirmed, StatusCancelled}: {user.RoleCustomer, user.RoleAdmin},

	{StatusApproved, StatusPickedUp}: {user.RoleProvider, user.RoleAdmin},
	{StatusPickedUp, StatusInUse}:    {user.RoleProvider, user.RoleAdmin},
	{StatusInUse, StatusReturned}:    {user.RoleProvider, user.RoleAdmin},

	{StatusReturned, StatusCompleted}: {RoleSystem, user.RoleAdmin},
}

// CanTransition reports whether role may move a booking from one status to
// another.
func CanTransition(from, to Status, role user.Role) bool {
	for _, allowed := range transitionTable[transition{from, to}] {
		if allowed == role {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition leaves the status.
func IsTerminal(s Status) bool {
	switch s {
	case StatusCompleted, StatusCancelled, StatusRejected:
		return true
	}
	return false
}

// releasesStock reports whether entering the status hands the booking's
// reserved units back to inventory.
func releasesStock(s Status) bool {
	return IsTerminal(s)
}
