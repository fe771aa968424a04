package booking

import "github.com/sinclaire-white/vehicle-renting-server/internal/domain/account"

// transitionPolicy is the role/target table deciding who may request a
// transition. Time and current-status gates are separate concerns and
// surface as conflicts, not permission failures.
var transitionPolicy = map[account.Role]map[Status]func(callerID int64, b *Booking) bool{
	account.RoleCustomer: {
		StatusCancelled: func(callerID int64, b *Booking) bool { return b.CustomerID == callerID },
	},
	account.RoleAdmin: {
		StatusReturned: func(int64, *Booking) bool { return true },
	},
}

// CanTransition reports whether the caller is permitted to move the booking
// to the target status.
func CanTransition(role account.Role, callerID int64, b *Booking, target Status) bool {
	byTarget, ok := transitionPolicy[role]
	if !ok {
		return false
	}
	allow, ok := byTarget[target]
	if !ok {
		return false
	}
	return allow(callerID, b)
}
