package domain

const (
	RoleUser      = "USER"
	RoleAdmin     = "ADMIN"
	RoleSuperuser = "SUPERUSER"
)

// roleRank orders roles so a higher role implies every lower one.
var roleRank = map[string]int{
	RoleUser:      1,
	RoleAdmin:     2,
	RoleSuperuser: 3,
}

// RoleAtLeast reports whether actual satisfies the required role.
// Unknown or empty roles never satisfy anything.
func RoleAtLeast(actual, required string) bool {
	a, ok := roleRank[actual]
	if !ok {
		return false
	}
	r, ok := roleRank[required]
	if !ok {
		return false
	}
	return a >= r
}

const (
	SubmissionStatusPending  = "pending"
	SubmissionStatusApproved = "approved"
	SubmissionStatusRejected = "rejected"
)

const (
	SubmissionTypeNew    = "new"
	SubmissionTypeUpdate = "update"
)

const (
	SubscriptionStatusFree    = "free"
	SubscriptionStatusTrial   = "trial"
	SubscriptionStatusActive  = "active"
	SubscriptionStatusExpired = "expired"
)

// Submission quotas per user.
const (
	MaxPendingSubmissions = 5
	MaxDailySubmissions   = 10
)

// BASE exit types for logbook entries.
var ExitTypes = []string{"Building", "Antenna", "Span", "Earth"}

func IsValidExitType(t string) bool {
	for _, e := range ExitTypes {
		if e == t {
			return true
		}
	}
	return false
}
