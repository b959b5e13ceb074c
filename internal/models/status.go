package models

// Status is the order lifecycle state. It carries both the approval outcome
// and the details-submitted marker on a single axis; transition guards live
// in the lifecycle engine.
type Status string

const (
	StatusPending          Status = "pending"
	StatusApproved         Status = "approved"
	StatusRejected         Status = "rejected"
	StatusDetailsSubmitted Status = "details_submitted"
)

// reviewable lists the states from which staff may still approve or reject.
var reviewable = map[Status]bool{
	StatusPending:          true,
	StatusDetailsSubmitted: true,
}

// Reviewable reports whether approve/reject actions are still valid.
// Approved and rejected are terminal for review actions only; link
// generation and notifications remain available.
func (s Status) Reviewable() bool {
	return reviewable[s]
}

// Valid reports whether s is a known lifecycle state.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusDetailsSubmitted:
		return true
	}
	return false
}
