package domain

const (
	RoleUser              = "user"
	RoleAdmin             = "admin"
	RoleComplianceOfficer = "complianceOfficer"
)

// Transaction statuses form a strict order: pending < succeeded < completed.
// "failed" sits outside the order and is terminal.
const (
	TxStatusPending   = "pending"
	TxStatusSucceeded = "succeeded"
	TxStatusCompleted = "completed"
	TxStatusFailed    = "failed"
)

var txStatusRank = map[string]int{
	TxStatusPending:   0,
	TxStatusSucceeded: 1,
	TxStatusCompleted: 2,
}

// TxStatusRank returns the rank of a non-terminal status and whether the
// status participates in the monotonic order at all ("failed" does not).
func TxStatusRank(status string) (int, bool) {
	r, ok := txStatusRank[status]
	return r, ok
}

// TxStatusesBelow lists every status strictly below the given one. Used to
// build the guarded conditional update that enforces monotonicity.
func TxStatusesBelow(status string) []string {
	target, ok := txStatusRank[status]
	if !ok {
		return nil
	}
	below := make([]string, 0, target)
	for s, r := range txStatusRank {
		if r < target {
			below = append(below, s)
		}
	}
	return below
}

const (
	SeverityHigh = "High"
	SeverityLow  = "Low"
)

// SeverityThreshold is the strict lower bound on impact*likelihood for a
// High severity classification (product == threshold is still Low).
const SeverityThreshold = 50.0
