package types

// Status tracks the lifecycle of a persisted resource (e.g. pricing rule, override)
// and determines whether it is included in queries.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusDeleted  Status = "deleted"
)
