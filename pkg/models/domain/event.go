package domain

// LifecycleEvent is the enforcer's view of an inbound resource-lifecycle
// event. Source and DetailType mirror the bus event envelope; Detail carries
// the fields the enforcer reads from the payload.
type LifecycleEvent struct {
	Source     string
	DetailType string
	Detail     LifecycleDetail
}

// LifecycleDetail holds the payload fields shared across resource families.
// Compute events populate InstanceID and State; database events populate
// SourceID.
type LifecycleDetail struct {
	InstanceID string `json:"instance-id"`
	State      string `json:"state"`
	SourceID   string `json:"source-id"`
}

// ActionKind is a remediation call the enforcer can issue.
type ActionKind string

const (
	ActionStop      ActionKind = "stop"
	ActionTerminate ActionKind = "terminate"
	ActionStopDB    ActionKind = "stop-db"
)

// RemediationAction records one call issued against a non-compliant resource.
type RemediationAction struct {
	Kind       ActionKind
	ResourceID string
	Detail     string
}

// EnforcementResult is the outcome of classifying one lifecycle event.
// Finding is nil for compliant resources and unrecognized events.
type EnforcementResult struct {
	Finding *Finding
	Actions []RemediationAction
}

// Acted reports whether any remediation call was issued.
func (r EnforcementResult) Acted() bool {
	return len(r.Actions) > 0
}
