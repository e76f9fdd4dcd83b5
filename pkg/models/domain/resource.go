package domain

// ResourceCategory identifies a billable resource family watched by the scanner.
type ResourceCategory string

const (
	CategoryComputeInstance  ResourceCategory = "compute-instance"
	CategoryBlockVolume      ResourceCategory = "block-volume"
	CategoryElasticIP        ResourceCategory = "elastic-ip"
	CategoryNATGateway       ResourceCategory = "nat-gateway"
	CategoryLoadBalancer     ResourceCategory = "load-balancer"
	CategoryRelationalDB     ResourceCategory = "relational-db"
	CategoryAnalyticsCluster ResourceCategory = "analytics-cluster"
	CategoryLogGroup         ResourceCategory = "log-group"
	CategoryObjectStore      ResourceCategory = "object-store-bucket"
)

// ResourceDescriptor is a point-in-time snapshot of a single cloud resource.
// It is never retained past the invocation that built it.
type ResourceDescriptor struct {
	Category   ResourceCategory
	ID         string
	Attributes map[string]string
}

type Severity string

const (
	SeverityInformational Severity = "informational"
	SeverityBillable      Severity = "billable"
	SeverityNonCompliant  Severity = "non-compliant"
)

// Remediation records what, if anything, was done about a non-compliant resource.
type Remediation string

const (
	RemediationNone       Remediation = "none"
	RemediationStopped    Remediation = "stopped"
	RemediationTerminated Remediation = "terminated"
	RemediationStopFailed Remediation = "stop-failed"
)

// Finding is one classification result for a resource or a whole category.
type Finding struct {
	Category    ResourceCategory
	Severity    Severity
	Description string
	Remediation Remediation
}
