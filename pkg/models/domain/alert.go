package domain

import "time"

// AlertMessage is the unit handed to the notification channel. It is only
// constructed once all findings or remediation attempts for an invocation
// have been gathered.
type AlertMessage struct {
	Subject   string
	Body      string
	Timestamp time.Time
}

// TargetKind distinguishes the configured delivery endpoints of the fan-out.
type TargetKind string

const (
	TargetDiscord TargetKind = "discord"
	TargetSlack   TargetKind = "slack"
)
