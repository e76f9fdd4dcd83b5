// Package api holds the wire-level payloads returned by the Lambda handlers.
package api

// ScanResult is returned by the hunter invocation.
type ScanResult struct {
	OK        bool   `json:"ok"`
	Sections  int    `json:"sections"`
	Flagged   int    `json:"flagged"`
	Errors    int    `json:"errors"`
	Published bool   `json:"published"`
	Timestamp string `json:"timestamp"`
}

// EnforceResult is returned by the guardian invocation. StatusCode is 200
// when the event was processed (acted or not) and 500 when processing
// itself failed; either way the invocation returns instead of raising.
type EnforceResult struct {
	StatusCode int      `json:"statusCode"`
	Message    string   `json:"message"`
	Actions    []string `json:"prevented_actions"`
	Timestamp  string   `json:"timestamp"`
	Error      string   `json:"error,omitempty"`
}

// NotifyResult is returned by the notifier invocation.
type NotifyResult struct {
	OK        bool `json:"ok"`
	Records   int  `json:"records"`
	Attempted int  `json:"attempted"`
	Failed    int  `json:"failed"`
}
