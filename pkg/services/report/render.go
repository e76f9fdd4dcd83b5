// Package report renders a scan report into the text body carried on the
// notification channel.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/fin-tools/tier-sentinel/pkg/models/domain"
)

const subject = "Tier Sentinel — Inventory Report"

// Render formats the report as a markdown-ish text block: a timestamped
// title followed by one block per section. The three section states render
// distinctly so a reader can tell "nothing there" from "could not look".
func Render(r domain.ScanReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**Tier Sentinel Inventory — %s**\n", r.GeneratedAt.Format(time.RFC3339))
	for _, s := range r.Sections {
		b.WriteString(renderSection(s))
	}
	return b.String()
}

func renderSection(s domain.Section) string {
	if s.Err != nil {
		return fmt.Sprintf("\n### %s: ⚠️ ERROR: %s\n", s.Title, s.Err)
	}
	if len(s.Items) == 0 {
		return fmt.Sprintf("\n### %s: ✅ none found\n", s.Title)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "\n### %s: (%d)\n", s.Title, len(s.Items))
	for _, item := range s.Items {
		fmt.Fprintf(&b, "- %s\n", item)
	}
	return b.String()
}

// Compose wraps the rendered report into the alert emitted at the end of a
// scan. The message is built only once every section is in.
func Compose(r domain.ScanReport) domain.AlertMessage {
	return domain.AlertMessage{
		Subject:   subject,
		Body:      Render(r),
		Timestamp: r.GeneratedAt,
	}
}
