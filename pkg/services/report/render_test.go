package report

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/fin-tools/tier-sentinel/pkg/models/domain"
)

func TestRender(t *testing.T) {
	generated := time.Date(2026, 8, 25, 6, 0, 0, 0, time.UTC)

	t.Run("three section states render distinctly", func(t *testing.T) {
		r := domain.ScanReport{
			GeneratedAt: generated,
			Sections: []domain.Section{
				{Title: "NAT Gateways (expensive)", Items: []string{"nat-0abc"}},
				{Title: "Unattached Elastic IPs"},
				{Title: "RDS Instances (billable)", Err: errors.New("AccessDenied")},
			},
		}

		body := Render(r)

		assert.Contains(t, body, "### NAT Gateways (expensive): (1)\n- nat-0abc")
		assert.Contains(t, body, "### Unattached Elastic IPs: ✅ none found")
		assert.Contains(t, body, "### RDS Instances (billable): ⚠️ ERROR: AccessDenied")
		assert.NotContains(t, body, "### Unattached Elastic IPs: ⚠️")
		assert.NotContains(t, body, "### Unattached Elastic IPs: (")
	})

	t.Run("title line carries the scan timestamp", func(t *testing.T) {
		body := Render(domain.ScanReport{GeneratedAt: generated})
		assert.Contains(t, body, "2026-08-25T06:00:00Z")
	})
}

func TestCompose(t *testing.T) {
	r := domain.ScanReport{
		GeneratedAt: time.Date(2026, 8, 25, 6, 0, 0, 0, time.UTC),
		Sections: []domain.Section{
			{Title: "NAT Gateways (expensive)", Items: []string{"nat-0abc"}},
			{Title: "Unattached Elastic IPs"},
		},
	}

	msg := Compose(r)

	assert.Equal(t, "Tier Sentinel — Inventory Report", msg.Subject)
	assert.Equal(t, r.GeneratedAt, msg.Timestamp)
	assert.Contains(t, msg.Body, "nat-0abc")
	assert.Contains(t, msg.Body, "none found")
}
