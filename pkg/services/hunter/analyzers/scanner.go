// Package analyzers implements the per-category resource scanners behind the
// inventory hunter. Each scanner queries one billable resource family and
// reports the resources that cost money against the free tier.
package analyzers

import (
	"context"

	"github.com/fin-tools/tier-sentinel/pkg/models/domain"
)

// CategoryScanner inspects one resource category. Scan returns the titled
// sections for the category; most scanners return one, the volume scanner
// adds an oversize sub-list when warranted. A returned error means the whole
// category query failed and is reported as an error marker by the caller.
type CategoryScanner interface {
	Category() domain.ResourceCategory
	Title() string
	Scan(ctx context.Context) ([]domain.Section, error)
}
