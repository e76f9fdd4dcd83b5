// Package scan exposes the inventory scanner over the ops HTTP surface, for
// running and inspecting a scan on demand without waiting for the schedule.
package scan

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/fin-tools/tier-sentinel/pkg/models/domain"
	"github.com/fin-tools/tier-sentinel/pkg/services/report"
)

// Runner runs one inventory scan.
type Runner interface {
	Scan(ctx context.Context) domain.ScanReport
}

type Handler struct {
	runner Runner
}

func NewHandler(runner Runner) *Handler {
	return &Handler{runner: runner}
}

type scanResponse struct {
	Sections int    `json:"sections"`
	Flagged  int    `json:"flagged"`
	Errors   int    `json:"errors"`
	Report   string `json:"report"`
}

// RunScan triggers a scan and returns the rendered report. The scan itself
// never fails; per-category errors show up inside the report.
func (h *Handler) RunScan(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	scanReport := h.runner.Scan(ctx)

	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(scanResponse{
		Sections: len(scanReport.Sections),
		Flagged:  scanReport.Flagged(),
		Errors:   scanReport.Failed(),
		Report:   report.Render(scanReport),
	})
	if err != nil {
		logger.Error().
			Err(err).
			Msg("failed to encode scan response")
	}
}

// Health is a liveness probe.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
