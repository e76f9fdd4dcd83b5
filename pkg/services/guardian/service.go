package guardian

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/fin-tools/tier-sentinel/pkg/models/api"
	"github.com/fin-tools/tier-sentinel/pkg/models/domain"
	"github.com/fin-tools/tier-sentinel/pkg/services/alert"
)

const (
	subjectPrevention = "Tier Sentinel — Expensive Resource Blocked"
	subjectFailure    = "Tier Sentinel — Guardian Error"
)

// Service wraps the enforcer with the invocation-level contract: exactly one
// alert when actions were taken, exactly one failure alert when processing
// broke, silence otherwise, and a structured result in every case.
type Service struct {
	enforcer  *Enforcer
	publisher alert.Publisher
	region    string
}

func NewService(enforcer *Enforcer, publisher alert.Publisher, region string) *Service {
	return &Service{enforcer: enforcer, publisher: publisher, region: region}
}

// Handle processes one lifecycle event end to end. It never returns an
// error: a failing invocation still produces a notification attempt and a
// structured result.
func (s *Service) Handle(ctx context.Context, event domain.LifecycleEvent) api.EnforceResult {
	logger := zerolog.Ctx(ctx)
	now := time.Now().UTC()

	result, err := s.enforcer.Enforce(ctx, event)
	if err != nil {
		logger.Error().Err(err).Msg("guardian enforcement failed")
		failure := domain.AlertMessage{
			Subject:   subjectFailure,
			Body:      fmt.Sprintf("Guardian failed: %s", err),
			Timestamp: now,
		}
		if pubErr := s.publisher.Publish(ctx, failure); pubErr != nil {
			logger.Error().Err(pubErr).Msg("failed to publish guardian failure alert")
		}
		return api.EnforceResult{
			StatusCode: 500,
			Message:    "guardian enforcement failed",
			Actions:    actionDetails(result),
			Timestamp:  now.Format(time.RFC3339),
			Error:      err.Error(),
		}
	}

	if result.Finding != nil {
		logger.Info().
			Str("category", string(result.Finding.Category)).
			Str("severity", string(result.Finding.Severity)).
			Str("remediation", string(result.Finding.Remediation)).
			Msg(result.Finding.Description)
	}

	if result.Acted() {
		msg := s.composeSummary(result, now)
		if pubErr := s.publisher.Publish(ctx, msg); pubErr != nil {
			logger.Error().Err(pubErr).Msg("failed to publish prevention alert")
		}
	}

	return api.EnforceResult{
		StatusCode: 200,
		Message:    "guardian scan completed",
		Actions:    actionDetails(result),
		Timestamp:  now.Format(time.RFC3339),
	}
}

// composeSummary builds the single alert covering every action of this
// invocation.
func (s *Service) composeSummary(result domain.EnforcementResult, now time.Time) domain.AlertMessage {
	var b strings.Builder
	b.WriteString("Tier Sentinel Guardian — real-time cost prevention activated\n\n")
	b.WriteString("ACTIONS TAKEN:\n")
	for _, action := range result.Actions {
		fmt.Fprintf(&b, "- %s\n", action.Detail)
	}
	fmt.Fprintf(&b, "\nTIME: %s\nREGION: %s\n", now.Format(time.RFC3339), s.region)

	return domain.AlertMessage{
		Subject:   subjectPrevention,
		Body:      b.String(),
		Timestamp: now,
	}
}

func actionDetails(result domain.EnforcementResult) []string {
	details := make([]string, 0, len(result.Actions))
	for _, action := range result.Actions {
		details = append(details, action.Detail)
	}
	return details
}
