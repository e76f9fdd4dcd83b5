// Package hunter runs the scheduled inventory scan: every billable resource
// category is queried, classified against the free-tier policy, and the
// outcome assembled into a single report.
package hunter

import (
	"context"
	"time"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	elb "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancing"
	elbv2 "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"
	"github.com/aws/aws-sdk-go-v2/service/rds"
	"github.com/aws/aws-sdk-go-v2/service/redshift"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/fin-tools/tier-sentinel/pkg/models/domain"
	"github.com/fin-tools/tier-sentinel/pkg/services/config"
	"github.com/fin-tools/tier-sentinel/pkg/services/hunter/analyzers"
)

// Scanner runs every category scanner and assembles the scan report. Each
// category is an independent unit of work: its failure becomes an error
// marker in the report and never cancels or suppresses its siblings.
type Scanner struct {
	scanners []analyzers.CategoryScanner
}

// NewScanner builds a Scanner covering all watched categories, with the
// category order fixed to match the report layout.
func NewScanner(cfg awssdk.Config, settings config.Settings) *Scanner {
	ec2Client := ec2.NewFromConfig(cfg)

	return New(
		analyzers.NewNATGatewayScanner(ec2Client),
		analyzers.NewElasticIPScanner(ec2Client),
		analyzers.NewVolumeScanner(ec2Client, settings.MaxFreeEBSGiB),
		analyzers.NewLoadBalancerScanner(elbv2.NewFromConfig(cfg), elb.NewFromConfig(cfg)),
		analyzers.NewDBInstanceScanner(rds.NewFromConfig(cfg)),
		analyzers.NewClusterScanner(redshift.NewFromConfig(cfg)),
		analyzers.NewLogGroupScanner(cloudwatchlogs.NewFromConfig(cfg)),
		analyzers.NewBucketScanner(s3.NewFromConfig(cfg)),
	)
}

// New builds a Scanner over the given category scanners, reported in order.
func New(scanners ...analyzers.CategoryScanner) *Scanner {
	return &Scanner{scanners: scanners}
}

// Scan queries all categories concurrently and returns the assembled report.
// It never returns an error: a failing category is downgraded to an error
// marker for that category alone.
func (s *Scanner) Scan(ctx context.Context) domain.ScanReport {
	logger := zerolog.Ctx(ctx)

	results := make([][]domain.Section, len(s.scanners))
	g, gctx := errgroup.WithContext(ctx)

	for i, cs := range s.scanners {
		i, cs := i, cs
		g.Go(func() error {
			sections, err := cs.Scan(gctx)
			if err != nil {
				logger.Warn().
					Err(err).
					Str("category", string(cs.Category())).
					Msg("category scan failed")
				sections = []domain.Section{{
					Category: cs.Category(),
					Title:    cs.Title(),
					Err:      err,
				}}
			}
			results[i] = sections
			return nil
		})
	}
	// Scan goroutines always return nil; failures live in the results.
	_ = g.Wait()

	report := domain.ScanReport{GeneratedAt: time.Now().UTC()}
	for _, sections := range results {
		report.Sections = append(report.Sections, sections...)
	}

	logger.Info().
		Int("sections", len(report.Sections)).
		Int("flagged", report.Flagged()).
		Int("errors", report.Failed()).
		Msg("inventory scan complete")

	return report
}
