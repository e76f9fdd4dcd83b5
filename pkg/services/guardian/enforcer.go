// Package guardian reacts to resource-lifecycle events in real time. A
// resource outside the allow-list is shut down before it can accrue material
// cost; everything else is left untouched.
package guardian

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/rds"
	"github.com/rs/zerolog"

	"github.com/fin-tools/tier-sentinel/pkg/models/domain"
	"github.com/fin-tools/tier-sentinel/pkg/services/config"
	"github.com/fin-tools/tier-sentinel/pkg/services/policy"
)

const (
	sourceEC2 = "aws.ec2"
	sourceRDS = "aws.rds"

	// Matched as substrings so minor renames of the bus detail-type keep
	// matching.
	detailTypeEC2 = "EC2 Instance"
	detailTypeRDS = "RDS DB Instance"

	stateRunning = "running"
)

// Enforcer classifies one lifecycle event against the allow-list policy and
// issues the remediation calls for violations. It holds no state between
// events; a redelivered event is remediated again.
type Enforcer struct {
	compute ComputeAPI
	db      DatabaseAPI
	rules   map[domain.ResourceCategory]policy.Rule
}

// NewEnforcer builds an Enforcer with clients from the shared AWS config.
func NewEnforcer(cfg awssdk.Config, settings config.Settings) *Enforcer {
	return New(ec2.NewFromConfig(cfg), rds.NewFromConfig(cfg), policy.Rules(settings))
}

// New builds an Enforcer over the given clients.
func New(compute ComputeAPI, db DatabaseAPI, rules map[domain.ResourceCategory]policy.Rule) *Enforcer {
	return &Enforcer{compute: compute, db: db, rules: rules}
}

// Enforce processes one event. Unrecognized source/detail-type combinations
// and compliant resources are silent no-ops. Remediation-call failures are
// returned to the caller after every due call has been issued; the actions
// that did land are still recorded in the result.
func (e *Enforcer) Enforce(ctx context.Context, event domain.LifecycleEvent) (domain.EnforcementResult, error) {
	switch {
	case event.Source == sourceEC2 && strings.Contains(event.DetailType, detailTypeEC2):
		return e.enforceCompute(ctx, event.Detail)
	case event.Source == sourceRDS && strings.Contains(event.DetailType, detailTypeRDS):
		return e.enforceDatabase(ctx, event.Detail)
	default:
		return domain.EnforcementResult{}, nil
	}
}

// enforceCompute handles an instance state change. Only transitions into the
// running state matter: a violating instance gets a stop and then a
// terminate, the terminate deliberately not gated on the stop's outcome. A
// stop alone leaves the instance resumable; issuing both guarantees the
// spend ends even at the cost of a terminate racing an already-stopped
// instance.
func (e *Enforcer) enforceCompute(ctx context.Context, detail domain.LifecycleDetail) (domain.EnforcementResult, error) {
	var result domain.EnforcementResult
	logger := zerolog.Ctx(ctx)

	if detail.State != stateRunning || detail.InstanceID == "" {
		return result, nil
	}

	resp, err := e.compute.DescribeInstances(ctx, &ec2.DescribeInstancesInput{
		InstanceIds: []string{detail.InstanceID},
	})
	if err != nil {
		return result, fmt.Errorf("failed to describe instance %s: %w", detail.InstanceID, err)
	}
	if len(resp.Reservations) == 0 || len(resp.Reservations[0].Instances) == 0 {
		return result, fmt.Errorf("instance not found: %s", detail.InstanceID)
	}

	descriptor := domain.ResourceDescriptor{
		Category:   domain.CategoryComputeInstance,
		ID:         detail.InstanceID,
		Attributes: map[string]string{"instance-type": string(resp.Reservations[0].Instances[0].InstanceType)},
	}
	instanceType := descriptor.Attributes["instance-type"]
	if e.rules[domain.CategoryComputeInstance].Allows(instanceType) {
		logger.Debug().
			Str("instance_id", detail.InstanceID).
			Str("instance_type", instanceType).
			Msg("instance type allowed, no action")
		return result, nil
	}

	logger.Info().
		Str("instance_id", detail.InstanceID).
		Str("instance_type", instanceType).
		Msg("instance type not on allow-list, stopping and terminating")

	_, stopErr := e.compute.StopInstances(ctx, &ec2.StopInstancesInput{
		InstanceIds: []string{detail.InstanceID},
	})
	if stopErr == nil {
		result.Actions = append(result.Actions, domain.RemediationAction{
			Kind:       domain.ActionStop,
			ResourceID: detail.InstanceID,
			Detail:     fmt.Sprintf("STOPPED expensive EC2 instance %s (%s)", detail.InstanceID, instanceType),
		})
	}

	_, termErr := e.compute.TerminateInstances(ctx, &ec2.TerminateInstancesInput{
		InstanceIds: []string{detail.InstanceID},
	})
	if termErr == nil {
		result.Actions = append(result.Actions, domain.RemediationAction{
			Kind:       domain.ActionTerminate,
			ResourceID: detail.InstanceID,
			Detail:     fmt.Sprintf("TERMINATED %s to prevent further charges", detail.InstanceID),
		})
	}

	remediation := domain.RemediationStopFailed
	switch {
	case termErr == nil:
		remediation = domain.RemediationTerminated
	case stopErr == nil:
		remediation = domain.RemediationStopped
	}
	result.Finding = &domain.Finding{
		Category:    descriptor.Category,
		Severity:    domain.SeverityNonCompliant,
		Description: fmt.Sprintf("instance %s (%s) is not on the free-tier allow-list", descriptor.ID, instanceType),
		Remediation: remediation,
	}

	return result, errors.Join(stopErr, termErr)
}

// enforceDatabase handles a database lifecycle event. Violating instances
// are stopped, never terminated: the data loss would be irreversible.
func (e *Enforcer) enforceDatabase(ctx context.Context, detail domain.LifecycleDetail) (domain.EnforcementResult, error) {
	var result domain.EnforcementResult
	logger := zerolog.Ctx(ctx)

	if detail.SourceID == "" {
		return result, nil
	}

	resp, err := e.db.DescribeDBInstances(ctx, &rds.DescribeDBInstancesInput{
		DBInstanceIdentifier: aws.String(detail.SourceID),
	})
	if err != nil {
		return result, fmt.Errorf("failed to describe DB instance %s: %w", detail.SourceID, err)
	}
	if len(resp.DBInstances) == 0 {
		return result, fmt.Errorf("DB instance not found: %s", detail.SourceID)
	}

	descriptor := domain.ResourceDescriptor{
		Category:   domain.CategoryRelationalDB,
		ID:         detail.SourceID,
		Attributes: map[string]string{"db-class": aws.ToString(resp.DBInstances[0].DBInstanceClass)},
	}
	dbClass := descriptor.Attributes["db-class"]
	if e.rules[domain.CategoryRelationalDB].Allows(dbClass) {
		logger.Debug().
			Str("db_instance_id", detail.SourceID).
			Str("db_class", dbClass).
			Msg("DB class allowed, no action")
		return result, nil
	}

	logger.Info().
		Str("db_instance_id", detail.SourceID).
		Str("db_class", dbClass).
		Msg("DB class not on allow-list, stopping")

	finding := domain.Finding{
		Category:    descriptor.Category,
		Severity:    domain.SeverityNonCompliant,
		Description: fmt.Sprintf("DB instance %s (%s) is not on the free-tier allow-list", descriptor.ID, dbClass),
	}

	_, err = e.db.StopDBInstance(ctx, &rds.StopDBInstanceInput{
		DBInstanceIdentifier: aws.String(detail.SourceID),
	})
	if err != nil {
		finding.Remediation = domain.RemediationStopFailed
		result.Finding = &finding
		return result, fmt.Errorf("failed to stop DB instance %s: %w", detail.SourceID, err)
	}

	finding.Remediation = domain.RemediationStopped
	result.Finding = &finding
	result.Actions = append(result.Actions, domain.RemediationAction{
		Kind:       domain.ActionStopDB,
		ResourceID: detail.SourceID,
		Detail:     fmt.Sprintf("STOPPED expensive RDS instance %s (%s)", detail.SourceID, dbClass),
	})
	return result, nil
}
