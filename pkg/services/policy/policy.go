// Package policy holds the compiled-in compliance rules. Rules are static
// per resource category; only the allow-lists and the block-volume ceiling
// come from configuration.
package policy

import (
	"slices"

	"github.com/fin-tools/tier-sentinel/pkg/models/domain"
	"github.com/fin-tools/tier-sentinel/pkg/services/config"
)

// Action is what the enforcer does to a violating resource of a category.
type Action int

const (
	// ActionNone leaves the resource alone; the scanner only reports it.
	ActionNone Action = iota
	// ActionStopTerminate stops the resource, then terminates it.
	ActionStopTerminate
	// ActionStopOnly stops the resource but never terminates it, so the
	// data it holds stays recoverable.
	ActionStopOnly
)

// Rule is the policy for one resource category.
type Rule struct {
	Category    domain.ResourceCategory
	AllowList   []string
	MaxSizeGiB  int32
	OnViolation Action
}

// Allows reports whether the given sub-type (instance type, DB class) is on
// the category's free-tier allow-list.
func (r Rule) Allows(subtype string) bool {
	return slices.Contains(r.AllowList, subtype)
}

// Rules builds the per-category policy table from the loaded settings.
func Rules(cfg config.Settings) map[domain.ResourceCategory]Rule {
	return map[domain.ResourceCategory]Rule{
		domain.CategoryComputeInstance: {
			Category:    domain.CategoryComputeInstance,
			AllowList:   cfg.AllowedInstanceTypes,
			OnViolation: ActionStopTerminate,
		},
		domain.CategoryRelationalDB: {
			Category:    domain.CategoryRelationalDB,
			AllowList:   cfg.AllowedDBClasses,
			OnViolation: ActionStopOnly,
		},
		domain.CategoryBlockVolume: {
			Category:    domain.CategoryBlockVolume,
			MaxSizeGiB:  cfg.MaxFreeEBSGiB,
			OnViolation: ActionNone,
		},
	}
}
