// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/florijnhq/florijn/internal/model"
)

// RuleStore is the external store the category rule engine reads from.
// GetActiveRules must return only active rules, ordered by priority
// descending; the engine still applies a defensive sort on receipt.
type RuleStore interface {
	GetActiveRules(ctx context.Context, userID string) ([]model.CategorizationRule, error)
	CreateRule(ctx context.Context, rule *model.CategorizationRule) error
	SetRuleActive(ctx context.Context, userID string, id int64, active bool) error
	GetRules(ctx context.Context, userID string) ([]model.CategorizationRule, error)
}

// AuditRecord is one traceability row written after a classification.
type AuditRecord struct {
	TransactionID string
	UserID        string
	RuleID        *int64
	GrootboekCode string
	BTWPercentage model.TaxRate
	Method        model.ClassificationMethod
	Confidence    float64
}

// AuditSink receives classification audit records. Writes are
// fire-and-forget: failures are logged and never abort classification.
type AuditSink interface {
	RecordClassification(ctx context.Context, record AuditRecord) error
}

// RetryOptions configures retry behavior for external calls.
type RetryOptions struct {
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
	MaxAttempts  int
}
