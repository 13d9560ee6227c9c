// Package engine orchestrates the classification of transactions:
// tax-rate detection, user rule matching, trust scoring, and
// best-effort audit writes.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/florijnhq/florijn/internal/btw"
	"github.com/florijnhq/florijn/internal/common"
	"github.com/florijnhq/florijn/internal/model"
	"github.com/florijnhq/florijn/internal/rules"
	"github.com/florijnhq/florijn/internal/service"
)

// Engine runs the full classification pipeline over transaction batches.
type Engine struct {
	store      service.RuleStore
	audit      service.AuditSink
	classifier *btw.Classifier
	config     Config
}

// Config holds configuration options for the engine.
type Config struct {
	// Workers caps the number of concurrent classification goroutines
	// for large batches. Classification is independent per transaction.
	Workers int
	// ParallelThreshold is the batch size above which classification
	// fans out across workers.
	ParallelThreshold int
	// AuditRetry configures the best-effort audit writes.
	AuditRetry service.RetryOptions
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() Config {
	return Config{
		Workers:           4,
		ParallelThreshold: 500,
		AuditRetry: service.RetryOptions{
			MaxAttempts:  2,
			InitialDelay: 50 * time.Millisecond,
			MaxDelay:     time.Second,
			Multiplier:   2.0,
		},
	}
}

// New creates a new engine with the given dependencies. The audit sink
// may be nil, in which case no audit records are written.
func New(store service.RuleStore, audit service.AuditSink, classifier *btw.Classifier) *Engine {
	return NewWithConfig(store, audit, classifier, DefaultConfig())
}

// NewWithConfig creates a new engine with custom configuration.
func NewWithConfig(store service.RuleStore, audit service.AuditSink, classifier *btw.Classifier, config Config) *Engine {
	if config.Workers <= 0 {
		config.Workers = 1
	}
	return &Engine{
		store:      store,
		audit:      audit,
		classifier: classifier,
		config:     config,
	}
}

// ClassifyTransactions runs the pipeline over a batch. Rules are
// fetched once, before the per-transaction loop; the only I/O inside
// the loop is the best-effort audit write, which happens after each
// transaction's pure classification. Cancellation is honored between
// transactions, never mid-transaction.
func (e *Engine) ClassifyTransactions(ctx context.Context, userID string, txns []model.Transaction) ([]model.ClassifiedTransaction, error) {
	if len(txns) == 0 {
		return nil, common.ErrNoTransactions
	}

	ruleSet, err := e.fetchRules(ctx, userID)
	if err != nil {
		return nil, err
	}

	slog.Info("Classifying transactions",
		"count", len(txns),
		"rules", len(ruleSet),
		"user_id", userID)

	var classified []model.ClassifiedTransaction
	if len(txns) >= e.config.ParallelThreshold && e.config.Workers > 1 {
		var err error
		classified, err = e.classifyParallel(ctx, txns, ruleSet)
		if err != nil {
			return nil, err
		}
	} else {
		classified = make([]model.ClassifiedTransaction, 0, len(txns))
		for i := range txns {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}
			classified = append(classified, e.classifyOne(&txns[i], ruleSet))
		}
	}

	e.recordAudit(ctx, userID, classified)

	return classified, nil
}

// ClassifyOne runs the pipeline over a single transaction.
func (e *Engine) ClassifyOne(ctx context.Context, userID string, txn model.Transaction) (model.ClassifiedTransaction, error) {
	ruleSet, err := e.fetchRules(ctx, userID)
	if err != nil {
		return model.ClassifiedTransaction{}, err
	}

	result := e.classifyOne(&txn, ruleSet)
	e.recordAudit(ctx, userID, []model.ClassifiedTransaction{result})
	return result, nil
}

// fetchRules loads the user's active rules and applies the defensive
// priority sort, so the matcher never depends on store iteration order.
func (e *Engine) fetchRules(ctx context.Context, userID string) ([]model.CategorizationRule, error) {
	if e.store == nil {
		return nil, nil
	}

	ruleSet, err := e.store.GetActiveRules(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rules: %w", err)
	}
	rules.SortRules(ruleSet)
	return ruleSet, nil
}

// classifyOne is the pure per-transaction step: no I/O, no shared state.
func (e *Engine) classifyOne(txn *model.Transaction, ruleSet []model.CategorizationRule) model.ClassifiedTransaction {
	category := rules.Classify(txn, ruleSet)
	btwResult, trust := e.classifier.ClassifyTransaction(txn)

	return model.ClassifiedTransaction{
		Transaction: *txn,
		Category:    category,
		BTW:         btwResult,
		Trust:       trust,
	}
}

// classifyParallel fans classification out across workers. Results land
// in a pre-sized slice at the transaction's own index, so input order
// is preserved without a shared accumulator. Cancellation mid-batch is
// an error; a partially-filled slice must never reach the caller.
func (e *Engine) classifyParallel(ctx context.Context, txns []model.Transaction, ruleSet []model.CategorizationRule) ([]model.ClassifiedTransaction, error) {
	classified := make([]model.ClassifiedTransaction, len(txns))
	indexes := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < e.config.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				classified[i] = e.classifyOne(&txns[i], ruleSet)
			}
		}()
	}

	for i := range txns {
		select {
		case <-ctx.Done():
			close(indexes)
			wg.Wait()
			return nil, ctx.Err()
		case indexes <- i:
		}
	}
	close(indexes)
	wg.Wait()

	return classified, nil
}

// recordAudit writes one audit record per classified transaction,
// outside the hot loop. Failures are logged and never propagated.
func (e *Engine) recordAudit(ctx context.Context, userID string, classified []model.ClassifiedTransaction) {
	if e.audit == nil {
		return
	}

	var failures int
	for i := range classified {
		c := &classified[i]
		record := service.AuditRecord{
			TransactionID: c.Transaction.ID,
			UserID:        userID,
			RuleID:        c.Category.RuleID,
			GrootboekCode: c.Category.GrootboekCode,
			BTWPercentage: c.Category.BTWPercentage,
			Method:        c.Category.Method,
			Confidence:    c.Category.Confidence,
		}

		err := common.WithRetry(ctx, func() error {
			return e.audit.RecordClassification(ctx, record)
		}, e.config.AuditRetry)
		if err != nil {
			failures++
			slog.Warn("Failed to record classification audit",
				"transaction_id", c.Transaction.ID,
				"error", err)
		}
	}

	if failures > 0 {
		slog.Warn("Audit trail incomplete", "failed", failures, "total", len(classified))
	}
}
