package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/florijnhq/florijn/internal/model"
	"github.com/florijnhq/florijn/internal/service"
)

// AuditEntry is a persisted classification audit row.
type AuditEntry struct {
	CreatedAt     time.Time
	ID            string
	TransactionID string
	UserID        string
	GrootboekCode string
	BTWPercentage model.TaxRate
	Method        model.ClassificationMethod
	RuleID        *int64
	Confidence    float64
}

// RecordClassification writes one audit row for a classification.
// Callers treat this as fire-and-forget; the engine logs failures and
// keeps going.
func (s *SQLiteStorage) RecordClassification(ctx context.Context, record service.AuditRecord) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(record.UserID, "record.UserID"); err != nil {
		return err
	}

	query := `
		INSERT INTO classification_audit (
			id, transaction_id, user_id, rule_id,
			grootboek_code, btw_percentage, method, confidence
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		uuid.NewString(), nullString(record.TransactionID), record.UserID, record.RuleID,
		nullString(record.GrootboekCode), record.BTWPercentage.Code(),
		string(record.Method), record.Confidence,
	)
	if err != nil {
		return fmt.Errorf("failed to record classification: %w", err)
	}

	return nil
}

// GetAuditTrail returns a user's audit rows, newest first.
func (s *SQLiteStorage) GetAuditTrail(ctx context.Context, userID string, limit int) ([]AuditEntry, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 100
	}

	query := `
		SELECT id, transaction_id, user_id, rule_id, grootboek_code,
			btw_percentage, method, confidence, created_at
		FROM classification_audit
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`

	rows, err := s.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit trail: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []AuditEntry
	for rows.Next() {
		var entry AuditEntry
		var txnID, grootboek sql.NullString
		var btwCode, method string
		var ruleID *int64

		scanErr := rows.Scan(&entry.ID, &txnID, &entry.UserID, &ruleID,
			&grootboek, &btwCode, &method, &entry.Confidence, &entry.CreatedAt)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", scanErr)
		}

		rate, parseErr := model.ParseTaxRate(btwCode)
		if parseErr != nil {
			return nil, fmt.Errorf("audit entry %s has invalid btw_percentage: %w", entry.ID, parseErr)
		}

		entry.TransactionID = txnID.String
		entry.GrootboekCode = grootboek.String
		entry.BTWPercentage = rate
		entry.Method = model.ClassificationMethod(method)
		entry.RuleID = ruleID
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate audit trail: %w", err)
	}

	return entries, nil
}
