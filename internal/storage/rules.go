package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/florijnhq/florijn/internal/common"
	"github.com/florijnhq/florijn/internal/model"
)

const ruleColumns = `id, user_id, keyword, grootboek_code, btw_percentage,
	category_name, match_type, priority, is_active, created_at, updated_at`

// GetActiveRules returns a user's active rules ordered by priority
// descending. Priority ties are broken by ascending rule ID, so a
// re-fetch always yields the same evaluation order.
func (s *SQLiteStorage) GetActiveRules(ctx context.Context, userID string) ([]model.CategorizationRule, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT %s FROM categorization_rules
		WHERE user_id = ? AND is_active = 1
		ORDER BY priority DESC, id ASC`, ruleColumns)

	return s.queryRules(ctx, query, userID)
}

// GetRules returns all of a user's rules, active or not, in evaluation order.
func (s *SQLiteStorage) GetRules(ctx context.Context, userID string) ([]model.CategorizationRule, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT %s FROM categorization_rules
		WHERE user_id = ?
		ORDER BY priority DESC, id ASC`, ruleColumns)

	return s.queryRules(ctx, query, userID)
}

// CreateRule inserts a new categorization rule and fills in its ID. A
// rule with the same keyword and match type already owned by the user
// is rejected as a duplicate.
func (s *SQLiteStorage) CreateRule(ctx context.Context, rule *model.CategorizationRule) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateRule(rule); err != nil {
		return err
	}

	var existingID int64
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM categorization_rules
		WHERE user_id = ? AND keyword = ? AND match_type = ?`,
		rule.UserID, rule.Keyword, string(rule.MatchType)).Scan(&existingID)
	switch {
	case err == nil:
		return fmt.Errorf("rule for keyword %q: %w", rule.Keyword, common.ErrDuplicateEntry)
	case !errors.Is(err, sql.ErrNoRows):
		return fmt.Errorf("failed to check for duplicate rule: %w", err)
	}

	query := `
		INSERT INTO categorization_rules (
			user_id, keyword, grootboek_code, btw_percentage,
			category_name, match_type, priority, is_active
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := s.db.ExecContext(ctx, query,
		rule.UserID, rule.Keyword, rule.GrootboekCode, rule.BTWPercentage.Code(),
		nullString(rule.CategoryName), string(rule.MatchType), rule.Priority, rule.IsActive,
	)
	if err != nil {
		return fmt.Errorf("failed to create rule: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get rule ID: %w", err)
	}

	rule.ID = id
	rule.CreatedAt = time.Now()
	rule.UpdatedAt = time.Now()

	return nil
}

// SetRuleActive toggles a rule's participation in matching.
func (s *SQLiteStorage) SetRuleActive(ctx context.Context, userID string, id int64, active bool) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(userID, "userID"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE categorization_rules
		SET is_active = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND user_id = ?`,
		active, id, userID)
	if err != nil {
		return fmt.Errorf("failed to update rule: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("rule %d: %w", id, common.ErrNotFound)
	}

	return nil
}

// SeedDefaultRules copies the starter rule set for a new user. Existing
// rules are left untouched; seeding an already-seeded user is a no-op.
func (s *SQLiteStorage) SeedDefaultRules(ctx context.Context, userID string, defaults []model.CategorizationRule) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(userID, "userID"); err != nil {
		return err
	}

	var existing int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM categorization_rules WHERE user_id = ?", userID).Scan(&existing)
	if err != nil {
		return fmt.Errorf("failed to count rules: %w", err)
	}
	if existing > 0 {
		return nil
	}

	for i := range defaults {
		rule := defaults[i]
		rule.UserID = userID
		rule.IsActive = true
		if err := s.CreateRule(ctx, &rule); err != nil {
			return fmt.Errorf("failed to seed rule %q: %w", rule.Keyword, err)
		}
	}

	return nil
}

func (s *SQLiteStorage) queryRules(ctx context.Context, query string, args ...any) ([]model.CategorizationRule, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query rules: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var result []model.CategorizationRule
	for rows.Next() {
		rule, scanErr := scanRule(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		result = append(result, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rules: %w", err)
	}

	return result, nil
}

func scanRule(rows *sql.Rows) (model.CategorizationRule, error) {
	var rule model.CategorizationRule
	var btwCode string
	var categoryName sql.NullString
	var matchType string

	err := rows.Scan(&rule.ID, &rule.UserID, &rule.Keyword, &rule.GrootboekCode,
		&btwCode, &categoryName, &matchType, &rule.Priority, &rule.IsActive,
		&rule.CreatedAt, &rule.UpdatedAt)
	if err != nil {
		return rule, fmt.Errorf("failed to scan rule: %w", err)
	}

	rate, err := model.ParseTaxRate(btwCode)
	if err != nil {
		return rule, fmt.Errorf("rule %d has invalid btw_percentage: %w", rule.ID, err)
	}

	rule.BTWPercentage = rate
	rule.CategoryName = categoryName.String
	rule.MatchType = model.MatchType(matchType)

	return rule, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
