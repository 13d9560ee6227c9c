package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/florijnhq/florijn/internal/common"
	"github.com/florijnhq/florijn/internal/model"
	"github.com/florijnhq/florijn/internal/service"
)

func createTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func testRule(userID, keyword string, priority int) model.CategorizationRule {
	return model.CategorizationRule{
		UserID:        userID,
		Keyword:       keyword,
		GrootboekCode: "4530",
		BTWPercentage: model.StandardRate(21),
		CategoryName:  "ICT kosten",
		MatchType:     model.MatchContains,
		Priority:      priority,
		IsActive:      true,
	}
}

func TestSQLiteStorage_CreateAndGetRules(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	first := testRule("user-1", "hosting", 5)
	require.NoError(t, store.CreateRule(ctx, &first))
	assert.NotZero(t, first.ID)

	second := testRule("user-1", "software", 10)
	require.NoError(t, store.CreateRule(ctx, &second))

	other := testRule("user-2", "hosting", 1)
	require.NoError(t, store.CreateRule(ctx, &other))

	got, err := store.GetActiveRules(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Priority descending.
	assert.Equal(t, "software", got[0].Keyword)
	assert.Equal(t, "hosting", got[1].Keyword)

	// Round-tripped fields survive.
	assert.Equal(t, model.StandardRate(21), got[0].BTWPercentage)
	assert.Equal(t, model.MatchContains, got[0].MatchType)
	assert.Equal(t, "ICT kosten", got[0].CategoryName)
	assert.False(t, got[0].CreatedAt.IsZero())
}

func TestSQLiteStorage_CreateRuleDuplicate(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	rule := testRule("user-1", "hosting", 5)
	require.NoError(t, store.CreateRule(ctx, &rule))

	dup := testRule("user-1", "hosting", 9)
	err := store.CreateRule(ctx, &dup)
	assert.ErrorIs(t, err, common.ErrDuplicateEntry)

	// Same keyword with a different match type is a distinct rule.
	exact := testRule("user-1", "hosting", 5)
	exact.MatchType = model.MatchExact
	require.NoError(t, store.CreateRule(ctx, &exact))

	// Other users are unaffected.
	other := testRule("user-2", "hosting", 5)
	require.NoError(t, store.CreateRule(ctx, &other))
}

func TestSQLiteStorage_RuleOrderTieBreak(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	for _, keyword := range []string{"eerste", "tweede", "derde"} {
		rule := testRule("user-1", keyword, 5)
		require.NoError(t, store.CreateRule(ctx, &rule))
	}

	got, err := store.GetActiveRules(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, got, 3)

	// Same priority: insertion (ID) order.
	assert.Equal(t, "eerste", got[0].Keyword)
	assert.Equal(t, "tweede", got[1].Keyword)
	assert.Equal(t, "derde", got[2].Keyword)
}

func TestSQLiteStorage_ExemptAndUnknownRatesRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	exempt := testRule("user-1", "huur", 5)
	exempt.BTWPercentage = model.ExemptRate()
	require.NoError(t, store.CreateRule(ctx, &exempt))

	unknown := testRule("user-1", "divers", 1)
	unknown.BTWPercentage = model.UnknownRate()
	require.NoError(t, store.CreateRule(ctx, &unknown))

	got, err := store.GetActiveRules(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.True(t, got[0].BTWPercentage.IsExempt())
	assert.True(t, got[1].BTWPercentage.IsUnknown())
}

func TestSQLiteStorage_SetRuleActive(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	rule := testRule("user-1", "hosting", 5)
	require.NoError(t, store.CreateRule(ctx, &rule))

	require.NoError(t, store.SetRuleActive(ctx, "user-1", rule.ID, false))

	active, err := store.GetActiveRules(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, active)

	all, err := store.GetRules(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.False(t, all[0].IsActive)

	// Unknown rule and wrong user both report not found.
	err = store.SetRuleActive(ctx, "user-1", 9999, true)
	assert.ErrorIs(t, err, common.ErrNotFound)
	err = store.SetRuleActive(ctx, "user-2", rule.ID, true)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestSQLiteStorage_SeedDefaultRules(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	defaults := []model.CategorizationRule{
		testRule("", "huur", 10),
		testRule("", "verzekering", 10),
	}

	require.NoError(t, store.SeedDefaultRules(ctx, "user-1", defaults))

	got, err := store.GetActiveRules(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, got, 2)

	// Seeding again is a no-op.
	require.NoError(t, store.SeedDefaultRules(ctx, "user-1", defaults))
	got, err = store.GetActiveRules(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestSQLiteStorage_CreateRuleValidation(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	tests := []struct {
		name   string
		mutate func(*model.CategorizationRule)
	}{
		{"missing user", func(r *model.CategorizationRule) { r.UserID = "" }},
		{"missing keyword", func(r *model.CategorizationRule) { r.Keyword = "" }},
		{"missing grootboek", func(r *model.CategorizationRule) { r.GrootboekCode = "" }},
		{"bad match type", func(r *model.CategorizationRule) { r.MatchType = "regex" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := testRule("user-1", "hosting", 5)
			tt.mutate(&rule)
			assert.Error(t, store.CreateRule(ctx, &rule))
		})
	}
}

func TestSQLiteStorage_AuditTrail(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	ruleID := int64(42)
	records := []service.AuditRecord{
		{
			TransactionID: "t1",
			UserID:        "user-1",
			RuleID:        &ruleID,
			GrootboekCode: "4110",
			BTWPercentage: model.ExemptRate(),
			Method:        model.MethodRuleMatch,
			Confidence:    0.95,
		},
		{
			// No transaction ID, no rule: the nullable columns path.
			UserID:        "user-1",
			BTWPercentage: model.StandardRate(21),
			Method:        model.MethodNone,
			Confidence:    0,
		},
	}
	for _, record := range records {
		require.NoError(t, store.RecordClassification(ctx, record))
	}

	trail, err := store.GetAuditTrail(ctx, "user-1", 10)
	require.NoError(t, err)
	require.Len(t, trail, 2)

	byMethod := map[model.ClassificationMethod]AuditEntry{}
	for _, entry := range trail {
		byMethod[entry.Method] = entry
	}

	matched := byMethod[model.MethodRuleMatch]
	assert.Equal(t, "t1", matched.TransactionID)
	require.NotNil(t, matched.RuleID)
	assert.Equal(t, ruleID, *matched.RuleID)
	assert.True(t, matched.BTWPercentage.IsExempt())

	unmatched := byMethod[model.MethodNone]
	assert.Empty(t, unmatched.TransactionID)
	assert.Nil(t, unmatched.RuleID)
	assert.Equal(t, model.StandardRate(21), unmatched.BTWPercentage)

	// Scoped per user.
	other, err := store.GetAuditTrail(ctx, "user-2", 10)
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestSQLiteStorage_Validation(t *testing.T) {
	store := createTestStorage(t)

	_, err := store.GetActiveRules(context.Background(), "")
	assert.Error(t, err)

	//nolint:staticcheck // explicitly testing nil context handling
	_, err = store.GetActiveRules(nil, "user-1")
	assert.Error(t, err)
}
