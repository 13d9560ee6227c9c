// Package rules evaluates a user's prioritized categorization rules
// against transaction descriptions.
package rules

import (
	"sort"
	"strings"

	"github.com/florijnhq/florijn/internal/model"
)

// ruleMatchConfidence is the confidence assigned to a hard keyword match.
const ruleMatchConfidence = 0.95

// SortRules orders rules for evaluation: priority descending, ties
// broken by ascending rule ID so that older rules win deterministically.
// Callers are expected to pass pre-sorted rules to Classify; this sort
// is the defensive boundary that makes the ordering a guarantee instead
// of an assumption about the store.
func SortRules(rules []model.CategorizationRule) {
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].Priority != rules[j].Priority {
			return rules[i].Priority > rules[j].Priority
		}
		return rules[i].ID < rules[j].ID
	})
}

// Classify evaluates the rules against a transaction description and
// returns the first match. Rules must be filtered to active and sorted
// (see SortRules) before the call; inactive rules are skipped either
// way. No match returns a zero classification with method none.
func Classify(txn *model.Transaction, sorted []model.CategorizationRule) model.ClassificationResult {
	for i := range sorted {
		rule := &sorted[i]
		if !rule.IsActive {
			continue
		}
		if Matches(txn.Description, rule) {
			id := rule.ID
			return model.ClassificationResult{
				RuleID:         &id,
				GrootboekCode:  rule.GrootboekCode,
				BTWPercentage:  rule.BTWPercentage,
				CategoryName:   rule.CategoryName,
				MatchedKeyword: rule.Keyword,
				Confidence:     ruleMatchConfidence,
				Method:         model.MethodRuleMatch,
			}
		}
	}

	return model.ClassificationResult{
		Confidence: 0,
		Method:     model.MethodNone,
	}
}

// ClassifyBatch classifies every transaction against one rule set and
// returns results keyed by transaction ID. Transactions without an ID
// are still classified (and audited by the engine) but cannot be looked
// up in the returned map; callers needing their results must classify
// them individually.
func ClassifyBatch(txns []model.Transaction, sorted []model.CategorizationRule) map[string]model.ClassificationResult {
	results := make(map[string]model.ClassificationResult, len(txns))
	for i := range txns {
		classification := Classify(&txns[i], sorted)
		if txns[i].ID != "" {
			results[txns[i].ID] = classification
		}
	}
	return results
}

// Matches reports whether a description satisfies a rule's keyword
// under its match type. Comparison is case-insensitive and otherwise
// exact: no trimming or normalization beyond lowercasing.
func Matches(description string, rule *model.CategorizationRule) bool {
	text := strings.ToLower(description)
	keyword := strings.ToLower(rule.Keyword)

	switch rule.MatchType {
	case model.MatchExact:
		return text == keyword
	case model.MatchStartsWith:
		return strings.HasPrefix(text, keyword)
	case model.MatchEndsWith:
		return strings.HasSuffix(text, keyword)
	case model.MatchContains:
		return strings.Contains(text, keyword)
	default:
		return strings.Contains(text, keyword)
	}
}
