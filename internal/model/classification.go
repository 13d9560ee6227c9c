package model

// ClassificationMethod indicates how a category classification was produced.
type ClassificationMethod string

// Classification method constants.
const (
	MethodRuleMatch ClassificationMethod = "rule_match"
	MethodNone      ClassificationMethod = "none"
)

// ClassificationResult is the outcome of running the category rule
// engine over a single transaction. It is ephemeral; only the audit
// sink ever persists it.
type ClassificationResult struct {
	RuleID         *int64
	GrootboekCode  string
	BTWPercentage  TaxRate
	CategoryName   string
	MatchedKeyword string
	Confidence     float64 // 0..1
	Method         ClassificationMethod
}

// Matched reports whether a rule produced this result.
func (r *ClassificationResult) Matched() bool {
	return r.Method == MethodRuleMatch
}

// ClassifiedTransaction merges a transaction with everything the
// classification pipeline derived for it. This is the row the export
// serializers consume.
type ClassifiedTransaction struct {
	Transaction Transaction
	Category    ClassificationResult
	BTW         BTWResult
	Trust       TrustResult
}

// LedgerCode returns the resolved ledger account code, empty when no
// rule matched.
func (c *ClassifiedTransaction) LedgerCode() string {
	return c.Category.GrootboekCode
}

// EffectiveRate returns the VAT rate to report: the user rule wins over
// the automatic detection when both are present.
func (c *ClassifiedTransaction) EffectiveRate() TaxRate {
	if c.Category.Matched() && !c.Category.BTWPercentage.IsUnknown() {
		return c.Category.BTWPercentage
	}
	return c.BTW.Rate
}

// CategoryLabel returns the display category: the user rule's name when
// matched, otherwise the detected BTW category.
func (c *ClassifiedTransaction) CategoryLabel() string {
	if c.Category.Matched() && c.Category.CategoryName != "" {
		return c.Category.CategoryName
	}
	return c.BTW.Category
}
