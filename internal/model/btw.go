package model

// BTWSource indicates which stage of the tax-rate classifier produced a result.
type BTWSource string

// BTW source constants, in decreasing order of confidence.
const (
	SourceMerchant BTWSource = "merchant"
	SourceKeywords BTWSource = "keywords"
	SourceDefault  BTWSource = "default"
)

// BTWResult is the outcome of automatic tax-rate detection for one
// transaction.
type BTWResult struct {
	Rate        TaxRate
	Category    string // semantic category from the matched table entry
	Explanation string
	Source      BTWSource
	Confidence  int // 0..100
}

// TrustLevel is the human-facing risk tier for a classification.
type TrustLevel string

// Trust level constants.
const (
	TrustHigh   TrustLevel = "high"
	TrustMedium TrustLevel = "medium"
	TrustLow    TrustLevel = "low"
)

// TrustResult tells the user whether a classification needs a manual check.
// Computed fresh on every classification; never cached or persisted.
type TrustResult struct {
	Level         TrustLevel
	Message       string
	Badge         string
	BadgeColor    string
	Score         int
	RequiresCheck bool
}
