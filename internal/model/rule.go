package model

import "time"

// MatchType selects how a rule keyword is compared to a description.
type MatchType string

// Match type constants.
const (
	MatchContains   MatchType = "contains"
	MatchStartsWith MatchType = "starts_with"
	MatchEndsWith   MatchType = "ends_with"
	MatchExact      MatchType = "exact"
)

// Valid reports whether the match type is one of the known values.
func (m MatchType) Valid() bool {
	switch m {
	case MatchContains, MatchStartsWith, MatchEndsWith, MatchExact:
		return true
	}
	return false
}

// CategorizationRule is a user-owned keyword rule mapping transaction
// descriptions to a ledger account and VAT rate.
type CategorizationRule struct {
	CreatedAt     time.Time
	UpdatedAt     time.Time
	UserID        string
	Keyword       string
	GrootboekCode string // opaque ledger account code
	BTWPercentage TaxRate
	CategoryName  string
	MatchType     MatchType
	ID            int64
	Priority      int // higher evaluated first
	IsActive      bool
}
