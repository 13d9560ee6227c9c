// Package btw implements automatic Dutch VAT rate detection and trust
// scoring for bank transactions.
package btw

import (
	"fmt"
	"strings"

	"github.com/florijnhq/florijn/internal/model"
)

// Detection confidence per classifier stage.
const (
	confidenceMerchant = 95
	confidenceKeywords = 75
	confidenceDefault  = 50
)

// Classifier detects VAT rates from merchant names and descriptions.
// It is pure and deterministic: the same input always produces the
// same result, and Classify performs no I/O.
type Classifier struct {
	tables Tables
	risk   RiskLists
}

// NewClassifier creates a classifier over the given lookup tables.
func NewClassifier(tables Tables, risk RiskLists) *Classifier {
	return &Classifier{tables: tables, risk: risk}
}

// NewDefaultClassifier creates a classifier with the curated Dutch tables.
func NewDefaultClassifier() *Classifier {
	return NewClassifier(DefaultTables(), DefaultRiskLists())
}

// Classify determines the VAT rate for a transaction. Stages are tried
// in strict order and the first match wins: merchant table (table
// definition order), then description keywords, then the default rate.
func (c *Classifier) Classify(merchant, description string) model.BTWResult {
	normMerchant := strings.ToLower(strings.TrimSpace(merchant))

	for _, entry := range c.tables.Merchants {
		if strings.Contains(normMerchant, entry.Key) {
			return model.BTWResult{
				Rate:        entry.Rate,
				Category:    entry.Category,
				Confidence:  confidenceMerchant,
				Source:      model.SourceMerchant,
				Explanation: fmt.Sprintf("%s is een %s (%s)", merchant, entry.Category, entry.Rate),
			}
		}
	}

	normDesc := strings.ToLower(description)
	for _, cat := range c.tables.Keywords {
		for _, keyword := range cat.Keywords {
			if strings.Contains(normDesc, keyword) {
				return model.BTWResult{
					Rate:        cat.Rate,
					Category:    cat.Name,
					Confidence:  confidenceKeywords,
					Source:      model.SourceKeywords,
					Explanation: cat.Explanation,
				}
			}
		}
	}

	return model.BTWResult{
		Rate:        c.tables.DefaultRate,
		Category:    "overig",
		Confidence:  confidenceDefault,
		Source:      model.SourceDefault,
		Explanation: "Standaardtarief (geen specifieke categorie herkend)",
	}
}

// ClassifyTransaction classifies a transaction and attaches the trust
// assessment for its confidence and merchant.
func (c *Classifier) ClassifyTransaction(txn *model.Transaction) (model.BTWResult, model.TrustResult) {
	result := c.Classify(txn.Merchant(), txn.Description)
	trust := TrustScore(result.Confidence, txn.Merchant(), c.risk)
	return result, trust
}
