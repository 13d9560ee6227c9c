package rules

import "github.com/florijnhq/florijn/internal/model"

// DefaultRules returns the starter rule set copied to every new user.
// Ledger codes follow the common Dutch RGS-style 4xxx cost accounts.
func DefaultRules() []model.CategorizationRule {
	standard := model.StandardRate(21)
	low := model.StandardRate(9)
	exempt := model.ExemptRate()

	return []model.CategorizationRule{
		{Keyword: "huur", GrootboekCode: "4110", BTWPercentage: exempt, CategoryName: "Huisvesting", MatchType: model.MatchContains, Priority: 10},
		{Keyword: "verzekering", GrootboekCode: "4430", BTWPercentage: exempt, CategoryName: "Verzekeringen", MatchType: model.MatchContains, Priority: 10},
		{Keyword: "belastingdienst", GrootboekCode: "4700", BTWPercentage: exempt, CategoryName: "Belastingen", MatchType: model.MatchContains, Priority: 10},
		{Keyword: "salaris", GrootboekCode: "4010", BTWPercentage: exempt, CategoryName: "Personeelskosten", MatchType: model.MatchContains, Priority: 10},
		{Keyword: "bankkosten", GrootboekCode: "4750", BTWPercentage: exempt, CategoryName: "Bankkosten", MatchType: model.MatchContains, Priority: 5},
		{Keyword: "benzine", GrootboekCode: "4310", BTWPercentage: standard, CategoryName: "Autokosten", MatchType: model.MatchContains, Priority: 5},
		{Keyword: "tankstation", GrootboekCode: "4310", BTWPercentage: standard, CategoryName: "Autokosten", MatchType: model.MatchContains, Priority: 5},
		{Keyword: "ns-", GrootboekCode: "4320", BTWPercentage: low, CategoryName: "Reiskosten", MatchType: model.MatchStartsWith, Priority: 5},
		{Keyword: "ov-chipkaart", GrootboekCode: "4320", BTWPercentage: low, CategoryName: "Reiskosten", MatchType: model.MatchContains, Priority: 5},
		{Keyword: "hosting", GrootboekCode: "4530", BTWPercentage: standard, CategoryName: "ICT kosten", MatchType: model.MatchContains, Priority: 5},
		{Keyword: "software", GrootboekCode: "4530", BTWPercentage: standard, CategoryName: "ICT kosten", MatchType: model.MatchContains, Priority: 5},
		{Keyword: "telefoon", GrootboekCode: "4520", BTWPercentage: standard, CategoryName: "Telefoon en internet", MatchType: model.MatchContains, Priority: 5},
		{Keyword: "kantoorartikelen", GrootboekCode: "4500", BTWPercentage: standard, CategoryName: "Kantoorkosten", MatchType: model.MatchContains, Priority: 5},
		{Keyword: "lunch", GrootboekCode: "4620", BTWPercentage: low, CategoryName: "Representatie", MatchType: model.MatchContains, Priority: 1},
	}
}
