package btw

import (
	"fmt"
	"strings"

	"github.com/florijnhq/florijn/internal/model"
)

// Badge glyphs and color tokens per trust level.
const (
	badgeHigh   = "✓"
	badgeMedium = "?"
	badgeLow    = "!"

	colorHigh   = "emerald"
	colorMedium = "amber"
	colorLow    = "red"
)

// TrustScore derives the human-facing risk tier for a classification
// from its confidence and the curated merchant risk lists. Pure and
// side-effect-free so it can be fuzz-tested independently.
func TrustScore(confidence int, merchant string, lists RiskLists) model.TrustResult {
	normalized := strings.ToLower(strings.TrimSpace(merchant))

	isHighRisk := matchesAny(normalized, lists.High)
	isMediumRisk := matchesAny(normalized, lists.Medium)

	var level model.TrustLevel
	var requiresCheck bool

	switch {
	case confidence >= 95 && !isHighRisk && !isMediumRisk:
		level = model.TrustHigh
		requiresCheck = false
	case confidence >= 70:
		// Ambiguous merchants never reach the high tier, no matter how
		// confident the rate detection was.
		level = model.TrustMedium
		requiresCheck = isHighRisk || isMediumRisk || confidence < 85
	default:
		level = model.TrustLow
		requiresCheck = true
	}

	result := model.TrustResult{
		Level:         level,
		Score:         confidence,
		RequiresCheck: requiresCheck,
	}

	switch level {
	case model.TrustHigh:
		result.Message = "Zeer betrouwbaar - automatisch geclassificeerd"
		result.Badge = badgeHigh
		result.BadgeColor = colorHigh
	case model.TrustMedium:
		switch {
		case isHighRisk:
			result.Message = fmt.Sprintf("%s verkoopt producten met meerdere BTW-tarieven - handmatig controleren", merchant)
		case isMediumRisk:
			result.Message = "Controleer deze transactie - gemixte producten mogelijk"
		default:
			result.Message = "Snel checken aanbevolen"
		}
		result.Badge = badgeMedium
		result.BadgeColor = colorMedium
	case model.TrustLow:
		result.Message = "Check verplicht - onbekende transactie"
		result.Badge = badgeLow
		result.BadgeColor = colorLow
	}

	return result
}

func matchesAny(merchant string, list []string) bool {
	for _, m := range list {
		if strings.Contains(merchant, m) {
			return true
		}
	}
	return false
}
