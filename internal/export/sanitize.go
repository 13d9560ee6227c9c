package export

import "strings"

// maxMarkupFieldLen bounds every free-text field inserted into XML or
// SGML content, per the consuming systems' field-length limits.
const maxMarkupFieldLen = 250

// maxStatementDescLen is the fixed-field format's tag 86 limit.
const maxStatementDescLen = 65

// statementPlaceholder replaces a missing description in the
// fixed-field format.
const statementPlaceholder = "Transactie"

// SanitizeStatementText prepares a free-text description for the
// fixed-field statement format: newlines and carriage returns become
// spaces, colons (field separators) become spaces, apostrophes are
// dropped, and the result is truncated to 65 characters and trimmed.
// A missing description yields a fixed placeholder.
func SanitizeStatementText(text string) string {
	if text == "" {
		return statementPlaceholder
	}

	replaced := strings.NewReplacer(
		"\r\n", " ",
		"\n", " ",
		"\r", " ",
		":", " ",
		"'", "",
	).Replace(text)

	runes := []rune(replaced)
	if len(runes) > maxStatementDescLen {
		runes = runes[:maxStatementDescLen]
	}

	out := strings.TrimSpace(string(runes))
	if out == "" {
		return statementPlaceholder
	}
	return out
}

// EscapeMarkup escapes free text for insertion into XML or SGML
// content. ASCII control characters (except tab, newline, carriage
// return) are stripped and the text is truncated to the consuming
// systems' field-length bound before escaping, so truncation can never
// split an entity. Escaping is applied exactly once, at the
// serialization boundary.
func EscapeMarkup(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if r <= 0x08 || r == 0x0B || r == 0x0C || (r >= 0x0E && r <= 0x1F) {
			continue
		}
		b.WriteRune(r)
	}

	runes := []rune(b.String())
	if len(runes) > maxMarkupFieldLen {
		runes = runes[:maxMarkupFieldLen]
	}

	return strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&apos;",
	).Replace(string(runes))
}
