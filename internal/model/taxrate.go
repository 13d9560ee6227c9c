package model

import (
	"fmt"
	"strconv"
	"strings"
)

// taxRateKind discriminates the three states a VAT rate can be in.
type taxRateKind int

const (
	taxRateUnknown taxRateKind = iota
	taxRateStandard
	taxRateExempt
)

// TaxRate is a three-valued VAT rate: a percentage, explicitly exempt,
// or not yet determined. The zero value is Unknown, so a rate that was
// never classified can't masquerade as 0%.
type TaxRate struct {
	kind taxRateKind
	pct  int
}

// StandardRate returns a TaxRate for a concrete percentage (21, 9, 0).
func StandardRate(pct int) TaxRate {
	return TaxRate{kind: taxRateStandard, pct: pct}
}

// ExemptRate returns the explicitly-exempt rate (vrijgesteld).
func ExemptRate() TaxRate {
	return TaxRate{kind: taxRateExempt}
}

// UnknownRate returns the not-determined rate.
func UnknownRate() TaxRate {
	return TaxRate{}
}

// IsExempt reports whether the rate is explicitly exempt.
func (r TaxRate) IsExempt() bool { return r.kind == taxRateExempt }

// IsUnknown reports whether the rate was never determined.
func (r TaxRate) IsUnknown() bool { return r.kind == taxRateUnknown }

// Percent returns the percentage and true when the rate is a concrete
// percentage, 0 and false otherwise.
func (r TaxRate) Percent() (int, bool) {
	if r.kind != taxRateStandard {
		return 0, false
	}
	return r.pct, true
}

// String renders the rate the way the export formats label it.
func (r TaxRate) String() string {
	switch r.kind {
	case taxRateExempt:
		return "Vrijgesteld"
	case taxRateStandard:
		return fmt.Sprintf("%d%%", r.pct)
	default:
		return "Onbekend"
	}
}

// Code returns the stable storage token for the rate. The inverse of
// ParseTaxRate.
func (r TaxRate) Code() string {
	switch r.kind {
	case taxRateExempt:
		return "vrijgesteld"
	case taxRateStandard:
		return fmt.Sprintf("%d", r.pct)
	default:
		return ""
	}
}

// ParseTaxRate parses a storage token produced by Code. An empty token
// is Unknown, "vrijgesteld" is Exempt, anything else must be a bare
// percentage.
func ParseTaxRate(s string) (TaxRate, error) {
	s = strings.TrimSpace(strings.ToLower(strings.TrimSuffix(strings.TrimSpace(s), "%")))
	switch s {
	case "":
		return UnknownRate(), nil
	case "vrijgesteld", "exempt":
		return ExemptRate(), nil
	}
	pct, err := strconv.Atoi(s)
	if err != nil || pct < 0 || pct > 100 {
		return TaxRate{}, fmt.Errorf("invalid tax rate %q", s)
	}
	return StandardRate(pct), nil
}
