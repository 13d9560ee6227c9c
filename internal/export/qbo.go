package export

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/aclindsa/ofxgo"

	"github.com/florijnhq/florijn/internal/model"
)

// intuBidEntry maps a bank name fragment to a fixed-format institution code.
type intuBidEntry struct {
	name string
	code string
}

// intuBidDefault is the generic international institution code used
// when no bank matches.
const intuBidDefault = "3000"

// intuBidTable maps Dutch banks to their institution codes. Lookup is a
// case-insensitive substring match in definition order.
var intuBidTable = []intuBidEntry{
	{"ing", "3710"},
	{"rabobank", "3711"},
	{"abn amro", "3712"},
	{"sns", "3713"},
	{"knab", "3714"},
	{"bunq", "3715"},
	{"triodos", "3716"},
	{"asn", "3717"},
	{"regiobank", "3718"},
}

// LookupIntuBid resolves a free-text bank name to an institution code,
// defaulting to the generic code when no entry matches.
func LookupIntuBid(bank string) string {
	normalized := strings.ToLower(bank)
	for _, entry := range intuBidTable {
		if strings.Contains(normalized, entry.name) {
			return entry.code
		}
	}
	return intuBidDefault
}

// FITID builds the deterministic synthetic transaction identifier from
// the transaction date, its positional index within the batch, and the
// absolute amount. Re-exporting identical input yields byte-identical
// identifiers, which the consuming system relies on for reconciliation.
func FITID(date time.Time, index int, amount string) string {
	digits := strings.Replace(amount, ".", "", 1)
	digits = strings.TrimPrefix(digits, "-")
	return fmt.Sprintf("%s-%d-%s", model.FormatDate8(date), index, digits)
}

// QBOExporter writes the OFX 1.02 SGML bank-transaction format consumed
// by accounting import tools.
type QBOExporter struct {
	// Now is the clock used for DTSERVER and DTASOF; defaults to time.Now.
	Now func() time.Time
	// ValidateOutput round-trips the produced document through the OFX
	// parser before returning it.
	ValidateOutput bool
}

// NewQBOExporter creates a QBO exporter with output validation enabled.
func NewQBOExporter() *QBOExporter {
	return &QBOExporter{ValidateOutput: true}
}

// Export serializes the statement.
func (e *QBOExporter) Export(stmt *Statement) (*Document, error) {
	if err := stmt.Validate(); err != nil {
		return nil, err
	}

	now := defaultClock(e.Now)()
	today := model.FormatDate8(now)

	first := stmt.Rows[0].Transaction.Date
	last := stmt.Rows[len(stmt.Rows)-1].Transaction.Date

	var b strings.Builder

	// OFX 1.02 SGML header block
	b.WriteString("OFXHEADER:100\n")
	b.WriteString("DATA:OFXSGML\n")
	b.WriteString("VERSION:102\n")
	b.WriteString("SECURITY:NONE\n")
	b.WriteString("ENCODING:USASCII\n")
	b.WriteString("CHARSET:1252\n")
	b.WriteString("COMPRESSION:NONE\n")
	b.WriteString("OLDFILEUID:NONE\n")
	b.WriteString("NEWFILEUID:NONE\n")
	b.WriteString("\n")

	b.WriteString("<OFX>\n")
	b.WriteString("  <SIGNONMSGSRSV1>\n")
	b.WriteString("    <SONRS>\n")
	b.WriteString("      <STATUS>\n")
	b.WriteString("        <CODE>0</CODE>\n")
	b.WriteString("        <SEVERITY>INFO</SEVERITY>\n")
	b.WriteString("      </STATUS>\n")
	fmt.Fprintf(&b, "      <DTSERVER>%s</DTSERVER>\n", today)
	b.WriteString("      <LANGUAGE>ENG</LANGUAGE>\n")
	fmt.Fprintf(&b, "      <INTU.BID>%s</INTU.BID>\n", LookupIntuBid(stmt.Header.BankName))
	b.WriteString("    </SONRS>\n")
	b.WriteString("  </SIGNONMSGSRSV1>\n")

	b.WriteString("  <BANKMSGSRSV1>\n")
	b.WriteString("    <STMTTRNRS>\n")
	b.WriteString("      <TRNUID>0</TRNUID>\n")
	b.WriteString("      <STATUS>\n")
	b.WriteString("        <CODE>0</CODE>\n")
	b.WriteString("        <SEVERITY>INFO</SEVERITY>\n")
	b.WriteString("      </STATUS>\n")
	b.WriteString("      <STMTRS>\n")
	b.WriteString("        <CURDEF>EUR</CURDEF>\n")

	bank := EscapeMarkup(stmt.Header.BankName)
	if bank == "" {
		bank = "Unknown"
	}
	account := EscapeMarkup(stmt.Header.AccountNumber)
	if account == "" {
		account = "Unknown"
	}

	b.WriteString("        <BANKACCTFROM>\n")
	fmt.Fprintf(&b, "          <BANKID>%s</BANKID>\n", bank)
	fmt.Fprintf(&b, "          <ACCTID>%s</ACCTID>\n", account)
	b.WriteString("          <ACCTTYPE>CHECKING</ACCTTYPE>\n")
	b.WriteString("        </BANKACCTFROM>\n")

	b.WriteString("        <BANKTRANLIST>\n")
	fmt.Fprintf(&b, "          <DTSTART>%s</DTSTART>\n", model.FormatDate8(first))
	fmt.Fprintf(&b, "          <DTEND>%s</DTEND>\n", model.FormatDate8(last))

	for i := range stmt.Rows {
		e.writeTransaction(&b, &stmt.Rows[i], i)
	}

	b.WriteString("        </BANKTRANLIST>\n")

	b.WriteString("        <LEDGERBAL>\n")
	fmt.Fprintf(&b, "          <BALAMT>%s</BALAMT>\n", formatAmount(stmt.TotalAmount()))
	fmt.Fprintf(&b, "          <DTASOF>%s</DTASOF>\n", today)
	b.WriteString("        </LEDGERBAL>\n")

	b.WriteString("      </STMTRS>\n")
	b.WriteString("    </STMTTRNRS>\n")
	b.WriteString("  </BANKMSGSRSV1>\n")
	b.WriteString("</OFX>\n")

	doc := []byte(b.String())

	if e.ValidateOutput {
		if err := ValidateOFX(doc); err != nil {
			return nil, fmt.Errorf("produced OFX document failed validation: %w", err)
		}
	}

	filename := fmt.Sprintf("%s-QBO.qbo", SanitizeFilename(stmt.Header.BankName))

	return &Document{
		Bytes:       doc,
		ContentType: "application/vnd.intu.qbo",
		Filename:    filename,
	}, nil
}

func (e *QBOExporter) writeTransaction(b *strings.Builder, row *model.ClassifiedTransaction, index int) {
	txn := &row.Transaction

	trnType := "CREDIT"
	if txn.Amount.Sign() < 0 {
		trnType = "DEBIT"
	}

	amount := formatAmount(txn.Amount)
	fitid := FITID(txn.Date, index, formatAmount(txn.Amount.Abs()))

	name := EscapeMarkup(txn.Counterparty)
	if name == "" {
		name = EscapeMarkup(firstWord(txn.Description))
	}
	if name == "" {
		name = "Unknown"
	}
	memo := EscapeMarkup(txn.Description)

	b.WriteString("          <STMTTRN>\n")
	fmt.Fprintf(b, "            <TRNTYPE>%s</TRNTYPE>\n", trnType)
	fmt.Fprintf(b, "            <DTPOSTED>%s</DTPOSTED>\n", model.FormatDate8(txn.Date))
	fmt.Fprintf(b, "            <TRNAMT>%s</TRNAMT>\n", amount)
	fmt.Fprintf(b, "            <FITID>%s</FITID>\n", fitid)
	fmt.Fprintf(b, "            <NAME>%s</NAME>\n", name)
	if memo != "" && memo != name {
		fmt.Fprintf(b, "            <MEMO>%s</MEMO>\n", memo)
	}
	b.WriteString("          </STMTTRN>\n")
}

// ValidateOFX round-trips an OFX document through the parser the rest
// of the ecosystem reads these files with. A document that fails here
// would also fail in the consuming accounting tool.
func ValidateOFX(doc []byte) error {
	if _, err := ofxgo.ParseResponse(bytes.NewReader(doc)); err != nil {
		return fmt.Errorf("invalid OFX: %w", err)
	}
	return nil
}

func firstWord(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
