package export

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupIntuBid(t *testing.T) {
	tests := []struct {
		bank string
		want string
	}{
		{"ING Bank", "3710"},
		{"ing zakelijk", "3710"},
		{"Rabobank Utrecht", "3711"},
		{"ABN AMRO", "3712"},
		{"SNS", "3713"},
		{"Knab", "3714"},
		{"bunq B.V.", "3715"},
		{"Triodos Bank", "3716"},
		{"ASN Bank", "3717"},
		{"RegioBank", "3718"},
		{"Deutsche Bank", "3000"},
		{"", "3000"},
	}

	for _, tt := range tests {
		t.Run(tt.bank, func(t *testing.T) {
			assert.Equal(t, tt.want, LookupIntuBid(tt.bank))
		})
	}
}

func TestFITID(t *testing.T) {
	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "20240315-0-120000", FITID(date, 0, "1200.00"))
	assert.Equal(t, "20240315-7-4217", FITID(date, 7, "42.17"))

	// Same input, same identifier, every time.
	for i := 0; i < 5; i++ {
		assert.Equal(t, "20240315-0-120000", FITID(date, 0, "1200.00"))
	}
}

func TestQBOExporter_Export(t *testing.T) {
	exporter := NewQBOExporter()
	exporter.Now = fixedClock

	doc, err := exporter.Export(testStatement())
	require.NoError(t, err)

	assert.Equal(t, "ING_Bank-QBO.qbo", doc.Filename)
	assert.Equal(t, "application/vnd.intu.qbo", doc.ContentType)

	content := string(doc.Bytes)

	// SGML header block before the body.
	assert.True(t, strings.HasPrefix(content, "OFXHEADER:100\n"))
	assert.Contains(t, content, "VERSION:102\n")
	assert.Contains(t, content, "DATA:OFXSGML\n")

	assert.Contains(t, content, "<INTU.BID>3710</INTU.BID>")
	assert.Contains(t, content, "<CURDEF>EUR</CURDEF>")
	assert.Contains(t, content, "<ACCTID>NL91INGB0001234567</ACCTID>")

	// Date range from first and last transaction.
	assert.Contains(t, content, "<DTSTART>20240315</DTSTART>")
	assert.Contains(t, content, "<DTEND>20240317</DTEND>")

	// Signed amounts, deterministic FITIDs.
	assert.Contains(t, content, "<TRNTYPE>DEBIT</TRNTYPE>")
	assert.Contains(t, content, "<TRNAMT>-1200.00</TRNAMT>")
	assert.Contains(t, content, "<FITID>20240315-0-120000</FITID>")
	assert.Contains(t, content, "<TRNTYPE>CREDIT</TRNTYPE>")
	assert.Contains(t, content, "<TRNAMT>2500.00</TRNAMT>")

	// Counterparty becomes NAME, description becomes MEMO.
	assert.Contains(t, content, "<NAME>Vastgoed BV</NAME>")
	assert.Contains(t, content, "<MEMO>huur kantoor maart</MEMO>")

	assert.Contains(t, content, "<BALAMT>1257.83</BALAMT>")
	assert.Contains(t, content, "<DTASOF>20240320</DTASOF>")
}

func TestQBOExporter_StableAcrossReexport(t *testing.T) {
	exporter := NewQBOExporter()
	exporter.Now = fixedClock

	first, err := exporter.Export(testStatement())
	require.NoError(t, err)
	second, err := exporter.Export(testStatement())
	require.NoError(t, err)

	assert.Equal(t, first.Bytes, second.Bytes)
}

func TestQBOExporter_NameFallsBackToFirstWord(t *testing.T) {
	exporter := NewQBOExporter()
	exporter.Now = fixedClock

	stmt := testStatement()
	stmt.Rows[2].Transaction.Description = "factuur 2024-001"
	stmt.Rows[2].Transaction.Counterparty = ""

	doc, err := exporter.Export(stmt)
	require.NoError(t, err)
	assert.Contains(t, string(doc.Bytes), "<NAME>factuur</NAME>")
}

func TestQBOExporter_OutputParsesAsOFX(t *testing.T) {
	// ValidateOutput is on by default; a successful export already
	// proves the document round-trips through the OFX parser.
	exporter := NewQBOExporter()
	exporter.Now = fixedClock
	require.True(t, exporter.ValidateOutput)

	doc, err := exporter.Export(testStatement())
	require.NoError(t, err)
	require.NoError(t, ValidateOFX(doc.Bytes))
}

func TestQBOExporter_EscapesMarkup(t *testing.T) {
	exporter := NewQBOExporter()
	exporter.Now = fixedClock

	stmt := testStatement()
	stmt.Rows[0].Transaction.Counterparty = "Bakker & Zonen"

	doc, err := exporter.Export(stmt)
	require.NoError(t, err)
	assert.Contains(t, string(doc.Bytes), "<NAME>Bakker &amp; Zonen</NAME>")
}
