package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMT940Exporter_Export(t *testing.T) {
	exporter := NewMT940Exporter()
	exporter.Now = fixedClock

	doc, err := exporter.Export(testStatement())
	require.NoError(t, err)

	assert.Equal(t, "ING_Bank-MT940.sta", doc.Filename)
	assert.Equal(t, "text/plain", doc.ContentType)

	content := string(doc.Bytes)
	lines := strings.Split(content, "\r\n")

	assert.Equal(t, ":20:FLORIJN20240320143005", lines[0])
	assert.Equal(t, ":25:NL91INGB0001234567", lines[1])
	assert.Equal(t, ":28C:00001/1", lines[2])
	assert.Equal(t, ":60F:C20240320EUR0,00", lines[3])

	// Debit, comma decimals, four digit reference.
	assert.Equal(t, ":61:240315D1200,00NTRF0001", lines[4])
	assert.Equal(t, ":86:huur kantoor maart", lines[5])
	assert.Equal(t, ":61:240316D42,17NTRF0002", lines[6])
	assert.Equal(t, ":61:240317C2500,00NTRF0003", lines[8])

	// Closing balance carries the signed total.
	assert.Equal(t, ":62F:C20240320EUR1257,83", lines[10])
	assert.Equal(t, "-", lines[11])
}

func TestMT940Exporter_CRLFOnly(t *testing.T) {
	exporter := NewMT940Exporter()
	exporter.Now = fixedClock

	doc, err := exporter.Export(testStatement())
	require.NoError(t, err)

	content := string(doc.Bytes)
	assert.NotContains(t, strings.ReplaceAll(content, "\r\n", ""), "\n")
	assert.True(t, strings.HasSuffix(content, "-"))
}

func TestMT940Exporter_SanitizesDescriptions(t *testing.T) {
	exporter := NewMT940Exporter()
	exporter.Now = fixedClock

	stmt := testStatement()
	stmt.Rows[0].Transaction.Description = "ref:2024\r\nvervolg"
	stmt.Rows[1].Transaction.Description = ""

	doc, err := exporter.Export(stmt)
	require.NoError(t, err)

	content := string(doc.Bytes)
	assert.Contains(t, content, ":86:ref 2024 vervolg\r\n")
	assert.Contains(t, content, ":86:Transactie\r\n")
}

func TestMT940Exporter_NegativeTotalIsDebit(t *testing.T) {
	exporter := NewMT940Exporter()
	exporter.Now = fixedClock

	stmt := testStatement()
	stmt.Rows = stmt.Rows[:2] // only the debits

	doc, err := exporter.Export(stmt)
	require.NoError(t, err)
	assert.Contains(t, string(doc.Bytes), ":62F:D20240320EUR1242,17\r\n")
}

func TestMT940Exporter_DefaultAccount(t *testing.T) {
	exporter := NewMT940Exporter()
	exporter.Now = fixedClock

	stmt := testStatement()
	stmt.Header.AccountNumber = ""

	doc, err := exporter.Export(stmt)
	require.NoError(t, err)
	assert.Contains(t, string(doc.Bytes), ":25:NL00XXXX0000000000\r\n")
}
