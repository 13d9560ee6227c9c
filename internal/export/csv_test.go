package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVExporter_Export(t *testing.T) {
	doc, err := NewCSVExporter().Export(testStatement())
	require.NoError(t, err)

	assert.Equal(t, "ING_Bank-Export.csv", doc.Filename)
	assert.Equal(t, "text/csv; charset=utf-8", doc.ContentType)

	// UTF-8 BOM so spreadsheet tools pick the right encoding.
	require.True(t, bytes.HasPrefix(doc.Bytes, []byte("\uFEFF")))

	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(doc.Bytes, []byte("\uFEFF"))))
	r.Comma = ';'
	records, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)

	assert.Equal(t, []string{"Datum", "Omschrijving", "Categorie", "Grootboek", "BTW", "Bedrag", "Saldo", "IBAN"}, records[0])

	first := records[1]
	assert.Equal(t, "15-03-2024", first[0])
	assert.Equal(t, "huur kantoor maart", first[1])
	assert.Equal(t, "Vrijgesteld", first[4])
	assert.Equal(t, "-1200,00", first[5])
	assert.Equal(t, "-1200,00", first[6])
	assert.Equal(t, "NL91INGB0001234567", first[7])

	// Running balance accumulates.
	assert.Equal(t, "-1242,17", records[2][6])
	assert.Equal(t, "1257,83", records[3][6])
}

func TestCSVExporter_SemicolonDelimited(t *testing.T) {
	doc, err := NewCSVExporter().Export(testStatement())
	require.NoError(t, err)

	lines := strings.Split(string(doc.Bytes), "\n")
	assert.Equal(t, 7, strings.Count(lines[0], ";"), "eight columns, seven separators")
}
