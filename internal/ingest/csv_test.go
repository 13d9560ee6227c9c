package ingest

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReader_Read(t *testing.T) {
	input := strings.Join([]string{
		"datum,omschrijving,tegenpartij,bedrag",
		"15-03-2024,huur kantoor maart,Vastgoed BV,-1200.00",
		`2024-03-16,"pin betaling, kassa 2",Albert Heijn,"-42,17"`,
		"17-03-2024,factuur 2024-001,,2500.00",
	}, "\n")

	result, err := NewReader().Read(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, result.Transactions, 3)
	assert.Empty(t, result.Skipped)

	first := result.Transactions[0]
	assert.True(t, first.Date.Equal(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "huur kantoor maart", first.Description)
	assert.Equal(t, "Vastgoed BV", first.Counterparty)
	assert.True(t, first.Amount.Equal(decimal.NewFromInt(-1200)))

	// ISO date and comma decimal both parse.
	second := result.Transactions[1]
	assert.True(t, second.Date.Equal(time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC)))
	assert.True(t, second.Amount.Equal(decimal.NewFromFloat(-42.17)))

	// Empty counterparty is allowed.
	third := result.Transactions[2]
	assert.Empty(t, third.Counterparty)
	assert.True(t, third.Amount.Equal(decimal.NewFromInt(2500)))
}

func TestReader_NoHeader(t *testing.T) {
	input := "15-03-2024,huur,Vastgoed BV,-1200.00\n"

	result, err := NewReader().Read(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, result.Transactions, 1)
}

func TestReader_StrictFailsOnBadRow(t *testing.T) {
	input := strings.Join([]string{
		"datum,omschrijving,tegenpartij,bedrag",
		"15-03-2024,huur,Vastgoed BV,-1200.00",
		"gisteren,kapotte regel,,10.00",
	}, "\n")

	_, err := NewReader().Read(strings.NewReader(input))
	require.Error(t, err)

	var rowErr *RowError
	require.ErrorAs(t, err, &rowErr)
	assert.Equal(t, 3, rowErr.Line)
}

func TestReader_LenientCollectsBadRows(t *testing.T) {
	input := strings.Join([]string{
		"datum,omschrijving,tegenpartij,bedrag",
		"15-03-2024,huur,Vastgoed BV,-1200.00",
		"gisteren,kapotte datum,,10.00",
		"16-03-2024,,leeg,10.00",
		"17-03-2024,geldig,,25.50",
	}, "\n")

	reader := NewReader()
	reader.Strict = false

	result, err := reader.Read(strings.NewReader(input))
	require.NoError(t, err)
	assert.Len(t, result.Transactions, 2)
	require.Len(t, result.Skipped, 2)
	assert.Equal(t, 3, result.Skipped[0].Line)
	assert.Equal(t, 4, result.Skipped[1].Line)
}

func TestReader_Empty(t *testing.T) {
	result, err := NewReader().Read(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, result.Transactions)
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "dot decimal", input: "-1200.50", want: "-1200.5"},
		{name: "comma decimal", input: "-42,17", want: "-42.17"},
		{name: "integer", input: "2500", want: "2500"},
		{name: "with whitespace", input: " 10,00 ", want: "10"},
		{name: "both separators", input: "1.200,50", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "not a number", input: "tien", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}
