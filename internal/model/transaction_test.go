package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatementDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{name: "dutch format", input: "15-03-2024", want: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
		{name: "iso format", input: "2024-03-15", want: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
		{name: "with whitespace", input: " 01-01-2025 ", want: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
		{name: "two segments", input: "03-2024", wantErr: true},
		{name: "not a date", input: "gisteren", wantErr: true},
		{name: "month out of range", input: "15-13-2024", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStatementDate(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %v, want %v", got, tt.want)
		})
	}
}

func TestTransaction_Merchant(t *testing.T) {
	withCounterparty := Transaction{Description: "Betaling pin", Counterparty: "Albert Heijn"}
	assert.Equal(t, "Albert Heijn", withCounterparty.Merchant())

	withoutCounterparty := Transaction{Description: "Betaling pin"}
	assert.Equal(t, "Betaling pin", withoutCounterparty.Merchant())
}

func TestTransaction_IsCredit(t *testing.T) {
	credit := Transaction{Amount: decimal.NewFromFloat(12.50)}
	assert.True(t, credit.IsCredit())

	debit := Transaction{Amount: decimal.NewFromFloat(-12.50)}
	assert.False(t, debit.IsCredit())

	zero := Transaction{Amount: decimal.Zero}
	assert.False(t, zero.IsCredit())
}

func TestFormatDate8(t *testing.T) {
	d := time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC)
	assert.Equal(t, "20240305", FormatDate8(d))
}
