package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRiskTolerance(t *testing.T) {
	tests := []struct {
		input   string
		want    RiskTolerance
		wantErr bool
	}{
		{input: "Conservative", want: RiskConservative},
		{input: "low", want: RiskConservative},
		{input: " moderate ", want: RiskModerate},
		{input: "High Risk", want: RiskHigh},
		{input: "high", want: RiskHigh},
		{input: "reckless", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseRiskTolerance(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownRisk)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseInterestType(t *testing.T) {
	got, err := ParseInterestType("")
	require.NoError(t, err)
	assert.Equal(t, InterestCompound, got)

	got, err = ParseInterestType("Simple")
	require.NoError(t, err)
	assert.Equal(t, InterestSimple, got)

	_, err = ParseInterestType("continuous")
	assert.ErrorIs(t, err, ErrUnknownInterest)
}

func TestTransaction(t *testing.T) {
	typ, err := ParseTransactionType("WITHDRAW")
	require.NoError(t, err)
	assert.Equal(t, TransactionWithdraw, typ)

	_, err = ParseTransactionType("transfer")
	assert.Error(t, err)

	add := Transaction{Type: TransactionAdd, Amount: decimal.NewFromInt(50)}
	out := Transaction{Type: TransactionWithdraw, Amount: decimal.NewFromInt(20)}
	assert.Equal(t, "30", add.Signed().Add(out.Signed()).String())
}
