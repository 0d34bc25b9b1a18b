package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name   string
		amount decimal.Decimal
		code   string
		want   string
	}{
		{"Grouped", decimal.RequireFromString("1234.5"), "GBP", "GBP 1,234.50"},
		{"Rounded", decimal.RequireFromString("0.125"), "EUR", "EUR 0.13"},
		{"UnknownCode", decimal.NewFromInt(3), "ZZZ", "GBP 3.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.amount, tt.code))
		})
	}
}

func TestPlain(t *testing.T) {
	assert.Equal(t, "1234.50", Plain(decimal.RequireFromString("1234.5")))
}
