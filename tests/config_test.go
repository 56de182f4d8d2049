package tests

import (
	"testing"

	"foodcart360/internal/config"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestConfigTaxRateParsing(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want decimal.Decimal
	}{
		{"integer percent", "5", decimal.NewFromInt(5)},
		{"fractional percent", "12.5", decimal.NewFromFloat(12.5)},
		{"zero", "0", decimal.Zero},
		{"garbage falls back to zero", "five", decimal.Zero},
		{"empty falls back to zero", "", decimal.Zero},
		{"negative falls back to zero", "-3", decimal.Zero},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &config.Config{TaxRatePct: tc.raw}
			assert.True(t, cfg.TaxRate().Equal(tc.want), "got %s", cfg.TaxRate())
		})
	}
}
