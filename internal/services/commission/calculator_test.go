package commission

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCommissionSplit(t *testing.T) {
	tests := []struct {
		gross      string
		commission string
		net        string
	}{
		{"999.00", "99.90", "899.10"},
		{"100.00", "10.00", "90.00"},
		{"0.05", "0.01", "0.04"},   // 0.005 rounds half away from zero
		{"10.55", "1.06", "9.49"},  // 1.055 rounds up
		{"10.44", "1.04", "9.40"},  // 1.044 rounds down
		{"0.01", "0.00", "0.01"},
		{"1234.56", "123.46", "1111.10"},
	}

	for _, tt := range tests {
		t.Run(tt.gross, func(t *testing.T) {
			gross := decimal.RequireFromString(tt.gross)
			commission, net := Split(gross)

			assert.Equal(t, tt.commission, commission.StringFixed(2))
			assert.Equal(t, tt.net, net.StringFixed(2))

			// Conservation: the two halves always reassemble the gross
			assert.True(t, commission.Add(net).Equal(gross))
		})
	}
}

func TestCommissionMatchesNet(t *testing.T) {
	gross := decimal.RequireFromString("57.37")
	assert.True(t, Net(gross).Equal(gross.Sub(Commission(gross))))
}
