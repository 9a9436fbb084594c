package handler

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardSummary_ExactMoneyMath(t *testing.T) {
	// 1234.56 - 1234.46 drifts under float64; decimal keeps it at 0.10.
	got := dashboardSummary(3, 4, 5, 6,
		decimal.NewFromFloat(1234.56), decimal.NewFromFloat(1234.46))

	outstanding, ok := got["outstanding"].(decimal.Decimal)
	require.True(t, ok)
	assert.True(t, outstanding.Equal(decimal.NewFromFloat(0.10)), outstanding.String())

	billed, ok := got["total_billed"].(decimal.Decimal)
	require.True(t, ok)
	assert.True(t, billed.Equal(decimal.NewFromFloat(1234.56)))
}
