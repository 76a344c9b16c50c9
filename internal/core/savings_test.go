package core

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dep(amount string, date string) SavingsDeposit {
	return SavingsDeposit{Amount: MustAmount(amount), Date: MustParseDate(date)}
}

func TestTotalSaved(t *testing.T) {
	assert.True(t, TotalSaved(nil).IsZero(), "empty list sums to zero")

	deposits := []SavingsDeposit{dep("300000", "2024-01-10"), dep("400000", "2024-02-10")}
	assert.True(t, TotalSaved(deposits).Equal(MustAmount("700000")))

	// Adding a deposit of amount a increases the total by exactly a.
	before := TotalSaved(deposits)
	deposits = append(deposits, dep("123.45", "2024-03-01"))
	assert.True(t, TotalSaved(deposits).Sub(before).Equal(MustAmount("123.45")))
}

func TestProgress(t *testing.T) {
	tests := []struct {
		name   string
		saved  string
		target string
		want   float64
	}{
		{"zero target", "500", "0", 0},
		{"negative target", "500", "-1", 0},
		{"partial", "700000", "1000000", 70},
		{"exact", "1000000", "1000000", 100},
		{"over target clamps", "1500000", "1000000", 100},
		{"zero saved", "0", "1000000", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Progress(MustAmount(tt.saved), decimal.RequireFromString(tt.target))
			assert.InDelta(t, tt.want, got, 1e-9)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, 100.0)
		})
	}
}

func TestSummarizeSavingsScenario(t *testing.T) {
	goal := SavingsGoal{Name: "Emergency fund", TargetAmount: MustAmount("1000000")}

	goal.Deposits = append(goal.Deposits, dep("300000", "2024-01-05"), dep("400000", "2024-02-05"))
	s := SummarizeSavings(goal)
	assert.True(t, s.TotalSaved.Equal(MustAmount("700000")))
	assert.InDelta(t, 70, s.Progress, 1e-9)
	assert.True(t, s.Remaining.Equal(MustAmount("300000")))
	assert.False(t, s.IsComplete)

	goal.Deposits = append(goal.Deposits, dep("300000", "2024-03-05"))
	s = SummarizeSavings(goal)
	assert.True(t, s.TotalSaved.Equal(MustAmount("1000000")))
	assert.InDelta(t, 100, s.Progress, 1e-9)
	assert.True(t, s.Remaining.IsZero())
	assert.True(t, s.IsComplete)
}

func TestEstimateCompletion(t *testing.T) {
	today := MustParseDate("2024-06-15")

	t.Run("needs at least two deposits", func(t *testing.T) {
		g := SavingsGoal{TargetAmount: MustAmount("1000")}
		g.Deposits = []SavingsDeposit{dep("100", "2024-01-01")}
		_, ok := EstimateCompletion(g, today)
		assert.False(t, ok)
	})

	t.Run("projects from today", func(t *testing.T) {
		// 600 saved over Jan..Mar = 2 month span, avg 300/month.
		// Remaining 600 -> ceil(600/300) = 2 months from today.
		g := SavingsGoal{TargetAmount: MustAmount("1200")}
		g.Deposits = []SavingsDeposit{dep("300", "2024-01-10"), dep("300", "2024-03-10")}
		est, ok := EstimateCompletion(g, today)
		require.True(t, ok)
		assert.Equal(t, "2024-08-15", est.String())
	})

	t.Run("same-day deposits use one-month denominator", func(t *testing.T) {
		g := SavingsGoal{TargetAmount: MustAmount("300")}
		g.Deposits = []SavingsDeposit{dep("100", "2024-05-01"), dep("100", "2024-05-01")}
		est, ok := EstimateCompletion(g, today)
		require.True(t, ok)
		// avg 200/month, remaining 100 -> 1 month out.
		assert.Equal(t, "2024-07-15", est.String())
	})

	t.Run("already complete returns today", func(t *testing.T) {
		g := SavingsGoal{TargetAmount: MustAmount("100")}
		g.Deposits = []SavingsDeposit{dep("60", "2024-01-01"), dep("60", "2024-02-01")}
		est, ok := EstimateCompletion(g, today)
		require.True(t, ok)
		assert.Equal(t, today.String(), est.String())
	})
}
