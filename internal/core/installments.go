package core

import "github.com/shopspring/decimal"

// InstallmentProgress is the derived payment schedule state of an installment.
// Everything here follows from the payment list; no counters are stored.
type InstallmentProgress struct {
	TotalPaid           decimal.Decimal
	CurrentMonth        int64 // completed full periods
	PeriodPaid          decimal.Decimal
	RemainingThisPeriod decimal.Decimal
	RemainingMonths     int64
	RemainingAmount     decimal.Decimal
	ProgressPercentage  float64 // 0-100
	IsPaidOff           bool
}

// TotalInstallmentPaid sums all payment amounts.
func TotalInstallmentPaid(payments []InstallmentPayment) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		total = total.Add(p.Amount)
	}
	return total
}

// SummarizeInstallment derives the schedule position from the payment list.
// currentMonth counts completed full periods; periodPaid is the partial
// progress into the next one.
func SummarizeInstallment(ins Installment) InstallmentProgress {
	totalPaid := TotalInstallmentPaid(ins.Payments)

	currentMonth := int64(0)
	if ins.MonthlyAmount.IsPositive() {
		currentMonth = totalPaid.Div(ins.MonthlyAmount).Floor().IntPart()
	}

	periodPaid := totalPaid.Sub(ins.MonthlyAmount.Mul(decimal.NewFromInt(currentMonth)))
	remainingThisPeriod := ins.MonthlyAmount.Sub(periodPaid)

	remainingMonths := int64(ins.TotalTenor) - currentMonth
	if remainingMonths < 0 {
		remainingMonths = 0
	}

	remainingAmount := ins.TotalAmount.Sub(totalPaid)
	if remainingAmount.IsNegative() {
		remainingAmount = decimal.Zero
	}

	pct := 0.0
	if ins.TotalAmount.IsPositive() {
		pct = totalPaid.Div(ins.TotalAmount).InexactFloat64() * 100
		if pct > 100 {
			pct = 100
		}
	}

	return InstallmentProgress{
		TotalPaid:           totalPaid,
		CurrentMonth:        currentMonth,
		PeriodPaid:          periodPaid,
		RemainingThisPeriod: remainingThisPeriod,
		RemainingMonths:     remainingMonths,
		RemainingAmount:     remainingAmount,
		ProgressPercentage:  pct,
		IsPaidOff:           totalPaid.Cmp(ins.TotalAmount) >= 0,
	}
}
