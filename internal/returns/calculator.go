// Package returns converts windowed savings sums into inflation-adjusted
// investment projections, optionally with the NPS tax deduction benefit.
package returns

import (
	"github.com/shopspring/decimal"

	"github.com/Ayushs1043/blackrock-savings-challenge/internal/models"
	"github.com/Ayushs1043/blackrock-savings-challenge/internal/windows"
)

// Scheme selects the investment vehicle and its fixed annual growth rate.
type Scheme string

const (
	// SchemeNPS is the National Pension System variant: lower growth rate,
	// eligible for the section 80CCD deduction benefit.
	SchemeNPS Scheme = "nps"
	// SchemeIndex is the index-fund variant: higher growth rate, no tax
	// benefit.
	SchemeIndex Scheme = "index"
)

// IsValid checks if the scheme is supported
func (s Scheme) IsValid() bool {
	return s == SchemeNPS || s == SchemeIndex
}

// Fixed annual growth rates per scheme.
var (
	npsAnnualRate   = decimal.RequireFromString("0.0711")
	indexAnnualRate = decimal.RequireFromString("0.1449")
)

// NPS deduction limits: 10% of annual income, absolute cap of 200,000.
var (
	npsDeductionIncomeRatio = decimal.RequireFromString("0.10")
	npsMaxDeduction         = decimal.NewFromInt(200_000)
)

// Progressive tax slab boundaries (annual income basis) and marginal rates.
var (
	slab1 = decimal.NewFromInt(700_000)
	slab2 = decimal.NewFromInt(1_000_000)
	slab3 = decimal.NewFromInt(1_200_000)
	slab4 = decimal.NewFromInt(1_500_000)

	rate10 = decimal.RequireFromString("0.10")
	rate15 = decimal.RequireFromString("0.15")
	rate20 = decimal.RequireFromString("0.20")
	rate30 = decimal.RequireFromString("0.30")
)

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
	twelve  = decimal.NewFromInt(12)
)

// AnnualRate returns the fixed growth rate for a scheme.
func AnnualRate(scheme Scheme) decimal.Decimal {
	if scheme == SchemeNPS {
		return npsAnnualRate
	}
	return indexAnnualRate
}

// InvestmentHorizonYears derives the compounding horizon from the investor's
// age: years to 60 before retirement age, a five year floor after it.
func InvestmentHorizonYears(age int) int {
	if age < 60 {
		return 60 - age
	}
	return 5
}

// ProgressiveTax computes the cumulative annual income tax under the slab
// table. Negative income is treated as zero.
func ProgressiveTax(income decimal.Decimal) decimal.Decimal {
	taxable := income
	if taxable.IsNegative() {
		taxable = decimal.Zero
	}

	if taxable.LessThanOrEqual(slab1) {
		return decimal.Zero
	}

	tax := decimal.Zero
	if taxable.LessThanOrEqual(slab2) {
		return taxable.Sub(slab1).Mul(rate10)
	}
	tax = tax.Add(slab2.Sub(slab1).Mul(rate10))

	if taxable.LessThanOrEqual(slab3) {
		return tax.Add(taxable.Sub(slab2).Mul(rate15))
	}
	tax = tax.Add(slab3.Sub(slab2).Mul(rate15))

	if taxable.LessThanOrEqual(slab4) {
		return tax.Add(taxable.Sub(slab3).Mul(rate20))
	}
	tax = tax.Add(slab4.Sub(slab3).Mul(rate20))

	return tax.Add(taxable.Sub(slab4).Mul(rate30))
}

// NPSTaxBenefit computes the tax saved by deducting the invested amount,
// capped at 10% of annual income and the absolute deduction limit. The
// benefit is the tax delta between the undeducted and deducted incomes,
// floored at zero.
func NPSTaxBenefit(monthlyWage, investedAmount decimal.Decimal) decimal.Decimal {
	annualIncome := monthlyWage.Mul(twelve)

	deduction := investedAmount
	if cap := annualIncome.Mul(npsDeductionIncomeRatio); cap.LessThan(deduction) {
		deduction = cap
	}
	if npsMaxDeduction.LessThan(deduction) {
		deduction = npsMaxDeduction
	}

	benefit := ProgressiveTax(annualIncome).Sub(ProgressiveTax(annualIncome.Sub(deduction)))
	if benefit.IsNegative() {
		return decimal.Zero
	}
	return benefit
}

// RealReturn grows an amount at the annual rate over the horizon and
// deflates the nominal result by the inflation factor. A zero inflation
// factor passes the nominal value through unchanged; it cannot occur for
// valid input since inflation is non-negative, but the guard keeps the
// computation total.
func RealReturn(amount, annualRate, inflationPct decimal.Decimal, years int) decimal.Decimal {
	nominal := amount.Mul(one.Add(annualRate).Pow(decimal.NewFromInt(int64(years))))

	inflationFactor := one.Add(inflationPct.Div(hundred)).Pow(decimal.NewFromInt(int64(years)))
	if inflationFactor.IsZero() {
		return nominal
	}

	return nominal.Div(inflationFactor)
}

// Input carries the scalar parameters of a returns computation.
type Input struct {
	Age       int
	Wage      decimal.Decimal
	Inflation decimal.Decimal
	Scheme    Scheme
}

// Compute maps each windowed sum to its SavingsByDate projection. Every
// monetary output is rounded per the engine-wide convention; the tax
// benefit is zero for non-NPS schemes.
func Compute(sums []windows.WindowSum, in Input) []models.SavingsByDate {
	years := InvestmentHorizonYears(in.Age)
	rate := AnnualRate(in.Scheme)

	results := make([]models.SavingsByDate, 0, len(sums))
	for _, ws := range sums {
		amount := models.Round2(ws.Sum)
		real := models.Round2(RealReturn(amount, rate, in.Inflation, years))
		profits := models.Round2(real.Sub(amount))

		taxBenefit := decimal.Zero
		if in.Scheme == SchemeNPS {
			taxBenefit = models.Round2(NPSTaxBenefit(in.Wage, amount))
		}

		results = append(results, models.SavingsByDate{
			Start:        ws.Range.Start,
			End:          ws.Range.End,
			Amount:       amount,
			Profits:      profits,
			TaxBenefit:   taxBenefit,
			ReturnAmount: real,
		})
	}

	return results
}
