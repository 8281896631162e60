// Package projection provides closed-form corpus projections: long-term
// retirement growth from monthly investing, and corpus growth funded purely
// by expense round-ups. Both are simple annuity arithmetic with an
// inflation deflator; no temporal rule resolution is involved.
package projection

import (
	"github.com/shopspring/decimal"

	"github.com/Ayushs1043/blackrock-savings-challenge/internal/models"
)

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
	twelve  = decimal.NewFromInt(12)
)

// RetirementInput holds the parameters of a retirement corpus projection.
type RetirementInput struct {
	CurrentAge        int             `json:"currentAge"`
	RetirementAge     int             `json:"retirementAge"`
	MonthlyInvestment decimal.Decimal `json:"monthlyInvestment"`
	AnnualReturnRate  decimal.Decimal `json:"annualReturnRate"`
	CurrentCorpus     decimal.Decimal `json:"currentCorpus"`
	InflationRate     decimal.Decimal `json:"inflationRate"`
}

// RetirementProjection is the result of a retirement corpus projection.
type RetirementProjection struct {
	YearsToRetirement int             `json:"yearsToRetirement"`
	MonthlyInvestment decimal.Decimal `json:"monthlyInvestment"`
	AnnualReturnRate  decimal.Decimal `json:"annualReturnRate"`
	InflationRate     decimal.Decimal `json:"inflationRate"`
	CorpusNominal     decimal.Decimal `json:"projectedCorpusNominal"`
	CorpusReal        decimal.Decimal `json:"projectedCorpusReal"`
}

// RoundupInput holds the parameters of a round-up corpus projection.
type RoundupInput struct {
	MonthlyExpenses  []decimal.Decimal `json:"monthlyExpenses"`
	RoundupBase      decimal.Decimal   `json:"roundupBase"`
	AnnualReturnRate decimal.Decimal   `json:"annualReturnRate"`
	Years            int               `json:"years"`
	InflationRate    decimal.Decimal   `json:"inflationRate"`
}

// RoundupProjection is the result of a round-up corpus projection.
type RoundupProjection struct {
	MonthlyInvestment decimal.Decimal `json:"monthlyRoundupInvestment"`
	AnnualReturnRate  decimal.Decimal `json:"annualReturnRate"`
	InflationRate     decimal.Decimal `json:"inflationRate"`
	Years             int             `json:"years"`
	CorpusNominal     decimal.Decimal `json:"projectedCorpusNominal"`
	CorpusReal        decimal.Decimal `json:"projectedCorpusReal"`
}

// futureValueOfMonthlyInvestment is the future value of an ordinary annuity:
// P * ((1+r)^n - 1) / r, degrading to P*n when the rate is zero.
func futureValueOfMonthlyInvestment(monthly, monthlyRate decimal.Decimal, months int) decimal.Decimal {
	if months <= 0 {
		return decimal.Zero
	}

	if monthlyRate.IsZero() {
		return monthly.Mul(decimal.NewFromInt(int64(months)))
	}

	growth := one.Add(monthlyRate).Pow(decimal.NewFromInt(int64(months)))
	return monthly.Mul(growth.Sub(one).Div(monthlyRate))
}

// futureValueOfLumpsum compounds a principal monthly over the horizon.
func futureValueOfLumpsum(principal, monthlyRate decimal.Decimal, months int) decimal.Decimal {
	if months <= 0 {
		return principal
	}
	return principal.Mul(one.Add(monthlyRate).Pow(decimal.NewFromInt(int64(months))))
}

// adjustForInflation deflates a nominal value by (1+inflation/100)^years.
func adjustForInflation(value, annualInflationPct decimal.Decimal, years int) decimal.Decimal {
	factor := one.Add(annualInflationPct.Div(hundred)).Pow(decimal.NewFromInt(int64(years)))
	if factor.IsZero() {
		return value
	}
	return value.Div(factor)
}

// RoundUpAmount rounds a value up to the next multiple of base.
func RoundUpAmount(value, base decimal.Decimal) decimal.Decimal {
	return value.Div(base).Ceil().Mul(base)
}

// ProjectRetirement projects the nominal and inflation-adjusted corpus at
// retirement from the invested monthly amount plus the already accumulated
// corpus.
func ProjectRetirement(in RetirementInput) RetirementProjection {
	years := in.RetirementAge - in.CurrentAge
	months := years * 12
	monthlyRate := in.AnnualReturnRate.Div(hundred).Div(twelve)

	nominal := futureValueOfLumpsum(in.CurrentCorpus, monthlyRate, months).
		Add(futureValueOfMonthlyInvestment(in.MonthlyInvestment, monthlyRate, months))
	real := adjustForInflation(nominal, in.InflationRate, years)

	return RetirementProjection{
		YearsToRetirement: years,
		MonthlyInvestment: in.MonthlyInvestment,
		AnnualReturnRate:  in.AnnualReturnRate,
		InflationRate:     in.InflationRate,
		CorpusNominal:     models.Round2(nominal),
		CorpusReal:        models.Round2(real),
	}
}

// ProjectRoundup estimates corpus growth when each monthly expense's
// round-up difference is invested every month over the horizon.
func ProjectRoundup(in RoundupInput) RoundupProjection {
	monthly := decimal.Zero
	for _, expense := range in.MonthlyExpenses {
		monthly = monthly.Add(RoundUpAmount(expense, in.RoundupBase).Sub(expense))
	}

	monthlyRate := in.AnnualReturnRate.Div(hundred).Div(twelve)
	months := in.Years * 12

	nominal := futureValueOfMonthlyInvestment(monthly, monthlyRate, months)
	real := adjustForInflation(nominal, in.InflationRate, in.Years)

	return RoundupProjection{
		MonthlyInvestment: models.Round2(monthly),
		AnnualReturnRate:  in.AnnualReturnRate,
		InflationRate:     in.InflationRate,
		Years:             in.Years,
		CorpusNominal:     models.Round2(nominal),
		CorpusReal:        models.Round2(real),
	}
}
