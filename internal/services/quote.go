package services

import "math"

// DefaultBaseRate is the annualized premium rate applied when a policy
// does not carry its own.
const DefaultBaseRate = 0.04

// SmokerSurcharge multiplies the premium for smokers.
const SmokerSurcharge = 1.5

type QuoteInput struct {
	CoverageAmount float64
	DurationYears  int
	Smoker         bool
	BaseRate       float64
}

type QuoteEstimate struct {
	TotalPayable   float64 `json:"total_payable"`
	AnnualPremium  float64 `json:"annual_premium"`
	MonthlyPremium float64 `json:"monthly_premium"`
}

// EstimatePremium is the single authoritative premium formula:
// total = coverage x rate x smoker factor, annual = total / years,
// monthly = annual / 12.
func EstimatePremium(in QuoteInput) QuoteEstimate {
	rate := in.BaseRate
	if rate <= 0 {
		rate = DefaultBaseRate
	}

	years := in.DurationYears
	if years < 1 {
		years = 1
	}

	factor := 1.0
	if in.Smoker {
		factor = SmokerSurcharge
	}

	total := in.CoverageAmount * rate * factor
	annual := roundCents(total / float64(years))
	monthly := roundCents(annual / 12)

	return QuoteEstimate{
		TotalPayable:   roundCents(total),
		AnnualPremium:  annual,
		MonthlyPremium: monthly,
	}
}

// ConvertBDTToUSD converts a BDT amount at the injected rate, rounded
// to cents. Every payment call site goes through here.
func ConvertBDTToUSD(amountBDT, rate float64) float64 {
	return roundCents(amountBDT * rate)
}

// USDCents returns the gateway charge amount in integer cents.
func USDCents(amountUSD float64) int64 {
	return int64(math.Round(amountUSD * 100))
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
