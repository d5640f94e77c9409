package dto

type PolicyRequest struct {
	Title           string  `json:"title"`
	Category        string  `json:"category"`
	Description     string  `json:"description"`
	Image           *string `json:"image,omitempty"`
	MinAge          int     `json:"min_age"`
	MaxAge          int     `json:"max_age"`
	MinCoverage     float64 `json:"min_coverage"`
	MaxCoverage     float64 `json:"max_coverage"`
	DurationOptions string  `json:"duration_options"`
	BasePremiumRate float64 `json:"base_premium_rate"`
}

type QuoteRequest struct {
	Age            int     `json:"age"`
	Gender         string  `json:"gender"`
	CoverageAmount float64 `json:"coverage_amount"`
	DurationYears  int     `json:"duration_years"`
	Smoker         bool    `json:"smoker"`
}
