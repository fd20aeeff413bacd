package models

import "time"

// PriceSummary holds robust descriptive statistics over comparable totals
// after filtering and outlier rejection.
type PriceSummary struct {
	SampleCount int     `json:"sample_count"`
	Min         float64 `json:"min"`
	Max         float64 `json:"max"`
	Mean        float64 `json:"mean"`
	Median      float64 `json:"median"`
	StdDev      float64 `json:"stdev"`
}

// VerificationURLs are prebuilt marketplace search URLs for manual research.
type VerificationURLs struct {
	SoldListings   string `json:"sold_listings"`
	ActiveListings string `json:"active_listings"`
}

// ServiceTier is one budget tier of third-party pricing services.
type ServiceTier struct {
	Tier     string   `json:"tier"`
	Budget   string   `json:"budget"`
	Services []string `json:"services"`
}

// ResearchAids is the manual-pricing packet attached when automated data
// is insufficient. Informational only.
type ResearchAids struct {
	VerificationURLs VerificationURLs `json:"verification_urls"`
	Checklist        []string         `json:"checklist"`
	DataPoints       []string         `json:"data_points"`
	RedFlags         []string         `json:"red_flags"`
	ServiceTiers     []ServiceTier    `json:"service_tiers"`
}

// PriceAnalysisResult is the immutable outcome of one analysis call.
// Success=false with populated Comparables and ResearchAids is the normal
// "not enough sold data, price manually" outcome, not an error.
type PriceAnalysisResult struct {
	AnalysisID      string              `json:"analysis_id,omitempty"`
	Success         bool                `json:"success"`
	SearchTermsUsed string              `json:"search_terms_used"`
	Summary         PriceSummary        `json:"summary"`
	SuggestedPrice  float64             `json:"suggested_price,omitempty"`
	ConfidenceScore float64             `json:"confidence_score"`
	Comparables     []ComparableListing `json:"comparables"`
	StrategiesTried []SearchStrategy    `json:"strategies_tried"`
	ResearchAids    *ResearchAids       `json:"research_aids,omitempty"`
	AnalyzedAt      time.Time           `json:"analyzed_at,omitempty"`
}
