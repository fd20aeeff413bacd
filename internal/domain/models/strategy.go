package models

// StrategyKind identifies how a candidate search query was derived.
type StrategyKind string

const (
	StrategyBrandModel   StrategyKind = "brand_model"
	StrategyFeatureType  StrategyKind = "feature_type"
	StrategyKeywords     StrategyKind = "keywords"
	StrategyTitleCleaned StrategyKind = "title_cleaned"
	StrategyManual       StrategyKind = "manual"
	StrategyCustom       StrategyKind = "custom"
)

// StrategyConfidence is the a-priori confidence tier of a strategy.
type StrategyConfidence string

const (
	ConfidenceHigh   StrategyConfidence = "high"
	ConfidenceMedium StrategyConfidence = "medium"
	ConfidenceLow    StrategyConfidence = "low"
)

// SearchStrategy is one candidate search query with its derivation method.
// Strategies are produced and tried in a fixed priority order:
// brand_model, feature_type, keywords, title_cleaned.
type SearchStrategy struct {
	Terms      string             `json:"terms"`
	Kind       StrategyKind       `json:"kind"`
	Confidence StrategyConfidence `json:"confidence"`
}
