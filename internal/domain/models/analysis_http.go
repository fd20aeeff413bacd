package models

// Requests for pricing HTTP endpoints. Defined in domain for consistency and reuse.

type AnalyzeRequest struct {
	Terms         string      `json:"terms"`
	Item          *ItemRecord `json:"item"`
	MarkupPercent float64     `json:"markup_percent" default:"15" validate:"gte=0,lte=500"`
	SampleLimit   int         `json:"sample_limit" default:"20" validate:"gte=1,lte=200"`
}

type ResearchAidsRequest struct {
	Terms     string  `query:"terms" json:"terms" validate:"required"`
	Condition string  `query:"condition" json:"condition"`
	Category  string  `query:"category" json:"category"`
	MinPrice  float64 `query:"min_price" json:"min_price" validate:"gte=0"`
	MaxPrice  float64 `query:"max_price" json:"max_price" validate:"gte=0"`
}

type HistoryRequest struct {
	Terms string `query:"terms" json:"terms"`
	Limit int    `query:"limit" json:"limit" default:"50" validate:"gte=1,lte=1000"`
}
