package research

import (
	"fmt"
	"net/url"

	"PriceScout/internal/domain/models"
)

const searchBase = "https://www.ebay.com/sch/i.html"

// Params narrows the generated verification URLs.
type Params struct {
	Condition string
	Category  string
	MinPrice  float64
	MaxPrice  float64
}

// Generator builds manual-research artifacts for a query: prebuilt sold and
// active search URLs, a verification checklist, and service recommendations.
// Pure templating; no network access.
type Generator struct{}

func New() *Generator { return &Generator{} }

// Aids produces the full manual-pricing packet for the given query terms.
func (g *Generator) Aids(terms string, p Params) *models.ResearchAids {
	return &models.ResearchAids{
		VerificationURLs: models.VerificationURLs{
			SoldListings:   g.SoldURL(terms, p),
			ActiveListings: g.ActiveURL(terms, p),
		},
		Checklist:    checklist,
		DataPoints:   dataPoints,
		RedFlags:     redFlags,
		ServiceTiers: serviceTiers,
	}
}

// SoldURL builds a completed/sold listings search URL for the terms.
func (g *Generator) SoldURL(terms string, p Params) string {
	q := baseQuery(terms, p)
	q.Set("LH_Sold", "1")
	q.Set("LH_Complete", "1")
	return searchBase + "?" + q.Encode()
}

// ActiveURL builds a current listings search URL for the terms.
func (g *Generator) ActiveURL(terms string, p Params) string {
	q := baseQuery(terms, p)
	return searchBase + "?" + q.Encode()
}

func baseQuery(terms string, p Params) url.Values {
	q := url.Values{}
	q.Set("_nkw", terms)
	q.Set("_ipg", "60")
	q.Set("_sop", "13") // newly listed first
	if p.Condition != "" {
		q.Set("LH_ItemCondition", conditionCode(p.Condition))
	}
	if p.Category != "" {
		q.Set("_sacat", p.Category)
	}
	if p.MinPrice > 0 {
		q.Set("_udlo", fmt.Sprintf("%.2f", p.MinPrice))
	}
	if p.MaxPrice > 0 {
		q.Set("_udhi", fmt.Sprintf("%.2f", p.MaxPrice))
	}
	return q
}

func conditionCode(cond string) string {
	switch cond {
	case "new":
		return "1000"
	case "refurbished":
		return "2500"
	case "for_parts":
		return "7000"
	default:
		return "3000" // used
	}
}

var checklist = []string{
	"Open the sold-listings URL and confirm the results actually match your item.",
	"Note the last 5-10 sold prices and when they sold.",
	"Compare condition, completeness, and included accessories against your item.",
	"Check the active-listings URL for how much competition is currently listed.",
	"Adjust for seasonality if sales cluster around holidays or events.",
	"Pick a price between the recent median and the lowest active competitor.",
}

var dataPoints = []string{
	"Most recent sold price and date",
	"Median of the last 10 sold prices",
	"Number of active listings for the same item",
	"Lowest active buy-it-now price",
	"Typical shipping charge for sold items",
}

var redFlags = []string{
	"Sold results that are a different model or generation than your item",
	"Prices from lots or bundles counted as single-item sales",
	"For-parts or damaged sales mixed into the comparable set",
	"A single outlier sale dominating the average",
	"Sold data older than 90 days in a fast-moving category",
}

var serviceTiers = []models.ServiceTier{
	{Tier: "free", Budget: "$0", Services: []string{"eBay sold-listings search", "Google Shopping", "PriceCharting (games)"}},
	{Tier: "hobbyist", Budget: "under $30/mo", Services: []string{"Terapeak (eBay store tiers)", "WorthPoint starter"}},
	{Tier: "professional", Budget: "$30+/mo", Services: []string{"WorthPoint full", "GoCollect", "professional appraisal"}},
}
