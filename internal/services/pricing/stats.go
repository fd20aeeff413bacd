package pricing

import (
	"math"
	"sort"
	"strings"

	"PriceScout/internal/domain/models"
)

// Options is the immutable engine configuration. It is passed explicitly
// into the analyzer; there is no process-wide singleton.
type Options struct {
	MarkupPercent        float64
	MaxResults           int
	MinResults           int
	LookbackDays         int
	MinPrice             float64
	ExcludeWords         []string
	OutlierIQRMultiplier float64
	ConfidenceFullSample int
}

// DefaultOptions returns the stock engine configuration.
func DefaultOptions() Options {
	return Options{
		MarkupPercent:        15,
		MaxResults:           20,
		MinResults:           3,
		LookbackDays:         90,
		MinPrice:             0.99,
		ExcludeWords:         []string{"broken", "for parts", "not working", "damaged", "cracked"},
		OutlierIQRMultiplier: 1.5,
		ConfidenceFullSample: 5,
	}
}

// Filter drops comparables whose title contains an exclusion word
// (case-insensitive substring) or whose total falls below the price floor.
// Applied before any statistics.
func Filter(in []models.ComparableListing, opts Options) []models.ComparableListing {
	out := make([]models.ComparableListing, 0, len(in))
	for _, c := range in {
		if c.Total() < opts.MinPrice {
			continue
		}
		title := strings.ToLower(c.Title)
		excluded := false
		for _, w := range opts.ExcludeWords {
			if w != "" && strings.Contains(title, strings.ToLower(w)) {
				excluded = true
				break
			}
		}
		if excluded {
			continue
		}
		out = append(out, c)
	}
	return out
}

// RejectOutliers removes comparables whose total lies outside
// [Q1 - k*IQR, Q3 + k*IQR]. Quartiles are positional (index n/4 and 3n/4
// of the ascending-sorted totals), not interpolated; this matches the
// engine's historical behavior. With fewer than four samples rejection is
// skipped entirely.
func RejectOutliers(in []models.ComparableListing, mult float64) []models.ComparableListing {
	if len(in) < 4 {
		return in
	}

	sorted := make([]models.ComparableListing, len(in))
	copy(sorted, in)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Total() < sorted[j].Total()
	})

	n := len(sorted)
	q1 := sorted[n/4].Total()
	q3 := sorted[3*n/4].Total()
	iqr := q3 - q1
	lo := q1 - mult*iqr
	hi := q3 + mult*iqr

	out := make([]models.ComparableListing, 0, n)
	for _, c := range sorted {
		if t := c.Total(); t >= lo && t <= hi {
			out = append(out, c)
		}
	}
	return out
}

// Summarize computes min/max/mean/median and sample standard deviation over
// the comparables' totals. StdDev is zero with fewer than two points.
func Summarize(in []models.ComparableListing) models.PriceSummary {
	s := models.PriceSummary{SampleCount: len(in)}
	if len(in) == 0 {
		return s
	}

	totals := make([]float64, len(in))
	for i, c := range in {
		totals[i] = c.Total()
	}
	sort.Float64s(totals)

	s.Min = totals[0]
	s.Max = totals[len(totals)-1]

	var sum float64
	for _, t := range totals {
		sum += t
	}
	s.Mean = sum / float64(len(totals))

	mid := len(totals) / 2
	if len(totals)%2 == 0 {
		s.Median = (totals[mid-1] + totals[mid]) / 2
	} else {
		s.Median = totals[mid]
	}

	if len(totals) >= 2 {
		var sq float64
		for _, t := range totals {
			d := t - s.Mean
			sq += d * d
		}
		s.StdDev = math.Sqrt(sq / float64(len(totals)-1))
	}
	return s
}

// SuggestedPrice applies the markup to the median and rounds so the result
// always carries a .99 cent value, the usual marketplace convention.
func SuggestedPrice(median, markupPercent float64) float64 {
	base := median * (1 + markupPercent/100)
	return math.Round(base-0.01) + 0.99
}

// ConfidenceScore combines sample size and price dispersion into a 0-100
// score. Each component contributes up to 50 points: a full sample earns
// the count half, and a low coefficient of variation (stdev/median) earns
// the stability half.
func ConfidenceScore(sampleCount, fullSample int, stdev, median float64) float64 {
	if fullSample <= 0 {
		fullSample = 1
	}
	countScore := float64(sampleCount) / float64(fullSample) * 50
	if countScore > 100 {
		countScore = 100
	}

	cv := 0.0
	if median != 0 {
		cv = stdev / median
	}
	variability := 50 - cv*100
	if variability < 0 {
		variability = 0
	}

	score := countScore + variability
	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}
	return score
}
