package pricing

import (
	"math"
	"testing"

	"PriceScout/internal/domain/models"
)

func comps(prices ...float64) []models.ComparableListing {
	out := make([]models.ComparableListing, len(prices))
	for i, p := range prices {
		out[i] = models.ComparableListing{ItemID: "x", Title: "widget", Price: p}
	}
	return out
}

func TestFilterPriceFloorAndExclusions(t *testing.T) {
	opts := DefaultOptions()
	in := []models.ComparableListing{
		{Title: "widget", Price: 50},
		{Title: "widget BROKEN screen", Price: 60},
		{Title: "widget for parts only", Price: 55},
		{Title: "widget", Price: 0.50},
		{Title: "widget", Price: 0.50, Shipping: 5},
	}

	got := Filter(in, opts)
	if len(got) != 2 {
		t.Fatalf("expected 2 survivors, got %d", len(got))
	}
	if got[0].Price != 50 || got[1].Total() != 5.50 {
		t.Fatalf("unexpected survivors %+v", got)
	}
}

func TestRejectOutliersRemovesHighOutlier(t *testing.T) {
	in := comps(100, 110, 105, 108, 500)

	got := RejectOutliers(in, 1.5)
	if len(got) != 4 {
		t.Fatalf("expected 4 survivors, got %d", len(got))
	}
	for _, c := range got {
		if c.Total() == 500 {
			t.Fatalf("outlier 500 not removed")
		}
	}
}

func TestRejectOutliersSkipsSmallSamples(t *testing.T) {
	in := comps(10, 20, 5000)
	got := RejectOutliers(in, 1.5)
	if len(got) != 3 {
		t.Fatalf("expected small sample untouched, got %d", len(got))
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(comps(100, 105, 108, 110))
	if s.SampleCount != 4 {
		t.Fatalf("count = %d", s.SampleCount)
	}
	if s.Min != 100 || s.Max != 110 {
		t.Fatalf("min/max = %v/%v", s.Min, s.Max)
	}
	if s.Mean != 105.75 {
		t.Fatalf("mean = %v", s.Mean)
	}
	if s.Median != 106.5 {
		t.Fatalf("median = %v", s.Median)
	}
	if s.StdDev <= 0 {
		t.Fatalf("stdev = %v", s.StdDev)
	}
}

func TestSummarizeOddMedianAndShipping(t *testing.T) {
	in := []models.ComparableListing{
		{Price: 10, Shipping: 2},
		{Price: 20},
		{Price: 30, Shipping: 1},
	}
	s := Summarize(in)
	if s.Median != 20 {
		t.Fatalf("median = %v", s.Median)
	}
	if s.Max != 31 {
		t.Fatalf("totals must include shipping, max = %v", s.Max)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if s.SampleCount != 0 || s.Median != 0 || s.StdDev != 0 {
		t.Fatalf("unexpected summary %+v", s)
	}
}

func TestSuggestedPriceEndsIn99(t *testing.T) {
	cases := []struct {
		median, markup, want float64
	}{
		{107.5, 15, 124.99},
		{100, 15, 115.99},
		{10, 0, 10.99},
		{0.5, 15, 1.99},
	}
	for _, c := range cases {
		got := SuggestedPrice(c.median, c.markup)
		if got != c.want {
			t.Fatalf("SuggestedPrice(%v, %v) = %v, want %v", c.median, c.markup, got, c.want)
		}
		cents := math.Round(math.Mod(got, 1) * 100)
		if cents != 99 {
			t.Fatalf("price %v does not end in .99", got)
		}
	}
}

func TestConfidenceScoreBounds(t *testing.T) {
	if got := ConfidenceScore(0, 5, 0, 0); got < 0 || got > 100 {
		t.Fatalf("score out of range: %v", got)
	}
	if got := ConfidenceScore(100, 5, 0, 100); got != 100 {
		t.Fatalf("expected clamp at 100, got %v", got)
	}
	// wild dispersion zeroes the stability half
	if got := ConfidenceScore(5, 5, 100, 100); got != 50 {
		t.Fatalf("expected 50 with cv=1, got %v", got)
	}
}

func TestConfidenceScoreMonotonicInSampleSize(t *testing.T) {
	prev := -1.0
	for n := 0; n <= 5; n++ {
		got := ConfidenceScore(n, 5, 5, 100)
		if got < prev {
			t.Fatalf("score decreased at n=%d: %v < %v", n, got, prev)
		}
		prev = got
	}
}
