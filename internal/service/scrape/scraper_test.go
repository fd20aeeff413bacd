package scrape

import (
	"strings"
	"testing"
	"time"

	domrepo "PriceScout/internal/domain/repository"
)

func TestParsePrice(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"$1,234.56", 1234.56, true},
		{"$10.00 to $15.00", 10, true},
		{"Free shipping", 0, true},
		{"EUR 99", 99, true},
		{"contact seller", 0, false},
	}
	for _, c := range cases {
		got, ok := parsePrice(c.in)
		if ok != c.ok || got != c.want {
			t.Fatalf("parsePrice(%q) = %v,%v want %v,%v", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestParseSoldDate(t *testing.T) {
	got := parseSoldDate("Sold Aug 12, 2026")
	want := time.Date(2026, 8, 12, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("parseSoldDate = %v, want %v", got, want)
	}
	if !parseSoldDate("gibberish").IsZero() {
		t.Fatalf("expected zero time for unparseable caption")
	}
}

func TestSearchURL(t *testing.T) {
	s := &Scraper{}

	sold := s.searchURL("barbie doll", domrepo.FetchOptions{SoldOnly: true})
	if !strings.Contains(sold, "_nkw=barbie+doll") {
		t.Fatalf("terms missing: %q", sold)
	}
	if !strings.Contains(sold, "LH_Sold=1") || !strings.Contains(sold, "LH_Complete=1") {
		t.Fatalf("sold filters missing: %q", sold)
	}

	active := s.searchURL("barbie doll", domrepo.FetchOptions{})
	if strings.Contains(active, "LH_Sold") {
		t.Fatalf("active URL must not filter sold: %q", active)
	}
}
