package research

import (
	"net/url"
	"strings"
	"testing"
)

func TestSoldURLParams(t *testing.T) {
	g := New()
	raw := g.SoldURL("barbie doll", Params{Condition: "new", MinPrice: 5, MaxPrice: 50})

	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	q := u.Query()
	if q.Get("_nkw") != "barbie doll" {
		t.Fatalf("_nkw = %q", q.Get("_nkw"))
	}
	if q.Get("LH_Sold") != "1" || q.Get("LH_Complete") != "1" {
		t.Fatalf("missing sold filters in %q", raw)
	}
	if q.Get("LH_ItemCondition") != "1000" {
		t.Fatalf("condition code = %q", q.Get("LH_ItemCondition"))
	}
	if q.Get("_udlo") != "5.00" || q.Get("_udhi") != "50.00" {
		t.Fatalf("price band = %q..%q", q.Get("_udlo"), q.Get("_udhi"))
	}
}

func TestActiveURLHasNoSoldFilters(t *testing.T) {
	g := New()
	raw := g.ActiveURL("barbie doll", Params{})

	if strings.Contains(raw, "LH_Sold") || strings.Contains(raw, "LH_Complete") {
		t.Fatalf("active URL must not carry sold filters: %q", raw)
	}
	u, _ := url.Parse(raw)
	if u.Query().Get("_ipg") != "60" || u.Query().Get("_sop") != "13" {
		t.Fatalf("missing paging/sort params: %q", raw)
	}
}

func TestAidsPacketComplete(t *testing.T) {
	aids := New().Aids("barbie doll", Params{})
	if aids.VerificationURLs.SoldListings == "" || aids.VerificationURLs.ActiveListings == "" {
		t.Fatalf("missing verification URLs")
	}
	if len(aids.Checklist) == 0 || len(aids.DataPoints) == 0 || len(aids.RedFlags) == 0 {
		t.Fatalf("incomplete packet: %+v", aids)
	}
	if len(aids.ServiceTiers) != 3 {
		t.Fatalf("expected 3 service tiers, got %d", len(aids.ServiceTiers))
	}
	for _, tier := range aids.ServiceTiers {
		if tier.Tier == "" || len(tier.Services) == 0 {
			t.Fatalf("empty tier entry %+v", tier)
		}
	}
}

func TestUnknownConditionDefaultsToUsed(t *testing.T) {
	raw := New().SoldURL("widget", Params{Condition: "weird"})
	u, _ := url.Parse(raw)
	if u.Query().Get("LH_ItemCondition") != "3000" {
		t.Fatalf("expected used code, got %q", u.Query().Get("LH_ItemCondition"))
	}
}
