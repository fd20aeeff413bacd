package extract

import (
	"reflect"
	"testing"

	"PriceScout/internal/domain/models"
)

func TestStrategiesBrandModelFirst(t *testing.T) {
	item := &models.ItemRecord{
		Title: "Apple iPhone 13 Pro Max 256GB Unlocked - Excellent!",
	}

	got := New().Strategies(item)
	if len(got) == 0 {
		t.Fatalf("expected strategies, got none")
	}
	if got[0].Kind != models.StrategyBrandModel {
		t.Fatalf("expected brand_model first, got %s", got[0].Kind)
	}
	if got[0].Terms != "apple iphone" {
		t.Fatalf("unexpected brand_model terms %q", got[0].Terms)
	}
	if got[0].Confidence != models.ConfidenceHigh {
		t.Fatalf("expected high confidence, got %s", got[0].Confidence)
	}
	if got[len(got)-1].Kind != models.StrategyTitleCleaned {
		t.Fatalf("expected title_cleaned last, got %s", got[len(got)-1].Kind)
	}
}

func TestStrategiesBrandOnlyUsesProductType(t *testing.T) {
	item := &models.ItemRecord{Title: "Dewalt cordless drill heavy duty tool"}

	got := New().Strategies(item)
	if len(got) == 0 {
		t.Fatalf("expected strategies, got none")
	}
	if got[0].Kind != models.StrategyBrandModel || got[0].Terms != "dewalt tool" {
		t.Fatalf("unexpected first strategy %s %q", got[0].Kind, got[0].Terms)
	}
}

func TestStrategiesModelFromAttributes(t *testing.T) {
	item := &models.ItemRecord{
		Title:      "collectible princess figure",
		Attributes: map[string]string{"character": "Cinderella"},
	}

	got := New().Strategies(item)
	if len(got) == 0 {
		t.Fatalf("expected strategies, got none")
	}
	if got[0].Terms != "disney cinderella" && got[0].Terms != "cinderella" {
		t.Fatalf("unexpected terms %q", got[0].Terms)
	}
}

func TestStrategiesEmptyItem(t *testing.T) {
	if got := New().Strategies(nil); got != nil {
		t.Fatalf("expected nil for nil item, got %v", got)
	}
	if got := New().Strategies(&models.ItemRecord{}); got != nil {
		t.Fatalf("expected nil for empty item, got %v", got)
	}
}

func TestStrategiesTempFieldFallback(t *testing.T) {
	item := &models.ItemRecord{TempTitle: "Sony PlayStation 5 console"}

	got := New().Strategies(item)
	if len(got) == 0 {
		t.Fatalf("expected strategies from temp title")
	}
	if got[0].Terms != "sony playstation" {
		t.Fatalf("unexpected terms %q", got[0].Terms)
	}
}

func TestCleanTitleDropsNoise(t *testing.T) {
	got := CleanTitle("RARE Vintage 1995 Nintendo Game Boy - MINT Condition FREE SHIPPING must see!!")
	want := "1995 nintendo game boy"
	if got != want {
		t.Fatalf("CleanTitle = %q, want %q", got, want)
	}
}

func TestCleanTitleCapsTokens(t *testing.T) {
	got := CleanTitle("alpha bravo charlie delta echo foxtrot golf")
	want := "alpha bravo charlie delta echo"
	if got != want {
		t.Fatalf("CleanTitle = %q, want %q", got, want)
	}
}

func TestImportantWordsFrequencyOrder(t *testing.T) {
	got := ImportantWords("drill battery drill charger drill battery case")
	want := []string{"drill", "battery", "charger", "case"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ImportantWords = %v, want %v", got, want)
	}
}

func TestImportantWordsDropsNumbersAndShortTokens(t *testing.T) {
	got := ImportantWords("a 42 1995 ab lamp")
	want := []string{"lamp"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ImportantWords = %v, want %v", got, want)
	}
}

func TestImportantWordsCap(t *testing.T) {
	text := "alpha bravo charlie delta echo foxtrot golf hotel india juliet kilo lima"
	if got := ImportantWords(text); len(got) != 10 {
		t.Fatalf("expected cap at 10 words, got %d", len(got))
	}
}
