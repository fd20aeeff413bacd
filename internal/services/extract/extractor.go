package extract

import (
	"sort"
	"strings"
	"unicode"

	"PriceScout/internal/domain/models"
)

const (
	maxImportantWords = 10
	maxFeatureWords   = 4
	maxKeywordTerms   = 3
	maxTitleTokens    = 5
	minTokenLen       = 3
)

// Extractor converts noisy item text into ranked candidate search queries.
// Raw marketplace titles carry hype words and boilerplate; a cleaned,
// brand/model-focused query outperforms a literal title search.
type Extractor struct{}

func New() *Extractor { return &Extractor{} }

// Strategies returns candidate search strategies in fixed priority order:
// brand_model, feature_type, keywords, title_cleaned. Strategies that
// produce no terms are omitted; an item with no text sources yields nil.
func (e *Extractor) Strategies(item *models.ItemRecord) []models.SearchStrategy {
	if item == nil || item.IsEmpty() {
		return nil
	}

	title := item.EffectiveTitle()
	desc := item.EffectiveDescription()

	out := make([]models.SearchStrategy, 0, 4)
	if terms := e.brandModelTerms(item, title); terms != "" {
		out = append(out, models.SearchStrategy{Terms: terms, Kind: models.StrategyBrandModel, Confidence: models.ConfidenceHigh})
	}
	if terms := e.featureTypeTerms(title, desc); terms != "" {
		out = append(out, models.SearchStrategy{Terms: terms, Kind: models.StrategyFeatureType, Confidence: models.ConfidenceMedium})
	}
	if terms := e.keywordTerms(desc); terms != "" {
		out = append(out, models.SearchStrategy{Terms: terms, Kind: models.StrategyKeywords, Confidence: models.ConfidenceMedium})
	}
	if terms := CleanTitle(title); terms != "" {
		out = append(out, models.SearchStrategy{Terms: terms, Kind: models.StrategyTitleCleaned, Confidence: models.ConfidenceLow})
	}
	return out
}

// brandModelTerms scans all gathered text for a known brand and model.
// Both found: "brand model". Brand only: brand plus a product-type keyword
// from the title when one matches. Model only: the model alone.
func (e *Extractor) brandModelTerms(item *models.ItemRecord, title string) string {
	text := strings.ToLower(gatherText(item))

	var brand string
	for _, b := range brandTable {
		for _, v := range b.Variants {
			if strings.Contains(text, v) {
				brand = b.Canonical
				break
			}
		}
		if brand != "" {
			break
		}
	}

	var model string
	for _, m := range modelTable {
		if m.Pattern.MatchString(text) {
			model = m.Canonical
			break
		}
	}

	switch {
	case brand != "" && model != "":
		return brand + " " + model
	case brand != "":
		if pt := productTypeFromTitle(title); pt != "" {
			return brand + " " + pt
		}
		return brand
	case model != "":
		return model
	default:
		return ""
	}
}

// featureTypeTerms classifies the item into a product type and joins it
// with up to four frequency-ranked descriptor words.
func (e *Extractor) featureTypeTerms(title, desc string) string {
	text := strings.ToLower(title + " " + desc)

	var ptype string
	for _, pt := range productTypeTable {
		for _, kw := range pt.Keywords {
			if containsWord(text, kw) {
				ptype = pt.Name
				break
			}
		}
		if ptype != "" {
			break
		}
	}

	words := ImportantWords(title + " " + desc)
	if len(words) > maxFeatureWords {
		words = words[:maxFeatureWords]
	}
	// the type name itself is appended separately
	descriptors := words[:0:0]
	for _, w := range words {
		if w != ptype {
			descriptors = append(descriptors, w)
		}
	}

	switch {
	case ptype != "" && len(descriptors) > 0:
		return strings.Join(descriptors, " ") + " " + ptype
	case ptype != "":
		return ptype
	case len(descriptors) > 0:
		return strings.Join(descriptors, " ")
	default:
		return ""
	}
}

// keywordTerms runs frequency analysis over the description alone and emits
// the top three words when at least two survive.
func (e *Extractor) keywordTerms(desc string) string {
	words := ImportantWords(desc)
	if len(words) < 2 {
		return ""
	}
	if len(words) > maxKeywordTerms {
		words = words[:maxKeywordTerms]
	}
	return strings.Join(words, " ")
}

// CleanTitle strips punctuation, stop words, marketplace noise words, and
// short tokens from a title, returning the first five surviving tokens.
func CleanTitle(title string) string {
	kept := make([]string, 0, maxTitleTokens)
	for _, tok := range strings.Fields(strings.ToLower(title)) {
		w := stripPunct(tok)
		if len(w) < minTokenLen {
			continue
		}
		if _, ok := stopWords[w]; ok {
			continue
		}
		if _, ok := noiseWords[w]; ok {
			continue
		}
		kept = append(kept, w)
		if len(kept) == maxTitleTokens {
			break
		}
	}
	return strings.Join(kept, " ")
}

// ImportantWords extracts up to ten content words from free text, ordered
// by descending frequency with ties broken by first appearance. Stop words,
// noise words, short tokens, and pure numbers are dropped.
func ImportantWords(text string) []string {
	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	order := 0

	for _, tok := range strings.Fields(strings.ToLower(text)) {
		w := stripPunct(tok)
		if len(w) < minTokenLen || isNumeric(w) {
			continue
		}
		if _, ok := stopWords[w]; ok {
			continue
		}
		if _, ok := noiseWords[w]; ok {
			continue
		}
		if _, seen := counts[w]; !seen {
			firstSeen[w] = order
			order++
		}
		counts[w]++
	}

	words := make([]string, 0, len(counts))
	for w := range counts {
		words = append(words, w)
	}
	sort.Slice(words, func(i, j int) bool {
		if counts[words[i]] != counts[words[j]] {
			return counts[words[i]] > counts[words[j]]
		}
		return firstSeen[words[i]] < firstSeen[words[j]]
	})

	if len(words) > maxImportantWords {
		words = words[:maxImportantWords]
	}
	return words
}

func productTypeFromTitle(title string) string {
	text := strings.ToLower(title)
	for _, name := range brandProductTypes {
		for _, pt := range productTypeTable {
			if pt.Name != name {
				continue
			}
			for _, kw := range pt.Keywords {
				if containsWord(text, kw) {
					return pt.Name
				}
			}
		}
	}
	return ""
}

func gatherText(item *models.ItemRecord) string {
	var sb strings.Builder
	sb.WriteString(item.EffectiveTitle())
	sb.WriteByte(' ')
	sb.WriteString(item.EffectiveDescription())
	for k, v := range item.Attributes {
		sb.WriteByte(' ')
		sb.WriteString(k)
		sb.WriteByte(' ')
		sb.WriteString(v)
	}
	return sb.String()
}

// containsWord reports whether text contains word as a whole token.
func containsWord(text, word string) bool {
	idx := 0
	for {
		i := strings.Index(text[idx:], word)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(word)
		leftOK := start == 0 || !isWordRune(rune(text[start-1]))
		rightOK := end == len(text) || !isWordRune(rune(text[end]))
		if leftOK && rightOK {
			return true
		}
		idx = start + 1
	}
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func stripPunct(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func isNumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return len(s) > 0
}
