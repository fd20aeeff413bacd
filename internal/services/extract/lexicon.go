package extract

import "regexp"

// Shared lookup tables for search-term extraction. Consolidated here so
// brand/model/noise vocabularies are defined exactly once and testable.

// brandEntry maps a canonical brand name to the surface forms that imply it.
type brandEntry struct {
	Canonical string
	Variants  []string
}

// Ordered: earlier entries win when several brands appear in the text.
var brandTable = []brandEntry{
	{"apple", []string{"apple", "iphone", "ipad", "macbook", "imac", "airpods"}},
	{"samsung", []string{"samsung", "galaxy"}},
	{"sony", []string{"sony", "playstation", "walkman"}},
	{"nintendo", []string{"nintendo", "gameboy", "wii"}},
	{"microsoft", []string{"microsoft", "xbox", "surface"}},
	{"google", []string{"google", "pixel", "chromecast"}},
	{"dell", []string{"dell", "alienware"}},
	{"canon", []string{"canon", "eos"}},
	{"nikon", []string{"nikon"}},
	{"rolex", []string{"rolex"}},
	{"seiko", []string{"seiko"}},
	{"casio", []string{"casio", "g-shock", "gshock"}},
	{"timex", []string{"timex"}},
	{"dewalt", []string{"dewalt"}},
	{"milwaukee", []string{"milwaukee"}},
	{"makita", []string{"makita"}},
	{"craftsman", []string{"craftsman"}},
	{"coach", []string{"coach"}},
	{"gucci", []string{"gucci"}},
	{"louis vuitton", []string{"louis vuitton", "vuitton"}},
	{"pandora", []string{"pandora"}},
	{"lego", []string{"lego"}},
	{"barbie", []string{"barbie"}},
	{"disney", []string{"disney"}},
	{"dyson", []string{"dyson"}},
	{"kitchenaid", []string{"kitchenaid"}},
}

// modelEntry maps a canonical model name to the pattern that detects it.
type modelEntry struct {
	Canonical string
	Pattern   *regexp.Regexp
}

// Ordered: more specific models before generic ones.
var modelTable = []modelEntry{
	{"iphone", regexp.MustCompile(`(?i)\biphone\b`)},
	{"ipad", regexp.MustCompile(`(?i)\bipad\b`)},
	{"macbook", regexp.MustCompile(`(?i)\bmacbook\b`)},
	{"galaxy", regexp.MustCompile(`(?i)\bgalaxy\b`)},
	{"pixel", regexp.MustCompile(`(?i)\bpixel\b`)},
	{"playstation", regexp.MustCompile(`(?i)\b(?:playstation|ps[1-5])\b`)},
	{"xbox", regexp.MustCompile(`(?i)\bxbox\b`)},
	{"switch", regexp.MustCompile(`(?i)\bswitch\b`)},
	{"gameboy", regexp.MustCompile(`(?i)\bgame ?boy\b`)},
	{"cinderella", regexp.MustCompile(`(?i)\bcinderella\b`)},
	{"snow white", regexp.MustCompile(`(?i)\bsnow white\b`)},
	{"submariner", regexp.MustCompile(`(?i)\bsubmariner\b`)},
	{"daytona", regexp.MustCompile(`(?i)\bdaytona\b`)},
	{"speedmaster", regexp.MustCompile(`(?i)\bspeedmaster\b`)},
	{"neverfull", regexp.MustCompile(`(?i)\bneverfull\b`)},
}

// productType groups keywords that classify an item into a product family.
type productType struct {
	Name     string
	Keywords []string
}

// Ordered: trial order for classification.
var productTypeTable = []productType{
	{"doll", []string{"doll", "dolls", "figurine"}},
	{"watch", []string{"watch", "watches", "wristwatch", "chronograph"}},
	{"phone", []string{"phone", "smartphone", "cellphone"}},
	{"game", []string{"game", "games", "console", "cartridge"}},
	{"tool", []string{"tool", "tools", "drill", "saw", "wrench", "sander"}},
	{"bag", []string{"bag", "purse", "handbag", "backpack", "tote"}},
	{"jewelry", []string{"jewelry", "necklace", "ring", "bracelet", "earrings", "pendant"}},
	{"book", []string{"book", "books", "novel", "hardcover", "paperback"}},
	{"toy", []string{"toy", "toys", "playset", "plush"}},
}

// brandProductTypes is the subset consulted when only a brand was found:
// a type keyword from the title is appended to disambiguate the query.
var brandProductTypes = []string{"doll", "watch", "phone", "game", "tool", "bag", "book"}

var stopWords = wordSet(
	"the", "a", "an", "and", "or", "but", "in", "on", "at", "to", "for",
	"of", "with", "by", "from", "as", "is", "are", "was", "were", "be",
	"been", "this", "that", "these", "those", "it", "its", "has", "have",
	"had", "not", "no", "will", "can", "all", "one", "two", "you", "your",
	"my", "our", "their", "his", "her", "about", "into", "over", "under",
	"some", "any", "more", "most", "other", "such", "only", "also", "very",
)

// Marketplace hype and boilerplate tokens that hurt search relevance.
var noiseWords = wordSet(
	"free", "shipping", "ship", "rare", "vintage", "mint", "bundle",
	"auction", "obo", "nib", "nwt", "euc", "htf", "oem", "excellent",
	"fast", "must", "see", "look", "wow", "nice", "great", "amazing",
	"awesome", "perfect", "cheap", "deal", "sale", "best", "super",
	"item", "listing", "condition", "tested", "works", "working", "read",
	"description", "untested", "estate", "wholesale",
)

func wordSet(words ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
