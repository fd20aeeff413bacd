package scrape

import (
	"context"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"PriceScout/internal/domain/models"
	domrepo "PriceScout/internal/domain/repository"
	applogger "PriceScout/pkg/logger"

	"github.com/chromedp/chromedp"
)

const searchBase = "https://www.ebay.com/sch/i.html"

var priceRegexp = regexp.MustCompile(`[\d,]+(?:\.\d+)?`)

// Scraper fetches comparable listings by rendering marketplace search
// result pages in headless Chrome. Like the API client it is best-effort:
// navigation and extraction failures become an empty result plus a warning.
type Scraper struct {
	chromePath  string
	pageTimeout time.Duration
	logger      *applogger.Logger
}

// New creates a browser-backed listing fetcher.
func New(chromePath string, pageTimeout time.Duration, logger *applogger.Logger) *Scraper {
	if pageTimeout <= 0 {
		pageTimeout = 45 * time.Second
	}
	return &Scraper{chromePath: chromePath, pageTimeout: pageTimeout, logger: logger}
}

func (s *Scraper) Name() string { return "scrape" }

type scrapedRow struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Price    string `json:"price"`
	Shipping string `json:"shipping"`
	URL      string `json:"url"`
	Date     string `json:"date"`
}

// Fetch renders one search-results page and extracts listing rows.
func (s *Scraper) Fetch(ctx context.Context, query string, opts domrepo.FetchOptions) ([]models.ComparableListing, error) {
	if query == "" {
		return nil, nil
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent("Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 "+
			"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"),
	)
	if s.chromePath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(s.chromePath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))
	defer cancelBrowser()

	runCtx, cancelTimeout := context.WithTimeout(browserCtx, s.pageTimeout)
	defer cancelTimeout()

	var rows []scrapedRow
	err := chromedp.Run(runCtx,
		chromedp.Navigate(s.searchURL(query, opts)),
		chromedp.WaitVisible(`.srp-results`, chromedp.ByQuery),
		chromedp.Evaluate(extractListingsJS, &rows),
	)
	if err != nil {
		s.logger.Warn("scrape failed",
			applogger.String("query", query),
			applogger.Bool("sold_only", opts.SoldOnly),
			applogger.Error(err),
		)
		return nil, nil
	}

	seen := make(map[string]struct{}, len(rows))
	out := make([]models.ComparableListing, 0, len(rows))
	for _, r := range rows {
		price, ok := parsePrice(r.Price)
		if r.ID == "" || !ok {
			continue
		}
		if _, dup := seen[r.ID]; dup {
			continue
		}
		seen[r.ID] = struct{}{}

		shipping, _ := parsePrice(r.Shipping)
		out = append(out, models.ComparableListing{
			ItemID:   r.ID,
			Title:    strings.TrimSpace(r.Title),
			Price:    price,
			Shipping: shipping,
			SoldDate: parseSoldDate(r.Date),
			URL:      r.URL,
			Source:   models.SourceScrape,
		})
		if opts.MaxResults > 0 && len(out) >= opts.MaxResults {
			break
		}
	}
	return out, nil
}

func (s *Scraper) searchURL(query string, opts domrepo.FetchOptions) string {
	q := url.Values{}
	q.Set("_nkw", query)
	q.Set("_ipg", "60")
	if opts.SoldOnly {
		q.Set("LH_Sold", "1")
		q.Set("LH_Complete", "1")
	}
	return searchBase + "?" + q.Encode()
}

// extractListingsJS pulls the listing id, title, price, shipping, and sold
// date out of each search result card.
const extractListingsJS = `
(() => {
  const rows = [];
  document.querySelectorAll('.srp-results .s-item').forEach((el) => {
    const link = el.querySelector('.s-item__link');
    const href = link ? link.href : '';
    const idMatch = href.match(/\/itm\/(?:[^\/]*\/)?(\d+)/);
    rows.push({
      id: idMatch ? idMatch[1] : '',
      title: (el.querySelector('.s-item__title') || {}).innerText || '',
      price: (el.querySelector('.s-item__price') || {}).innerText || '',
      shipping: (el.querySelector('.s-item__shipping') || {}).innerText || '',
      url: href,
      date: (el.querySelector('.s-item__caption, .s-item__title--tagblock') || {}).innerText || '',
    });
  });
  return rows;
})()
`

// parsePrice extracts the first numeric value from a scraped price string
// such as "$1,234.56" or "$10.00 to $15.00".
func parsePrice(raw string) (float64, bool) {
	cleaned := strings.ReplaceAll(strings.ToLower(raw), ",", "")
	if strings.Contains(cleaned, "free") {
		return 0, true
	}
	match := priceRegexp.FindString(cleaned)
	if match == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(match, 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}

// parseSoldDate handles captions like "Sold Aug 12, 2026".
func parseSoldDate(raw string) time.Time {
	raw = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(raw), "Sold"))
	for _, layout := range []string{"Jan 2, 2006", "2 Jan 2006"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}
