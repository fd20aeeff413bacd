package ebay

import (
	"context"
	"strconv"
	"time"

	"PriceScout/internal/domain/models"
	domrepo "PriceScout/internal/domain/repository"
	"PriceScout/internal/service/ratelimit"
	xhttp "PriceScout/pkg/http"
	applogger "PriceScout/pkg/logger"
	"PriceScout/pkg/util"
)

const (
	soldSearchPath   = "/marketplace_insights/item_sales/search"
	activeSearchPath = "/item_summary/search"
	limiterKey       = "ebay_api"
)

// Client fetches comparable listings from the eBay search API. It is a
// best-effort collaborator: transport and upstream failures surface as an
// empty result plus a logged warning, never as an error the analyzer must
// handle. Results are deduplicated by item id and malformed rows (missing
// id or price) are dropped.
type Client struct {
	baseURL    string
	apiKey     string
	client     *xhttp.Client
	limiter    *ratelimit.Limiter
	ratePerSec float64
	rateBurst  float64
	logger     *applogger.Logger
}

type Option func(*Client)

// WithRate sets the outbound request rate limit.
func WithRate(perSec, burst float64) Option {
	return func(c *Client) {
		if perSec > 0 {
			c.ratePerSec = perSec
		}
		if burst > 0 {
			c.rateBurst = burst
		}
	}
}

// New creates an API-backed listing fetcher.
func New(baseURL, apiKey string, timeout time.Duration, logger *applogger.Logger, opts ...Option) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	c := &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		client:     xhttp.NewClient(xhttp.WithTimeout(timeout)),
		limiter:    ratelimit.New(),
		ratePerSec: 2,
		rateBurst:  5,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Name() string { return "api" }

type apiListing struct {
	ItemID    string `json:"itemId"`
	Title     string `json:"title"`
	Condition string `json:"condition"`
	WebURL    string `json:"itemWebUrl"`
	Price     struct {
		Value string `json:"value"`
	} `json:"price"`
	ShippingOptions []struct {
		ShippingCost struct {
			Value string `json:"value"`
		} `json:"shippingCost"`
	} `json:"shippingOptions"`
	SoldDate string `json:"lastSoldDate"`
	EndDate  string `json:"itemEndDate"`
}

type searchResponse struct {
	Total    int          `json:"total"`
	Listings []apiListing `json:"itemSummaries"`
}

// Fetch returns comparable listings for the query. Zero results is normal.
func (c *Client) Fetch(ctx context.Context, query string, opts domrepo.FetchOptions) ([]models.ComparableListing, error) {
	if query == "" {
		return nil, nil
	}
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	path := activeSearchPath
	if opts.SoldOnly {
		path = soldSearchPath
	}

	params := map[string][]string{
		"q":     {query},
		"limit": {strconv.Itoa(opts.MaxResults)},
	}
	if opts.LookbackDays > 0 && opts.SoldOnly {
		params["lookback_days"] = []string{strconv.Itoa(opts.LookbackDays)}
	}
	if opts.Condition != "" {
		params["filter"] = []string{"conditions:{" + opts.Condition + "}"}
	}

	var resp searchResponse
	err := c.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL + path,
		Headers: map[string]string{
			"Authorization": "Bearer " + c.apiKey,
		},
		QueryParams: params,
	}, &resp)
	if err != nil {
		c.logger.Warn("ebay search failed",
			applogger.String("query", query),
			applogger.Bool("sold_only", opts.SoldOnly),
			applogger.Error(err),
		)
		return nil, nil
	}

	source := models.SourceAPI
	seen := make(map[string]struct{}, len(resp.Listings))
	out := make([]models.ComparableListing, 0, len(resp.Listings))
	for _, l := range resp.Listings {
		price, ok := parsePrice(l.Price.Value)
		if l.ItemID == "" || !ok {
			// malformed row: skip rather than abort the whole fetch
			continue
		}
		if _, dup := seen[l.ItemID]; dup {
			continue
		}
		seen[l.ItemID] = struct{}{}

		shipping := 0.0
		if len(l.ShippingOptions) > 0 {
			if s, ok := parsePrice(l.ShippingOptions[0].ShippingCost.Value); ok {
				shipping = s
			}
		}

		soldDate := l.SoldDate
		if soldDate == "" {
			soldDate = l.EndDate
		}

		out = append(out, models.ComparableListing{
			ItemID:    l.ItemID,
			Title:     l.Title,
			Price:     price,
			Shipping:  shipping,
			Condition: l.Condition,
			SoldDate:  util.ParseTimeDefault(soldDate, time.Time{}),
			URL:       l.WebURL,
			Source:    source,
		})
		if opts.MaxResults > 0 && len(out) >= opts.MaxResults {
			break
		}
	}
	return out, nil
}

// wait blocks until the rate limiter grants a token or the context ends.
func (c *Client) wait(ctx context.Context) error {
	for {
		if c.limiter.Allow(limiterKey, c.rateBurst, c.ratePerSec) {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(100 * time.Millisecond):
		}
	}
}

func parsePrice(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}
