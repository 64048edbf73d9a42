package fintrack

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/PaesslerAG/jsonpath"
	cache "github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"
)

// QuoteMap maps an instrument key to its unit price in the reference
// currency. It is rebuilt from scratch on every fetch cycle, never
// partially merged across cycles.
type QuoteMap map[string]Money

// PriceFor returns the unit price for an instrument key, zero when the key
// has no quote.
func (q QuoteMap) PriceFor(key string) Money {
	if price, ok := q[key]; ok {
		return price
	}
	return M(0)
}

// gramsPerOunce converts the metals feed's per-ounce spot prices to the
// per-gram prices holdings are quantified in.
const gramsPerOunce = 31.1035

// Fallback per-gram prices used when the metals feed is unreachable.
var (
	fallbackGold   = M(65)
	fallbackSilver = M(0.8)
)

// Quoter fetches and merges quotes from the two third-party sources: a
// crypto quote-by-id API and a metals/forex spot API. Both are best-effort
// enrichment: a failing source contributes an empty map, never an error.
type Quoter struct {
	// CryptoURL is the base URL of the crypto quote API (CoinGecko-shaped).
	CryptoURL string
	// MetalsURL is the metals spot endpoint.
	MetalsURL string
	// ForexURL is the EUR/USD intraday chart endpoint.
	ForexURL string

	client  *http.Client
	daily   *http.Client // daily-cached, for slow-moving data like coin search
	limiter *rate.Limiter
	recent  *cache.Cache // short TTL, avoids refetching within a session
}

// NewQuoter returns a Quoter wired to the public endpoints.
func NewQuoter() *Quoter {
	return &Quoter{
		CryptoURL: "https://api.coingecko.com/api/v3",
		MetalsURL: "https://api.metals.live/v1/spot",
		ForexURL:  "https://www.ls-tc.de/_rpc/json/instrument/chart/dataForInstrument?instrumentId=349938&series=intraday&type=mini",
		client:    &http.Client{Timeout: 15 * time.Second},
		daily:     newDailyCachingClient(),
		// The free crypto API tier throttles aggressively.
		limiter: rate.NewLimiter(rate.Every(2*time.Second), 1),
		recent:  cache.New(5*time.Minute, 10*time.Minute),
	}
}

// Fetch returns the merged instrument-key to unit-price map for the given
// holdings. The two sources are queried concurrently; each degrades to an
// empty contribution on failure. Key spaces are disjoint by construction
// (external coin ids vs fixed type literals), so the merge is
// order-independent.
func (q *Quoter) Fetch(ctx context.Context, investments []Investment) QuoteMap {
	ids := coinIDs(investments)

	var crypto, spot QuoteMap
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		var err error
		crypto, err = q.fetchCrypto(ctx, ids)
		if err != nil {
			log.Printf("crypto quotes unavailable (ignored): %v", err)
			crypto = QuoteMap{}
		}
	}()
	go func() {
		defer wg.Done()
		spot = q.fetchSpot(ctx)
	}()
	wg.Wait()

	merged := make(QuoteMap, len(crypto)+len(spot))
	for k, v := range spot {
		merged[k] = v
	}
	for k, v := range crypto {
		merged[k] = v
	}
	return merged
}

// coinIDs returns the distinct, sorted set of coin identifiers present in
// the holdings.
func coinIDs(investments []Investment) []string {
	set := make(map[string]bool)
	for _, inv := range investments {
		if inv.Type == InstrumentCoin && inv.APIID != "" {
			set[inv.APIID] = true
		}
	}
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// fetchCrypto queries the crypto API for the given coin ids in one batch.
// No coin holdings means no request at all.
func (q *Quoter) fetchCrypto(ctx context.Context, ids []string) (QuoteMap, error) {
	if len(ids) == 0 {
		return QuoteMap{}, nil
	}

	key := "crypto:" + strings.Join(ids, ",")
	if cached, ok := q.recent.Get(key); ok {
		return cached.(QuoteMap), nil
	}

	if err := q.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	addr := fmt.Sprintf("%s/simple/price?ids=%s&vs_currencies=usd", q.CryptoURL, url.QueryEscape(strings.Join(ids, ",")))

	// {"bitcoin":{"usd":50000.12}, ...}
	content := make(map[string]map[string]decimal.Decimal)
	if err := jwget(q.client, addr, &content); err != nil {
		return nil, err
	}

	quotes := make(QuoteMap, len(content))
	for id, prices := range content {
		if usd, ok := prices["usd"]; ok {
			quotes[id] = M(usd)
		}
	}
	q.recent.Set(key, quotes, cache.DefaultExpiration)
	return quotes, nil
}

// fetchSpot supplies the fixed-key entries: per-gram gold and silver from
// the metals feed, the euro rate from the intraday chart, and the pegged
// dollar and interest entries. It never fails: unreachable feeds fall back
// to approximate constants (metals) or are simply omitted (euro).
func (q *Quoter) fetchSpot(ctx context.Context) QuoteMap {
	quotes := QuoteMap{
		// USD is the reference currency and the interest instrument is a
		// bookkeeping peg.
		string(InstrumentDollar):   M(1),
		string(InstrumentInterest): M(1),
	}

	if cached, ok := q.recent.Get("spot"); ok {
		for k, v := range cached.(QuoteMap) {
			quotes[k] = v
		}
		return quotes
	}

	fetched := QuoteMap{}
	gold, silver, err := q.fetchMetals(ctx)
	if err != nil {
		log.Printf("metal prices unavailable, using fallbacks: %v", err)
		gold, silver = fallbackGold, fallbackSilver
	}
	fetched[string(InstrumentGold)] = gold
	fetched[string(InstrumentSilver)] = silver

	if eur, err := q.fetchEURUSD(ctx); err != nil {
		log.Printf("EUR/USD rate unavailable (ignored): %v", err)
	} else {
		fetched[string(InstrumentEuro)] = eur
	}

	q.recent.Set("spot", fetched, cache.DefaultExpiration)
	for k, v := range fetched {
		quotes[k] = v
	}
	return quotes
}

// fetchMetals reads per-ounce USD spot prices for gold and silver and
// converts them to per-gram prices.
func (q *Quoter) fetchMetals(ctx context.Context) (gold, silver Money, err error) {
	// [{"metal":"gold","price":1975.2}, {"metal":"silver","price":24.8}]
	type spot struct {
		Metal string          `json:"metal"`
		Price decimal.Decimal `json:"price"`
	}
	content := make([]spot, 0)
	if err := jwget(q.client, q.MetalsURL, &content); err != nil {
		return Money{}, Money{}, err
	}

	perGram := decimal.NewFromFloat(gramsPerOunce)
	for _, s := range content {
		switch s.Metal {
		case "gold":
			gold = M(s.Price.Div(perGram))
		case "silver":
			silver = M(s.Price.Div(perGram))
		}
	}
	if gold.IsZero() || silver.IsZero() {
		return Money{}, Money{}, fmt.Errorf("metals feed returned no gold/silver entries")
	}
	return gold, silver, nil
}

// fetchEURUSD reads the latest EUR/USD rate from the intraday chart data.
func (q *Quoter) fetchEURUSD(ctx context.Context) (Money, error) {
	var jobj any
	if err := jwget(q.client, q.ForexURL, &jobj); err != nil {
		return Money{}, fmt.Errorf("error in wget %q: %w", "EUR/USD", err)
	}
	path := "$.series.intraday.data[-1:][1]"
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return Money{}, fmt.Errorf("error parsing %q: %q %w", "EUR/USD", path, err)
	}
	// jsonpath is never clear about whether it returns a list of 1 answer
	// or a single answer: keep the first one if any.
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	val, ok := jval.(float64)
	if !ok {
		return Money{}, fmt.Errorf("error parsing %q: %q not a float: %v", "EUR/USD", path, jval)
	}
	return M(val), nil
}

// CoinOption is one result of a coin identifier search.
type CoinOption struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

// SearchCoins looks up coin identifiers matching the query, for use as an
// investment's apiId. Results move slowly, so they go through the
// daily-cached client.
func (q *Quoter) SearchCoins(ctx context.Context, query string) ([]CoinOption, error) {
	if query == "" {
		return nil, nil
	}
	addr := fmt.Sprintf("%s/search?query=%s", q.CryptoURL, url.QueryEscape(query))
	var content struct {
		Coins []CoinOption `json:"coins"`
	}
	if err := jwget(q.daily, addr, &content); err != nil {
		return nil, err
	}
	return content.Coins, nil
}
