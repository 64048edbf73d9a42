package fintrack

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	cache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// testQuoter wires a Quoter to test servers without rate limiting.
func testQuoter(crypto, metals, forex string) *Quoter {
	return &Quoter{
		CryptoURL: crypto,
		MetalsURL: metals,
		ForexURL:  forex,
		client:    &http.Client{},
		daily:     &http.Client{},
		limiter:   rate.NewLimiter(rate.Inf, 1),
		recent:    cache.New(time.Minute, time.Minute),
	}
}

func TestCoinIDs(t *testing.T) {
	investments := []Investment{
		{Type: InstrumentCoin, APIID: "ethereum"},
		{Type: InstrumentCoin, APIID: "bitcoin"},
		{Type: InstrumentCoin, APIID: "bitcoin"}, // two BTC holdings, one id
		{Type: InstrumentGold},
		{Type: InstrumentCoin, APIID: ""}, // unmapped coin, skipped
	}
	got := coinIDs(investments)
	want := []string{"bitcoin", "ethereum"}
	if len(got) != len(want) {
		t.Fatalf("coinIDs = %v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("coinIDs = %v want %v", got, want)
		}
	}
}

func TestPriceForMissingKey(t *testing.T) {
	quotes := QuoteMap{"bitcoin": M(40000)}
	if got := quotes.PriceFor("dogecoin"); !got.IsZero() {
		t.Errorf("PriceFor(missing) = %s want $0.00", got)
	}
}

// No coin holdings means no request to the crypto API at all.
func TestFetchCryptoNoIDs(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))
	defer srv.Close()

	q := testQuoter(srv.URL, "", "")
	quotes, err := q.fetchCrypto(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(quotes) != 0 {
		t.Errorf("got %v want empty", quotes)
	}
	if hits != 0 {
		t.Errorf("crypto API was hit %d times want 0", hits)
	}
}

func TestFetchMerged(t *testing.T) {
	cryptoSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("ids"); got != "bitcoin,ethereum" {
			t.Errorf("ids = %q want bitcoin,ethereum", got)
		}
		if got := r.URL.Query().Get("vs_currencies"); got != "usd" {
			t.Errorf("vs_currencies = %q want usd", got)
		}
		fmt.Fprint(w, `{"bitcoin":{"usd":40000},"ethereum":{"usd":2500}}`)
	}))
	defer cryptoSrv.Close()

	metalsSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"metal":"gold","price":1975.2},{"metal":"silver","price":24.8}]`)
	}))
	defer metalsSrv.Close()

	forexSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"series":{"intraday":{"data":[[0,1.08],[1,1.09]]}}}`)
	}))
	defer forexSrv.Close()

	q := testQuoter(cryptoSrv.URL+"/api", metalsSrv.URL, forexSrv.URL)
	investments := []Investment{
		{Type: InstrumentCoin, APIID: "bitcoin"},
		{Type: InstrumentCoin, APIID: "ethereum"},
		{Type: InstrumentGold},
	}
	quotes := q.Fetch(context.Background(), investments)

	if got := quotes.PriceFor("bitcoin"); !got.Equal(M(40000)) {
		t.Errorf("bitcoin = %s want $40000.00", got)
	}
	if got := quotes.PriceFor("ethereum"); !got.Equal(M(2500)) {
		t.Errorf("ethereum = %s want $2500.00", got)
	}
	// 1975.2 per ounce is 63.50 and change per gram.
	gold := quotes.PriceFor("gold")
	if gold.LessThan(M(63)) || gold.GreaterThan(M(64)) {
		t.Errorf("gold = %s want around $63.50 per gram", gold)
	}
	if got := quotes.PriceFor("euro"); !got.Equal(M(1.09)) {
		t.Errorf("euro = %s want $1.09 (latest intraday point)", got)
	}
	if got := quotes.PriceFor("dollar"); !got.Equal(M(1)) {
		t.Errorf("dollar = %s want the $1.00 peg", got)
	}
	if got := quotes.PriceFor("interest"); !got.Equal(M(1)) {
		t.Errorf("interest = %s want the $1.00 peg", got)
	}
}

// A failing crypto API must not take the metals quotes down with it: the
// merge degrades to the spot entries only.
func TestFetchCryptoFailureDegrades(t *testing.T) {
	cryptoSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer cryptoSrv.Close()

	metalsSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"metal":"gold","price":1975.2},{"metal":"silver","price":24.8}]`)
	}))
	defer metalsSrv.Close()

	forexSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer forexSrv.Close()

	q := testQuoter(cryptoSrv.URL, metalsSrv.URL, forexSrv.URL)
	investments := []Investment{
		{Type: InstrumentCoin, APIID: "bitcoin"},
		{Type: InstrumentGold},
	}
	quotes := q.Fetch(context.Background(), investments)

	if got := quotes.PriceFor("bitcoin"); !got.IsZero() {
		t.Errorf("bitcoin = %s want $0.00 when the crypto API fails", got)
	}
	if got := quotes.PriceFor("gold"); got.IsZero() {
		t.Error("gold quote lost when the crypto API fails")
	}
	// The euro feed failed too, the key is simply absent.
	if _, ok := quotes["euro"]; ok {
		t.Error("euro key present although the forex feed failed")
	}
}

// An unreachable metals feed falls back to the approximate per-gram
// constants rather than valuing metal holdings at zero.
func TestFetchMetalsFallback(t *testing.T) {
	metalsSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer metalsSrv.Close()
	forexSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer forexSrv.Close()

	q := testQuoter("", metalsSrv.URL, forexSrv.URL)
	quotes := q.fetchSpot(context.Background())

	if got := quotes.PriceFor("gold"); !got.Equal(fallbackGold) {
		t.Errorf("gold = %s want the %s fallback", got, fallbackGold)
	}
	if got := quotes.PriceFor("silver"); !got.Equal(fallbackSilver) {
		t.Errorf("silver = %s want the %s fallback", got, fallbackSilver)
	}
}

// A repeat fetch within the cache TTL does not hit the crypto API again.
func TestFetchCryptoCached(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		fmt.Fprint(w, `{"bitcoin":{"usd":40000}}`)
	}))
	defer srv.Close()

	q := testQuoter(srv.URL, "", "")
	for i := 0; i < 3; i++ {
		if _, err := q.fetchCrypto(context.Background(), []string{"bitcoin"}); err != nil {
			t.Fatal(err)
		}
	}
	if hits != 1 {
		t.Errorf("crypto API was hit %d times want 1", hits)
	}
}

func TestSearchCoins(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("query"); got != "ether" {
			t.Errorf("query = %q want ether", got)
		}
		fmt.Fprint(w, `{"coins":[{"id":"ethereum","name":"Ethereum","symbol":"ETH"}]}`)
	}))
	defer srv.Close()

	q := testQuoter(srv.URL, "", "")
	options, err := q.SearchCoins(context.Background(), "ether")
	if err != nil {
		t.Fatal(err)
	}
	if len(options) != 1 || options[0].ID != "ethereum" || options[0].Symbol != "ETH" {
		t.Errorf("SearchCoins = %v want one ethereum entry", options)
	}

	// An empty query is a no-op, not a request.
	options, err = q.SearchCoins(context.Background(), "")
	if err != nil || options != nil {
		t.Errorf("SearchCoins(\"\") = %v, %v want nil, nil", options, err)
	}
}
