package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"signal-outcome-tracker/internal/entity"
	"signal-outcome-tracker/internal/tracker/config"
	"signal-outcome-tracker/internal/tracker/dto"
	"signal-outcome-tracker/pkg/logger"

	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

var (
	// ErrPriceNotAvailable means the provider returned no usable price for
	// the symbol. The signal stays pending and is retried next tick.
	ErrPriceNotAvailable = errors.New("price not available")

	// ErrMissingAPIKey means the stock/forex provider key is not configured.
	// Distinct from ErrPriceNotAvailable so operators can tell a config
	// problem from a data gap.
	ErrMissingAPIKey = errors.New("quote provider api key not configured")
)

// MarketDataRepository resolves the current price of a symbol from the
// provider matching its asset class.
type MarketDataRepository interface {
	GetPrice(ctx context.Context, symbol string, assetClass entity.AssetClass) (float64, error)
}

type marketDataRepository struct {
	cfg          *config.Config
	log          *logger.Logger
	httpClient   *http.Client
	bybitLimiter *rate.Limiter
	quoteLimiter *rate.Limiter
	priceCache   *cache.Cache
}

// NewMarketDataRepository creates a new market data repository.
func NewMarketDataRepository(cfg *config.Config, log *logger.Logger) MarketDataRepository {
	bybitInterval := time.Minute / time.Duration(cfg.Bybit.MaxRequestPerMinute)
	quoteInterval := time.Minute / time.Duration(cfg.QuoteProvider.MaxRequestPerMinute)
	return &marketDataRepository{
		cfg: cfg,
		log: log,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		bybitLimiter: rate.NewLimiter(rate.Every(bybitInterval), 1),
		quoteLimiter: rate.NewLimiter(rate.Every(quoteInterval), 1),
		priceCache:   cache.New(time.Minute, 5*time.Minute),
	}
}

// GetPrice fetches the current price for the symbol. A batch can carry many
// signals on the same symbol, so results are memoized for one minute.
func (r *marketDataRepository) GetPrice(ctx context.Context, symbol string, assetClass entity.AssetClass) (float64, error) {
	cacheKey := fmt.Sprintf("%s:%s", assetClass, symbol)
	if cached, found := r.priceCache.Get(cacheKey); found {
		return cached.(float64), nil
	}

	var (
		price float64
		err   error
	)
	switch assetClass {
	case entity.AssetClassCrypto:
		price, err = r.getCryptoPrice(ctx, symbol)
	case entity.AssetClassStock, entity.AssetClassForex:
		price, err = r.getQuotePrice(ctx, symbol)
	default:
		return 0, fmt.Errorf("unknown asset class %q: %w", assetClass, ErrPriceNotAvailable)
	}
	if err != nil {
		return 0, err
	}

	r.priceCache.Set(cacheKey, price, cache.DefaultExpiration)
	return price, nil
}

func (r *marketDataRepository) getCryptoPrice(ctx context.Context, symbol string) (float64, error) {
	if err := r.bybitLimiter.Wait(ctx); err != nil {
		return 0, err
	}

	endpoint := fmt.Sprintf("%s/v5/market/tickers?category=%s&symbol=%s",
		r.cfg.Bybit.BaseURL, r.cfg.Bybit.Category, url.QueryEscape(symbol))

	body, err := r.sendRequest(ctx, endpoint)
	if err != nil {
		return 0, err
	}

	var response dto.BybitTickerResponse
	if err := json.Unmarshal(body, &response); err != nil {
		r.log.ErrorContext(ctx, "Failed to decode Bybit ticker response", logger.ErrorField(err), logger.StringField("symbol", symbol))
		return 0, ErrPriceNotAvailable
	}

	if response.RetCode != 0 || len(response.Result.List) == 0 {
		r.log.WarnContext(ctx, "Bybit returned no ticker data",
			logger.StringField("symbol", symbol),
			logger.IntField("ret_code", response.RetCode),
			logger.StringField("ret_msg", response.RetMsg))
		return 0, ErrPriceNotAvailable
	}

	price, err := strconv.ParseFloat(response.Result.List[0].LastPrice, 64)
	if err != nil || price <= 0 {
		return 0, ErrPriceNotAvailable
	}

	return price, nil
}

func (r *marketDataRepository) getQuotePrice(ctx context.Context, symbol string) (float64, error) {
	if r.cfg.QuoteProvider.APIKey == "" {
		return 0, ErrMissingAPIKey
	}

	if err := r.quoteLimiter.Wait(ctx); err != nil {
		return 0, err
	}

	endpoint := fmt.Sprintf("%s/quote?symbol=%s&apikey=%s",
		r.cfg.QuoteProvider.BaseURL, url.QueryEscape(symbol), url.QueryEscape(r.cfg.QuoteProvider.APIKey))

	body, err := r.sendRequest(ctx, endpoint)
	if err != nil {
		return 0, err
	}

	var response dto.QuoteResponse
	if err := json.Unmarshal(body, &response); err != nil {
		r.log.ErrorContext(ctx, "Failed to decode quote response", logger.ErrorField(err), logger.StringField("symbol", symbol))
		return 0, ErrPriceNotAvailable
	}

	if response.Price <= 0 {
		return 0, ErrPriceNotAvailable
	}

	return response.Price, nil
}

func (r *marketDataRepository) sendRequest(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		r.log.ErrorContext(ctx, "Market data request failed", logger.ErrorField(err))
		return nil, ErrPriceNotAvailable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		r.log.ErrorContext(ctx, "Market data provider returned non-OK status", logger.IntField("status_code", resp.StatusCode))
		return nil, ErrPriceNotAvailable
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, ErrPriceNotAvailable
	}

	return body, nil
}
