package repository

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"signal-outcome-tracker/internal/entity"
	"signal-outcome-tracker/internal/tracker/config"
	"signal-outcome-tracker/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMarketDataRepo(t *testing.T, bybitURL, quoteURL, apiKey string) MarketDataRepository {
	t.Helper()

	log, err := logger.New("error", "json")
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.Bybit.BaseURL = bybitURL
	cfg.Bybit.Category = "linear"
	cfg.Bybit.MaxRequestPerMinute = 6000
	cfg.QuoteProvider.BaseURL = quoteURL
	cfg.QuoteProvider.APIKey = apiKey
	cfg.QuoteProvider.MaxRequestPerMinute = 6000

	return NewMarketDataRepository(cfg, log)
}

func TestGetPrice_Crypto(t *testing.T) {
	t.Run("returns last traded price of the first result", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v5/market/tickers", r.URL.Path)
			assert.Equal(t, "linear", r.URL.Query().Get("category"))
			assert.Equal(t, "BTCUSDT", r.URL.Query().Get("symbol"))
			w.Write([]byte(`{"retCode":0,"retMsg":"OK","result":{"category":"linear","list":[{"symbol":"BTCUSDT","lastPrice":"64250.50"}]}}`))
		}))
		defer server.Close()

		repo := newTestMarketDataRepo(t, server.URL, "", "")
		price, err := repo.GetPrice(context.Background(), "BTCUSDT", entity.AssetClassCrypto)

		require.NoError(t, err)
		assert.Equal(t, 64250.50, price)
	})

	t.Run("empty result list is not available", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"retCode":0,"retMsg":"OK","result":{"category":"linear","list":[]}}`))
		}))
		defer server.Close()

		repo := newTestMarketDataRepo(t, server.URL, "", "")
		_, err := repo.GetPrice(context.Background(), "NOPEUSDT", entity.AssetClassCrypto)

		assert.ErrorIs(t, err, ErrPriceNotAvailable)
	})

	t.Run("non-zero retCode is not available", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"retCode":10001,"retMsg":"params error","result":{"list":[]}}`))
		}))
		defer server.Close()

		repo := newTestMarketDataRepo(t, server.URL, "", "")
		_, err := repo.GetPrice(context.Background(), "BTCUSDT", entity.AssetClassCrypto)

		assert.ErrorIs(t, err, ErrPriceNotAvailable)
	})

	t.Run("non-OK status is not available", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		repo := newTestMarketDataRepo(t, server.URL, "", "")
		_, err := repo.GetPrice(context.Background(), "BTCUSDT", entity.AssetClassCrypto)

		assert.ErrorIs(t, err, ErrPriceNotAvailable)
	})

	t.Run("memoizes the price within a run", func(t *testing.T) {
		calls := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			w.Write([]byte(`{"retCode":0,"retMsg":"OK","result":{"category":"linear","list":[{"symbol":"BTCUSDT","lastPrice":"100"}]}}`))
		}))
		defer server.Close()

		repo := newTestMarketDataRepo(t, server.URL, "", "")
		for i := 0; i < 3; i++ {
			price, err := repo.GetPrice(context.Background(), "BTCUSDT", entity.AssetClassCrypto)
			require.NoError(t, err)
			assert.Equal(t, 100.0, price)
		}

		assert.Equal(t, 1, calls)
	})
}

func TestGetPrice_Quote(t *testing.T) {
	t.Run("returns provider price with api key", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/quote", r.URL.Path)
			assert.Equal(t, "AAPL", r.URL.Query().Get("symbol"))
			assert.Equal(t, "test-key", r.URL.Query().Get("apikey"))
			w.Write([]byte(`{"symbol":"AAPL","price":182.34}`))
		}))
		defer server.Close()

		repo := newTestMarketDataRepo(t, "", server.URL, "test-key")
		price, err := repo.GetPrice(context.Background(), "AAPL", entity.AssetClassStock)

		require.NoError(t, err)
		assert.Equal(t, 182.34, price)
	})

	t.Run("missing api key is a configuration error", func(t *testing.T) {
		repo := newTestMarketDataRepo(t, "", "http://localhost:1", "")
		_, err := repo.GetPrice(context.Background(), "EURUSD", entity.AssetClassForex)

		assert.ErrorIs(t, err, ErrMissingAPIKey)
	})

	t.Run("malformed payload is not available", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`not json`))
		}))
		defer server.Close()

		repo := newTestMarketDataRepo(t, "", server.URL, "test-key")
		_, err := repo.GetPrice(context.Background(), "AAPL", entity.AssetClassStock)

		assert.ErrorIs(t, err, ErrPriceNotAvailable)
	})

	t.Run("zero price is not available", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"symbol":"AAPL","price":0}`))
		}))
		defer server.Close()

		repo := newTestMarketDataRepo(t, "", server.URL, "test-key")
		_, err := repo.GetPrice(context.Background(), "AAPL", entity.AssetClassStock)

		assert.ErrorIs(t, err, ErrPriceNotAvailable)
	})
}
