package dto

// BybitTickerResponse is the Bybit v5 tickers payload. Only the fields the
// oracle reads are mapped.
type BybitTickerResponse struct {
	RetCode int    `json:"retCode"`
	RetMsg  string `json:"retMsg"`
	Result  struct {
		Category string `json:"category"`
		List     []struct {
			Symbol    string `json:"symbol"`
			LastPrice string `json:"lastPrice"`
		} `json:"list"`
	} `json:"result"`
}

// QuoteResponse is the stock/forex last-price payload.
type QuoteResponse struct {
	Symbol string  `json:"symbol"`
	Price  float64 `json:"price"`
}
