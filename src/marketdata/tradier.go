package marketdata

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/jiaming2012/option-income-screener/src/optionmodels"
	"github.com/jiaming2012/option-income-screener/src/utils"
)

func fetchTradier(requestURL string, token string) ([]byte, error) {
	client := http.Client{
		Timeout: 10 * time.Second,
	}

	req, err := http.NewRequest(http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("fetchTradier: failed to create request: %w", err)
	}

	req.Header.Add("Accept", "application/json")
	req.Header.Add("Authorization", fmt.Sprintf("Bearer %s", token))

	res, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetchTradier: failed to fetch %s: %w", requestURL, err)
	}

	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetchTradier: failed to fetch %s: %s", requestURL, res.Status)
	}

	bytes, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("fetchTradier: failed to read response body: %w", err)
	}

	return bytes, nil
}

// FetchQuote returns the current quote for one underlying symbol.
func FetchQuote(baseURL string, token string, symbol optionmodels.StockSymbol) (*optionmodels.TradierQuoteDTO, error) {
	requestURL := fmt.Sprintf("%s/v1/markets/quotes?symbols=%s", baseURL, url.QueryEscape(string(symbol)))

	bytes, err := fetchTradier(requestURL, token)
	if err != nil {
		return nil, fmt.Errorf("FetchQuote: %w", err)
	}

	quotes, err := utils.ParseTradierResponse[optionmodels.TradierQuoteDTO](bytes)
	if err != nil {
		return nil, fmt.Errorf("FetchQuote: failed to parse response: %w", err)
	}

	if len(quotes) == 0 {
		return nil, fmt.Errorf("FetchQuote: no quote returned for %s", symbol)
	}

	return &quotes[0], nil
}

// FetchExpirations returns the available expiration dates for a symbol.
func FetchExpirations(baseURL string, token string, symbol optionmodels.StockSymbol) ([]string, error) {
	requestURL := fmt.Sprintf("%s/v1/markets/options/expirations?symbol=%s", baseURL, url.QueryEscape(string(symbol)))

	bytes, err := fetchTradier(requestURL, token)
	if err != nil {
		return nil, fmt.Errorf("FetchExpirations: %w", err)
	}

	expirations, err := utils.ParseTradierResponse[string](bytes)
	if err != nil {
		return nil, fmt.Errorf("FetchExpirations: failed to parse response: %w", err)
	}

	return expirations, nil
}

// FetchOptionChain returns the full chain, with greeks, for one symbol
// and expiration.
func FetchOptionChain(baseURL string, token string, symbol optionmodels.StockSymbol, expiration string) ([]optionmodels.TradierOptionDTO, error) {
	requestURL := fmt.Sprintf("%s/v1/markets/options/chains?symbol=%s&expiration=%s&greeks=true", baseURL, url.QueryEscape(string(symbol)), url.QueryEscape(expiration))

	bytes, err := fetchTradier(requestURL, token)
	if err != nil {
		return nil, fmt.Errorf("FetchOptionChain: %w", err)
	}

	options, err := utils.ParseTradierResponse[optionmodels.TradierOptionDTO](bytes)
	if err != nil {
		return nil, fmt.Errorf("FetchOptionChain: failed to parse response: %w", err)
	}

	return options, nil
}
