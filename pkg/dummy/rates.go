package dummy

import (
	"context"

	"github.com/Adda-Baaj/dummy-feeds/internal/domain"
)

// GetExchangeRate looks up the rate for pairCode (e.g. "USD/EUR").
// Any failure yields a zero-valued ExchangeRate.
func (c *Client) GetExchangeRate(ctx context.Context, pairCode string) domain.ExchangeRate {
	rate, err := c.FetchRate(ctx, pairCode)
	if err != nil {
		c.log.WarnObj("exchange rate lookup failed; returning empty record", "exchange_rate_error", map[string]any{
			"url":     c.redactedRateURL(pairCode),
			"pair":    pairCode,
			"outcome": Outcome(err),
			"error":   err.Error(),
		})
		return domain.ExchangeRate{}
	}
	return rate
}

// FetchRate downloads the exchange-rate record for pairCode.
// pairCode is placed into the request path verbatim. Returned errors never
// contain the API key.
func (c *Client) FetchRate(ctx context.Context, pairCode string) (domain.ExchangeRate, error) {
	var rate domain.ExchangeRate
	if err := c.getJSON(ctx, endpointRate, c.rateURL(pairCode), &rate); err != nil {
		return domain.ExchangeRate{}, maskSecret(err, c.apiKey)
	}

	c.log.DebugObj("exchange rate fetched", "exchange_rate_result", map[string]any{
		"pair":            pairCode,
		"conversion_rate": rate.ConversionRate,
	})
	return rate, nil
}

func (c *Client) rateURL(pairCode string) string {
	return c.exchangeBaseURL + "/" + c.apiKey + "/pair/" + pairCode
}

// redactedRateURL is rateURL with the API key masked, for logs.
func (c *Client) redactedRateURL(pairCode string) string {
	return c.exchangeBaseURL + "/****/pair/" + pairCode
}
