package app

import (
	"github.com/Adda-Baaj/dummy-feeds/internal/config"
	"github.com/Adda-Baaj/dummy-feeds/internal/logger"
	"github.com/Adda-Baaj/dummy-feeds/pkg/dummy"
	"github.com/Adda-Baaj/dummy-feeds/pkg/httpclient"
	"github.com/prometheus/client_golang/prometheus"
)

// NewDummyClient builds the posts/exchange-rate client from config.
// A nil registerer disables upstream metrics.
func NewDummyClient(cfg *config.Config, log logger.Logger, reg prometheus.Registerer) *dummy.Client {
	if log == nil {
		log = &logger.NopLogger{}
	}

	headers := map[string]string{}
	if cfg.UserAgent != "" {
		headers["User-Agent"] = cfg.UserAgent
	}
	transport := httpclient.NewRestyClient(cfg.HTTPTimeout, headers)

	opts := []dummy.Option{dummy.WithLogger(log)}
	if reg != nil {
		opts = append(opts, dummy.WithMetrics(dummy.NewMetrics(reg)))
	}

	return dummy.NewClient(dummy.Config{
		PostsURL:        cfg.PostsURL,
		ExchangeBaseURL: cfg.ExchangeBaseURL,
		ExchangeAPIKey:  cfg.ExchangeAPIKey,
	}, transport, opts...)
}
