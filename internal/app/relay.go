package app

import (
	"context"
	"fmt"
	"time"

	"github.com/Adda-Baaj/dummy-feeds/internal/config"
	"github.com/Adda-Baaj/dummy-feeds/internal/logger"
	"github.com/Adda-Baaj/dummy-feeds/internal/relay"
	"github.com/Adda-Baaj/dummy-feeds/internal/server"
	"github.com/Adda-Baaj/dummy-feeds/internal/storage"
	"github.com/Adda-Baaj/dummy-feeds/pkg/feeds"
	"github.com/Adda-Baaj/dummy-feeds/pkg/publishers"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Relay is the daemon runtime. It polls the configured feeds on an interval,
// publishes fresh items through the publisher fanout and, when an address is
// configured, serves the HTTP API alongside.
type Relay struct {
	cfg      *config.Config
	feedReg  *feeds.Registry
	fanout   *publishers.Fanout
	service  *relay.Service
	server   *server.Server
	interval time.Duration
	log      logger.Logger
	store    storage.Store
}

// NewRelay builds a relay runtime from config files.
func NewRelay(ctx context.Context, cfg *config.Config, log logger.Logger) (*Relay, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = &logger.NopLogger{}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	feedReg, err := feeds.LoadRegistry(cfg.FeedsFile)
	if err != nil {
		return nil, fmt.Errorf("load feeds registry: %w", err)
	}
	feedIDs := make([]string, 0, len(feedReg.All()))
	for _, f := range feedReg.All() {
		feedIDs = append(feedIDs, f.ID)
	}
	log.InfoObj("feeds registry loaded", "feeds_meta", map[string]any{
		"count": len(feedIDs),
		"ids":   feedIDs,
	})

	publisherCfgs, err := publishers.LoadConfigs(cfg.PublishersFile)
	if err != nil {
		return nil, err
	}
	fanout, err := publishers.Build(ctx, publisherCfgs, log)
	if err != nil {
		return nil, fmt.Errorf("build publishers: %w", err)
	}
	log.InfoObj("publishers registry loaded", "publishers_meta", map[string]any{
		"configured": len(publisherCfgs),
		"enabled":    fanout.Size(),
	})

	store, err := storage.NewStore(cfg.StorageType, cfg.BBoltPath, storage.Options{
		TTL:             cfg.StorageTTL,
		CleanupInterval: cfg.StorageCleanupInterval,
	})
	if err != nil {
		_ = fanout.Close()
		return nil, fmt.Errorf("init storage: %w", err)
	}
	log.InfoObj("storage initialized", "storage_config", map[string]any{
		"type":                     cfg.StorageType,
		"path":                     cfg.BBoltPath,
		"ttl_seconds":              int(cfg.StorageTTL.Seconds()),
		"cleanup_interval_seconds": int(cfg.StorageCleanupInterval.Seconds()),
	})

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	client := NewDummyClient(cfg, log, reg)

	var srv *server.Server
	if cfg.HTTPAddr != "" {
		srv = server.New(cfg.HTTPAddr, server.NewRouter(client, reg, zapLogger(log)), zapLogger(log))
	}

	return &Relay{
		cfg:      cfg,
		feedReg:  feedReg,
		fanout:   fanout,
		service:  relay.NewService(feeds.DefaultFetcherRegistry(client), fanout, log, store),
		server:   srv,
		interval: cfg.RelayInterval,
		log:      log,
		store:    store,
	}, nil
}

// Run starts the relay loop and the HTTP API until the context is cancelled.
func (r *Relay) Run(ctx context.Context) error {
	if r == nil || r.service == nil {
		return fmt.Errorf("relay is not initialized")
	}
	defer r.close()

	g, gctx := errgroup.WithContext(ctx)
	if r.server != nil {
		g.Go(func() error { return r.server.Run(gctx) })
	}
	g.Go(func() error { return r.loop(gctx) })
	return g.Wait()
}

func (r *Relay) loop(ctx context.Context) error {
	list := r.feedReg.Enabled()
	if len(list) == 0 {
		r.log.WarnObj("no feeds enabled; relay idle", "feeds_file", r.cfg.FeedsFile)
		<-ctx.Done()
		return nil
	}

	r.log.InfoObj("relay loop starting", "relay_state", map[string]any{
		"feeds_count":      len(list),
		"publishers_count": r.fanout.Size(),
		"relay_interval":   r.interval.String(),
	})

	if err := r.runOnce(ctx, list); err != nil {
		r.log.ErrorObj("initial relay pass failed", "error", err)
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.log.InfoObj("relay loop exiting", "reason", ctx.Err())
			return nil
		case <-ticker.C:
			if err := r.runOnce(ctx, list); err != nil {
				r.log.ErrorObj("scheduled relay pass failed", "error", err)
			}
		}
	}
}

func (r *Relay) runOnce(ctx context.Context, list []feeds.Feed) error {
	start := time.Now()
	r.log.InfoObj("relay pass started", "relay_meta", map[string]any{
		"feeds_count": len(list),
		"started_at":  start.UTC(),
	})
	if err := r.service.Run(ctx, list); err != nil {
		return err
	}
	r.log.InfoObj("relay pass completed", "relay_meta", map[string]any{
		"feeds_count": len(list),
		"elapsed_ms":  time.Since(start).Milliseconds(),
	})
	return nil
}

func (r *Relay) close() {
	if r.fanout != nil {
		if err := r.fanout.Close(); err != nil {
			r.log.ErrorObj("publisher close failed", "error", err)
		}
	}
	if r.store != nil {
		if err := r.store.Close(); err != nil {
			r.log.ErrorObj("storage close failed", "error", err)
		}
	}
}

func zapLogger(log logger.Logger) *zap.Logger {
	if zl, ok := log.(*logger.ZapLogger); ok && zl != nil {
		return zl.Zap()
	}
	return zap.NewNop()
}
