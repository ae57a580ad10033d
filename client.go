// Package safeexplore is the embedded SDK: document tracking, experiences,
// local services, the law guide, the country selector, preferences and the
// help assistant, served in-process from the reference catalog.
package safeexplore

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/safeexplore/internal/db"
	"github.com/kailas-cloud/safeexplore/internal/db/memory"
	dbValkey "github.com/kailas-cloud/safeexplore/internal/db/valkey"
	domassist "github.com/kailas-cloud/safeexplore/internal/domain/assistant"
	"github.com/kailas-cloud/safeexplore/internal/logger"
	"github.com/kailas-cloud/safeexplore/internal/metrics"
	"github.com/kailas-cloud/safeexplore/internal/repository/catalog"
	prefsrepo "github.com/kailas-cloud/safeexplore/internal/repository/prefs"
	assistantuc "github.com/kailas-cloud/safeexplore/internal/usecase/assistant"
	countriesuc "github.com/kailas-cloud/safeexplore/internal/usecase/countries"
	exploreuc "github.com/kailas-cloud/safeexplore/internal/usecase/explore"
	finderuc "github.com/kailas-cloud/safeexplore/internal/usecase/finder"
	lawsuc "github.com/kailas-cloud/safeexplore/internal/usecase/laws"
	prefsuc "github.com/kailas-cloud/safeexplore/internal/usecase/prefs"
	trackeruc "github.com/kailas-cloud/safeexplore/internal/usecase/tracker"
)

const defaultReadinessTimeout = 10 * time.Second

// Client is the safeexplore SDK entry point.
type Client struct {
	store     db.Store
	tracker   *trackeruc.Service
	explore   *exploreuc.Service
	finder    *finderuc.Service
	laws      *lawsuc.Service
	countries *countriesuc.Service
	prefs     *prefsuc.Service
	assistant *assistantuc.Service
	logger    *zap.Logger
	debounce  time.Duration
}

// New creates a Client. Preferences live in memory unless WithValkey or
// WithRedis is given.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{driver: "memory"}
	for _, o := range opts {
		o.apply(cfg)
	}

	cat, err := catalog.Load(cfg.catalogPath)
	if err != nil {
		return nil, fmt.Errorf("safeexplore: %w", err)
	}

	store, err := createStore(cfg)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("safeexplore: preference store not ready: %w", err)
	}

	if cfg.metricsReg != nil {
		metrics.RegisterPipelineMetrics(cfg.metricsReg)
	}

	return wireClient(store, cat, cfg), nil
}

func createStore(cfg *clientConfig) (db.Store, error) {
	switch cfg.driver {
	case "memory":
		return memory.New(), nil
	case "valkey", "redis":
		s, err := dbValkey.NewStore(dbValkey.Config{
			Addrs:    cfg.addrs,
			Password: cfg.password,
		})
		if err != nil {
			return nil, fmt.Errorf("safeexplore: create %s store: %w", cfg.driver, err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("safeexplore: unknown driver %q", cfg.driver)
	}
}

func wireClient(store db.Store, cat *catalog.Catalog, cfg *clientConfig) *Client {
	trackerOpts := []trackeruc.Option{
		trackeruc.WithLocation(cfg.location),
		trackeruc.WithDeadlineLimit(cfg.deadlineLimit),
	}
	if cfg.clock != nil {
		trackerOpts = append(trackerOpts, trackeruc.WithClock(cfg.clock))
	}

	var respOpts []domassist.Option
	if cfg.clock != nil {
		respOpts = append(respOpts, domassist.WithClock(cfg.clock))
	}

	log := cfg.logger
	if log == nil {
		log = zap.NewNop()
	}

	countries := countriesuc.New(cat)

	return &Client{
		store:     store,
		tracker:   trackeruc.New(cat, trackerOpts...),
		explore:   exploreuc.New(cat),
		finder:    finderuc.New(cat),
		laws:      lawsuc.New(cat),
		countries: countries,
		prefs:     prefsuc.New(prefsrepo.New(store, cfg.keyPrefix), prefsuc.WithCountries(countries)),
		assistant: assistantuc.New(domassist.New(respOpts...)),
		logger:    log,
		debounce:  cfg.debounce,
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks preference store connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Preferences returns the settings of one profile.
func (c *Client) Preferences(profile string) *Preferences {
	return &Preferences{profile: profile, svc: c.prefs, client: c}
}

// Assistant returns the help chat.
func (c *Client) Assistant() *Assistant {
	return &Assistant{svc: c.assistant, client: c}
}

// ctx attaches the SDK logger.
func (c *Client) ctx(ctx context.Context) context.Context {
	return logger.ContextWithLogger(ctx, c.logger)
}
