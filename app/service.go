package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	apirecommend "github.com/ambuflow/crewmatch/api/recommend"
	"github.com/ambuflow/crewmatch/config"
	coremetrics "github.com/ambuflow/crewmatch/core/metrics"
	"github.com/ambuflow/crewmatch/core/recommend"
	"github.com/ambuflow/crewmatch/core/recommend/logging"
	"github.com/ambuflow/crewmatch/core/route"
	"github.com/ambuflow/crewmatch/core/traffic"
	"github.com/ambuflow/crewmatch/infra/logger"
	"github.com/ambuflow/crewmatch/infra/metrics"
	"github.com/ambuflow/crewmatch/infra/routing"
	"github.com/ambuflow/crewmatch/internal/eventbus"
)

// Service orchestrates the recommendation engine and its adapters.
type Service struct {
	Engine      *recommend.Engine
	bus         *eventbus.Bus
	log         logger.Logger
	promEnabled bool
	promPort    string
	apiEnabled  bool
	apiAddr     string
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	var router route.Router
	switch cfg.Routing.Provider {
	case "google":
		gr, err := routing.NewGoogleRouter(cfg.Routing)
		if err != nil {
			return nil, fmt.Errorf("google router: %w", err)
		}
		router = gr
	default:
		router = route.NewHeuristicRouter(traffic.NewEstimator())
	}

	var sinks []coremetrics.MetricsSink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink(cfg.Metrics)
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sinks = append(sinks, metrics.NewInfluxSinkWithFallback(cfg.Metrics))
	}
	var sink coremetrics.MetricsSink
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = metrics.NewMultiSink(sinks...)
	}

	bus := eventbus.New()
	engine, err := recommend.NewEngine(cfg.Engine, route.NewEvaluator(router), logg, sink, bus)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}
	if cfg.Audit.Enabled {
		store, err := logging.NewJSONLStore(cfg.Audit.Path, cfg.Audit.MaxSizeMB)
		if err != nil {
			return nil, fmt.Errorf("audit store: %w", err)
		}
		engine.SetLogStore(store)
	}

	return &Service{
		Engine:      engine,
		bus:         bus,
		log:         logg,
		promEnabled: cfg.Metrics.PrometheusEnabled,
		promPort:    cfg.Metrics.PrometheusPort,
		apiEnabled:  cfg.API.Enabled,
		apiAddr:     cfg.API.Addr,
	}, nil
}

// Run starts the HTTP surfaces and blocks until the context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	if s.promEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.promPort); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}
	if s.apiEnabled {
		mux := http.NewServeMux()
		mux.Handle("/api/recommend/evaluate", apirecommend.NewEvaluateHandler(s.Engine))
		mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
		})
		srv := &http.Server{Addr: s.apiAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
		s.log.Infof("evaluation API listening on %s", s.apiAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
	<-ctx.Done()
	return nil
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	if s.bus != nil {
		s.bus.Close()
	}
	return s.Engine.Close()
}
