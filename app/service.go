package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	planapi "github.com/schoolops/subplan/api/plan"
	staffapi "github.com/schoolops/subplan/api/staff"
	"github.com/schoolops/subplan/config"
	"github.com/schoolops/subplan/core/directory"
	"github.com/schoolops/subplan/core/events"
	"github.com/schoolops/subplan/core/history"
	"github.com/schoolops/subplan/core/plan"
	"github.com/schoolops/subplan/core/timetable"
	"github.com/schoolops/subplan/infra/logger"
	"github.com/schoolops/subplan/infra/metrics"
	"github.com/schoolops/subplan/internal/eventbus"
)

// Service wires the stores, planner and HTTP surface together.
type Service struct {
	Planner *plan.Planner

	directory  *directory.MemoryStore
	timetables *timetable.MemoryStore
	history    history.Store
	bus        *eventbus.Bus
	mux        *http.ServeMux
	log        logger.Logger

	addr        string
	promEnabled bool
	promPort    string
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	dir := directory.NewMemoryStore()
	tts := timetable.NewMemoryStore()
	if cfg.Roster.Path != "" {
		roster, err := config.LoadRoster(cfg.Roster.Path)
		if err != nil {
			return nil, fmt.Errorf("load roster: %w", err)
		}
		if err := SeedStores(roster, dir, tts); err != nil {
			return nil, fmt.Errorf("seed roster: %w", err)
		}
		logg.Infof("loaded roster: %d staff", len(roster.Staff))
	}

	hist, err := newHistoryStore(cfg.History)
	if err != nil {
		return nil, fmt.Errorf("history store: %w", err)
	}

	bus := eventbus.New()
	planner, err := plan.NewPlanner(dir, tts, hist, logger.New("planner"), bus)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	planapi.NewHandler(planner, dir, hist, logger.New("api"), bus).Register(mux)
	staffapi.NewHandler(dir, tts).Register(mux)

	return &Service{
		Planner:     planner,
		directory:   dir,
		timetables:  tts,
		history:     hist,
		bus:         bus,
		mux:         mux,
		log:         logg,
		addr:        cfg.API.Addr,
		promEnabled: cfg.Metrics.PrometheusEnabled,
		promPort:    cfg.Metrics.PrometheusPort,
	}, nil
}

// SeedStores loads the roster's staff and timetables into the stores.
func SeedStores(roster *config.Roster, dir *directory.MemoryStore, tts *timetable.MemoryStore) error {
	for _, m := range roster.Staff {
		if err := dir.Add(m); err != nil {
			return err
		}
	}
	for id, tt := range roster.Timetables {
		if err := tts.Set(id, tt); err != nil {
			return err
		}
	}
	return nil
}

func newHistoryStore(cfg config.HistoryConfig) (history.Store, error) {
	switch cfg.Backend {
	case "sqlite":
		return history.NewSQLiteStore(cfg.Path)
	default:
		return history.NewMemoryStore(), nil
	}
}

// Run starts the HTTP servers and blocks until the context is canceled.
func (s *Service) Run(ctx context.Context) error {
	go s.consumeEvents(ctx)
	if s.promEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.promPort); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}
	srv := &http.Server{Addr: s.addr, Handler: s.mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Errorf("api server shutdown: %v", err)
		}
		cancel()
	}()
	s.log.Infof("api listening on %s", s.addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// consumeEvents logs planning events published on the bus.
func (s *Service) consumeEvents(ctx context.Context) {
	sub := s.bus.Subscribe()
	defer s.bus.Unsubscribe(sub)
	for {
		select {
		case ev, ok := <-sub:
			if !ok {
				return
			}
			switch e := ev.(type) {
			case events.RunCompletedEvent:
				s.log.Debugw("run completed", map[string]any{
					"run_id":     e.RunID,
					"date":       e.Date,
					"assigned":   e.Assigned,
					"unassigned": e.Unassigned,
				})
			case events.SlotReassignedEvent:
				s.log.Debugw("slot reassigned", map[string]any{
					"run_id": e.RunID,
					"slot":   e.SlotKey,
					"from":   e.From,
					"to":     e.To,
				})
			}
		case <-ctx.Done():
			return
		}
	}
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	s.bus.Close()
	if s.history != nil {
		return s.history.Close()
	}
	return nil
}
