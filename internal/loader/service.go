package loader

import (
	"context"
	"time"

	"go.uber.org/zap"

	"catalogweb/internal/catalog"
)

type IndexClient interface {
	FetchIndex(ctx context.Context) ([]catalog.Entry, error)
	IndexURL() string
}

type Store interface {
	Replace(entries []catalog.Entry, report catalog.LoadReport)
	MarkLoaded()
}

type Config struct {
	// Fallback supplies the built-in dataset; defaults to catalog.FallbackEntries.
	Fallback func() []catalog.Entry
	// OnFinished is called once the load has finished, whatever its outcome.
	OnFinished func(catalog.LoadReport)
}

// Service loads the index document into the store once. Any failure is
// replaced by the fallback dataset, so a load always leaves the store
// renderable.
type Service struct {
	client    IndexClient
	store     Store
	sanitizer *Sanitizer
	logger    *zap.Logger
	cfg       Config
	now       func() time.Time
}

func NewService(client IndexClient, store Store, logger *zap.Logger, cfg Config) *Service {
	if cfg.Fallback == nil {
		cfg.Fallback = catalog.FallbackEntries
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		client:    client,
		store:     store,
		sanitizer: NewSanitizer(),
		logger:    logger,
		cfg:       cfg,
		now:       time.Now,
	}
}

// Run performs the single fetch and fills the store.
func (s *Service) Run(ctx context.Context) catalog.LoadReport {
	report := catalog.LoadReport{StartedAt: s.now()}
	log := s.logger.With(zap.String("index_url", s.client.IndexURL()))

	entries, err := s.fetch(ctx, log)
	if err != nil {
		log.Warn("failed to load remote catalog, using fallback dataset", zap.Error(err))
		entries = s.cfg.Fallback()
		report.Source = catalog.SourceFallback
		report.Err = err
	} else {
		report.Source = catalog.SourceRemote
	}

	report.Entries = len(entries)
	report.FinishedAt = s.now()
	s.store.Replace(entries, report)
	s.store.MarkLoaded()

	log.Info("catalog load finished",
		zap.String("source", string(report.Source)),
		zap.Int("entries", report.Entries),
		zap.Duration("duration", report.FinishedAt.Sub(report.StartedAt)),
	)
	if s.cfg.OnFinished != nil {
		s.cfg.OnFinished(report)
	}
	return report
}

func (s *Service) fetch(ctx context.Context, log *zap.Logger) ([]catalog.Entry, error) {
	entries, err := s.client.FetchIndex(ctx)
	if err != nil {
		return nil, err
	}
	clean, dropped := s.sanitizer.Entries(entries)
	if dropped > 0 {
		log.Warn("cleared unsafe links in index entries", zap.Int("links", dropped))
	}
	return clean, nil
}

// Start runs the load in the background and returns immediately.
func (s *Service) Start(ctx context.Context) <-chan catalog.LoadReport {
	done := make(chan catalog.LoadReport, 1)
	go func() {
		done <- s.Run(ctx)
	}()
	return done
}
