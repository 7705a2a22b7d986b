// Package service owns the loaded dataset and exposes the statistics
// queries required by the HTTP API and the CLI.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/okian/olympstats/internal/adapters/repository"
	"github.com/okian/olympstats/internal/domain/model"
	"github.com/okian/olympstats/internal/domain/stats"
	"github.com/okian/olympstats/pkg/logger"
	"github.com/okian/olympstats/pkg/metrics"
)

// Service loads the dataset once on Start and answers queries over it.
type Service struct {
	mu sync.RWMutex

	// Core components
	source repository.Source
	calc   *stats.Calculator

	// Configuration
	dataPath        string
	skipInvalidRows bool

	// State
	started  bool
	loadedAt time.Time
	summary  stats.Summary

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithDataPath sets the dataset file loaded on Start.
func WithDataPath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.dataPath = path
		}
	}
}

// WithSkipInvalidRows makes the loader skip malformed rows.
func WithSkipInvalidRows(skip bool) Option {
	return func(s *Service) {
		s.skipInvalidRows = skip
	}
}

// WithSource replaces the file source, e.g. with an in-memory graph.
func WithSource(src repository.Source) Option {
	return func(s *Service) {
		if src != nil {
			s.source = src
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		dataPath: "./data/atletas.csv",
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start loads the dataset and builds the calculator. Calling Start on a
// started service is a no-op.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}
	if s.source == nil {
		s.source = repository.NewFileSource(s.dataPath,
			repository.WithSkipInvalidRows(s.skipInvalidRows),
			repository.WithLogger(s.logger),
		)
	}

	s.logger.Info(ctx, "loading dataset...",
		logger.String("path", s.dataPath),
		logger.Bool("skip_invalid_rows", s.skipInvalidRows),
	)

	start := time.Now()
	g, err := s.source.Load(ctx)
	if err != nil {
		metrics.RecordDatasetLoadError()
		return fmt.Errorf("start service: %w", err)
	}
	elapsed := time.Since(start)

	s.calc = stats.NewFromGraph(g)
	s.summary = s.calc.Summary()
	s.loadedAt = time.Now()
	s.started = true

	metrics.RecordDatasetLoad(float64(elapsed.Microseconds()) / 1e3)
	metrics.UpdateDatasetSize(metrics.DatasetSize{
		Athletes:       s.summary.Athletes,
		Countries:      s.summary.Countries,
		Events:         s.summary.Events,
		Participations: s.summary.Participations,
		Medalists:      s.summary.Medalists,
	})

	s.logger.Info(ctx, "dataset loaded",
		logger.Int("athletes", s.summary.Athletes),
		logger.Int("countries", s.summary.Countries),
		logger.Int("events", s.summary.Events),
		logger.Int("participations", s.summary.Participations),
		logger.Any("duration", elapsed),
	)
	return nil
}

// Stop releases the dataset.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.calc = nil
	s.started = false
	s.logger.Info(context.Background(), "statistics service stopped")
}

// query runs fn against the calculator, recording latency and errors
// under name.
func query[T any](ctx context.Context, s *Service, name string, fn func(*stats.Calculator) (T, error)) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		metrics.RecordQueryError(name, ErrorType(err))
		return zero, err
	}

	s.mu.RLock()
	calc, log := s.calc, s.logger
	s.mu.RUnlock()
	if calc == nil {
		metrics.RecordQueryError(name, ErrorType(ErrNotStarted))
		return zero, ErrNotStarted
	}

	start := time.Now()
	out, err := fn(calc)
	latencyMs := float64(time.Since(start).Microseconds()) / 1e3
	metrics.RecordQuery(name, latencyMs)
	if err != nil {
		kind := ErrorType(err)
		metrics.RecordQueryError(name, kind)
		fields := []logger.Field{logger.String("query", name), logger.String("error_type", kind), logger.Error(err)}
		if kind == "internal" {
			log.Warn(ctx, "query failed", fields...)
		} else {
			log.Debug(ctx, "query failed", fields...)
		}
		return zero, err
	}
	log.Debug(ctx, "query served", logger.String("query", name), logger.Float64("latency_ms", latencyMs))
	return out, nil
}

// ErrorType classifies an error for metrics and API responses.
func ErrorType(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, stats.ErrNotFound):
		return "not_found"
	case errors.Is(err, stats.ErrEmptyPopulation):
		return "empty_population"
	case errors.Is(err, stats.ErrNoAthletes):
		return "no_athletes"
	case errors.Is(err, ErrNotStarted):
		return "not_started"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "cancelled"
	default:
		return "internal"
	}
}

// AthletesPerYear maps each sport held in year to its athletes.
func (s *Service) AthletesPerYear(ctx context.Context, year int) (map[string][]*model.Athlete, error) {
	return query(ctx, s, "athletes_per_year", func(c *stats.Calculator) (map[string][]*model.Athlete, error) {
		return c.AthletesPerYear(year), nil
	})
}

// MedalsInRange lists an athlete's medals between start and end.
func (s *Service) MedalsInRange(ctx context.Context, start, end int, athlete string) ([]model.MedalRecord, error) {
	return query(ctx, s, "medals_in_range", func(c *stats.Calculator) ([]model.MedalRecord, error) {
		return c.MedalsInRange(start, end, athlete)
	})
}

// AthletesByCountry lists every participation of a country's athletes.
func (s *Service) AthletesByCountry(ctx context.Context, country string) ([]model.ParticipationRecord, error) {
	return query(ctx, s, "athletes_by_country", func(c *stats.Calculator) ([]model.ParticipationRecord, error) {
		return c.AthletesByCountry(country)
	})
}

// CountryWithMostMedalists returns the countries tied for most medalists.
func (s *Service) CountryWithMostMedalists(ctx context.Context) (map[string]int, error) {
	return query(ctx, s, "country_most_medalists", func(c *stats.Calculator) (map[string]int, error) {
		return c.CountryWithMostMedalists(), nil
	})
}

// MedalistsByEvent returns the distinct medalists of a sport.
func (s *Service) MedalistsByEvent(ctx context.Context, sport string) ([]*model.Athlete, error) {
	return query(ctx, s, "medalists_by_event", func(c *stats.Calculator) ([]*model.Athlete, error) {
		return c.MedalistsByEvent(sport), nil
	})
}

// AthletesWithMoreMedals returns athletes with more than threshold medals.
func (s *Service) AthletesWithMoreMedals(ctx context.Context, threshold int) (map[string]int, error) {
	return query(ctx, s, "athletes_more_medals", func(c *stats.Calculator) (map[string]int, error) {
		return c.AthletesWithMoreMedals(threshold), nil
	})
}

// StarAthletes returns the athletes tied for most medals.
func (s *Service) StarAthletes(ctx context.Context) (map[string]int, error) {
	return query(ctx, s, "star_athletes", func(c *stats.Calculator) (map[string]int, error) {
		return c.StarAthletes(), nil
	})
}

// BestCountryForEvent returns the countries tied for the best tally in a
// sport.
func (s *Service) BestCountryForEvent(ctx context.Context, sport string) (map[string]model.Tally, error) {
	return query(ctx, s, "best_country_for_event", func(c *stats.Calculator) (map[string]model.Tally, error) {
		return c.BestCountryForEvent(sport), nil
	})
}

// AllTerrainAthlete returns the athlete with the most distinct sports.
func (s *Service) AllTerrainAthlete(ctx context.Context) (*model.Athlete, error) {
	return query(ctx, s, "all_terrain_athlete", func(c *stats.Calculator) (*model.Athlete, error) {
		return c.AllTerrainAthlete()
	})
}

// MedalistsByCountryAndGender maps a country's medalists of a gender to
// their medals.
func (s *Service) MedalistsByCountryAndGender(ctx context.Context, country string, g model.Gender) (map[string][]model.MedalRecord, error) {
	return query(ctx, s, "medalists_by_country_gender", func(c *stats.Calculator) (map[string][]model.MedalRecord, error) {
		return c.MedalistsByCountryAndGender(country, g)
	})
}

// MedalistPercentage returns the fraction of athletes with a medal.
func (s *Service) MedalistPercentage(ctx context.Context) (float64, error) {
	return query(ctx, s, "medalist_percentage", func(c *stats.Calculator) (float64, error) {
		return c.MedalistPercentage()
	})
}

// SportNames returns the distinct sport names.
func (s *Service) SportNames(ctx context.Context) ([]string, error) {
	return query(ctx, s, "sport_names", func(c *stats.Calculator) ([]string, error) {
		return c.SportNames(), nil
	})
}

// CountryOfAthlete returns the country an athlete represents.
func (s *Service) CountryOfAthlete(ctx context.Context, athlete string) (string, error) {
	return query(ctx, s, "country_of_athlete", func(c *stats.Calculator) (string, error) {
		return c.CountryOfAthlete(athlete)
	})
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := map[string]interface{}{
		"started":  s.started,
		"dataPath": s.dataPath,
	}
	if s.started {
		out["loadedAt"] = s.loadedAt.UTC().Format(time.RFC3339)
		out["athletes"] = s.summary.Athletes
		out["countries"] = s.summary.Countries
		out["events"] = s.summary.Events
		out["sports"] = s.summary.Sports
		out["participations"] = s.summary.Participations
		out["medalists"] = s.summary.Medalists
	}
	return out
}
