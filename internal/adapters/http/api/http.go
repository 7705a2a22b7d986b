// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okian/olympstats/internal/domain/model"
	"github.com/okian/olympstats/internal/domain/stats"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	AthleteDependencies
	CountryDependencies
	SportDependencies
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	athleteHandler *AthleteHandler
	countryHandler *CountryHandler
	sportHandler   *SportHandler
}

// Option configures the Server.
type Option func(*serverConfig)

type serverConfig struct {
	defaultThreshold int
}

// WithDefaultThreshold sets the medal threshold used by
// /athletes/decorated when the request has no min parameter.
func WithDefaultThreshold(n int) Option {
	return func(c *serverConfig) {
		if n >= 0 {
			c.defaultThreshold = n
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	cfg := serverConfig{defaultThreshold: 3}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Server{
		healthHandler:  NewHealthHandler(),
		statsHandler:   NewStatsHandler(statsProvider),
		athleteHandler: NewAthleteHandler(deps, cfg.defaultThreshold),
		countryHandler: NewCountryHandler(deps),
		sportHandler:   NewSportHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))

	mux.HandleFunc("GET /years/{year}/athletes", MetricsMiddleware(s.sportHandler.HandleAthletesPerYear, "athletes_per_year"))

	mux.HandleFunc("GET /athletes/decorated", MetricsMiddleware(s.athleteHandler.HandleDecorated, "athletes_decorated"))
	mux.HandleFunc("GET /athletes/stars", MetricsMiddleware(s.athleteHandler.HandleStars, "athletes_stars"))
	mux.HandleFunc("GET /athletes/all-terrain", MetricsMiddleware(s.athleteHandler.HandleAllTerrain, "athletes_all_terrain"))
	mux.HandleFunc("GET /athletes/{name}/medals", MetricsMiddleware(s.athleteHandler.HandleMedals, "athlete_medals"))
	mux.HandleFunc("GET /athletes/{name}/country", MetricsMiddleware(s.athleteHandler.HandleCountry, "athlete_country"))

	mux.HandleFunc("GET /countries/top-medalists", MetricsMiddleware(s.countryHandler.HandleTopMedalists, "countries_top_medalists"))
	mux.HandleFunc("GET /countries/{name}/athletes", MetricsMiddleware(s.countryHandler.HandleAthletes, "country_athletes"))
	mux.HandleFunc("GET /countries/{name}/medalists", MetricsMiddleware(s.countryHandler.HandleMedalists, "country_medalists"))

	mux.HandleFunc("GET /sports", MetricsMiddleware(s.sportHandler.HandleSports, "sports"))
	mux.HandleFunc("GET /sports/{sport}/medalists", MetricsMiddleware(s.sportHandler.HandleMedalists, "sport_medalists"))
	mux.HandleFunc("GET /sports/{sport}/best-country", MetricsMiddleware(s.sportHandler.HandleBestCountry, "sport_best_country"))

	mux.HandleFunc("GET /medalists/percentage", MetricsMiddleware(s.sportHandler.HandleMedalistPercentage, "medalist_percentage"))
}

// Handler returns a mux with every route registered, wrapped in the
// request-ID middleware.
func (s *Server) Handler(ctx context.Context) http.Handler {
	mux := http.NewServeMux()
	s.Register(ctx, mux)
	return RequestIDMiddleware(mux)
}

// athleteView is the JSON shape of an athlete. Athletes are never encoded
// directly because participations point back at them.
type athleteView struct {
	Name    string       `json:"name"`
	Gender  model.Gender `json:"gender"`
	Country string       `json:"country"`
	Sports  int          `json:"sports"`
	Medals  int          `json:"medals"`
}

func newAthleteView(a *model.Athlete) athleteView {
	return athleteView{
		Name:    a.Name,
		Gender:  a.Gender,
		Country: a.Country,
		Sports:  a.SportCount(),
		Medals:  a.MedalCount(),
	}
}

func athleteNames(as []*model.Athlete) []string {
	out := make([]string, 0, len(as))
	for _, a := range as {
		out = append(out, a.Name)
	}
	return out
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeQueryError translates a query error into its HTTP status.
func writeQueryError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, stats.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, stats.ErrNoAthletes), errors.Is(err, stats.ErrEmptyPopulation):
		writeError(w, http.StatusUnprocessableEntity, "unprocessable", err)
	case errors.Is(err, ErrBadRequest):
		writeError(w, http.StatusBadRequest, "bad_request", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}
