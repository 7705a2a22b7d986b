package api

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/okian/olympstats/internal/domain/model"
)

// AthleteDependencies defines the queries served under /athletes.
type AthleteDependencies interface {
	MedalsInRange(ctx context.Context, start, end int, athlete string) ([]model.MedalRecord, error)
	CountryOfAthlete(ctx context.Context, athlete string) (string, error)
	AthletesWithMoreMedals(ctx context.Context, threshold int) (map[string]int, error)
	StarAthletes(ctx context.Context) (map[string]int, error)
	AllTerrainAthlete(ctx context.Context) (*model.Athlete, error)
}

// AthleteHandler handles athlete requests.
type AthleteHandler struct {
	deps             AthleteDependencies
	defaultThreshold int
}

// NewAthleteHandler creates a new athlete handler.
func NewAthleteHandler(deps AthleteDependencies, defaultThreshold int) *AthleteHandler {
	return &AthleteHandler{deps: deps, defaultThreshold: defaultThreshold}
}

// HandleMedals handles GET /athletes/{name}/medals?from=&to= requests.
// Missing bounds leave that side of the range open.
func (h *AthleteHandler) HandleMedals(w http.ResponseWriter, r *http.Request) {
	from, err := intParam(r, "from", 0)
	if err != nil {
		writeQueryError(w, err)
		return
	}
	to, err := intParam(r, "to", math.MaxInt32)
	if err != nil {
		writeQueryError(w, err)
		return
	}
	medals, err := h.deps.MedalsInRange(r.Context(), from, to, r.PathValue("name"))
	if err != nil {
		writeQueryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, medals)
}

type countryResponse struct {
	Athlete string `json:"athlete"`
	Country string `json:"country"`
}

// HandleCountry handles GET /athletes/{name}/country requests.
func (h *AthleteHandler) HandleCountry(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	country, err := h.deps.CountryOfAthlete(r.Context(), name)
	if err != nil {
		writeQueryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, countryResponse{Athlete: name, Country: country})
}

// HandleDecorated handles GET /athletes/decorated?min=N requests.
func (h *AthleteHandler) HandleDecorated(w http.ResponseWriter, r *http.Request) {
	threshold, err := intParam(r, "min", h.defaultThreshold)
	if err != nil {
		writeQueryError(w, err)
		return
	}
	out, err := h.deps.AthletesWithMoreMedals(r.Context(), threshold)
	if err != nil {
		writeQueryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// HandleStars handles GET /athletes/stars requests.
func (h *AthleteHandler) HandleStars(w http.ResponseWriter, r *http.Request) {
	out, err := h.deps.StarAthletes(r.Context())
	if err != nil {
		writeQueryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// HandleAllTerrain handles GET /athletes/all-terrain requests.
func (h *AthleteHandler) HandleAllTerrain(w http.ResponseWriter, r *http.Request) {
	a, err := h.deps.AllTerrainAthlete(r.Context())
	if err != nil {
		writeQueryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newAthleteView(a))
}

// intParam reads an integer query parameter, returning def when absent.
func intParam(r *http.Request, key string, def int) (int, error) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", ErrBadRequest, key)
	}
	return n, nil
}
