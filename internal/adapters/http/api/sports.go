package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/okian/olympstats/internal/domain/model"
)

// SportDependencies defines the sport, year and population queries.
type SportDependencies interface {
	AthletesPerYear(ctx context.Context, year int) (map[string][]*model.Athlete, error)
	MedalistsByEvent(ctx context.Context, sport string) ([]*model.Athlete, error)
	BestCountryForEvent(ctx context.Context, sport string) (map[string]model.Tally, error)
	SportNames(ctx context.Context) ([]string, error)
	MedalistPercentage(ctx context.Context) (float64, error)
}

// SportHandler handles sport requests.
type SportHandler struct {
	deps SportDependencies
}

// NewSportHandler creates a new sport handler.
func NewSportHandler(deps SportDependencies) *SportHandler {
	return &SportHandler{deps: deps}
}

// HandleAthletesPerYear handles GET /years/{year}/athletes requests.
func (h *SportHandler) HandleAthletesPerYear(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.PathValue("year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	bySport, err := h.deps.AthletesPerYear(r.Context(), year)
	if err != nil {
		writeQueryError(w, err)
		return
	}
	out := make(map[string][]string, len(bySport))
	for sport, athletes := range bySport {
		out[sport] = athleteNames(athletes)
	}
	writeJSON(w, http.StatusOK, out)
}

// HandleSports handles GET /sports requests.
func (h *SportHandler) HandleSports(w http.ResponseWriter, r *http.Request) {
	out, err := h.deps.SportNames(r.Context())
	if err != nil {
		writeQueryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// HandleMedalists handles GET /sports/{sport}/medalists requests.
func (h *SportHandler) HandleMedalists(w http.ResponseWriter, r *http.Request) {
	athletes, err := h.deps.MedalistsByEvent(r.Context(), r.PathValue("sport"))
	if err != nil {
		writeQueryError(w, err)
		return
	}
	out := make([]athleteView, 0, len(athletes))
	for _, a := range athletes {
		out = append(out, newAthleteView(a))
	}
	writeJSON(w, http.StatusOK, out)
}

// HandleBestCountry handles GET /sports/{sport}/best-country requests.
func (h *SportHandler) HandleBestCountry(w http.ResponseWriter, r *http.Request) {
	out, err := h.deps.BestCountryForEvent(r.Context(), r.PathValue("sport"))
	if err != nil {
		writeQueryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

type percentageResponse struct {
	Percentage float64 `json:"percentage"`
}

// HandleMedalistPercentage handles GET /medalists/percentage requests.
func (h *SportHandler) HandleMedalistPercentage(w http.ResponseWriter, r *http.Request) {
	p, err := h.deps.MedalistPercentage(r.Context())
	if err != nil {
		writeQueryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, percentageResponse{Percentage: p})
}
