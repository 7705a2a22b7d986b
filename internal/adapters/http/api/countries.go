package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/okian/olympstats/internal/domain/model"
)

// CountryDependencies defines the queries served under /countries.
type CountryDependencies interface {
	CountryWithMostMedalists(ctx context.Context) (map[string]int, error)
	AthletesByCountry(ctx context.Context, country string) ([]model.ParticipationRecord, error)
	MedalistsByCountryAndGender(ctx context.Context, country string, g model.Gender) (map[string][]model.MedalRecord, error)
}

// CountryHandler handles country requests.
type CountryHandler struct {
	deps CountryDependencies
}

// NewCountryHandler creates a new country handler.
func NewCountryHandler(deps CountryDependencies) *CountryHandler {
	return &CountryHandler{deps: deps}
}

// HandleTopMedalists handles GET /countries/top-medalists requests.
func (h *CountryHandler) HandleTopMedalists(w http.ResponseWriter, r *http.Request) {
	out, err := h.deps.CountryWithMostMedalists(r.Context())
	if err != nil {
		writeQueryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// HandleAthletes handles GET /countries/{name}/athletes requests.
func (h *CountryHandler) HandleAthletes(w http.ResponseWriter, r *http.Request) {
	out, err := h.deps.AthletesByCountry(r.Context(), r.PathValue("name"))
	if err != nil {
		writeQueryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// HandleMedalists handles GET /countries/{name}/medalists?gender= requests.
func (h *CountryHandler) HandleMedalists(w http.ResponseWriter, r *http.Request) {
	g, err := model.ParseGender(r.URL.Query().Get("gender"))
	if err != nil {
		writeQueryError(w, fmt.Errorf("%w: %w", ErrBadRequest, err))
		return
	}
	out, err := h.deps.MedalistsByCountryAndGender(r.Context(), r.PathValue("name"), g)
	if err != nil {
		writeQueryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
