// Package httpapi serves the GET endpoints of spec.md §6. It contains
// no algorithmic content: every handler calls into the engine and
// marshals the result.
package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	marsmission "github.com/neoragex2002/mars-mission"
)

// Server wires the engine and simulator into the HTTP surface.
type Server struct {
	engine    *marsmission.Engine
	simulator *marsmission.Simulator
	staticDir string
}

// NewServer builds the chi router for the HTTP GET surface plus static
// file serving at "/".
func NewServer(engine *marsmission.Engine, simulator *marsmission.Simulator, staticDir string) http.Handler {
	s := &Server{engine: engine, simulator: simulator, staticDir: staticDir}

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
	}))

	r.Get("/api/mission/info", s.handleMissionInfo)
	r.Get("/api/planets", s.handlePlanets)
	r.Get("/api/orbit/{planet}", s.handleOrbit)
	r.Get("/api/state", s.handleState)
	r.Get("/api/snapshot", s.handleSnapshot)
	if staticDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(staticDir)))
	}
	return r
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) handleMissionInfo(w http.ResponseWriter, r *http.Request) {
	state := s.simulator.State()
	info, err := s.engine.MissionInfoAt(state.CurrentTime)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	preview := s.engine.SchedulePreview(3)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"model":               "earth-mars-lambert-v1",
		"mu_sun":              marsmission.MuSun(),
		"schedule_preview":    preview,
		"timeline_horizon_end": s.engine.TimelineHorizonEnd(),
		"current":             info,
	})
}

func (s *Server) handlePlanets(w http.ResponseWriter, r *http.Request) {
	earth, _ := marsmission.PlanetByName("earth")
	mars, _ := marsmission.PlanetByName("mars")
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"earth": planetSummary(earth),
		"mars":  planetSummary(mars),
	})
}

func planetSummary(p marsmission.CelestialObject) map[string]float64 {
	return map[string]float64{
		"a":      p.Elements.A,
		"e":      p.Elements.E,
		"i":      p.Elements.IDeg,
		"period": p.Elements.PeriodDays,
	}
}

func (s *Server) handleOrbit(w http.ResponseWriter, r *http.Request) {
	planet := chi.URLParam(r, "planet")
	n := 360
	if raw := r.URL.Query().Get("num_points"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "num_points must be an integer"})
			return
		}
		n = parsed
	}
	points, err := s.engine.GetOrbitPoints(planet, n)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"planet": planet, "points": points})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.simulator.State())
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	info, err := s.simulator.Snapshot()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}
