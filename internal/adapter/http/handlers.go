package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/couchcryptid/dwlr-monitor/internal/domain"
	"github.com/couchcryptid/dwlr-monitor/internal/monitor"
)

type stationsResponse struct {
	Data  []domain.Station `json:"data"`
	Total int              `json:"total"`
}

type themeResponse struct {
	Preference domain.ThemePreference `json:"preference"`
	Scheme     string                 `json:"scheme"`
	Palette    domain.Palette         `json:"palette"`
}

type themeRequest struct {
	Preference string `json:"preference"`
}

type simulatorResponse struct {
	Running bool      `json:"running"`
	Seq     uint64    `json:"seq"`
	TakenAt time.Time `json:"taken_at"`
}

func (s *Server) handleStations(w http.ResponseWriter, r *http.Request) {
	f, ok := parseFilter(w, r)
	if !ok {
		return
	}
	stations := s.deps.Stations.Stations(f)
	writeJSON(w, http.StatusOK, stationsResponse{Data: stations, Total: len(stations)})
}

func (s *Server) handleStation(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	station, err := s.deps.Stations.Station(id)
	if errors.Is(err, monitor.ErrStationNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		s.logger.Error("station lookup failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "station lookup failed")
		return
	}
	writeJSON(w, http.StatusOK, station)
}

func (s *Server) handleStationStats(w http.ResponseWriter, r *http.Request) {
	f, ok := parseFilter(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.deps.Stations.Summary(f))
}

func (s *Server) handleGetTheme(w http.ResponseWriter, r *http.Request) {
	s.writeTheme(w, systemScheme(r))
}

func (s *Server) handleSetTheme(w http.ResponseWriter, r *http.Request) {
	var req themeRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<10)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	pref, err := domain.ParseThemePreference(req.Preference)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.deps.Theme.Set(r.Context(), pref); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.writeTheme(w, systemScheme(r))
}

func (s *Server) handleToggleTheme(w http.ResponseWriter, r *http.Request) {
	system := systemScheme(r)
	s.deps.Theme.Toggle(r.Context(), system)
	s.writeTheme(w, system)
}

func (s *Server) writeTheme(w http.ResponseWriter, system domain.Scheme) {
	scheme := s.deps.Theme.Scheme(system)
	writeJSON(w, http.StatusOK, themeResponse{
		Preference: s.deps.Theme.Current(),
		Scheme:     scheme.String(),
		Palette:    domain.PaletteFor(scheme),
	})
}

func (s *Server) handleSimulatorStatus(w http.ResponseWriter, _ *http.Request) {
	s.writeSimulator(w)
}

func (s *Server) handleSimulatorStart(w http.ResponseWriter, _ *http.Request) {
	if s.deps.Simulator.Start(s.deps.SimulatorContext) {
		s.logger.Info("simulator started via api")
	}
	s.writeSimulator(w)
}

func (s *Server) handleSimulatorStop(w http.ResponseWriter, _ *http.Request) {
	if s.deps.Simulator.Stop() {
		s.logger.Info("simulator stopped via api")
	}
	s.writeSimulator(w)
}

func (s *Server) writeSimulator(w http.ResponseWriter) {
	snap := s.deps.Simulator.Current()
	writeJSON(w, http.StatusOK, simulatorResponse{
		Running: s.deps.Simulator.Running(),
		Seq:     snap.Seq,
		TakenAt: snap.TakenAt,
	})
}

// parseFilter reads the filter query parameters, writing a 400 on failure.
func parseFilter(w http.ResponseWriter, r *http.Request) (monitor.Filter, bool) {
	q := r.URL.Query()
	f, err := monitor.ParseFilter(q.Get("water_level"), q.Get("rainfall"), q.Get("quality"), q.Get("search"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return monitor.Filter{}, false
	}
	return f, true
}

// systemScheme reads the device scheme from ?system=, defaulting to light.
func systemScheme(r *http.Request) domain.Scheme {
	return domain.ParseScheme(r.URL.Query().Get("system"))
}
