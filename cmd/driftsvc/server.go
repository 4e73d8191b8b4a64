// Package main implements the thin net/http façade over the simulation
// coordinator (spec.md §6), grounded on the teacher's internal/api.Server
// + LoggingMiddleware style: an http.ServeMux built once, handlers that
// use internal/httputil for JSON responses, and a logging wrapper around
// every request.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sarops/driftsim/internal/config"
	"github.com/sarops/driftsim/internal/coordinator"
	"github.com/sarops/driftsim/internal/envfield"
	"github.com/sarops/driftsim/internal/geo"
	"github.com/sarops/driftsim/internal/geodata"
	"github.com/sarops/driftsim/internal/httputil"
)

// Server owns the simulation registry and its provider wiring.
type Server struct {
	registry *coordinator.Registry
	env      envfield.Provider
	geo      *geodata.Adapter
	tuning   *config.TuningConfig

	mux *http.ServeMux
}

// NewServer builds a Server with the given default providers and tuning;
// every started simulation currently shares them, matching the
// deterministic/synthetic fixtures this repo ships (spec.md §1 notes the
// real EnvironmentalProvider/GeoProvider as external collaborators).
func NewServer(env envfield.Provider, geo *geodata.Adapter, tuning *config.TuningConfig) *Server {
	return &Server{
		registry: coordinator.New(),
		env:      env,
		geo:      geo,
		tuning:   tuning,
	}
}

// ServeMux returns the server's handler tree, building it on first call.
func (s *Server) ServeMux() *http.ServeMux {
	if s.mux != nil {
		return s.mux
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/simulations", s.handleSimulations)
	mux.HandleFunc("/simulations/", s.handleSimulationSubroutes)
	s.mux = mux
	return mux
}

type startRequest struct {
	LKP struct {
		Lat float64 `json:"lat"`
		Lng float64 `json:"lng"`
	} `json:"lkp"`
	ParticleCount   int                    `json:"particle_count"`
	ObjectType      config.ObjectType      `json:"object_type"`
	DurationHours   float64                `json:"duration_hours"`
	TimeStepSeconds float64                `json:"time_step_seconds"`
	InitialSpreadKm float64                `json:"initial_spread_km"`
	VictimProfile   config.VictimProfile   `json:"victim_profile"`
}

type startResponse struct {
	SimulationID       string  `json:"simulation_id"`
	Status             string  `json:"status"`
	EstimatedDurationS float64 `json:"estimated_duration"`
}

func (s *Server) handleSimulations(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.startSimulation(w, r)
	default:
		httputil.MethodNotAllowed(w)
	}
}

func (s *Server) startSimulation(w http.ResponseWriter, r *http.Request) {
	var req startRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.BadRequest(w, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	cfg := config.SimulationConfig{
		LKP:             geo.Point{Lat: req.LKP.Lat, Lng: req.LKP.Lng},
		ObjectType:      req.ObjectType,
		ParticleCount:   req.ParticleCount,
		DurationHours:   req.DurationHours,
		TimeStepSeconds: req.TimeStepSeconds,
		InitialSpreadKm: req.InitialSpreadKm,
		VictimProfile:   req.VictimProfile,
	}

	id, err := s.registry.Start(cfg, s.env, s.geo, s.tuning)
	if err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}

	httputil.WriteJSON(w, http.StatusAccepted, startResponse{
		SimulationID:       id,
		Status:             "started",
		EstimatedDurationS: cfg.WithDefaults().DurationHours * 3600,
	})
}

func (s *Server) handleSimulationSubroutes(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/simulations/")
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) == 0 || parts[0] == "" {
		httputil.NotFound(w, "simulation id required")
		return
	}
	id := parts[0]

	switch {
	case len(parts) == 1 && r.Method == http.MethodDelete:
		s.deleteSimulation(w, id)
	case len(parts) == 2 && parts[1] == "status" && r.Method == http.MethodGet:
		s.getStatus(w, id)
	case len(parts) == 2 && parts[1] == "results" && r.Method == http.MethodGet:
		s.getResults(w, id)
	case len(parts) == 2 && parts[1] == "stop" && r.Method == http.MethodPost:
		s.stopSimulation(w, id)
	case len(parts) == 3 && parts[1] == "snapshot" && r.Method == http.MethodGet:
		s.getSnapshot(w, id, parts[2])
	default:
		httputil.NotFound(w, "unknown route")
	}
}

func (s *Server) getStatus(w http.ResponseWriter, id string) {
	info, err := s.registry.Status(id)
	if err != nil {
		httputil.NotFound(w, err.Error())
		return
	}
	resp := map[string]interface{}{
		"id":         info.ID,
		"status":     info.Status,
		"progress":   info.Progress,
		"start_time": info.StartTime,
	}
	if info.EndTime != nil {
		resp["end_time"] = *info.EndTime
	}
	if info.Err != nil {
		resp["error"] = info.Err.Error()
	}
	httputil.WriteJSONOK(w, resp)
}

func (s *Server) getResults(w http.ResponseWriter, id string) {
	results, err := s.registry.Results(id)
	if err != nil {
		writeCoordinatorError(w, err)
		return
	}
	httputil.WriteJSONOK(w, results)
}

func (s *Server) getSnapshot(w http.ResponseWriter, id, hourStr string) {
	hour, err := strconv.Atoi(hourStr)
	if err != nil {
		httputil.BadRequest(w, "hour must be an integer")
		return
	}
	snap, err := s.registry.Snapshot(id, hour)
	if err != nil {
		writeCoordinatorError(w, err)
		return
	}
	httputil.WriteJSONOK(w, snap)
}

func (s *Server) stopSimulation(w http.ResponseWriter, id string) {
	if err := s.registry.Stop(id); err != nil {
		writeCoordinatorError(w, err)
		return
	}
	httputil.WriteJSONOK(w, map[string]string{"id": id, "status": "stopped"})
}

func (s *Server) deleteSimulation(w http.ResponseWriter, id string) {
	if err := s.registry.Delete(id); err != nil {
		writeCoordinatorError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeCoordinatorError(w http.ResponseWriter, err error) {
	switch {
	case err == config.ErrNotFound:
		httputil.NotFound(w, err.Error())
	case err == config.ErrNotReady:
		httputil.WriteJSONError(w, http.StatusConflict, err.Error())
	default:
		httputil.InternalServerError(w, err.Error())
	}
}

type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

// LoggingMiddleware logs method, path, status, and duration for every
// request, in the teacher's internal/api.LoggingMiddleware style.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lrw := &loggingResponseWriter{w, http.StatusOK}
		next.ServeHTTP(lrw, r)

		portPrefix := ""
		if host := r.Host; host != "" {
			if _, p, err := net.SplitHostPort(host); err == nil {
				portPrefix = ":" + p
			}
		}
		log.Printf("[%d] %s %s%s %vms", lrw.statusCode, r.Method, portPrefix, r.RequestURI, float64(time.Since(start).Nanoseconds())/1e6)
	})
}
