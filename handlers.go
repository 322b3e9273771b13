package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server wires the HTTP surface to the service. The pool handle is only
// here so /healthz can report capacity.
type Server struct {
	cfg       Config
	svc       *Service
	pool      *Pool
	startTime time.Time
}

func NewServer(cfg Config, svc *Service, pool *Pool) *Server {
	return &Server{cfg: cfg, svc: svc, pool: pool, startTime: time.Now()}
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/tools/youtube/video-info", s.handleVideoInfo)
	mux.HandleFunc("/tools/youtube/download-mp3", s.handleDownloadMP3)
	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", http.FileServer(http.Dir(s.cfg.StaticDir)))
	return requestIDMiddleware(metricsMiddleware(corsMiddleware(mux)))
}

func (s *Server) handleVideoInfo(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Invalid request method", http.StatusMethodNotAllowed)
		return
	}
	rawURL, ok := requireURLParam(w, r)
	if !ok {
		return
	}

	meta, err := s.svc.GetVideoInfo(r.Context(), rawURL)
	if err != nil {
		status, resp := normalizeError(err)
		writeJSON(w, status, resp)
		return
	}
	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Message: msgGetVideoInfoSuccess,
		Data:    meta,
	})
}

func (s *Server) handleDownloadMP3(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Invalid request method", http.StatusMethodNotAllowed)
		return
	}
	rawURL, ok := requireURLParam(w, r)
	if !ok {
		return
	}

	// The title decides the download filename, so metadata comes first.
	meta, err := s.svc.GetVideoInfo(r.Context(), rawURL)
	if err != nil {
		status, resp := normalizeError(err)
		writeJSON(w, status, resp)
		return
	}

	data, err := s.svc.GetMP3(r.Context(), rawURL)
	if err != nil {
		status, resp := normalizeError(err)
		writeJSON(w, status, resp)
		return
	}

	filename := sanitizeFilename(meta.Title) + ".mp3"
	w.Header().Set("Content-Type", "audio/mpeg")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Write(data)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthStatus{
		Status:   "healthy",
		Workers:  s.pool.Workers(),
		InFlight: s.pool.InFlight(),
		Uptime:   time.Since(s.startTime).Round(time.Second).String(),
	})
}

// requireURLParam extracts the mandatory url query parameter, writing the
// 422 validation envelope when it is missing.
func requireURLParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	rawURL := r.URL.Query().Get("url")
	if rawURL == "" {
		status, resp := normalizeError(&ValidationError{Details: []ErrorDetail{{
			Loc:  []string{"query", "url"},
			Msg:  "Field required",
			Type: "missing",
		}}})
		writeJSON(w, status, resp)
		return "", false
	}
	return rawURL, true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
