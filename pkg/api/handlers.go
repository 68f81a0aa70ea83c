package api

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"

	"github.com/auren/gff/pkg/gff"
	"github.com/auren/gff/pkg/storage"
)

// maxBodyBytes caps request bodies for both binary and JSON payloads.
const maxBodyBytes = 32 << 20

// Server holds the API server state
type Server struct {
	store   ResourceStore
	config  ServerConfig
	metrics *Metrics
}

// NewServer creates a new API server
func NewServer(store ResourceStore, config ServerConfig, metrics *Metrics) *Server {
	return &Server{store: store, config: config, metrics: metrics}
}

// handleHealth reports liveness and store reachability.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	_, err := s.store.Stats()
	s.metrics.RecordHealthCheck(err == nil)
	if err != nil {
		sendError(w, "store unavailable", http.StatusServiceUnavailable)
		return
	}
	sendSuccess(w, map[string]string{"status": "healthy"})
}

// handleListResources lists resource names, optionally filtered by the
// prefix query parameter.
func (s *Server) handleListResources(w http.ResponseWriter, r *http.Request) {
	names, err := s.store.List(r.URL.Query().Get("prefix"))
	if err != nil {
		sendError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if names == nil {
		names = []string{}
	}
	sendSuccess(w, names)
}

// handleGetResource returns the decoded JSON tree of a resource.
func (s *Server) handleGetResource(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	g, err := s.store.Get(name)
	if err != nil {
		sendStoreError(w, err)
		return
	}
	sendSuccess(w, g)
}

// handleGetResourceRaw streams the encoded bytes of a resource.
func (s *Server) handleGetResourceRaw(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	data, err := s.store.GetRaw(name)
	if err != nil {
		sendStoreError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	_, _ = w.Write(data)
}

// handlePutResource stores a resource from its JSON tree representation.
func (s *Server) handlePutResource(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		sendError(w, "failed to read request body", http.StatusBadRequest)
		return
	}

	var g gff.GFF
	if err := json.Unmarshal(body, &g); err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	rev, err := s.store.Put(name, &g)
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	sendSuccess(w, PutResult{Name: name, Revision: rev})
}

// handlePutResourceRaw stores already-encoded bytes. The store validates
// them before accepting.
func (s *Server) handlePutResourceRaw(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		sendError(w, "failed to read request body", http.StatusBadRequest)
		return
	}

	rev, err := s.store.PutRaw(name, body)
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	sendSuccess(w, PutResult{Name: name, Revision: rev})
}

// handleDeleteResource removes a resource and its revision history.
func (s *Server) handleDeleteResource(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := s.store.Delete(name); err != nil {
		sendStoreError(w, err)
		return
	}
	sendSuccess(w, map[string]string{"deleted": name})
}

// handleListRevisions returns the revision history of a resource.
func (s *Server) handleListRevisions(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	revs, err := s.store.Revisions(name)
	if err != nil {
		sendStoreError(w, err)
		return
	}
	sendSuccess(w, revs)
}

// handleGetRevision returns one historical state as a JSON tree.
func (s *Server) handleGetRevision(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	id := chi.URLParam(r, "id")
	g, err := s.store.GetRevision(name, id)
	if err != nil {
		sendStoreError(w, err)
		return
	}
	sendSuccess(w, g)
}

// handleDecode turns posted binary bytes into a JSON tree without touching
// the store.
func (s *Server) handleDecode(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		sendError(w, "failed to read request body", http.StatusBadRequest)
		return
	}

	start := time.Now()
	g, err := gff.Decode(body)
	s.metrics.RecordCodecOperation("decode", err == nil, time.Since(start))
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	sendSuccess(w, g)
}

// handleEncode turns a posted JSON tree into binary bytes without touching
// the store.
func (s *Server) handleEncode(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		sendError(w, "failed to read request body", http.StatusBadRequest)
		return
	}

	var g gff.GFF
	if err := json.Unmarshal(body, &g); err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	start := time.Now()
	data, err := gff.Encode(&g)
	s.metrics.RecordCodecOperation("encode", err == nil, time.Since(start))
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	_, _ = w.Write(data)
}

// handleStats returns store counters.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.store.Stats()
	if err != nil {
		sendError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	sendSuccess(w, stats)
}

// startMetricsUpdater refreshes the store gauges periodically.
func (s *Server) startMetricsUpdater() {
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()
	for range ticker.C {
		if stats, err := s.store.Stats(); err == nil {
			s.metrics.UpdateStoreStats(stats.Resources, stats.Revisions)
		}
	}
}

// sendStoreError maps storage errors onto HTTP status codes.
func sendStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, storage.ErrNotFound) {
		sendError(w, err.Error(), http.StatusNotFound)
		return
	}
	sendError(w, err.Error(), http.StatusInternalServerError)
}
