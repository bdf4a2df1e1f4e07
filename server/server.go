// Package server exposes the widget manifest over HTTP and owns the
// build/publish lifecycle of manifest snapshots.
package server

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/terminalpro/widgets-backend/metrics"
	"github.com/terminalpro/widgets-backend/spec"
	"github.com/terminalpro/widgets-backend/widget"
)

// Version is the service version reported on the discovery endpoint.
var Version = "dev"

// FingerprintHeader carries the source document fingerprint on manifest
// responses.
const FingerprintHeader = "Widget-Manifest-Fingerprint"

// ErrBuildInProgress is returned by Rebuild when another build is running.
// The request is coalesced into a no-op rather than queued.
var ErrBuildInProgress = errors.New("a build is already in progress")

// DocumentLoader obtains the OpenAPI document for a build.
type DocumentLoader func(ctx context.Context) (*spec.Document, error)

// Server serves the manifest endpoints. The published manifest lives behind
// an atomically swapped snapshot: requests read whatever snapshot was
// current when they arrived and never observe a partially built manifest.
type Server struct {
	log     *zap.Logger
	metrics *metrics.Metrics
	loader  DocumentLoader
	opts    widget.Options

	current atomic.Pointer[snapshot]

	// buildMu serializes builds; inflight exposes the running build's id
	// so coalesced refresh requests can report it.
	buildMu  sync.Mutex
	inflight atomic.Pointer[string]
}

// snapshot is one published manifest with its pre-rendered body, so every
// response serves the exact same bytes.
type snapshot struct {
	manifest *widget.Manifest
	body     []byte
	builtAt  time.Time
	buildID  string
}

// New creates a server. No manifest is published until Rebuild succeeds;
// until then the widgets endpoint answers 503.
func New(loader DocumentLoader, opts widget.Options, log *zap.Logger, m *metrics.Metrics) *Server {
	return &Server{
		log:     log,
		metrics: m,
		loader:  loader,
		opts:    opts,
	}
}

// Manifest returns the currently published manifest, or nil before the
// first successful build.
func (s *Server) Manifest() *widget.Manifest {
	snap := s.current.Load()
	if snap == nil {
		return nil
	}
	return snap.manifest
}

// Rebuild loads the document and publishes a fresh manifest snapshot. Only
// one build runs at a time; a call that finds one in flight returns its
// build id with ErrBuildInProgress. On failure the previous snapshot stays
// published.
func (s *Server) Rebuild(ctx context.Context) (string, error) {
	if !s.buildMu.TryLock() {
		if id := s.inflight.Load(); id != nil {
			return *id, ErrBuildInProgress
		}
		return "", ErrBuildInProgress
	}
	defer s.buildMu.Unlock()

	id := uuid.NewString()
	s.inflight.Store(&id)
	defer s.inflight.Store(nil)

	log := s.log.With(zap.String("build_id", id))
	s.metrics.BuildsTotal.Inc()
	start := time.Now()

	doc, err := s.loader(ctx)
	if err != nil {
		s.metrics.BuildFailures.Inc()
		log.Error("schema load failed", zap.Error(err))
		return id, err
	}

	manifest, warnings, err := widget.Build(doc, s.opts)
	if err != nil {
		s.metrics.BuildFailures.Inc()
		log.Error("manifest build failed", zap.String("source", doc.Source), zap.Error(err))
		return id, err
	}

	for _, w := range warnings {
		log.Warn("operation skipped",
			zap.String("operation", w.OperationID),
			zap.String("path", w.Path),
			zap.String("reason", w.Reason))
	}
	s.metrics.OperationsSkipped.Add(float64(len(warnings)))

	body, err := json.Marshal(manifest)
	if err != nil {
		s.metrics.BuildFailures.Inc()
		log.Error("manifest encoding failed", zap.Error(err))
		return id, err
	}

	s.current.Store(&snapshot{
		manifest: manifest,
		body:     body,
		builtAt:  time.Now().UTC(),
		buildID:  id,
	})
	s.metrics.WidgetsBuilt.Set(float64(manifest.Len()))

	log.Info("manifest published",
		zap.Int("widgets", manifest.Len()),
		zap.Int("warnings", len(warnings)),
		zap.String("fingerprint", manifest.Fingerprint()),
		zap.Duration("elapsed", time.Since(start)))
	return id, nil
}

// Handler returns the HTTP surface: the discovery root, the manifest, the
// refresh trigger and the Prometheus registry.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleRoot)
	mux.HandleFunc("/widgets.json", s.handleWidgets)
	mux.HandleFunc("/refresh", s.handleRefresh)
	mux.Handle("/metrics", promhttp.HandlerFor(s.metrics.Registry, promhttp.HandlerOpts{}))
	return mux
}

type discovery struct {
	Service     string     `json:"service"`
	Version     string     `json:"version"`
	WidgetsURL  string     `json:"widgets_url"`
	Status      string     `json:"status"`
	Widgets     int        `json:"widgets"`
	Fingerprint string     `json:"fingerprint,omitempty"`
	BuiltAt     *time.Time `json:"built_at,omitempty"`
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		s.writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}
	if r.Method != http.MethodGet {
		s.writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	doc := discovery{
		Service:    "widgets-backend",
		Version:    Version,
		WidgetsURL: "/widgets.json",
		Status:     "pending",
	}
	if snap := s.current.Load(); snap != nil {
		doc.Status = "built"
		doc.Widgets = snap.manifest.Len()
		doc.Fingerprint = snap.manifest.Fingerprint()
		doc.BuiltAt = &snap.builtAt
	}
	s.writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleWidgets(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	s.metrics.ManifestRequests.Inc()

	snap := s.current.Load()
	if snap == nil {
		s.writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "pending",
			"detail": "manifest not built yet",
		})
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set(FingerprintHeader, snap.manifest.Fingerprint())
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(snap.body); err != nil {
		s.log.Error("error writing to client", zap.Error(err))
	}
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	id, err := s.Rebuild(r.Context())
	switch {
	case errors.Is(err, ErrBuildInProgress):
		s.writeJSON(w, http.StatusAccepted, map[string]string{
			"status":   "building",
			"build_id": id,
		})
	case err != nil:
		s.writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"status":   "error",
			"build_id": id,
			"error":    err.Error(),
			"serving":  s.current.Load() != nil,
		})
	default:
		s.writeJSON(w, http.StatusOK, map[string]interface{}{
			"status":   "ok",
			"build_id": id,
			"widgets":  s.Manifest().Len(),
		})
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	encoded, err := json.Marshal(data)
	if err != nil {
		s.log.Error("error serializing response", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(encoded); err != nil {
		s.log.Error("error writing to client", zap.Error(err))
	}
}
