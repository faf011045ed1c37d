package api

import (
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-chi/chi/v5"
	"github.com/segmentio/ksuid"
	"github.com/ssargent/flashkit/pkg/coder"
	"github.com/ssargent/flashkit/pkg/inspect"
	"github.com/ssargent/flashkit/pkg/storage"
)

const (
	defaultMaxUploadSize  = 32 << 20
	defaultMaxDecodedSize = 256 << 20
)

var contentTypes = map[inspect.Kind]string{
	inspect.KindMovie: "application/x-shockwave-flash",
	inspect.KindVideo: "video/x-flv",
}

// Server holds the API server state
type Server struct {
	assets    AssetStore
	config    ServerConfig
	metrics   *Metrics
	logger    *slog.Logger
	inspector inspect.Inspector
}

// NewServer creates a new API server
func NewServer(assets AssetStore, config ServerConfig, metrics *Metrics) *Server {
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if config.MaxUploadSize <= 0 {
		config.MaxUploadSize = defaultMaxUploadSize
	}
	if config.MaxDecodedSize <= 0 {
		config.MaxDecodedSize = defaultMaxDecodedSize
	}
	return &Server{
		assets:    assets,
		config:    config,
		metrics:   metrics,
		logger:    logger,
		inspector: inspect.Inspector{MaxLength: config.MaxDecodedSize},
	}
}

// errorClass maps an error to an HTTP status and a short label used in
// metrics.
func errorClass(err error) (int, string) {
	var ce *coder.CoderError
	var fe *coder.FormatError
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge, "too_large"
	case errors.Is(err, inspect.ErrUnknownKind):
		return http.StatusNotFound, "unknown_kind"
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.As(err, &ce):
		return http.StatusUnprocessableEntity, "length_mismatch"
	case errors.As(err, &fe):
		return http.StatusUnprocessableEntity, "format"
	case errors.Is(err, coder.ErrOutOfBounds), errors.Is(err, coder.ErrUnaligned):
		return http.StatusUnprocessableEntity, "out_of_bounds"
	}
	return http.StatusInternalServerError, "internal"
}

func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	return io.ReadAll(http.MaxBytesReader(w, r.Body, s.config.MaxUploadSize))
}

// logSkipped reports records of unknown type the decoder stepped over.
func (s *Server) logSkipped(report *inspect.Report) {
	for _, sk := range report.Skipped {
		s.logger.Warn("skipped unknown record",
			"kind", report.Kind, "type", sk.Type, "offset", sk.Offset, "length", sk.Length)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	sendSuccess(w, map[string]string{"status": "healthy"})
}

// handleInspect decodes the request body as {kind} and returns the report.
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	kind, err := inspect.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		sendError(w, err.Error(), http.StatusNotFound)
		return
	}

	body, err := s.readBody(w, r)
	if err != nil {
		code, _ := errorClass(err)
		sendError(w, "Failed to read request body", code)
		return
	}

	start := time.Now()
	report, err := s.inspector.Inspect(kind, body)
	if err != nil {
		code, class := errorClass(err)
		s.metrics.RecordDecodeError(kind, class)
		s.logger.Info("container rejected", "kind", kind, "class", class, "error", err)
		sendError(w, err.Error(), code)
		return
	}
	s.metrics.RecordReport(report, time.Since(start))
	s.logSkipped(report)

	sendSuccess(w, report)
}

// handlePutAsset validates and stores the request body. The kind query
// parameter selects the container kind; without it the kind is detected
// from the signature.
func (s *Server) handlePutAsset(w http.ResponseWriter, r *http.Request) {
	body, err := s.readBody(w, r)
	if err != nil {
		code, _ := errorClass(err)
		sendError(w, "Failed to read request body", code)
		return
	}

	var kind inspect.Kind
	if name := r.URL.Query().Get("kind"); name != "" {
		kind, err = inspect.ParseKind(name)
	} else {
		kind, err = inspect.Detect(body)
	}
	if err != nil {
		code, _ := errorClass(err)
		if errors.Is(err, inspect.ErrUnknownKind) {
			code = http.StatusBadRequest
		}
		sendError(w, err.Error(), code)
		return
	}

	start := time.Now()
	id, report, err := s.assets.Put(kind, body)
	s.metrics.RecordAssetOperation("put", err == nil)
	if err != nil {
		code, class := errorClass(err)
		if code == http.StatusUnprocessableEntity {
			s.metrics.RecordDecodeError(kind, class)
		}
		sendError(w, err.Error(), code)
		return
	}
	s.metrics.RecordReport(report, time.Since(start))
	s.logSkipped(report)
	s.logger.Info("stored asset", "id", id.String(), "kind", kind, "size", len(body))

	sendSuccess(w, PutAssetResponse{ID: id.String(), Report: report})
}

func (s *Server) assetID(w http.ResponseWriter, r *http.Request) (ksuid.KSUID, bool) {
	id, err := ksuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		sendError(w, "Invalid asset id", http.StatusBadRequest)
		return ksuid.Nil, false
	}
	return id, true
}

// handleGetAsset returns the stored container bytes.
func (s *Server) handleGetAsset(w http.ResponseWriter, r *http.Request) {
	id, ok := s.assetID(w, r)
	if !ok {
		return
	}

	asset, err := s.assets.Get(id)
	s.metrics.RecordAssetOperation("get", err == nil)
	if err != nil {
		code, _ := errorClass(err)
		sendError(w, err.Error(), code)
		return
	}

	w.Header().Set("Content-Type", contentTypes[asset.Kind])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(asset.Data)
}

func (s *Server) handleDeleteAsset(w http.ResponseWriter, r *http.Request) {
	id, ok := s.assetID(w, r)
	if !ok {
		return
	}

	err := s.assets.Delete(id)
	s.metrics.RecordAssetOperation("delete", err == nil)
	if err != nil {
		code, _ := errorClass(err)
		sendError(w, err.Error(), code)
		return
	}
	sendSuccess(w, map[string]string{"id": id.String(), "status": "deleted"})
}

func (s *Server) handleListAssets(w http.ResponseWriter, r *http.Request) {
	infos, err := s.assets.List()
	s.metrics.RecordAssetOperation("list", err == nil)
	if err != nil {
		code, _ := errorClass(err)
		sendError(w, err.Error(), code)
		return
	}
	sendSuccess(w, infos)
}
