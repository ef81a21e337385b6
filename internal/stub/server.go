// Package stub implements a local stand-in for the DeepRetrieve backend so
// the client can be developed and demoed without the real retrieval service.
// It fakes the wire contract; it does not parse, embed or generate anything.
package stub

import (
	"encoding/json"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"

	"github.com/deepretrieve/deepretrieve/internal/api"
	"github.com/deepretrieve/deepretrieve/internal/session"
)

const maxUploadBytes = 500 << 20

// Server serves the /api/v1 surface with canned responses.
type Server struct {
	router *mux.Router
	logger *log.Logger
}

// New creates a stub server.
func New(logger *log.Logger) *Server {
	s := &Server{
		router: mux.NewRouter(),
		logger: logger,
	}

	v1 := s.router.PathPrefix("/api/v1").Subrouter()
	v1.HandleFunc("/ping", s.handlePing).Methods(http.MethodGet)
	v1.HandleFunc("/upload", s.handleUpload).Methods(http.MethodPost)
	v1.HandleFunc("/query", s.handleQuery).Methods(http.MethodPost)

	return s
}

// Handler returns the HTTP handler, usable directly in tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe blocks serving on addr.
func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info("stub backend listening", "addr", addr)
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  2 * time.Minute,
		WriteTimeout: 2 * time.Minute,
	}
	return srv.ListenAndServe()
}

func (s *Server) handlePing(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "Missing form field 'file'")
		return
	}
	defer file.Close()

	if !session.AllowedType(session.DetectMIME(header.Filename)) {
		s.writeError(w, http.StatusBadRequest, "Unsupported file type: "+filepath.Ext(header.Filename))
		return
	}

	s.logger.Info("upload accepted", "filename", header.Filename, "size", header.Size)
	writeJSON(w, http.StatusOK, api.UploadResponse{
		Success:  true,
		Message:  "Successfully processed " + header.Filename,
		Filename: header.Filename,
	})
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req api.QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid query body")
		return
	}

	sources, usedWeb := cannedSources(req.Query)
	if req.TopK > 0 && req.TopK < len(sources) {
		sources = sources[:req.TopK]
	}

	s.logger.Info("query answered", "query", req.Query, "sources", len(sources), "used_web", usedWeb)
	writeJSON(w, http.StatusOK, api.QueryResponse{
		Success:       true,
		Query:         req.Query,
		Answer:        cannedAnswer(req.Query),
		Sources:       sources,
		UsedWebSearch: usedWeb,
	})
}

func (s *Server) writeError(w http.ResponseWriter, code int, detail string) {
	s.logger.Warn("request rejected", "status", code, "detail", detail)
	writeJSON(w, code, map[string]string{"detail": detail})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func cannedAnswer(query string) string {
	return "Based on the report, **Cloud Services** revenue grew by 24% YoY, driven by strong enterprise adoption.\n\nThere were significant gains in the APAC region.\n\n(You asked: " + query + ")"
}

func cannedSources(query string) ([]api.SourceRef, bool) {
	sources := []api.SourceRef{
		{
			Type:    api.SourceText,
			Score:   scorePtr(0.82),
			Page:    pagePtr(12),
			Source:  "Annual_Report_2024.pdf",
			Content: "Enterprise cloud adoption increased by 24% YoY driven by new AI workload integration.",
		},
		{
			Type:    api.SourceTable,
			Score:   scorePtr(0.61),
			Page:    pagePtr(14),
			Source:  "Annual_Report_2024.pdf",
			Content: "Table showing regional performance highlights. APAC +15%, EMEA +8%.",
		},
		{
			Type:    api.SourceImage,
			Score:   scorePtr(0.55),
			Page:    pagePtr(18),
			Source:  "Annual_Report_2024.pdf",
			Content: "Bar chart illustrating projected growth in emerging markets over the next fiscal year.",
		},
	}

	// Questions that mention the web get a web-search fallback result.
	if strings.Contains(strings.ToLower(query), "web") {
		sources = append([]api.SourceRef{{
			Type:    api.SourceWeb,
			Score:   scorePtr(0.74),
			Source:  "https://example.com/market-outlook",
			Content: "Industry analysts project continued double-digit growth for enterprise cloud providers.",
		}}, sources...)
		return sources, true
	}
	return sources, false
}

func scorePtr(v float64) *float64 { return &v }
func pagePtr(v int) *int          { return &v }
