// Package mockserver serves a local stand-in for the flashcard backend. It is
// used by `flashdeck mock-server` for demos and by tests.
package mockserver

import (
	"encoding/json"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
)

// Card is the wire shape of a flashcard.
type Card struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Options control the canned behavior.
type Options struct {
	Prefix       string        // route prefix, default /api/v1
	Cards        []Card        // returned by generate; DefaultCards when nil
	Delay        time.Duration // applied before responding to generate
	Status       int           // forced generate status; 0 means 200
	Detail       string        // detail text sent with a forced error status
	RawBody      string        // sent verbatim instead of the cards when set
	HealthStatus int           // 0 means 200
	Logger       *slog.Logger
}

// Upload records what a generate request carried.
type Upload struct {
	Field     string
	FileName  string
	MediaType string
	Size      int64
	RequestID string
}

// DefaultCards are served when Options.Cards is nil.
var DefaultCards = []Card{
	{Question: "What does PDF stand for?", Answer: "Portable Document Format"},
	{Question: "Which HTTP method uploads the document?", Answer: "POST with multipart/form-data"},
	{Question: "How large may an upload be?", Answer: "10MB"},
}

const maxUploadBytes = 10 * 1024 * 1024

// Server is an http.Handler implementing the backend contract.
type Server struct {
	opts    Options
	router  *mux.Router
	mu      sync.Mutex
	uploads []Upload
}

// New builds the handler.
func New(opts Options) *Server {
	if opts.Prefix == "" {
		opts.Prefix = "/api/v1"
	}
	if opts.Cards == nil {
		opts.Cards = DefaultCards
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	s := &Server{opts: opts, router: mux.NewRouter()}
	// Full paths on the root router so a wrong method answers 405.
	s.router.HandleFunc(opts.Prefix+"/flashcards/health", s.handleHealth).Methods(http.MethodGet)
	s.router.HandleFunc(opts.Prefix+"/flashcards/generate", s.handleGenerate).Methods(http.MethodPost)
	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Uploads returns the generate requests received so far.
func (s *Server) Uploads() []Upload {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Upload, len(s.uploads))
	copy(out, s.uploads)
	return out
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := s.opts.HealthStatus
	if status == 0 {
		status = http.StatusOK
	}
	if status != http.StatusOK {
		writeJSON(w, status, map[string]string{"detail": "unhealthy"})
		return
	}
	writeJSON(w, status, map[string]string{"status": "healthy"})
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes+1<<20)
	if err := r.ParseMultipartForm(1 << 20); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Invalid multipart body"})
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"detail": []map[string]any{{"loc": []string{"body", "file"}, "msg": "field required"}},
		})
		return
	}
	defer file.Close()

	size, _ := io.Copy(io.Discard, file)
	mediaType, _, _ := mime.ParseMediaType(header.Header.Get("Content-Type"))
	upload := Upload{
		Field:     "file",
		FileName:  header.Filename,
		MediaType: mediaType,
		Size:      size,
		RequestID: r.Header.Get("X-Request-ID"),
	}
	s.mu.Lock()
	s.uploads = append(s.uploads, upload)
	s.mu.Unlock()
	s.opts.Logger.Info("generate request", "file", upload.FileName, "bytes", size, "request_id", upload.RequestID)

	if s.opts.Delay > 0 {
		select {
		case <-time.After(s.opts.Delay):
		case <-r.Context().Done():
			return
		}
	}

	if s.opts.Status != 0 && s.opts.Status != http.StatusOK {
		body := map[string]string{}
		if s.opts.Detail != "" {
			body["detail"] = s.opts.Detail
		}
		writeJSON(w, s.opts.Status, body)
		return
	}
	if mediaType != "application/pdf" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Only PDF files are allowed"})
		return
	}
	if s.opts.RawBody != "" {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, s.opts.RawBody)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]Card{"flashcards": s.opts.Cards})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
