package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/hochfrequenz/org-remind/internal/domain"
)

// Scanner produces the current set of scheduled tasks. Every call is a
// fresh read of the org tree.
type Scanner interface {
	Scan() (domain.ScanResult, error)
}

// Server is the HTTP API server
type Server struct {
	scanner Scanner
	orgDir  string
	addr    string
	debug   bool
	mux     *http.ServeMux
}

// NewServer creates a new API server
func NewServer(scanner Scanner, orgDir, addr string, debug bool) *Server {
	s := &Server{
		scanner: scanner,
		orgDir:  orgDir,
		addr:    addr,
		debug:   debug,
		mux:     http.NewServeMux(),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/status", s.statusHandler())
	s.mux.HandleFunc("/api/tasks", s.listTasksHandler())
}

// Start starts the HTTP server
func (s *Server) Start() error {
	return http.ListenAndServe(s.addr, s.logRequests(s.mux))
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.debug {
			log.Printf("[api] %s %s", r.Method, r.URL.Path)
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
