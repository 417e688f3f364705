package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/antoniostano/aria/internal/config"
	"github.com/antoniostano/aria/internal/loop"
	"github.com/antoniostano/aria/internal/memory"
	"github.com/antoniostano/aria/internal/observability"
	"github.com/antoniostano/aria/internal/reminder"
)

// LoopStatus is the slice of the conversation loop the API reads from.
type LoopStatus interface {
	Snapshot() loop.Snapshot
}

// Server exposes a read-only companion API next to the voice loop: health,
// metrics, the dashboard, stored memory, and the reminder log. It never
// mutates state; the loop stays the single writer.
type Server struct {
	cfg       config.Config
	store     memory.Store
	reminders *reminder.Log
	status    LoopStatus
}

func New(cfg config.Config, store memory.Store, reminders *reminder.Log, status LoopStatus) *Server {
	return &Server{
		cfg:       cfg,
		store:     store,
		reminders: reminders,
		status:    status,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		observability.MetricsHandler().ServeHTTP(w, r)
	})

	r.Get("/v1/dashboard", s.handleDashboard)
	r.Get("/v1/reminders", s.handleListReminders)
	r.Get("/v1/memory/{category}", s.handleListMemory)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":         "ok",
		"memory_backend": s.storeBackend(),
		"persona":        s.cfg.PersonaID,
	})
}

func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":         "ready",
		"memory_backend": s.storeBackend(),
	})
}

type dashboardResponse struct {
	Loop             loop.Snapshot `json:"loop"`
	Preferences      int           `json:"preferences"`
	Facts            int           `json:"facts"`
	Templates        int           `json:"templates"`
	PendingReminders int           `json:"pending_reminders"`
	TotalReminders   int           `json:"total_reminders"`
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	resp := dashboardResponse{
		PendingReminders: len(s.reminders.Pending()),
		TotalReminders:   len(s.reminders.All()),
	}
	if s.status != nil {
		resp.Loop = s.status.Snapshot()
	}

	ctx := r.Context()
	counts := []struct {
		cat  memory.Category
		dest *int
	}{
		{memory.CategoryPreference, &resp.Preferences},
		{memory.CategoryFact, &resp.Facts},
		{memory.CategoryTemplate, &resp.Templates},
	}
	for _, c := range counts {
		records, err := s.store.All(ctx, c.cat)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "memory_unavailable", err.Error())
			return
		}
		*c.dest = len(records)
	}

	respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListReminders(w http.ResponseWriter, r *http.Request) {
	var list []reminder.Reminder
	if strings.EqualFold(r.URL.Query().Get("pending"), "true") {
		list = s.reminders.Pending()
	} else {
		list = s.reminders.All()
	}
	respondJSON(w, http.StatusOK, map[string]any{"reminders": list})
}

func (s *Server) handleListMemory(w http.ResponseWriter, r *http.Request) {
	cat := memory.Category(chi.URLParam(r, "category"))
	if !memory.ValidCategory(cat) {
		respondError(w, http.StatusBadRequest, "invalid_category", "category must be preference, template, or fact")
		return
	}

	records, err := s.store.All(r.Context(), cat)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "memory_unavailable", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"records": records})
}

func (s *Server) storeBackend() string {
	switch s.store.(type) {
	case *memory.PostgresStore:
		return "postgres"
	case *memory.FileStore:
		return "file"
	default:
		return "in-memory"
	}
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, errorResponse{Error: message, Code: code})
}
