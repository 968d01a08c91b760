package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/ignite/support-triage/internal/domain"
	"github.com/ignite/support-triage/internal/ingest"
	"github.com/ignite/support-triage/internal/pkg/distlock"
	"github.com/ignite/support-triage/internal/service/triage"
)

// Handlers holds the HTTP handlers for the triage API.
type Handlers struct {
	svc         *triage.Service
	datasetPath string
	processLock distlock.DistLock
}

// NewHandlers creates the handler set. datasetPath is the CSV consumed by
// the process endpoint; processLock serializes processing across replicas
// and may be nil in single-instance deployments.
func NewHandlers(svc *triage.Service, datasetPath string, processLock distlock.DistLock) *Handlers {
	return &Handlers{svc: svc, datasetPath: datasetPath, processLock: processLock}
}

// HealthCheck reports liveness.
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// ListEmails returns stored emails in ranked order, filtered by the query
// parameters sentiment, priority, category, status (each repeatable),
// since_hours, limit, and offset.
func (h *Handlers) ListEmails(w http.ResponseWriter, r *http.Request) {
	filter, err := parseListFilter(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	emails, err := h.svc.List(r.Context(), filter)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list emails")
		return
	}
	if emails == nil {
		emails = []domain.ClassifiedEmail{}
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"emails": emails,
		"count":  len(emails),
	})
}

// statusUpdateRequest is the PATCH /emails/status payload.
type statusUpdateRequest struct {
	Sender  string        `json:"sender"`
	Subject string        `json:"subject"`
	Status  domain.Status `json:"status"`
}

// UpdateStatus changes the resolution status for a (sender, subject) key.
func (h *Handlers) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req statusUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Sender == "" || req.Subject == "" {
		respondError(w, http.StatusBadRequest, "sender and subject are required")
		return
	}

	err := h.svc.UpdateStatus(r.Context(),
		domain.Key{Sender: req.Sender, Subject: req.Subject}, req.Status)
	switch {
	case errors.Is(err, triage.ErrInvalidStatus):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, triage.ErrNotFound):
		respondError(w, http.StatusNotFound, "email not found")
	case err != nil:
		respondError(w, http.StatusInternalServerError, "failed to update status")
	default:
		respondJSON(w, http.StatusOK, map[string]string{"status": string(req.Status)})
	}
}

// Stats returns aggregate counts for the dashboard KPIs.
func (h *Handlers) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Stats(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to compute stats")
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

// ProcessDataset runs the classification pipeline over the configured CSV
// dataset and persists the results. Only one run may be in flight at a time.
func (h *Handlers) ProcessDataset(w http.ResponseWriter, r *http.Request) {
	if h.datasetPath == "" {
		respondError(w, http.StatusConflict, "no dataset configured")
		return
	}

	if h.processLock != nil {
		acquired, err := h.processLock.Acquire(r.Context())
		if err != nil {
			respondError(w, http.StatusInternalServerError, "failed to acquire processing lock")
			return
		}
		if !acquired {
			respondError(w, http.StatusConflict, "processing already in progress")
			return
		}
		defer h.processLock.Release(r.Context())
	}

	records, err := ingest.ReadEmails(h.datasetPath)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to read dataset")
		return
	}

	result, err := h.svc.ProcessAndStore(r.Context(), records)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to process batch")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"total":    result.Total,
		"relevant": result.Relevant,
		"stored":   len(result.Emails),
		"dropped":  len(result.Errors),
	})
}

func parseListFilter(r *http.Request) (triage.ListFilter, error) {
	var filter triage.ListFilter
	q := r.URL.Query()

	for _, v := range q["sentiment"] {
		s := domain.Sentiment(v)
		if !s.Valid() {
			return filter, errors.New("unknown sentiment: " + v)
		}
		filter.Sentiments = append(filter.Sentiments, s)
	}
	for _, v := range q["priority"] {
		p := domain.Priority(v)
		if !p.Valid() {
			return filter, errors.New("unknown priority: " + v)
		}
		filter.Priorities = append(filter.Priorities, p)
	}
	for _, v := range q["category"] {
		c := domain.Category(v)
		if !c.Valid() {
			return filter, errors.New("unknown category: " + v)
		}
		filter.Categories = append(filter.Categories, c)
	}
	for _, v := range q["status"] {
		st := domain.Status(v)
		if !st.Valid() {
			return filter, errors.New("unknown status: " + v)
		}
		filter.Statuses = append(filter.Statuses, st)
	}

	if raw := q.Get("since_hours"); raw != "" {
		hours, err := strconv.Atoi(raw)
		if err != nil || hours < 0 {
			return filter, errors.New("invalid since_hours: " + raw)
		}
		since := time.Now().Add(-time.Duration(hours) * time.Hour)
		filter.Since = &since
	}
	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return filter, errors.New("invalid limit: " + raw)
		}
		filter.Limit = limit
	}
	if raw := q.Get("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			return filter, errors.New("invalid offset: " + raw)
		}
		filter.Offset = offset
	}

	return filter, nil
}

// Response helpers

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
