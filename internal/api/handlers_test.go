package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignite/support-triage/internal/domain"
	"github.com/ignite/support-triage/internal/pipeline"
	"github.com/ignite/support-triage/internal/reply"
	"github.com/ignite/support-triage/internal/service/triage"
)

// memRepo is an in-memory triage.Repository for handler tests. It reuses
// the pipeline ranker so list order matches the production contract.
type memRepo struct {
	emails []domain.ClassifiedEmail
}

func (r *memRepo) SaveBatch(_ context.Context, emails []domain.ClassifiedEmail) error {
	for _, e := range emails {
		if e.Status == "" {
			e.Status = domain.StatusPending
		}
		r.emails = append(r.emails, e)
	}
	return nil
}

func (r *memRepo) List(_ context.Context, f triage.ListFilter) ([]domain.ClassifiedEmail, error) {
	var out []domain.ClassifiedEmail
	for _, e := range r.emails {
		if len(f.Priorities) > 0 && !containsLabel(f.Priorities, e.Priority) {
			continue
		}
		if len(f.Statuses) > 0 && !containsLabel(f.Statuses, e.Status) {
			continue
		}
		out = append(out, e)
	}
	pipeline.Rank(out)
	return out, nil
}

func (r *memRepo) UpdateStatus(_ context.Context, key domain.Key, status domain.Status) error {
	found := false
	for i := range r.emails {
		if r.emails[i].Key() == key {
			r.emails[i].Status = status
			found = true
		}
	}
	if !found {
		return triage.ErrNotFound
	}
	return nil
}

func (r *memRepo) Stats(_ context.Context) (triage.Stats, error) {
	stats := triage.Stats{
		ByCategory:  make(map[domain.Category]int),
		BySentiment: make(map[domain.Sentiment]int),
	}
	for _, e := range r.emails {
		stats.Total++
		if e.Priority == domain.PriorityUrgent {
			stats.Urgent++
		}
		switch e.Status {
		case domain.StatusPending:
			stats.Pending++
		case domain.StatusResolved:
			stats.Resolved++
		}
		stats.ByCategory[e.Category]++
		stats.BySentiment[e.Sentiment]++
	}
	return stats, nil
}

func containsLabel[T comparable](haystack []T, needle T) bool {
	for _, v := range haystack {
		if v == needle {
			return true
		}
	}
	return false
}

func newTestServer(t *testing.T, repo *memRepo) *httptest.Server {
	t.Helper()
	svc := triage.NewService(pipeline.New(reply.NewTemplateDrafter(), 2), repo)
	srv := httptest.NewServer(SetupRoutes(NewHandlers(svc, "", nil)))
	t.Cleanup(srv.Close)
	return srv
}

func seedEmail(subject string, p domain.Priority, ts *time.Time) domain.ClassifiedEmail {
	return domain.ClassifiedEmail{
		Sender:     "a@x.com",
		Subject:    subject,
		Priority:   p,
		Sentiment:  domain.SentimentNeutral,
		Category:   domain.CategoryGeneral,
		Status:     domain.StatusPending,
		ReceivedAt: ts,
	}
}

func TestListEmailsRanked(t *testing.T) {
	t10 := time.Date(2024, 8, 19, 10, 0, 0, 0, time.UTC)
	t9 := time.Date(2024, 8, 19, 9, 0, 0, 0, time.UTC)
	t11 := time.Date(2024, 8, 19, 11, 0, 0, 0, time.UTC)

	repo := &memRepo{emails: []domain.ClassifiedEmail{
		seedEmail("r1", domain.PriorityNotUrgent, &t10),
		seedEmail("r2", domain.PriorityUrgent, &t9),
		seedEmail("r3", domain.PriorityUrgent, &t11),
	}}
	srv := newTestServer(t, repo)

	resp, err := http.Get(srv.URL + "/api/v1/emails")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Emails []domain.ClassifiedEmail `json:"emails"`
		Count  int                      `json:"count"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, 3, body.Count)
	assert.Equal(t, "r3", body.Emails[0].Subject)
	assert.Equal(t, "r2", body.Emails[1].Subject)
	assert.Equal(t, "r1", body.Emails[2].Subject)
}

func TestListEmailsFilterValidation(t *testing.T) {
	srv := newTestServer(t, &memRepo{})

	resp, err := http.Get(srv.URL + "/api/v1/emails?priority=Whenever")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUpdateStatusEndpoint(t *testing.T) {
	repo := &memRepo{emails: []domain.ClassifiedEmail{
		seedEmail("help me", domain.PriorityUrgent, nil),
	}}
	srv := newTestServer(t, repo)

	body := `{"sender":"a@x.com","subject":"help me","status":"Resolved"}`
	req, err := http.NewRequest(http.MethodPatch, srv.URL+"/api/v1/emails/status", strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, domain.StatusResolved, repo.emails[0].Status)
}

func TestUpdateStatusNotFound(t *testing.T) {
	srv := newTestServer(t, &memRepo{})

	body := `{"sender":"x","subject":"missing","status":"Resolved"}`
	req, err := http.NewRequest(http.MethodPatch, srv.URL+"/api/v1/emails/status", strings.NewReader(body))
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	repo := &memRepo{emails: []domain.ClassifiedEmail{
		seedEmail("help me", domain.PriorityUrgent, nil),
	}}
	srv := newTestServer(t, repo)

	body := `{"sender":"a@x.com","subject":"help me","status":"Archived"}`
	req, err := http.NewRequest(http.MethodPatch, srv.URL+"/api/v1/emails/status", strings.NewReader(body))
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestStatsEndpoint(t *testing.T) {
	repo := &memRepo{emails: []domain.ClassifiedEmail{
		seedEmail("a", domain.PriorityUrgent, nil),
		seedEmail("b", domain.PriorityNotUrgent, nil),
	}}
	srv := newTestServer(t, repo)

	resp, err := http.Get(srv.URL + "/api/v1/stats")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var stats triage.Stats
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&stats))
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.Urgent)
	assert.Equal(t, 2, stats.Pending)
}

func TestProcessWithoutDataset(t *testing.T) {
	srv := newTestServer(t, &memRepo{})

	resp, err := http.Post(srv.URL+"/api/v1/process", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

// stubLock fakes the distributed processing lock.
type stubLock struct{ available bool }

func (l stubLock) Acquire(context.Context) (bool, error) { return l.available, nil }
func (l stubLock) Release(context.Context) error         { return nil }

func TestProcessWhileLockHeld(t *testing.T) {
	svc := triage.NewService(pipeline.New(reply.NewTemplateDrafter(), 2), &memRepo{})
	srv := httptest.NewServer(SetupRoutes(NewHandlers(svc, "emails.csv", stubLock{available: false})))
	t.Cleanup(srv.Close)

	resp, err := http.Post(srv.URL+"/api/v1/process", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestProcessDataset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "emails.csv")
	csv := "sender,subject,body,sent_date\n" +
		"a@x.com,Urgent: support needed,Cannot access my account. Call +1-1234567890,2024-08-19 10:00:00\n" +
		"b@x.com,Weekly newsletter,Read our latest product news,2024-08-19 11:00:00\n"
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o644))

	repo := &memRepo{}
	svc := triage.NewService(pipeline.New(reply.NewTemplateDrafter(), 2), repo)
	srv := httptest.NewServer(SetupRoutes(NewHandlers(svc, path, stubLock{available: true})))
	t.Cleanup(srv.Close)

	resp, err := http.Post(srv.URL+"/api/v1/process", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Total    int `json:"total"`
		Relevant int `json:"relevant"`
		Stored   int `json:"stored"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 2, body.Total)
	assert.Equal(t, 1, body.Relevant)
	assert.Equal(t, 1, body.Stored)
	require.Len(t, repo.emails, 1)
	assert.Equal(t, "Urgent: support needed", repo.emails[0].Subject)
}
