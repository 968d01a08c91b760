// Package postgres implements the triage repository against PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/ignite/support-triage/internal/domain"
	"github.com/ignite/support-triage/internal/service/triage"
)

// EmailRepo implements triage.Repository against PostgreSQL.
type EmailRepo struct{ db *sql.DB }

// NewEmailRepo creates a Postgres-backed triage repository.
func NewEmailRepo(db *sql.DB) *EmailRepo { return &EmailRepo{db: db} }

const schema = `
CREATE TABLE IF NOT EXISTS triage_emails (
	id            UUID PRIMARY KEY,
	sender        TEXT NOT NULL,
	subject       TEXT NOT NULL,
	body          TEXT NOT NULL DEFAULT '',
	received_at   TIMESTAMPTZ,
	sentiment     TEXT NOT NULL,
	priority      TEXT NOT NULL,
	priority_rank INT NOT NULL,
	category      TEXT NOT NULL,
	emails_found  TEXT NOT NULL DEFAULT '[]',
	phones_found  TEXT NOT NULL DEFAULT '[]',
	requirements  TEXT NOT NULL DEFAULT '[]',
	draft_reply   TEXT NOT NULL DEFAULT '',
	status        TEXT NOT NULL DEFAULT 'Pending',
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	UNIQUE (sender, subject)
)`

// Migrate creates the schema if it does not exist.
func (r *EmailRepo) Migrate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate triage_emails: %w", err)
	}
	return nil
}

// SaveBatch upserts classified emails keyed by (sender, subject). Rows
// within the batch apply in order, so duplicate keys resolve last-write-wins.
// The externally tracked status column is never touched by the upsert.
func (r *EmailRepo) SaveBatch(ctx context.Context, emails []domain.ClassifiedEmail) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save batch: %w", err)
	}
	defer tx.Rollback()

	for i := range emails {
		e := &emails[i]
		id := e.ID
		if id == "" {
			id = uuid.New().String()
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO triage_emails
				(id, sender, subject, body, received_at, sentiment, priority, priority_rank,
				 category, emails_found, phones_found, requirements, draft_reply)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
			ON CONFLICT (sender, subject) DO UPDATE SET
				body = EXCLUDED.body,
				received_at = EXCLUDED.received_at,
				sentiment = EXCLUDED.sentiment,
				priority = EXCLUDED.priority,
				priority_rank = EXCLUDED.priority_rank,
				category = EXCLUDED.category,
				emails_found = EXCLUDED.emails_found,
				phones_found = EXCLUDED.phones_found,
				requirements = EXCLUDED.requirements,
				draft_reply = EXCLUDED.draft_reply,
				updated_at = NOW()
		`, id, e.Sender, e.Subject, e.Body, e.ReceivedAt,
			e.Sentiment, e.Priority, e.Priority.Rank(), e.Category,
			encodeList(e.EmailsFound), encodeList(e.PhonesFound), encodeList(e.Requirements),
			e.DraftReply)
		if err != nil {
			return fmt.Errorf("upsert email %s/%s: %w", e.Sender, e.Subject, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save batch: %w", err)
	}
	return nil
}

// List returns stored emails matching the filter in ranked order: priority
// rank ascending, then received_at descending with NULLs last.
func (r *EmailRepo) List(ctx context.Context, f triage.ListFilter) ([]domain.ClassifiedEmail, error) {
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if len(f.Sentiments) > 0 {
		conds = append(conds, "sentiment = ANY("+arg(pq.Array(asStrings(f.Sentiments)))+")")
	}
	if len(f.Priorities) > 0 {
		conds = append(conds, "priority = ANY("+arg(pq.Array(asStrings(f.Priorities)))+")")
	}
	if len(f.Categories) > 0 {
		conds = append(conds, "category = ANY("+arg(pq.Array(asStrings(f.Categories)))+")")
	}
	if len(f.Statuses) > 0 {
		conds = append(conds, "status = ANY("+arg(pq.Array(asStrings(f.Statuses)))+")")
	}
	if f.Since != nil {
		conds = append(conds, "received_at >= "+arg(*f.Since))
	}

	query := `
		SELECT id, sender, subject, body, received_at, sentiment, priority, category,
		       emails_found, phones_found, requirements, draft_reply, status
		FROM triage_emails`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY priority_rank ASC, received_at DESC NULLS LAST, created_at ASC"
	if f.Limit > 0 {
		query += " LIMIT " + arg(f.Limit)
	}
	if f.Offset > 0 {
		query += " OFFSET " + arg(f.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list emails: %w", err)
	}
	defer rows.Close()

	var out []domain.ClassifiedEmail
	for rows.Next() {
		var (
			e          domain.ClassifiedEmail
			receivedAt sql.NullTime
			emailsCol  string
			phonesCol  string
			reqsCol    string
		)
		if err := rows.Scan(&e.ID, &e.Sender, &e.Subject, &e.Body, &receivedAt,
			&e.Sentiment, &e.Priority, &e.Category,
			&emailsCol, &phonesCol, &reqsCol, &e.DraftReply, &e.Status); err != nil {
			return nil, fmt.Errorf("scan email: %w", err)
		}
		if receivedAt.Valid {
			ts := receivedAt.Time
			e.ReceivedAt = &ts
		}
		if e.EmailsFound, err = decodeList(emailsCol); err != nil {
			return nil, fmt.Errorf("decode emails_found: %w", err)
		}
		if e.PhonesFound, err = decodeList(phonesCol); err != nil {
			return nil, fmt.Errorf("decode phones_found: %w", err)
		}
		if e.Requirements, err = decodeList(reqsCol); err != nil {
			return nil, fmt.Errorf("decode requirements: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// UpdateStatus sets the status for every row matching the (sender, subject)
// key. Returns triage.ErrNotFound when nothing matches.
func (r *EmailRepo) UpdateStatus(ctx context.Context, key domain.Key, status domain.Status) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE triage_emails SET status = $1, updated_at = NOW() WHERE sender = $2 AND subject = $3`,
		status, key.Sender, key.Subject,
	)
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return triage.ErrNotFound
	}
	return nil
}

// Stats returns aggregate counts over the stored batch.
func (r *EmailRepo) Stats(ctx context.Context) (triage.Stats, error) {
	stats := triage.Stats{
		ByCategory:  make(map[domain.Category]int),
		BySentiment: make(map[domain.Sentiment]int),
	}

	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE priority = 'Urgent'),
		       COUNT(*) FILTER (WHERE status = 'Pending'),
		       COUNT(*) FILTER (WHERE status = 'Resolved')
		FROM triage_emails
	`).Scan(&stats.Total, &stats.Urgent, &stats.Pending, &stats.Resolved)
	if err != nil {
		return stats, fmt.Errorf("count emails: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT category, COUNT(*) FROM triage_emails GROUP BY category`)
	if err != nil {
		return stats, fmt.Errorf("count by category: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			cat domain.Category
			n   int
		)
		if err := rows.Scan(&cat, &n); err != nil {
			return stats, fmt.Errorf("scan category count: %w", err)
		}
		stats.ByCategory[cat] = n
	}
	if err := rows.Err(); err != nil {
		return stats, err
	}

	sentRows, err := r.db.QueryContext(ctx,
		`SELECT sentiment, COUNT(*) FROM triage_emails GROUP BY sentiment`)
	if err != nil {
		return stats, fmt.Errorf("count by sentiment: %w", err)
	}
	defer sentRows.Close()
	for sentRows.Next() {
		var (
			s domain.Sentiment
			n int
		)
		if err := sentRows.Scan(&s, &n); err != nil {
			return stats, fmt.Errorf("scan sentiment count: %w", err)
		}
		stats.BySentiment[s] = n
	}
	return stats, sentRows.Err()
}

func asStrings[T ~string](vals []T) []string {
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = string(v)
	}
	return out
}
