// Package ingest reads support-email datasets from CSV and exports
// classified results back to CSV for external consumers.
package ingest

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ignite/support-triage/internal/domain"
)

// datasetColumns are the required input columns, matched case-insensitively
// against the header row in any order.
var datasetColumns = []string{"sender", "subject", "body", "sent_date"}

// ReadEmails loads raw email records from the CSV dataset at path.
func ReadEmails(path string) ([]domain.EmailRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ingest: open dataset: %w", err)
	}
	defer f.Close()
	return ReadEmailsFrom(f)
}

// ReadEmailsFrom parses raw email records from CSV data. The first row must
// be a header containing sender, subject, body, and sent_date columns.
func ReadEmailsFrom(r io.Reader) ([]domain.EmailRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("ingest: read header: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, col := range header {
		idx[strings.ToLower(strings.TrimSpace(col))] = i
	}
	for _, col := range datasetColumns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("ingest: dataset missing column %q", col)
		}
	}

	var records []domain.EmailRecord
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ingest: read row: %w", err)
		}
		records = append(records, domain.EmailRecord{
			Sender:   field(row, idx["sender"]),
			Subject:  field(row, idx["subject"]),
			Body:     field(row, idx["body"]),
			SentDate: field(row, idx["sent_date"]),
		})
	}
	return records, nil
}

func field(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

// WriteClassified exports classified emails to a CSV file at path, creating
// parent directories as needed.
func WriteClassified(path string, emails []domain.ClassifiedEmail) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("ingest: create output dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("ingest: create output: %w", err)
	}
	defer f.Close()
	return WriteClassifiedTo(f, emails)
}

// WriteClassifiedTo writes classified emails as CSV. List-valued columns are
// encoded as JSON arrays, decoded with DecodeList; no dynamic evaluation is
// ever involved in the round trip.
func WriteClassifiedTo(w io.Writer, emails []domain.ClassifiedEmail) error {
	cw := csv.NewWriter(w)

	header := []string{
		"sender", "subject", "body", "received_at",
		"sentiment", "priority", "category",
		"emails_found", "phones_found", "requirements", "draft_reply",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("ingest: write header: %w", err)
	}

	for i := range emails {
		e := &emails[i]
		receivedAt := ""
		if e.ReceivedAt != nil {
			receivedAt = e.ReceivedAt.Format(time.RFC3339)
		}
		row := []string{
			e.Sender, e.Subject, e.Body, receivedAt,
			string(e.Sentiment), string(e.Priority), string(e.Category),
			EncodeList(e.EmailsFound), EncodeList(e.PhonesFound), EncodeList(e.Requirements),
			e.DraftReply,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("ingest: write row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("ingest: flush output: %w", err)
	}
	return nil
}

// EncodeList encodes a string list as a JSON array for flat storage.
func EncodeList(items []string) string {
	if len(items) == 0 {
		return "[]"
	}
	data, _ := json.Marshal(items)
	return string(data)
}

// DecodeList is the dedicated decoder for list columns written by
// EncodeList. Empty input decodes to an empty list.
func DecodeList(encoded string) ([]string, error) {
	if strings.TrimSpace(encoded) == "" {
		return nil, nil
	}
	var items []string
	if err := json.Unmarshal([]byte(encoded), &items); err != nil {
		return nil, fmt.Errorf("ingest: decode list: %w", err)
	}
	return items, nil
}
