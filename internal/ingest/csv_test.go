package ingest

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignite/support-triage/internal/domain"
)

func TestReadEmailsFrom(t *testing.T) {
	data := `sender,subject,body,sent_date
alice@example.com,Support request,"Help me, please.",2024-08-19 10:30:00
bob@example.com,Meeting notes,See attached,
`
	records, err := ReadEmailsFrom(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "alice@example.com", records[0].Sender)
	assert.Equal(t, "Support request", records[0].Subject)
	assert.Equal(t, "Help me, please.", records[0].Body)
	assert.Equal(t, "2024-08-19 10:30:00", records[0].SentDate)
	assert.Equal(t, "", records[1].SentDate)
}

func TestReadEmailsFromReorderedHeader(t *testing.T) {
	data := "Subject,SENT_DATE,sender,body\nHelp,2024-01-01,a@x.com,text\n"
	records, err := ReadEmailsFrom(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Help", records[0].Subject)
	assert.Equal(t, "a@x.com", records[0].Sender)
}

func TestReadEmailsFromMissingColumn(t *testing.T) {
	data := "sender,subject,body\na@x.com,Help,text\n"
	_, err := ReadEmailsFrom(strings.NewReader(data))
	assert.ErrorContains(t, err, "sent_date")
}

func TestWriteClassifiedRoundTrip(t *testing.T) {
	ts := time.Date(2024, 8, 19, 10, 30, 0, 0, time.UTC)
	email := domain.ClassifiedEmail{
		Sender:       "a@x.com",
		Subject:      "Support request",
		Body:         "body",
		ReceivedAt:   &ts,
		Sentiment:    domain.SentimentNeutral,
		Priority:     domain.PriorityUrgent,
		Category:     domain.CategoryBilling,
		EmailsFound:  []string{"a@b.com"},
		PhonesFound:  []string{"9876543210", "9876543210"},
		Requirements: []string{"I need a correction asap."},
		DraftReply:   "Subject: Re: Support request",
	}

	var buf bytes.Buffer
	require.NoError(t, WriteClassifiedTo(&buf, []domain.ClassifiedEmail{email}))

	out := buf.String()
	assert.Contains(t, out, "a@x.com")
	assert.Contains(t, out, "2024-08-19T10:30:00Z")

	// List columns decode back through the dedicated decoder.
	phones, err := DecodeList(EncodeList(email.PhonesFound))
	require.NoError(t, err)
	assert.Equal(t, email.PhonesFound, phones)
}

func TestEncodeDecodeList(t *testing.T) {
	items, err := DecodeList(EncodeList(nil))
	require.NoError(t, err)
	assert.Empty(t, items)

	items, err = DecodeList(`["a","b"]`)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, items)

	items, err = DecodeList("")
	require.NoError(t, err)
	assert.Nil(t, items)

	_, err = DecodeList("not json")
	assert.Error(t, err)
}
