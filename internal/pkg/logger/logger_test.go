package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func capture(t *testing.T, fn func()) map[string]string {
	t.Helper()

	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(os.Stderr) })

	fn()

	var entry map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestRedactEmail(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"alice.w@example.com", "al***@example.com"},
		{"ab@example.com", "***@example.com"},
		{"not-an-email", "***@***"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RedactEmail(tt.in))
	}
}

func TestSenderFieldsAreRedacted(t *testing.T) {
	entry := capture(t, func() {
		Info("dropped record", "sender", "alice.w@example.com", "index", "3")
	})

	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "dropped record", entry["msg"])
	assert.Equal(t, "al***@example.com", entry["sender"])
	assert.Equal(t, "3", entry["index"])
}

func TestEmbeddedAddressesAreRedacted(t *testing.T) {
	entry := capture(t, func() {
		Warn("save failed", "error", "duplicate key for bob.smith@corp.io")
	})

	assert.Equal(t, "save failed", entry["msg"])
	assert.Equal(t, "duplicate key for bo***@corp.io", entry["error"])
}

func TestLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(os.Stderr) })

	Debug("below threshold")
	assert.Zero(t, buf.Len())
}
