package postgres

import (
	"encoding/json"
	"fmt"
	"strings"
)

// List-valued columns travel through flat storage as JSON arrays with a
// dedicated typed decoder. Never a generic expression evaluator.

func encodeList(items []string) string {
	if len(items) == 0 {
		return "[]"
	}
	data, _ := json.Marshal(items)
	return string(data)
}

func decodeList(encoded string) ([]string, error) {
	if strings.TrimSpace(encoded) == "" || encoded == "[]" {
		return nil, nil
	}
	var items []string
	if err := json.Unmarshal([]byte(encoded), &items); err != nil {
		return nil, fmt.Errorf("decode list column: %w", err)
	}
	return items, nil
}
