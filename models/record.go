package models

import (
	"bytes"
	"encoding/json"
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Record is a single NetBox object from an API "results" list.
// Keys keep the order in which they appear in the JSON document.
type Record = orderedmap.OrderedMap[string, any]

func NewRecord() *Record {
	return orderedmap.New[string, any]()
}

// RecordFromJSON decodes a JSON object into a Record.
// Nested objects decode as map[string]any and numbers as float64.
func RecordFromJSON(data []byte) (*Record, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, fmt.Errorf("record is not a JSON object")
	}

	record := NewRecord()
	if err := json.Unmarshal(trimmed, record); err != nil {
		return nil, fmt.Errorf("failed to decode record: %w", err)
	}
	return record, nil
}
