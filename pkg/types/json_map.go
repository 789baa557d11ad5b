package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSONMap stores opaque structured detail as a jsonb column. Audit metadata
// keys are a downstream contract, so values round-trip without reshaping.
type JSONMap map[string]any

// Value marshals the map for the driver; empty maps persist as NULL.
func (m JSONMap) Value() (driver.Value, error) {
	if len(m) == 0 {
		return nil, nil
	}
	raw, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("jsonmap: marshal: %w", err)
	}
	return string(raw), nil
}

// Scan decodes a jsonb payload produced by Value.
func (m *JSONMap) Scan(src any) error {
	if src == nil {
		*m = nil
		return nil
	}

	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("jsonmap: unsupported scan type %T", src)
	}

	if len(raw) == 0 {
		*m = nil
		return nil
	}
	return json.Unmarshal(raw, m)
}
