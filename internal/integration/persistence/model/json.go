// Package model defines database models for persistence layer.
package model

import (
	"encoding/json"
	"log/slog"
)

// encodeJSON serialises v for a jsonb column, falling back to fallback on error.
func encodeJSON(v any, fallback string) string {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Error("Failed to marshal jsonb column", "error", err)
		return fallback
	}
	return string(data)
}

// decodeJSON fills v from a jsonb column; an empty column leaves v untouched.
func decodeJSON(raw string, v any) {
	if raw == "" {
		return
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		slog.Warn("Failed to unmarshal jsonb column", "error", err)
	}
}
