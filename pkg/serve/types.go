package serve

import (
	"encoding/json"

	"github.com/praetorian-inc/snip/pkg/cutter"
	"github.com/praetorian-inc/snip/pkg/selection"
)

// Request represents an incoming NDJSON request
type Request struct {
	Type    string          `json:"type"` // "cut" | "parse" | "close"
	Payload json.RawMessage `json:"payload"`
}

// CutPayload is the payload for "cut" requests
type CutPayload struct {
	cutter.Options
	Lines []string `json:"lines"`
}

// ParsePayload is the payload for "parse" requests
type ParsePayload struct {
	List string `json:"list"`
}

// Response represents an outgoing NDJSON response
type Response struct {
	Success bool            `json:"success"`
	Type    string          `json:"type"` // "ready" | "cut" | "parse" | "error"
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
	// Kind classifies selection list errors ("invalid_syntax", ...)
	Kind string `json:"kind,omitempty"`
}

// ReadyData is the data field for "ready" responses
type ReadyData struct {
	Version string `json:"version"`
}

// ParseData is the data field for "parse" responses
type ParseData struct {
	Ranges selection.List `json:"ranges"`
}
