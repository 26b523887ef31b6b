package svc

import (
	"encoding/json"

	"github.com/curiohq/curio/lib/errors"
)

// ErrProtocolExtraction is returned when a protocol fails to be extracted
// from a request or response.
type ErrProtocolExtraction struct {
	Protocol string
}

// Error implements error.
func (e ErrProtocolExtraction) Error() string {
	return "Protocol extraction failed: " + e.Protocol
}

// Req is the structure used to make a request to a service
type Req map[string]*json.RawMessage

// Extract extracts a protocol from a request
func (h Req) Extract(
	protocol string,
	data interface{},
) error {
	raw, ok := h[protocol]
	if !ok || raw == nil {
		return errors.Trace(ErrProtocolExtraction{protocol})
	}
	if err := json.Unmarshal(*raw, data); err != nil {
		return errors.Trace(ErrProtocolExtraction{protocol})
	}
	return nil
}
