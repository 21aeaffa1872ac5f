package server

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// SSEWriter streams aggregation-run progress to the client as Server-Sent
// Events. Each pipeline step becomes one named event with a JSON payload.
type SSEWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

// NewSSEWriter prepares the response for event streaming. It fails when the
// underlying writer cannot flush incrementally.
func NewSSEWriter(w http.ResponseWriter) (*SSEWriter, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("streaming not supported")
	}

	header := w.Header()
	header.Set("Content-Type", "text/event-stream")
	header.Set("Cache-Control", "no-cache")
	header.Set("Connection", "keep-alive")
	header.Set("Access-Control-Allow-Origin", "*")

	return &SSEWriter{w: w, flusher: flusher}, nil
}

// WriteEvent emits one named event and flushes it immediately so the client
// sees progress while the run is still working.
func (s *SSEWriter) WriteEvent(name string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(s.w, "event: %s\ndata: %s\n\n", name, data); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// WriteError reports a failed run as a terminal error event.
func (s *SSEWriter) WriteError(message string) {
	s.WriteEvent("error", map[string]string{"error": message}) //nolint:errcheck
}

// WriteComplete closes the stream's event sequence with the run outcome.
func (s *SSEWriter) WriteComplete(userID, status string) {
	s.WriteEvent("complete", map[string]string{ //nolint:errcheck
		"user_id": userID,
		"status":  status,
	})
}
