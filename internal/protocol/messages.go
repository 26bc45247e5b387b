// ABOUTME: Remote control message definitions
// ABOUTME: JSON text frames exchanged on the websocket control endpoint
package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Command names accepted in Request.Command
const (
	CommandPlay = "play"
	CommandStop = "stop"
	CommandTone = "tone"
)

// Request is sent by a remote client to queue a command
type Request struct {
	Command string  `json:"command"`
	Path    string  `json:"path,omitempty"`   // play
	Freq    float64 `json:"freq,omitempty"`   // tone, Hz
	Millis  int     `json:"millis,omitempty"` // tone length
}

// Reply acknowledges that a request was queued, or says why it was not.
// Queued does not mean the command succeeded; playback errors are only logged.
type Reply struct {
	ID     string `json:"id,omitempty"`
	Queued bool   `json:"queued,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Hello is sent by the server when a client connects
type Hello struct {
	Name            string   `json:"name"`
	ProductName     string   `json:"product_name"`
	SoftwareVersion string   `json:"software_version"`
	Commands        []string `json:"commands"`
	Extensions      []string `json:"extensions"`
}

// ErrInvalidRequest is wrapped by ParseRequest failures
var ErrInvalidRequest = errors.New("invalid request")

// ParseRequest decodes and validates a request frame
func ParseRequest(data []byte) (Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return Request{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	switch req.Command {
	case CommandPlay:
		if req.Path == "" {
			return Request{}, fmt.Errorf("%w: play requires a path", ErrInvalidRequest)
		}
	case CommandStop:
	case CommandTone:
		if req.Freq <= 0 || req.Freq > 20000 {
			return Request{}, fmt.Errorf("%w: tone frequency %.0f out of range", ErrInvalidRequest, req.Freq)
		}
		if req.Millis <= 0 || req.Millis > 60000 {
			return Request{}, fmt.Errorf("%w: tone length %dms out of range", ErrInvalidRequest, req.Millis)
		}
	case "":
		return Request{}, fmt.Errorf("%w: missing command", ErrInvalidRequest)
	default:
		return Request{}, fmt.Errorf("%w: unknown command %q", ErrInvalidRequest, req.Command)
	}

	return req, nil
}
