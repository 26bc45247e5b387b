// ABOUTME: Tests for remote control messages
// ABOUTME: Tests request validation and reply encoding
package protocol

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseRequest(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr bool
		want    Request
	}{
		{"play", `{"command":"play","path":"/music/a.flac"}`, false, Request{Command: "play", Path: "/music/a.flac"}},
		{"stop", `{"command":"stop"}`, false, Request{Command: "stop"}},
		{"tone", `{"command":"tone","freq":440,"millis":3000}`, false, Request{Command: "tone", Freq: 440, Millis: 3000}},
		{"play without path", `{"command":"play"}`, true, Request{}},
		{"tone without length", `{"command":"tone","freq":440}`, true, Request{}},
		{"tone too high", `{"command":"tone","freq":30000,"millis":10}`, true, Request{}},
		{"missing command", `{"path":"x.mp3"}`, true, Request{}},
		{"unknown command", `{"command":"rewind"}`, true, Request{}},
		{"not json", `play x.mp3`, true, Request{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRequest([]byte(tt.data))
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidRequest) {
					t.Errorf("expected ErrInvalidRequest, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestReplyOmitsEmptyFields(t *testing.T) {
	data, err := json.Marshal(Reply{Error: "bad"})
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"error":"bad"}` {
		t.Errorf("unexpected encoding %s", data)
	}

	data, _ = json.Marshal(Reply{ID: "abc", Queued: true})
	if string(data) != `{"id":"abc","queued":true}` {
		t.Errorf("unexpected encoding %s", data)
	}
}
