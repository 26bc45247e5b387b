// ABOUTME: Tests for the remote control CLI helpers
// ABOUTME: Tests argument parsing and player selection
package main

import (
	"path/filepath"
	"testing"

	"github.com/Resonate-Protocol/wavecast/internal/discovery"
	"github.com/Resonate-Protocol/wavecast/internal/protocol"
)

func TestBuildRequest(t *testing.T) {
	abs, _ := filepath.Abs("song.mp3")

	tests := []struct {
		args    []string
		want    protocol.Request
		wantErr bool
	}{
		{[]string{"play", "song.mp3"}, protocol.Request{Command: "play", Path: abs}, false},
		{[]string{"stop"}, protocol.Request{Command: "stop"}, false},
		{[]string{"tone"}, protocol.Request{Command: "tone", Freq: 440, Millis: 3000}, false},
		{[]string{"tone", "880", "500"}, protocol.Request{Command: "tone", Freq: 880, Millis: 500}, false},
		{[]string{"play"}, protocol.Request{}, true},
		{[]string{"tone", "loud"}, protocol.Request{}, true},
		{[]string{"rewind"}, protocol.Request{}, true},
	}

	for _, tt := range tests {
		got, err := buildRequest(tt.args)
		if tt.wantErr {
			if err == nil {
				t.Errorf("%v: expected error", tt.args)
			}
			continue
		}
		if err != nil {
			t.Errorf("%v: unexpected error %v", tt.args, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%v: expected %+v, got %+v", tt.args, tt.want, got)
		}
	}
}

func TestPickPlayer(t *testing.T) {
	den := &discovery.Instance{Name: "den", Host: "10.0.0.2", Port: 8928, Path: "/control"}
	attic := &discovery.Instance{Name: "attic", Host: "10.0.0.3", Port: 8928, Path: "/control"}

	if _, err := pickPlayer(nil, ""); err == nil {
		t.Error("expected error with no players")
	}

	url, err := pickPlayer([]*discovery.Instance{den}, "")
	if err != nil || url != "ws://10.0.0.2:8928/control" {
		t.Errorf("expected single player url, got %q (%v)", url, err)
	}

	if _, err := pickPlayer([]*discovery.Instance{den, attic}, ""); err == nil {
		t.Error("expected ambiguity error")
	}

	url, err = pickPlayer([]*discovery.Instance{den, attic}, "attic")
	if err != nil || url != "ws://10.0.0.3:8928/control" {
		t.Errorf("expected attic url, got %q (%v)", url, err)
	}

	if _, err := pickPlayer([]*discovery.Instance{den}, "kitchen"); err == nil {
		t.Error("expected not-found error")
	}
}
