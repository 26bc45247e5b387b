// ABOUTME: Tests for mDNS discovery
// ABOUTME: Tests manager setup, TXT parsing and instance URLs
package discovery

import (
	"net"
	"testing"

	"github.com/hashicorp/mdns"
)

func TestNewManager(t *testing.T) {
	config := Config{
		ServiceName: "Test Player",
		Port:        8928,
		Path:        "/control",
		Info:        []string{"version=1"},
	}

	mgr := NewManager(config)
	if mgr == nil {
		t.Fatal("expected manager to be created")
	}
	defer mgr.Stop()

	txt := mgr.txtRecords()
	if len(txt) != 2 || txt[0] != "path=/control" || txt[1] != "version=1" {
		t.Errorf("unexpected TXT records %v", txt)
	}
	if mgr.Instances() == nil {
		t.Error("instances channel should not be nil")
	}
}

func TestParseTXT(t *testing.T) {
	got := parseTXT([]string{"path=/control", "flag", "=ignored", "k=a=b"})

	if got["path"] != "/control" {
		t.Errorf("expected path, got %q", got["path"])
	}
	if v, ok := got["flag"]; !ok || v != "" {
		t.Errorf("expected empty flag value, got %q (present=%v)", v, ok)
	}
	if got["k"] != "a=b" {
		t.Errorf("expected value split on first '=', got %q", got["k"])
	}
	if _, ok := got[""]; ok {
		t.Error("empty key should be skipped")
	}
}

func TestInstanceURL(t *testing.T) {
	tests := []struct {
		inst Instance
		want string
	}{
		{Instance{Host: "192.168.1.5", Port: 8928, Path: "/control"}, "ws://192.168.1.5:8928/control"},
		{Instance{Host: "192.168.1.5", Port: 8928}, "ws://192.168.1.5:8928/control"},
		{Instance{Host: "::1", Port: 9000, Path: "ctl"}, "ws://[::1]:9000/ctl"},
	}

	for _, tt := range tests {
		if got := tt.inst.URL(); got != tt.want {
			t.Errorf("expected %q, got %q", tt.want, got)
		}
	}
}

func TestInstanceFromEntry(t *testing.T) {
	entry := &mdns.ServiceEntry{
		Name:       "den._wavecast._tcp.local.",
		Host:       "den.local.",
		AddrV4:     net.ParseIP("10.0.0.7"),
		Port:       8928,
		InfoFields: []string{"path=/control"},
	}

	inst := instanceFromEntry(entry)
	if inst.Name != "den" {
		t.Errorf("expected name den, got %q", inst.Name)
	}
	if inst.Host != "10.0.0.7" || inst.Port != 8928 || inst.Path != "/control" {
		t.Errorf("unexpected instance %+v", inst)
	}

	entry.AddrV4 = nil
	if inst := instanceFromEntry(entry); inst.Host != "den.local" {
		t.Errorf("expected hostname fallback, got %q", inst.Host)
	}
}
