// ABOUTME: mDNS advertisement and browsing for wavecast remote control
// ABOUTME: Instances advertise _wavecast._tcp with the websocket path in TXT
package discovery

import (
	"context"
	"fmt"
	"log"
	"net"
	"strings"
	"time"

	"github.com/hashicorp/mdns"
)

// ServiceType is the mDNS service advertised by players with remote control
const ServiceType = "_wavecast._tcp"

// Config holds discovery configuration
type Config struct {
	ServiceName string
	Port        int
	Path        string   // websocket path, advertised as path=<Path>
	Info        []string // extra TXT records
}

// Manager handles mDNS operations
type Manager struct {
	config    Config
	ctx       context.Context
	cancel    context.CancelFunc
	instances chan *Instance
}

// Instance describes a discovered player
type Instance struct {
	Name string
	Host string
	Port int
	Path string
}

// URL returns the websocket URL of the instance's control endpoint
func (i Instance) URL() string {
	path := i.Path
	if path == "" {
		path = "/control"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return fmt.Sprintf("ws://%s%s", net.JoinHostPort(i.Host, fmt.Sprint(i.Port)), path)
}

// NewManager creates a discovery manager
func NewManager(config Config) *Manager {
	ctx, cancel := context.WithCancel(context.Background())

	return &Manager{
		config:    config,
		ctx:       ctx,
		cancel:    cancel,
		instances: make(chan *Instance, 10),
	}
}

// txtRecords returns the TXT records advertised for this instance
func (m *Manager) txtRecords() []string {
	txt := []string{"path=" + m.config.Path}
	return append(txt, m.config.Info...)
}

// Advertise advertises this player via mDNS until Stop is called
func (m *Manager) Advertise() error {
	ips, err := getLocalIPs()
	if err != nil {
		return fmt.Errorf("failed to get local IPs: %w", err)
	}

	service, err := mdns.NewMDNSService(
		m.config.ServiceName,
		ServiceType,
		"",
		"",
		m.config.Port,
		ips,
		m.txtRecords(),
	)
	if err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}

	server, err := mdns.NewServer(&mdns.Config{Zone: service})
	if err != nil {
		return fmt.Errorf("failed to create mdns server: %w", err)
	}

	log.Printf("Advertising mDNS service: %s on port %d (type: %s)", m.config.ServiceName, m.config.Port, ServiceType)

	go func() {
		<-m.ctx.Done()
		server.Shutdown()
	}()

	return nil
}

// Browse searches for players in the background, sending them to Instances()
func (m *Manager) Browse() error {
	go m.browseLoop()
	return nil
}

// browseLoop continuously browses for players
func (m *Manager) browseLoop() {
	for {
		select {
		case <-m.ctx.Done():
			return
		default:
		}

		entries := make(chan *mdns.ServiceEntry, 10)

		go func() {
			for entry := range entries {
				inst := instanceFromEntry(entry)
				log.Printf("Discovered player: %s at %s:%d", inst.Name, inst.Host, inst.Port)

				select {
				case m.instances <- inst:
				case <-m.ctx.Done():
					return
				}
			}
		}()

		params := &mdns.QueryParam{
			Service: ServiceType,
			Domain:  "local",
			Timeout: 3 * time.Second,
			Entries: entries,
		}

		if err := mdns.Query(params); err != nil {
			log.Printf("mDNS query failed: %v", err)
		}
		close(entries)
	}
}

// instanceFromEntry converts an mDNS answer
func instanceFromEntry(entry *mdns.ServiceEntry) *Instance {
	inst := &Instance{
		Name: strings.TrimSuffix(entry.Name, "."+ServiceType+".local."),
		Port: entry.Port,
		Path: parseTXT(entry.InfoFields)["path"],
	}
	if entry.AddrV4 != nil {
		inst.Host = entry.AddrV4.String()
	} else if entry.AddrV6 != nil {
		inst.Host = entry.AddrV6.String()
	} else {
		inst.Host = strings.TrimSuffix(entry.Host, ".")
	}
	return inst
}

// parseTXT splits key=value TXT records
func parseTXT(fields []string) map[string]string {
	out := make(map[string]string, len(fields))
	for _, f := range fields {
		k, v, _ := strings.Cut(f, "=")
		if k != "" {
			out[k] = v
		}
	}
	return out
}

// Instances returns the channel of discovered players
func (m *Manager) Instances() <-chan *Instance {
	return m.instances
}

// Stop stops advertising and browsing
func (m *Manager) Stop() {
	m.cancel()
}

// getLocalIPs returns local IP addresses
func getLocalIPs() ([]net.IP, error) {
	var ips []net.IP

	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, err
	}

	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}

		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}

		for _, addr := range addrs {
			if ipnet, ok := addr.(*net.IPNet); ok && !ipnet.IP.IsLoopback() {
				if ipnet.IP.To4() != nil {
					ips = append(ips, ipnet.IP)
				}
			}
		}
	}

	return ips, nil
}
