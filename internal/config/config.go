// ABOUTME: Application configuration from flags, environment and config file
// ABOUTME: Flags are bound through pflag into viper with WAVECAST_ env overrides
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/Resonate-Protocol/wavecast/pkg/audio/output"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override
const EnvPrefix = "WAVECAST"

// Config holds application configuration
type Config struct {
	Backend       string
	SampleRate    int
	PollInterval  time.Duration
	FrameInterval time.Duration
	Volume        int
	LogFile       string
	NoTUI         bool
	StartupTone   bool
	Remote        RemoteConfig

	// File is the optional audio file given as the first argument
	File string
	// ConfigFile is the config file that was read, if any
	ConfigFile string
}

// RemoteConfig holds the network control settings
type RemoteConfig struct {
	Addr string // empty disables remote control
	MDNS bool
	Name string
}

// ErrHelp is returned when -h or -help was requested
var ErrHelp = flag.ErrHelp

// viper key -> flag name
var bindings = map[string]string{
	"backend":        "backend",
	"sample_rate":    "sample-rate",
	"poll_interval":  "poll-interval",
	"frame_interval": "frame-interval",
	"volume":         "volume",
	"log_file":       "log-file",
	"no_tui":         "no-tui",
	"startup_tone":   "startup-tone",
	"remote.addr":    "remote-addr",
	"remote.mdns":    "mdns",
	"remote.name":    "name",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("backend", "oto")
	v.SetDefault("sample_rate", 48000)
	v.SetDefault("poll_interval", 100*time.Millisecond)
	v.SetDefault("frame_interval", 16*time.Millisecond)
	v.SetDefault("volume", 100)
	v.SetDefault("log_file", "wavecast.log")
	v.SetDefault("no_tui", false)
	v.SetDefault("startup_tone", false)
	v.SetDefault("remote.addr", "")
	v.SetDefault("remote.mdns", false)
	v.SetDefault("remote.name", "")
}

// newFlagSet defines the command-line flags
func newFlagSet(out io.Writer) (*flag.FlagSet, *string) {
	fs := flag.NewFlagSet("wavecast", flag.ContinueOnError)
	fs.SetOutput(out)
	fs.Usage = func() {
		fmt.Fprintf(out, "Usage: wavecast [flags] [file]\n\nFlags:\n")
		fs.PrintDefaults()
	}

	configFile := fs.String("config", "", "Config file (yaml, toml or json)")
	fs.String("backend", "oto", fmt.Sprintf("Audio backend (%s)", strings.Join(output.Backends, ", ")))
	fs.Int("sample-rate", 48000, "Output sample rate in Hz")
	fs.Duration("poll-interval", 100*time.Millisecond, "How often the audio worker checks for commands")
	fs.Duration("frame-interval", 16*time.Millisecond, "Animation frame interval")
	fs.Int("volume", 100, "Initial volume (0-100)")
	fs.String("log-file", "wavecast.log", "Log file path")
	fs.Bool("no-tui", false, "Disable TUI, play the file argument with streaming logs")
	fs.Bool("startup-tone", false, "Play a short 440Hz test tone at startup")
	fs.String("remote-addr", "", "Listen address for websocket remote control (e.g. :8928)")
	fs.Bool("mdns", false, "Advertise remote control via mDNS")
	fs.String("name", "", "Advertised name (default: hostname-wavecast)")

	return fs, configFile
}

// Load parses args (without the program name) and resolves the configuration.
// Precedence: flags, then WAVECAST_* environment, then config file, then defaults.
func Load(args []string, usageOut io.Writer) (Config, error) {
	fs, configFile := newFlagSet(usageOut)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return Config{}, ErrHelp
		}
		return Config{}, fmt.Errorf("invalid arguments: %w", err)
	}

	pfs := pflag.NewFlagSet("wavecast", pflag.ContinueOnError)
	pfs.AddGoFlagSet(fs)

	// Parsing happened on the stdlib set, so mark explicitly given flags
	fs.Visit(func(f *flag.Flag) {
		if pf := pfs.Lookup(f.Name); pf != nil {
			pf.Changed = true
		}
	})

	v := viper.New()
	setDefaults(v)

	for key, name := range bindings {
		if err := v.BindPFlag(key, pfs.Lookup(name)); err != nil {
			return Config{}, fmt.Errorf("failed to bind flag %s: %w", name, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	path := *configFile
	if path == "" {
		path = v.GetString("config")
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	cfg := Config{
		Backend:       v.GetString("backend"),
		SampleRate:    v.GetInt("sample_rate"),
		PollInterval:  v.GetDuration("poll_interval"),
		FrameInterval: v.GetDuration("frame_interval"),
		Volume:        v.GetInt("volume"),
		LogFile:       v.GetString("log_file"),
		NoTUI:         v.GetBool("no_tui"),
		StartupTone:   v.GetBool("startup_tone"),
		Remote: RemoteConfig{
			Addr: v.GetString("remote.addr"),
			MDNS: v.GetBool("remote.mdns"),
			Name: v.GetString("remote.name"),
		},
		File:       fs.Arg(0),
		ConfigFile: path,
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks value ranges
func (c Config) Validate() error {
	if !slices.Contains(output.Backends, c.Backend) {
		return fmt.Errorf("unknown backend %q (supported: %s)", c.Backend, strings.Join(output.Backends, ", "))
	}
	if c.SampleRate < 8000 || c.SampleRate > 192000 {
		return fmt.Errorf("sample rate %d out of range (8000-192000)", c.SampleRate)
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("poll interval must be positive, got %v", c.PollInterval)
	}
	if c.FrameInterval <= 0 {
		return fmt.Errorf("frame interval must be positive, got %v", c.FrameInterval)
	}
	if c.Volume < 0 || c.Volume > 100 {
		return fmt.Errorf("volume %d out of range (0-100)", c.Volume)
	}
	if c.Remote.MDNS && c.Remote.Addr == "" {
		return fmt.Errorf("mdns advertisement requires a remote address")
	}
	return nil
}
