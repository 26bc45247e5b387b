// ABOUTME: Main player application orchestration
// ABOUTME: Coordinates the command queue, audio worker, sink, remote control and UI
package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/Resonate-Protocol/wavecast/internal/command"
	"github.com/Resonate-Protocol/wavecast/internal/config"
	"github.com/Resonate-Protocol/wavecast/internal/player"
	"github.com/Resonate-Protocol/wavecast/internal/remote"
	"github.com/Resonate-Protocol/wavecast/internal/ui"
	"github.com/Resonate-Protocol/wavecast/pkg/audio/decode"
	"github.com/Resonate-Protocol/wavecast/pkg/audio/output"
	tea "github.com/charmbracelet/bubbletea"
)

// OutputChannels is the channel layout every stream is mixed to
const OutputChannels = 2

// startupTone mirrors the classic A4 test beep
const (
	startupToneFreq   = 440.0
	startupToneLength = 3 * time.Second
)

// Player represents the main player application
type Player struct {
	config config.Config
	queue  *command.Queue
	sink   *player.Sink
	worker *command.Worker
	remote *remote.Server

	tuiProg    *tea.Program
	volumeCtrl *ui.VolumeControl

	// Options for tests
	picker  ui.Picker
	tuiOpts []tea.ProgramOption
}

// Option customises a Player
type Option func(*Player)

// WithOutput replaces the configured audio backend
func WithOutput(out output.Output) Option {
	return func(p *Player) {
		p.sink = player.NewSink(out, p.config.SampleRate, OutputChannels)
	}
}

// WithPicker replaces the native file dialog
func WithPicker(picker ui.Picker) Option {
	return func(p *Player) {
		p.picker = picker
	}
}

// WithProgramOptions passes options to the bubbletea program
func WithProgramOptions(opts ...tea.ProgramOption) Option {
	return func(p *Player) {
		p.tuiOpts = append(p.tuiOpts, opts...)
	}
}

// New creates a new player
func New(cfg config.Config, opts ...Option) (*Player, error) {
	p := &Player{
		config: cfg,
		queue:  command.NewQueue(),
		picker: ui.ZenityPicker{
			Title:      "Audio Visualizer",
			Extensions: decode.Extensions(),
		},
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.sink == nil {
		out, err := output.New(cfg.Backend)
		if err != nil {
			return nil, fmt.Errorf("failed to create audio output: %w", err)
		}
		p.sink = player.NewSink(out, cfg.SampleRate, OutputChannels)
	}
	p.sink.SetVolume(cfg.Volume)

	p.worker = command.NewWorker(p.queue, p.sink, command.Config{
		PollInterval: cfg.PollInterval,
		SampleRate:   cfg.SampleRate,
		OnEvent:      p.onEvent,
	})

	if cfg.Remote.Addr != "" {
		p.remote = remote.New(remote.Config{
			Addr: cfg.Remote.Addr,
			Name: remoteName(cfg.Remote.Name),
			MDNS: cfg.Remote.MDNS,
		}, p.queue)
	}

	return p, nil
}

// remoteName returns the advertised name, defaulting to the hostname
func remoteName(name string) string {
	if name != "" {
		return name
	}
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}
	return fmt.Sprintf("%s-wavecast", hostname)
}

// Queue returns the command queue shared by the UI and remote control
func (p *Player) Queue() *command.Queue {
	return p.queue
}

// RemoteAddr returns the remote control listen address, or "" when disabled
func (p *Player) RemoteAddr() string {
	if p.remote == nil || p.remote.Addr() == nil {
		return ""
	}
	return p.remote.Addr().String()
}

// Run starts every component and blocks until ctx is cancelled or the user
// quits. Without a TUI and without remote control it returns once the
// queued commands have played out.
func (p *Player) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// The worker reports to the TUI, so the program must exist first
	if !p.config.NoTUI {
		if err := p.createTUI(); err != nil {
			p.sink.Close()
			return err
		}
	}

	go p.worker.Run(ctx)

	if p.remote != nil {
		if err := p.remote.Start(); err != nil {
			p.sink.Close()
			return fmt.Errorf("failed to start remote control: %w", err)
		}
	}

	if p.config.StartupTone {
		p.queue.Enqueue(command.Tone(startupToneFreq, startupToneLength))
	}

	var err error
	if p.config.NoTUI {
		if p.config.File != "" {
			p.queue.Enqueue(command.Play(p.config.File))
		}
		if p.remote == nil {
			p.waitIdle(ctx)
		} else {
			<-ctx.Done()
		}
	} else {
		err = p.runTUI(ctx)
	}

	cancel()
	p.shutdown()

	return err
}

// createTUI builds the bubbletea program
func (p *Player) createTUI() error {
	p.volumeCtrl = ui.NewVolumeControl()

	prog, err := ui.Run(ui.Options{
		Queue:         p.queue,
		Picker:        p.picker,
		VolumeControl: p.volumeCtrl,
		Volume:        p.config.Volume,
		FrameInterval: p.config.FrameInterval,
		Selected:      p.config.File,
	}, p.tuiOpts...)
	if err != nil {
		return fmt.Errorf("failed to start TUI: %w", err)
	}
	p.tuiProg = prog
	return nil
}

// runTUI runs the bubbletea program until quit or cancellation
func (p *Player) runTUI(ctx context.Context) error {
	prog := p.tuiProg

	go p.handleVolumeControl(ctx)
	go p.statsUpdateLoop(ctx)

	done := make(chan error, 1)
	go func() {
		_, err := prog.Run()
		done <- err
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("TUI failed: %w", err)
		}
		log.Printf("Received quit from TUI")
	case <-ctx.Done():
		log.Printf("Shutdown signal received")
		prog.Quit()
		<-done
	}

	return nil
}

// waitIdle returns once nothing is queued, executing or playing
func (p *Player) waitIdle(ctx context.Context) {
	ticker := time.NewTicker(p.config.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// Order matters: queue, then worker, then sink
			if p.queue.Len() == 0 && !p.worker.Busy() && p.sink.Empty() {
				log.Printf("Playback finished")
				return
			}
		}
	}
}

// shutdown stops remote control and releases the audio device
func (p *Player) shutdown() {
	if p.remote != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := p.remote.Stop(ctx); err != nil {
			log.Printf("Error stopping remote control: %v", err)
		}
		cancel()
	}

	if err := p.sink.Close(); err != nil {
		log.Printf("Error closing audio output: %v", err)
	}

	log.Printf("Player stopped")
}

// onEvent forwards worker outcomes to the TUI
func (p *Player) onEvent(ev command.Event) {
	if p.tuiProg != nil {
		p.tuiProg.Send(ui.EventMsg(ev))
	}
}

// handleVolumeControl processes volume changes from TUI
func (p *Player) handleVolumeControl(ctx context.Context) {
	for {
		select {
		case vol := <-p.volumeCtrl.Changes:
			log.Printf("Volume change: %d%%, muted=%v", vol.Volume, vol.Muted)
			p.sink.SetVolume(vol.Volume)
			p.sink.SetMuted(vol.Muted)
		case <-p.volumeCtrl.Quit:
			return
		case <-ctx.Done():
			return
		}
	}
}

// statsUpdateLoop periodically updates TUI with playback state
func (p *Player) statsUpdateLoop(ctx context.Context) {
	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			stats := p.sink.Stats()
			msg := ui.StatusMsg{
				Playing: stats.Playing,
				Peak:    stats.Peak,
				Queued:  stats.Queued,
			}
			if stats.Playing != "" {
				msg.Format = stats.Format.String()
			}
			p.tuiProg.Send(msg)
		case <-ctx.Done():
			return
		}
	}
}
