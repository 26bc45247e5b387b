// ABOUTME: TUI initialization and control
// ABOUTME: Wraps bubbletea program for the player UI
package ui

import (
	"time"

	"github.com/Resonate-Protocol/wavecast/internal/visual"
	tea "github.com/charmbracelet/bubbletea"
)

// VolumeChangeMsg carries a volume or mute change from the UI
type VolumeChangeMsg struct {
	Volume int
	Muted  bool
}

// QuitMsg signals that the user asked to quit
type QuitMsg struct{}

// VolumeControl holds channels for volume control communication
type VolumeControl struct {
	Changes chan VolumeChangeMsg
	Quit    chan QuitMsg
}

// NewVolumeControl creates a new volume control handler
func NewVolumeControl() *VolumeControl {
	return &VolumeControl{
		Changes: make(chan VolumeChangeMsg, 10),
		Quit:    make(chan QuitMsg, 1),
	}
}

// Options configures a new model
type Options struct {
	Queue         Enqueuer
	Picker        Picker
	VolumeControl *VolumeControl
	Volume        int
	FrameInterval time.Duration
	Selected      string // preselected file
	Now           time.Time
}

// NewModel creates a new TUI model
func NewModel(opts Options) Model {
	if opts.FrameInterval <= 0 {
		opts.FrameInterval = visual.DefaultThreshold
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}

	anim := visual.NewAnimation(opts.Now)

	return Model{
		queue:         opts.Queue,
		picker:        opts.Picker,
		volumeCtrl:    opts.VolumeControl,
		volume:        opts.Volume,
		selected:      opts.Selected,
		anim:          *anim,
		frameInterval: opts.FrameInterval,
		status:        "Press o to choose an audio file",
	}
}

// Run creates the TUI program
func Run(opts Options, progOpts ...tea.ProgramOption) (*tea.Program, error) {
	progOpts = append([]tea.ProgramOption{tea.WithAltScreen()}, progOpts...)
	p := tea.NewProgram(NewModel(opts), progOpts...)
	return p, nil
}
