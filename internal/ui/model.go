// ABOUTME: Bubbletea model for the player TUI
// ABOUTME: Defines application state, key handling and the animated view
package ui

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/Resonate-Protocol/wavecast/internal/command"
	"github.com/Resonate-Protocol/wavecast/internal/version"
	"github.com/Resonate-Protocol/wavecast/internal/visual"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Enqueuer accepts commands for the audio worker
type Enqueuer interface {
	Enqueue(cmd command.Command)
}

// chrome is the number of lines the view uses around the canvas
const chrome = 9

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250"))

	waveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().Faint(true)
)

// Model represents the TUI state
type Model struct {
	queue      Enqueuer
	picker     Picker
	volumeCtrl *VolumeControl

	// Selection
	selected string
	picking  bool

	// Status line
	status    string
	statusErr bool

	// Playback (from StatusMsg)
	playing string
	format  string
	peak    float64
	queued  int

	// Controls
	volume int
	muted  bool

	// Animation
	anim          visual.Animation
	frameInterval time.Duration
	mode          visual.Mode
	frame         string

	// Dimensions
	width  int
	height int

	quitting bool
}

type tickMsg time.Time

// fileSelectedMsg carries the picker result back into the event loop
type fileSelectedMsg struct {
	path string
	err  error
}

// EventMsg reports a command outcome from the audio worker
type EventMsg command.Event

// StatusMsg updates playback state
type StatusMsg struct {
	Playing string
	Format  string
	Peak    float64
	Queued  int
}

// Init starts the frame ticker
func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.frameInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.frame = m.renderFrame()

	case tickMsg:
		if m.anim.Advance(time.Time(msg)) {
			m.frame = m.renderFrame()
		}
		return m, m.tick()

	case fileSelectedMsg:
		m.applySelection(msg)

	case EventMsg:
		m.applyEvent(command.Event(msg))

	case StatusMsg:
		m.playing = msg.Playing
		m.format = msg.Format
		m.peak = msg.Peak
		m.queued = msg.Queued
	}

	return m, nil
}

// handleKey handles keyboard input
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		if m.volumeCtrl != nil {
			select {
			case m.volumeCtrl.Quit <- QuitMsg{}:
			default:
			}
		}
		return m, tea.Quit

	case "o":
		if m.picking || m.picker == nil {
			return m, nil
		}
		m.picking = true
		m.setStatus("Choosing file...", false)
		return m, m.pickFile()

	case "p", "enter":
		if m.selected == "" {
			m.setStatus("No file selected (press o to open)", true)
			return m, nil
		}
		m.enqueue(command.Play(m.selected))
		m.setStatus("Queued play: "+filepath.Base(m.selected), false)

	case "s":
		m.enqueue(command.Stop())
		m.setStatus("Queued stop", false)

	case "w":
		m.mode = visual.ModeWave
		m.frame = m.renderFrame()

	case "c":
		m.mode = visual.ModeCircle
		m.frame = m.renderFrame()

	case "up":
		if m.volume < 100 {
			m.volume = min(m.volume+5, 100)
			m.sendVolume()
		}

	case "down":
		if m.volume > 0 {
			m.volume = max(m.volume-5, 0)
			m.sendVolume()
		}

	case "m":
		m.muted = !m.muted
		m.sendVolume()
	}

	return m, nil
}

// pickFile runs the picker off the event loop
func (m Model) pickFile() tea.Cmd {
	picker := m.picker
	return func() tea.Msg {
		path, err := picker.Pick()
		return fileSelectedMsg{path: path, err: err}
	}
}

// applySelection stores the picked path. Cancelling clears the previous selection.
func (m *Model) applySelection(msg fileSelectedMsg) {
	m.picking = false

	switch {
	case errors.Is(msg.err, ErrCanceled):
		m.selected = ""
		m.setStatus("No file selected", false)
	case msg.err != nil:
		log.Printf("File picker error: %v", msg.err)
		m.selected = ""
		m.setStatus("File picker failed: "+msg.err.Error(), true)
	default:
		m.selected = msg.path
		m.setStatus("Selected: "+filepath.Base(msg.path), false)
	}
}

// applyEvent turns a worker outcome into the status line
func (m *Model) applyEvent(ev command.Event) {
	switch ev.Kind {
	case command.EventPlaying:
		m.setStatus("Playing: "+ev.Title, false)
	case command.EventStopped:
		m.setStatus("Stopped", false)
	case command.EventFailed:
		m.setStatus(fmt.Sprintf("Could not play: %v", ev.Err), true)
	}
}

func (m *Model) enqueue(cmd command.Command) {
	if m.queue != nil {
		m.queue.Enqueue(cmd)
	}
}

func (m *Model) setStatus(s string, isErr bool) {
	m.status = s
	m.statusErr = isErr
}

// sendVolume forwards the volume state without blocking the event loop
func (m Model) sendVolume() {
	if m.volumeCtrl == nil {
		return
	}
	select {
	case m.volumeCtrl.Changes <- VolumeChangeMsg{Volume: m.volume, Muted: m.muted}:
	default:
		log.Printf("Warning: volume change dropped (channel full)")
	}
}

// canvasSize returns the canvas dimensions in cells for the window
func (m Model) canvasSize() (int, int) {
	cols := max(m.width-2, 0)
	rows := max(m.height-chrome, 4)
	return cols, rows
}

func (m Model) renderFrame() string {
	if m.width == 0 {
		return ""
	}
	cols, rows := m.canvasSize()
	return visual.Render(m.mode, cols, rows, m.anim.Phase)
}

// View renders the TUI
func (m Model) View() string {
	if m.quitting {
		return "Shutting down...\n"
	}
	if m.width == 0 {
		return "Loading..."
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Audio Visualizer"))
	b.WriteString(helpStyle.Render("  " + version.String()))
	b.WriteString("\n\n")

	b.WriteString(headerStyle.Render("File:    "))
	if m.selected == "" {
		b.WriteString(valueStyle.Render("(none)"))
	} else {
		b.WriteString(valueStyle.Render(truncate(m.selected, max(m.width-10, 10))))
	}
	b.WriteString("\n")

	b.WriteString(headerStyle.Render("Playing: "))
	if m.playing == "" {
		b.WriteString(valueStyle.Render("(idle)"))
	} else {
		b.WriteString(valueStyle.Render(fmt.Sprintf("%s  %s", m.playing, m.format)))
		if m.queued > 0 {
			b.WriteString(valueStyle.Render(fmt.Sprintf("  +%d queued", m.queued)))
		}
	}
	b.WriteString("\n")

	muteIcon := ""
	if m.muted {
		muteIcon = " 🔇"
	}
	b.WriteString(headerStyle.Render("Volume:  "))
	b.WriteString(valueStyle.Render(fmt.Sprintf("[%s] %d%%%s", renderBar(m.volume, 100, 10), m.volume, muteIcon)))
	b.WriteString(headerStyle.Render("   Level: "))
	b.WriteString(valueStyle.Render(fmt.Sprintf("[%s]", renderBar(int(m.peak*100), 100, 10))))
	b.WriteString("\n")

	if m.statusErr {
		b.WriteString(errorStyle.Render(m.status))
	} else {
		b.WriteString(valueStyle.Render(m.status))
	}
	b.WriteString("\n\n")

	b.WriteString(waveStyle.Render(m.frame))
	b.WriteString("\n\n")

	b.WriteString(helpStyle.Render("o:Open  p:Play  s:Stop  w/c:Wave/Circle  ↑/↓:Volume  m:Mute  q:Quit"))

	return b.String()
}

// Utility functions
func renderBar(value, max, width int) string {
	filled := (value * width) / max
	var bar strings.Builder
	for i := 0; i < width; i++ {
		if i < filled {
			bar.WriteString("█")
		} else {
			bar.WriteString("░")
		}
	}
	return bar.String()
}

func truncate(s string, length int) string {
	r := []rune(s)
	if len(r) <= length {
		return s
	}
	return "..." + string(r[len(r)-length+3:])
}
