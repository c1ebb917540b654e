// Package tui renders a running teleoperation session in the terminal.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/hapticlab/teleop/internal/session"
)

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	green   = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
)

const historyLen = 120

// Model is the bubbletea model for a live session view. Samples arrive on
// a channel fed by session.RunWithCallback in a separate goroutine.
type Model struct {
	cfg     session.Config
	samples <-chan session.Sample

	paused bool
	done   bool

	last         session.Sample
	received     int
	suppressed   int
	masterForces []float64
	slaveForces  []float64
	energies     []float64

	width  int
	height int
}

func New(cfg session.Config, samples <-chan session.Sample) *Model {
	return &Model{
		cfg:          cfg,
		samples:      samples,
		masterForces: make([]float64, 0, historyLen),
		slaveForces:  make([]float64, 0, historyLen),
		energies:     make([]float64, 0, historyLen),
		width:        80,
		height:       24,
	}
}

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(33*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *Model) Init() tea.Cmd { return tick() }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tickMsg:
		if !m.paused {
			m.drain()
		}
		if m.done {
			return m, tea.Quit
		}
		return m, tick()
	}
	return m, nil
}

// drain consumes every sample queued since the last frame.
func (m *Model) drain() {
	for {
		select {
		case smp, ok := <-m.samples:
			if !ok {
				m.done = true
				return
			}
			m.last = smp
			m.received++
			if smp.Suppressed {
				m.suppressed++
			}
			m.push(&m.masterForces, float64(smp.MasterForce.Norm()))
			m.push(&m.slaveForces, float64(smp.SlaveForce.Norm()))
			m.push(&m.energies, smp.Energy)
		default:
			return
		}
	}
}

func (m *Model) push(hist *[]float64, v float64) {
	*hist = append(*hist, v)
	if len(*hist) > historyLen {
		*hist = (*hist)[1:]
	}
}

func (m *Model) View() string {
	var b strings.Builder

	title := cyan.Render(fmt.Sprintf("teleop live — %s", m.cfg.Scheme))
	status := green.Render("running")
	if m.paused {
		status = yellow.Render("paused")
	}
	if m.done {
		status = dim.Render("finished")
	}
	b.WriteString(fmt.Sprintf("%s  %s\n\n", title, status))

	b.WriteString(fmt.Sprintf("%s t=%s  tick %s  suppressed %s\n\n",
		dim.Render("time"),
		white.Render(fmt.Sprintf("%7.3fs", m.last.T)),
		white.Render(fmt.Sprintf("%d", m.received)),
		white.Render(fmt.Sprintf("%d", m.suppressed)),
	))

	plotWidth := m.width - 10
	if plotWidth < 20 {
		plotWidth = 20
	}

	if len(m.masterForces) > 1 {
		b.WriteString(magenta.Render("master force ‖f‖") + "\n")
		b.WriteString(asciigraph.Plot(m.masterForces,
			asciigraph.Height(5),
			asciigraph.Width(plotWidth),
		))
		b.WriteString("\n\n")
	}
	if len(m.slaveForces) > 1 {
		b.WriteString(cyan.Render("slave force ‖f‖") + "\n")
		b.WriteString(asciigraph.Plot(m.slaveForces,
			asciigraph.Height(5),
			asciigraph.Width(plotWidth),
		))
		b.WriteString("\n\n")
	}

	if m.cfg.Scheme == session.SchemeTDPA {
		b.WriteString(fmt.Sprintf("%s %s   %s %s\n",
			dim.Render("energy"),
			white.Render(fmt.Sprintf("%9.5f", m.last.Energy)),
			dim.Render("alpha"),
			white.Render(fmt.Sprintf("%9.5f", m.last.Alpha)),
		))
	}

	b.WriteString(dim.Render("\n[space] pause  [q] quit\n"))
	return b.String()
}

// Run drives a session under the live view until it completes or the user
// quits.
func Run(s *session.Session) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	samples := make(chan session.Sample, 256)
	errc := make(chan error, 1)

	go func() {
		defer close(samples)
		errc <- s.RunWithCallback(ctx, func(smp session.Sample) bool {
			select {
			case samples <- smp:
				return true
			case <-ctx.Done():
				return false
			}
		})
	}()

	p := tea.NewProgram(New(s.Config(), samples))
	_, uiErr := p.Run()

	// Unblock the producer if the user quit early, then collect its error.
	cancel()
	for range samples {
	}
	runErr := <-errc

	if uiErr != nil {
		return uiErr
	}
	if errors.Is(runErr, context.Canceled) {
		return nil
	}
	return runErr
}
