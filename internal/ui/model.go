// Package ui renders the finder as a Bubble Tea program. It only displays the
// state owned by the query controller.
package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/actuallystonmai/newsletter-finder/internal/controller"
)

const (
	title       = "AI Newsletter Finder"
	placeholder = "Find the best newsletters..."
	buttonIdle  = "Find Newsletters"
	buttonBusy  = "Searching..."
)

// settledMsg is delivered when a submission started by the model settles.
type settledMsg struct{}

// Model represents the finder UI
type Model struct {
	ctx     context.Context
	ctrl    *controller.Controller
	input   textinput.Model
	spinner spinner.Model
	styles  *Styles
	width   int
}

// NewModel creates the finder UI around ctrl. ctx bounds every request the UI
// starts.
func NewModel(ctx context.Context, ctrl *controller.Controller) *Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 200
	ti.Width = 40
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &Model{
		ctx:     ctx,
		ctrl:    ctrl,
		input:   ti,
		spinner: sp,
		styles:  NewStyles(),
	}
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			return m, m.submit()
		}

	case settledMsg:
		return m, nil

	case spinner.TickMsg:
		if !m.ctrl.Snapshot().IsLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.ctrl.SetQuery(m.input.Value())
	return m, cmd
}

// submit is a no-op while a request is in flight, like a disabled button.
func (m *Model) submit() tea.Cmd {
	if m.ctrl.Snapshot().IsLoading {
		return nil
	}

	m.ctrl.SetQuery(m.input.Value())
	done := m.ctrl.SubmitQuery(m.ctx)

	if !m.ctrl.Snapshot().IsLoading {
		// Rejected before dispatch; nothing to wait for.
		return nil
	}
	return tea.Batch(waitForSettle(done), m.spinner.Tick)
}

func waitForSettle(done <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-done
		return settledMsg{}
	}
}

// View renders the UI
func (m *Model) View() string {
	state := m.ctrl.Snapshot()

	var b strings.Builder
	b.WriteString(m.styles.Title.Render(title))
	b.WriteString("\n")
	b.WriteString(m.styles.Input.Render(m.input.View()))
	b.WriteString("\n")

	if state.IsLoading {
		b.WriteString(m.styles.ButtonBusy.Render(m.spinner.View() + " " + buttonBusy))
	} else {
		b.WriteString(m.styles.Button.Render(buttonIdle))
	}
	b.WriteString("\n")

	if state.ErrorMessage != "" {
		b.WriteString(m.styles.Error.Render(state.ErrorMessage))
		b.WriteString("\n")
	}

	cards := make([]string, 0, len(state.Results))
	for _, rec := range state.Results {
		cards = append(cards, m.styles.Card.Render(
			m.styles.CardTitle.Render(rec.Title)+"\n"+m.styles.CardBody.Render(rec.Description),
		))
	}
	if len(cards) > 0 {
		b.WriteString(lipgloss.JoinVertical(lipgloss.Left, cards...))
		b.WriteString("\n")
	}

	b.WriteString(m.styles.Help.Render("enter: search • esc: quit"))

	return m.styles.Main.Render(b.String())
}
