package tracker

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Fixed user-facing messages. Every lookup failure collapses into the
// generic message; only the blank-id validation is distinguished.
const (
	MsgBlankID      = "Please enter a report ID"
	MsgLookupFailed = "Unable to find report. Please check the ID and try again."
)

type state int

const (
	stateIdle state = iota
	stateSubmitting
	stateSuccess
	stateError
)

// Lookup is satisfied by *Client; tests substitute their own.
type Lookup interface {
	Fetch(ctx context.Context, reportID string) (*ReportDetails, error)
}

type resultMsg struct {
	details *ReportDetails
	err     error
}

// Model is the tracker form: Idle until a submission, Submitting while
// exactly one lookup is in flight, then Success or Error.
type Model struct {
	state   state
	input   textinput.Model
	spinner spinner.Model
	client  Lookup
	ctx     context.Context

	details *ReportDetails
	errMsg  string
}

func New(ctx context.Context, client Lookup) Model {
	ti := textinput.New()
	ti.Placeholder = "Enter your report ID"
	ti.CharLimit = 64
	ti.Width = 32
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))

	return Model{
		state:   stateIdle,
		input:   ti,
		spinner: sp,
		client:  client,
		ctx:     ctx,
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			if m.state == stateSubmitting {
				// Submit control is disabled while a lookup is in flight.
				return m, nil
			}
			return m.submit()
		}

	case resultMsg:
		if m.state != stateSubmitting {
			// Late resolution after the form moved on; discard it.
			return m, nil
		}
		m.input.Focus()
		if msg.err != nil {
			m.state = stateError
			m.errMsg = MsgLookupFailed
			return m, nil
		}
		m.state = stateSuccess
		m.details = msg.details
		return m, nil

	case spinner.TickMsg:
		if m.state != stateSubmitting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.state == stateSubmitting {
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit clears any prior error/result first, unconditionally, then
// validates the id and fires the lookup.
func (m Model) submit() (tea.Model, tea.Cmd) {
	m.errMsg = ""
	m.details = nil

	reportID := strings.TrimSpace(m.input.Value())
	if reportID == "" {
		m.state = stateError
		m.errMsg = MsgBlankID
		return m, nil
	}

	m.state = stateSubmitting
	m.input.Blur()

	return m, tea.Batch(m.spinner.Tick, m.lookupCmd(reportID))
}

func (m Model) lookupCmd(reportID string) tea.Cmd {
	client, ctx := m.client, m.ctx
	return func() tea.Msg {
		details, err := client.Fetch(ctx, reportID)
		return resultMsg{details: details, err: err}
	}
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("Track Your Report"))
	b.WriteString("\n")
	b.WriteString(promptStyle.Render("Enter your report ID to check the current status and updates"))
	b.WriteString("\n\n")

	if m.state == stateSubmitting {
		b.WriteString(m.spinner.View() + " Searching...")
	} else {
		b.WriteString(m.input.View())
	}
	b.WriteString("\n")

	if m.state == stateError {
		b.WriteString("\n" + errorStyle.Render(m.errMsg) + "\n")
	}

	if m.state == stateSuccess && m.details != nil {
		b.WriteString("\n" + m.detailView())
	}

	b.WriteString("\n" + promptStyle.Render("enter: track · esc: quit") + "\n")
	return b.String()
}

func (m Model) detailView() string {
	d := m.details
	rows := []string{
		infoRow("Status", strings.ReplaceAll(d.Status, "_", " "), StatusStyle(d.Status)),
		infoRow("Report ID", d.ReportID, neutralStyle),
		infoRow("Submitted On", d.CreatedAt.Local().Format("1/2/2006"), neutralStyle),
		infoRow("Title", d.Title, neutralStyle),
		infoRow("Location", d.Location, neutralStyle),
		infoRow("Description", d.Description, neutralStyle),
	}

	body := headerStyle.Render("Report Details") + "\n\n" + strings.Join(rows, "\n")
	return boxStyle.Render(body)
}

// infoRow renders a label/value pair; empty values show a dash.
func infoRow(label, value string, style lipgloss.Style) string {
	if value == "" {
		value = "-"
	}
	return labelStyle.Render(label) + style.Render(value)
}

// Details exposes the current result for callers embedding the model.
func (m Model) Details() *ReportDetails { return m.details }

// ErrMessage exposes the current error text, or "".
func (m Model) ErrMessage() string { return m.errMsg }
