package tracker

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLookup struct {
	calls   int
	details *ReportDetails
	err     error
}

func (s *stubLookup) Fetch(_ context.Context, _ string) (*ReportDetails, error) {
	s.calls++
	return s.details, s.err
}

func pressEnter(m Model) (Model, tea.Cmd) {
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return next.(Model), cmd
}

// flatten executes cmd and returns the produced messages, expanding one
// level of tea.Batch.
func flatten(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		return []tea.Msg{msg}
	}
	var msgs []tea.Msg
	for _, c := range batch {
		if c != nil {
			msgs = append(msgs, c())
		}
	}
	return msgs
}

func deliverResult(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	for _, msg := range flatten(cmd) {
		if result, ok := msg.(resultMsg); ok {
			next, _ := m.Update(result)
			return next.(Model)
		}
	}
	t.Fatal("no lookup result produced")
	return m
}

func TestSubmitBlankID_NoNetworkCall(t *testing.T) {
	stub := &stubLookup{}

	for _, id := range []string{"", "   ", "\t"} {
		m := New(context.Background(), stub)
		m.input.SetValue(id)

		m, cmd := pressEnter(m)

		assert.Nil(t, cmd, "id %q must not fire a lookup", id)
		assert.Equal(t, stateError, m.state)
		assert.Equal(t, MsgBlankID, m.ErrMessage())
	}
	assert.Equal(t, 0, stub.calls)
}

func TestLookupFailure_GenericMessage(t *testing.T) {
	// The server's own 404 body text never reaches the user.
	stub := &stubLookup{err: errors.New(`{"error":"Report not found"}`)}
	m := New(context.Background(), stub)
	m.input.SetValue("SR-1001")

	m, cmd := pressEnter(m)
	require.NotNil(t, cmd)
	assert.Equal(t, stateSubmitting, m.state)

	m = deliverResult(t, m, cmd)

	assert.Equal(t, stateError, m.state)
	assert.Equal(t, MsgLookupFailed, m.ErrMessage())
	assert.Nil(t, m.Details())
	assert.Equal(t, 1, stub.calls)
}

func TestLookupSuccess(t *testing.T) {
	details := &ReportDetails{
		ReportID:  "SR-1001",
		Status:    "pending",
		Title:     "Streetlight out",
		Location:  "Main St",
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	stub := &stubLookup{details: details}
	m := New(context.Background(), stub)
	m.input.SetValue("SR-1001")

	m, cmd := pressEnter(m)
	m = deliverResult(t, m, cmd)

	assert.Equal(t, stateSuccess, m.state)
	assert.Equal(t, details, m.Details())
	assert.Empty(t, m.ErrMessage())
}

func TestSubmitClearsPriorState(t *testing.T) {
	stub := &stubLookup{details: &ReportDetails{ReportID: "SR-1001", Status: "resolved"}}
	m := New(context.Background(), stub)

	// First submission fails validation.
	m, _ = pressEnter(m)
	require.Equal(t, MsgBlankID, m.ErrMessage())

	// Error survives editing; it clears only when the next submit begins.
	m.input.SetValue("SR-1001")
	assert.Equal(t, MsgBlankID, m.ErrMessage())

	m, cmd := pressEnter(m)
	assert.Empty(t, m.ErrMessage())
	assert.Nil(t, m.Details())

	m = deliverResult(t, m, cmd)
	assert.Equal(t, stateSuccess, m.state)
}

func TestSecondSubmitIgnoredWhileInFlight(t *testing.T) {
	stub := &stubLookup{details: &ReportDetails{ReportID: "SR-1001"}}
	m := New(context.Background(), stub)
	m.input.SetValue("SR-1001")

	m, cmd := pressEnter(m)
	require.NotNil(t, cmd)

	// Run the in-flight lookup without delivering its result, so the
	// model is still Submitting when the second Enter arrives.
	flatten(cmd)

	_, second := pressEnter(m)
	assert.Nil(t, second)
	assert.Equal(t, 1, stub.calls)
}

func TestLateResolutionDiscarded(t *testing.T) {
	m := New(context.Background(), &stubLookup{})

	next, cmd := m.Update(resultMsg{details: &ReportDetails{ReportID: "SR-1001"}})
	m = next.(Model)

	assert.Nil(t, cmd)
	assert.Equal(t, stateIdle, m.state)
	assert.Nil(t, m.Details())
}

func TestStatusStyle_CaseInsensitiveWithNeutralFallback(t *testing.T) {
	resolved := statusStyles["resolved"].GetForeground()
	assert.Equal(t, resolved, StatusStyle("RESOLVED").GetForeground())
	assert.Equal(t, resolved, StatusStyle("Resolved").GetForeground())

	neutral := neutralStyle.GetForeground()
	assert.Equal(t, neutral, StatusStyle("archived").GetForeground())
	assert.Equal(t, neutral, StatusStyle("").GetForeground())
	assert.NotEqual(t, neutral, StatusStyle("pending").GetForeground())
}

func TestDetailView_DashForMissingFields(t *testing.T) {
	m := New(context.Background(), &stubLookup{})
	m.state = stateSuccess
	m.details = &ReportDetails{
		ReportID:  "SR-1001",
		Status:    "in_progress",
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	view := m.detailView()
	assert.Contains(t, view, "in progress")
	assert.Contains(t, view, "SR-1001")
	assert.Contains(t, view, "-")
}
