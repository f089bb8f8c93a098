package app

import (
	"context"
	"errors"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	achievementdto "focusdrive/internal/modules/achievement/dto"
	drivedto "focusdrive/internal/modules/drive/dto"
	focusdto "focusdrive/internal/modules/focus/dto"
)

type fakeFocus struct{}

func (fakeFocus) Status(context.Context) (focusdto.StatusOutput, error) {
	return focusdto.StatusOutput{}, nil
}

func (fakeFocus) Authorize(context.Context) (focusdto.StatusOutput, error) {
	return focusdto.StatusOutput{}, nil
}

func (fakeFocus) Start(context.Context, string, []string) (focusdto.StatusOutput, error) {
	return focusdto.StatusOutput{}, nil
}

func (fakeFocus) Stop(context.Context) (focusdto.StatusOutput, error) {
	return focusdto.StatusOutput{}, nil
}

type arrivals struct {
	mu    sync.Mutex
	seen  []string
	check error
}

func (a *arrivals) arrived(_ context.Context, ended drivedto.EndOutput) (achievementdto.CheckOutput, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.seen = append(a.seen, ended.Session.ID)
	return achievementdto.CheckOutput{Checked: true}, a.check
}

func (a *arrivals) count() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.seen)
}

// collect runs cmd and any batch it expands to, returning arrival messages.
// Other commands are skipped because they reach views without fakes.
func collect(cmd tea.Cmd) []arrivedMsg {
	if cmd == nil {
		return nil
	}
	var out []arrivedMsg
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			out = append(out, collect(c)...)
		}
	case arrivedMsg:
		out = append(out, msg)
	}
	return out
}

func ended(id, status string) drivedto.EndOutput {
	return drivedto.EndOutput{Session: drivedto.SessionOutput{ID: id, Status: status, DestinationName: "Big Sur"}}
}

func TestArrivalHandledOncePerSession(t *testing.T) {
	t.Parallel()
	rec := &arrivals{}
	var m tea.Model = NewModel(Deps{Focus: fakeFocus{}, Arrived: rec.arrived})
	out := ended("session-1", "completed")

	m, cmd := m.Update(tickDoneMsg{snap: drivedto.Snapshot{Ended: &out}})
	msgs := collect(cmd)
	if len(msgs) != 1 || rec.count() != 1 {
		t.Fatalf("the finishing tick must trigger arrival, got %d messages", len(msgs))
	}
	if m.(Model).ticking {
		t.Fatal("ticking must stop once the drive ended")
	}

	m, cmd = m.Update(snapshotMsg{snap: drivedto.Snapshot{Ended: &out}})
	collect(cmd)
	m, cmd = m.Update(endDoneMsg{out: out})
	collect(cmd)
	if rec.count() != 1 {
		t.Fatalf("arrival ran %d times for one session", rec.count())
	}

	next := ended("session-2", "abandoned")
	_, cmd = m.Update(endDoneMsg{out: next})
	collect(cmd)
	if rec.count() != 2 || rec.seen[1] != "session-2" {
		t.Fatalf("a new session must arrive again: %v", rec.seen)
	}
}

func TestArrivalStatus(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		msg  arrivedMsg
		want string
	}{
		{"completed", arrivedMsg{ended: ended("s", "completed")}, "arrived at Big Sur"},
		{"abandoned", arrivedMsg{ended: ended("s", "abandoned")}, "drive ended"},
		{"check failed", arrivedMsg{ended: ended("s", "completed"), err: errors.New("database is locked")}, "achievements: database is locked"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			m, _ := NewModel(Deps{Focus: fakeFocus{}}).Update(tc.msg)
			if got := m.(Model).status; got != tc.want {
				t.Fatalf("status = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestEndFailureReported(t *testing.T) {
	t.Parallel()
	m, cmd := NewModel(Deps{Focus: fakeFocus{}}).Update(endDoneMsg{err: errors.New("no active session")})
	if cmd != nil {
		t.Fatal("a failed end must not start the arrival flow")
	}
	if got := m.(Model).status; got != "end drive: no active session" {
		t.Fatalf("unexpected status %q", got)
	}
}
