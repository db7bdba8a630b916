package ui

import (
	"errors"
	"fmt"

	"github.com/atomicstack/tabdeck/internal/data/dispatcher"
	"github.com/atomicstack/tabdeck/internal/dnd"
	"github.com/atomicstack/tabdeck/internal/logging/events"
	"github.com/atomicstack/tabdeck/internal/workspace"
)

// collectResult turns the latest tab view result into a status line. Errors
// the layout absorbed are shown briefly; successful changes are only reported
// in verbose mode.
func (m *Model) collectResult() {
	res, ok := m.controller.TakeResult()
	if !ok {
		return
	}
	if res.Err != nil {
		events.Action.Error(res.Err)
		m.setError(describeError(res.Err))
		return
	}
	m.errMsg = ""
	if !res.Applied {
		return
	}
	info := describeResult(res)
	events.Action.Success(info)
	if m.verbose {
		m.setInfo(info)
	}
}

func describeResult(res dispatcher.Result) string {
	switch res.Op {
	case dispatcher.OpActivate:
		return fmt.Sprintf("activated %s", res.TabID)
	case dispatcher.OpClose:
		return fmt.Sprintf("closed %s", res.TabID)
	case dispatcher.OpReorder:
		return fmt.Sprintf("reordered %s", res.PanelID)
	case dispatcher.OpMove:
		return fmt.Sprintf("moved %s to %s", res.TabID, res.PanelID)
	case dispatcher.OpNewPanel:
		return fmt.Sprintf("moved %s to new panel %s", res.TabID, res.PanelID)
	case dispatcher.OpOpen:
		return fmt.Sprintf("opened %s in %s", res.TabID, res.PanelID)
	default:
		return string(res.Op)
	}
}

func describeError(err error) string {
	switch {
	case errors.Is(err, dnd.ErrProtocolMismatch):
		return "drop ignored: unsupported payload"
	case errors.Is(err, workspace.ErrNotFound):
		return "tab no longer exists"
	case errors.Is(err, workspace.ErrIndexOutOfRange):
		return "tab cannot move further"
	default:
		return err.Error()
	}
}

func (m *Model) setError(msg string) {
	m.errMsg = msg
	m.infoMsg = ""
	m.infoExpire = m.now().Add(infoDuration)
}

func (m *Model) setInfo(msg string) {
	m.infoMsg = msg
	m.infoExpire = m.now().Add(infoDuration)
}

func (m *Model) clearStatus() {
	m.errMsg = ""
	m.infoMsg = ""
	m.infoExpire = m.now()
}

// statusText returns the current status line, dropping it once expired.
func (m *Model) statusText() (string, bool) {
	if m.errMsg == "" && m.infoMsg == "" {
		return "", false
	}
	if !m.infoExpire.IsZero() && m.now().After(m.infoExpire) {
		m.errMsg = ""
		m.infoMsg = ""
		return "", false
	}
	if m.errMsg != "" {
		return "Error: " + m.errMsg, true
	}
	return m.infoMsg, false
}
