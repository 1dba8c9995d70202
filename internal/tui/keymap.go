package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tecla-cli/tecla/internal/layout"
	"github.com/tecla-cli/tecla/internal/tutor"
)

// translateKey converts a terminal key message into a normalized physical
// key event. Terminals deliver composed characters, so the bare accent
// marks ´ and ¨ are mapped back onto the dead key to drive the composer the
// way a raw keyboard would. Returns false for keys the tutor ignores.
func translateKey(msg tea.KeyMsg, at time.Time) (tutor.KeyEvent, bool) {
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyDelete:
		ev := tutor.KeyEvent{Code: tutor.CodeBackspace, When: at}
		if msg.Alt {
			ev.Mods.Ctrl = true
		}
		return ev, true
	case tea.KeyCtrlW:
		// Readline-style word delete.
		return tutor.KeyEvent{Code: tutor.CodeBackspace, Mods: layout.Modifiers{Ctrl: true}, When: at}, true
	case tea.KeyEsc:
		return tutor.KeyEvent{Code: tutor.CodeEscape, When: at}, true
	case tea.KeySpace:
		return runeEvent(' ', at), true
	case tea.KeyRunes:
		if len(msg.Runes) == 0 {
			return tutor.KeyEvent{}, false
		}
		return runeEvent(msg.Runes[0], at), true
	default:
		return tutor.KeyEvent{}, false
	}
}

func runeEvent(r rune, at time.Time) tutor.KeyEvent {
	switch r {
	case '´':
		return tutor.KeyEvent{Code: layout.DeadKeyCode, When: at}
	case '¨':
		return tutor.KeyEvent{Code: layout.DeadKeyCode, Mods: layout.Modifiers{Shift: true}, When: at}
	}
	ev := tutor.KeyEvent{Rune: r, When: at}
	if key, mods, ok := layout.FindForChar(r); ok {
		ev.Code = key.Code
		ev.Mods = mods
	}
	return ev
}
