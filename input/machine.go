package input

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/backrooms/parameter"
	"github.com/lixenwraith/backrooms/player"
)

// Machine turns terminal key events into held controls and one-shot intents
// Terminals report presses and autorepeat but never releases, so a control
// stays held until KeyHoldDuration passes without a repeat
type Machine struct {
	keyTable *KeyTable
	hold     time.Duration
	held     [controlCount]time.Time

	// Crouch and jump are latched until the next Input call
	crouch bool
	jump   bool
}

// NewMachine creates a machine over a key table, nil selects the defaults
func NewMachine(kt *KeyTable) *Machine {
	if kt == nil {
		kt = DefaultKeyTable()
	}
	return &Machine{keyTable: kt, hold: parameter.KeyHoldDuration}
}

// Process parses a terminal event and returns the one-shot intent it carries
func (m *Machine) Process(ev tcell.Event) Intent {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		return IntentResize
	case *tcell.EventKey:
		return m.processKey(ev, ev.When())
	}
	return IntentNone
}

func (m *Machine) processKey(ev *tcell.EventKey, now time.Time) Intent {
	entry, ok := m.keyTable.Lookup(ev)
	if !ok {
		return IntentNone
	}
	if entry.Control != ControlNone {
		m.held[entry.Control] = now.Add(m.hold)
		// Shifted letters run
		if ev.Key() == tcell.KeyRune && ev.Rune() >= 'A' && ev.Rune() <= 'Z' {
			m.held[ControlRun] = now.Add(m.hold)
		}
	}
	switch entry.Intent {
	case IntentCrouch:
		m.crouch = true
	case IntentJump:
		m.jump = true
	}
	return entry.Intent
}

// Held reports whether a control is active at now
func (m *Machine) Held(c Control, now time.Time) bool {
	return now.Before(m.held[c])
}

// Input samples the controls for one frame
// Crouch is reported for one frame per press so the player sees a rising edge
func (m *Machine) Input(now time.Time) player.Input {
	in := player.Input{
		Forward:     m.Held(ControlForward, now),
		Back:        m.Held(ControlBack, now),
		StrafeLeft:  m.Held(ControlStrafeLeft, now),
		StrafeRight: m.Held(ControlStrafeRight, now),
		TurnLeft:    m.Held(ControlTurnLeft, now),
		TurnRight:   m.Held(ControlTurnRight, now),
		Run:         m.Held(ControlRun, now),
		Crouch:      m.crouch,
		Jump:        m.jump,
	}
	if m.Held(ControlLookUp, now) {
		in.LookDY -= parameter.KeyLookStep
	}
	if m.Held(ControlLookDown, now) {
		in.LookDY += parameter.KeyLookStep
	}
	m.crouch = false
	m.jump = false
	return in
}

// Reset releases every control
func (m *Machine) Reset() {
	m.held = [controlCount]time.Time{}
	m.crouch = false
	m.jump = false
}
