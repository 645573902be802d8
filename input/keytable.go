package input

import (
	"maps"
	"unicode"

	"github.com/gdamore/tcell/v2"
)

// KeyTable maps terminal keys to bindings
type KeyTable struct {
	// Special keys (Ctrl+*, arrows, function keys)
	Keys map[tcell.Key]KeyEntry

	// Printable rune bindings, matched case-insensitively
	Runes map[rune]KeyEntry
}

// DefaultKeyTable returns the default key bindings
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		Keys: map[tcell.Key]KeyEntry{
			tcell.KeyCtrlC:  {Intent: IntentQuit},
			tcell.KeyCtrlQ:  {Intent: IntentQuit},
			tcell.KeyEscape: {Intent: IntentQuit},
			tcell.KeyUp:     {Control: ControlLookUp},
			tcell.KeyDown:   {Control: ControlLookDown},
			tcell.KeyLeft:   {Control: ControlTurnLeft},
			tcell.KeyRight:  {Control: ControlTurnRight},
			tcell.KeyEnter:  {Intent: IntentHit},
			tcell.KeyF2:     {Intent: IntentScreenshot},
			tcell.KeyF5:     {Intent: IntentSave},
			tcell.KeyF9:     {Intent: IntentLoad},
		},

		Runes: map[rune]KeyEntry{
			'w': {Control: ControlForward},
			's': {Control: ControlBack},
			'a': {Control: ControlStrafeLeft},
			'd': {Control: ControlStrafeRight},
			'q': {Control: ControlTurnLeft},
			'e': {Control: ControlTurnRight},
			'r': {Control: ControlRun},
			'c': {Intent: IntentCrouch},
			' ': {Intent: IntentJump},
			'f': {Intent: IntentHit},
			'g': {Intent: IntentSpray},
			'x': {Intent: IntentErase},
			'X': {Intent: IntentEraseAll},
			'v': {Intent: IntentToggleScale},
			'o': {Intent: IntentToggleOutlines},
		},
	}
}

// Lookup resolves a key event
// Exact rune matches win, an uppercase letter falls back to its lowercase binding
func (kt *KeyTable) Lookup(ev *tcell.EventKey) (KeyEntry, bool) {
	if ev.Key() != tcell.KeyRune {
		e, ok := kt.Keys[ev.Key()]
		return e, ok
	}
	r := ev.Rune()
	if e, ok := kt.Runes[r]; ok {
		return e, true
	}
	if unicode.IsUpper(r) {
		e, ok := kt.Runes[unicode.ToLower(r)]
		return e, ok
	}
	return KeyEntry{}, false
}

func (kt *KeyTable) Clone() *KeyTable {
	return &KeyTable{
		Keys:  maps.Clone(kt.Keys),
		Runes: maps.Clone(kt.Runes),
	}
}
