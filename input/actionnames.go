package input

import (
	"slices"
	"strings"
)

// actionRegistry maps canonical action names to KeyEntry structs
// Used by the keymap loader to resolve action strings to bindings
var actionRegistry = map[string]KeyEntry{
	// Unbind sentinel
	"none": {},

	// Held movement
	"forward":      {Control: ControlForward},
	"back":         {Control: ControlBack},
	"strafe_left":  {Control: ControlStrafeLeft},
	"strafe_right": {Control: ControlStrafeRight},
	"turn_left":    {Control: ControlTurnLeft},
	"turn_right":   {Control: ControlTurnRight},
	"look_up":      {Control: ControlLookUp},
	"look_down":    {Control: ControlLookDown},
	"run":          {Control: ControlRun},

	// One-shot
	"quit":            {Intent: IntentQuit},
	"crouch":          {Intent: IntentCrouch},
	"jump":            {Intent: IntentJump},
	"hit":             {Intent: IntentHit},
	"spray":           {Intent: IntentSpray},
	"erase":           {Intent: IntentErase},
	"erase_all":       {Intent: IntentEraseAll},
	"toggle_scale":    {Intent: IntentToggleScale},
	"toggle_outlines": {Intent: IntentToggleOutlines},
	"save":            {Intent: IntentSave},
	"load":            {Intent: IntentLoad},
	"screenshot":      {Intent: IntentScreenshot},
}

// ActionEntry returns the binding for a canonical action name
func ActionEntry(name string) (KeyEntry, bool) {
	e, ok := actionRegistry[strings.ToLower(strings.TrimSpace(name))]
	return e, ok
}

func IsActionName(name string) bool {
	_, ok := ActionEntry(name)
	return ok
}

// ActionNames returns all action names sorted
func ActionNames() []string {
	names := make([]string, 0, len(actionRegistry))
	for n := range actionRegistry {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}
