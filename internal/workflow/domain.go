// Package workflow executes event-driven membership rules: when a named
// event fires, every rule listening on it runs its actions in order
// against the event payload.
package workflow

import (
	"encoding/json"
	"fmt"
)

// ActionKind is the closed set of workflow action types.
type ActionKind string

const (
	// ActionAssignRole adopts the resolved role for the payload's user.
	ActionAssignRole ActionKind = "assign_role"
	// ActionSendNotification pushes the resolved message to the user channel.
	ActionSendNotification ActionKind = "send_notification"
)

// Action is one step of a rule. Template may contain {{dotted.path}}
// placeholders resolved against the event payload.
type Action struct {
	Kind     ActionKind
	Template string
}

// Rule maps an event name to an ordered action list. Rules are read-only
// configuration, loaded fresh on every trigger.
type Rule struct {
	ID      int64
	Name    string
	OnEvent string
	Actions []Action
}

// UnmarshalJSON accepts the stored single-key object form,
// e.g. {"assign_role": "{{plan.grantRole}}"}.
func (a *Action) UnmarshalJSON(data []byte) error {
	var obj map[string]string
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	if len(obj) != 1 {
		return fmt.Errorf("workflow: action must have exactly one kind, got %d", len(obj))
	}
	for kind, template := range obj {
		switch ActionKind(kind) {
		case ActionAssignRole, ActionSendNotification:
			a.Kind = ActionKind(kind)
			a.Template = template
		default:
			return fmt.Errorf("workflow: unknown action kind %q", kind)
		}
	}
	return nil
}

// MarshalJSON produces the stored single-key object form.
func (a Action) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{string(a.Kind): a.Template})
}
