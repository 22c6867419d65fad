package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/hagwonhq/hagwon/internal/entitlement"
	"github.com/hagwonhq/hagwon/internal/notify"
)

// RuleSource loads rule configuration, freshly on every trigger.
type RuleSource interface {
	ListRules(ctx context.Context) ([]Rule, error)
}

// RoleAssigner is the role-state owner signalled by assign_role actions.
type RoleAssigner interface {
	AssignRole(ctx context.Context, userID int64, role entitlement.Role) error
}

// Dispatcher matches rules to events and executes their actions.
// Execution is best effort: action failures are logged and isolated, never
// retried, and never surfaced to whoever emitted the event.
type Dispatcher struct {
	rules    RuleSource
	roles    RoleAssigner
	notifier notify.Notifier
	logger   *slog.Logger
}

// NewDispatcher constructs a Dispatcher instance.
func NewDispatcher(rules RuleSource, roles RoleAssigner, notifier notify.Notifier, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{rules: rules, roles: roles, notifier: notifier, logger: logger}
}

// Trigger runs every rule listening on event against the payload. Each
// trigger is independent; no state persists between triggers. A rule
// listing failure drops the trigger after logging.
func (d *Dispatcher) Trigger(ctx context.Context, event string, payload map[string]any) {
	rules, err := d.rules.ListRules(ctx)
	if err != nil {
		d.logger.Error("workflow: load rules", slog.String("event", event), slog.Any("error", err))
		return
	}
	for _, rule := range rules {
		if rule.OnEvent != event {
			continue
		}
		for i, action := range rule.Actions {
			if err := d.execute(ctx, action, payload); err != nil {
				d.logger.Error("workflow: action failed",
					slog.String("rule", rule.Name),
					slog.String("kind", string(action.Kind)),
					slog.Int("index", i),
					slog.Any("error", err))
			}
		}
	}
}

func (d *Dispatcher) execute(ctx context.Context, action Action, payload map[string]any) error {
	resolved := Interpolate(action.Template, payload)

	switch action.Kind {
	case ActionAssignRole:
		if strings.Contains(resolved, "{{") {
			return fmt.Errorf("workflow: unresolved role template %q", resolved)
		}
		role, err := entitlement.ParseRole(resolved)
		if err != nil {
			return err
		}
		userID, err := payloadUserID(payload)
		if err != nil {
			return err
		}
		if err := d.roles.AssignRole(ctx, userID, role); err != nil {
			return err
		}
		return d.push(ctx, notify.Notification{
			UserID:  userID,
			Message: fmt.Sprintf("역할이 %s로 업데이트되었습니다.", role),
			Level:   notify.LevelSuccess,
		})
	case ActionSendNotification:
		userID, _ := payloadUserID(payload)
		return d.push(ctx, notify.Notification{
			UserID:  userID,
			Message: resolved,
			Level:   notify.LevelSuccess,
		})
	default:
		return fmt.Errorf("workflow: unknown action kind %q", action.Kind)
	}
}

func (d *Dispatcher) push(ctx context.Context, n notify.Notification) error {
	if d.notifier == nil {
		return nil
	}
	return d.notifier.Notify(ctx, n)
}

// payloadUserID extracts the target user from the event payload's "user"
// key. JSON decoding turns numbers into float64.
func payloadUserID(payload map[string]any) (int64, error) {
	switch v := payload["user"].(type) {
	case float64:
		return int64(v), nil
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case string:
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("workflow: payload user %q is not an id", v)
		}
		return id, nil
	default:
		return 0, fmt.Errorf("workflow: payload has no user id")
	}
}
