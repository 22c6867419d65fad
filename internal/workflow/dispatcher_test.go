package workflow

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hagwonhq/hagwon/internal/entitlement"
	"github.com/hagwonhq/hagwon/internal/notify"
)

type stubRules struct {
	rules []Rule
	err   error
}

func (s *stubRules) ListRules(ctx context.Context) ([]Rule, error) {
	return s.rules, s.err
}

type recordingAssigner struct {
	assigned map[int64]entitlement.Role
	err      error
	calls    int
}

func (r *recordingAssigner) AssignRole(ctx context.Context, userID int64, role entitlement.Role) error {
	r.calls++
	if r.err != nil {
		return r.err
	}
	if r.assigned == nil {
		r.assigned = make(map[int64]entitlement.Role)
	}
	r.assigned[userID] = role
	return nil
}

type recordingNotifier struct {
	sent []notify.Notification
	err  error
}

func (r *recordingNotifier) Notify(ctx context.Context, n notify.Notification) error {
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, n)
	return nil
}

func paidPayload(role string) map[string]any {
	return map[string]any{
		"plan":    map[string]any{"grantRole": role, "price": float64(9900)},
		"user":    float64(7),
		"payment": map[string]any{"id": float64(1)},
	}
}

func TestTriggerMatchesByEventName(t *testing.T) {
	rules := &stubRules{rules: []Rule{
		{ID: 1, Name: "A", OnEvent: "x", Actions: []Action{{Kind: ActionAssignRole, Template: "{{plan.grantRole}}"}}},
		{ID: 2, Name: "B", OnEvent: "y", Actions: []Action{{Kind: ActionAssignRole, Template: "Master"}}},
	}}
	assigner := &recordingAssigner{}
	d := NewDispatcher(rules, assigner, &recordingNotifier{}, slog.Default())

	d.Trigger(context.Background(), "x", paidPayload("Premium"))

	require.Equal(t, 1, assigner.calls, "only rule A listens on x")
	require.Equal(t, entitlement.RolePremium, assigner.assigned[7])
}

func TestTriggerExecutesActionsInOrder(t *testing.T) {
	rules := &stubRules{rules: []Rule{
		{ID: 1, Name: "welcome", OnEvent: EventSubscriptionPaid, Actions: []Action{
			{Kind: ActionAssignRole, Template: "{{plan.grantRole}}"},
			{Kind: ActionSendNotification, Template: "{{plan.grantRole}} 플랜이 시작되었습니다."},
		}},
	}}
	assigner := &recordingAssigner{}
	notifier := &recordingNotifier{}
	d := NewDispatcher(rules, assigner, notifier, slog.Default())

	d.Trigger(context.Background(), EventSubscriptionPaid, paidPayload("Premium"))

	require.Equal(t, entitlement.RolePremium, assigner.assigned[7])
	require.Len(t, notifier.sent, 2)
	require.Contains(t, notifier.sent[0].Message, "Premium")
	require.Equal(t, "Premium 플랜이 시작되었습니다.", notifier.sent[1].Message)
	require.EqualValues(t, 7, notifier.sent[1].UserID)
}

func TestTriggerIsolatesActionFailures(t *testing.T) {
	rules := &stubRules{rules: []Rule{
		{ID: 1, Name: "broken-first", OnEvent: "x", Actions: []Action{
			{Kind: ActionAssignRole, Template: "{{missing.path}}"},
			{Kind: ActionSendNotification, Template: "still delivered"},
		}},
		{ID: 2, Name: "after-broken", OnEvent: "x", Actions: []Action{
			{Kind: ActionSendNotification, Template: "second rule runs"},
		}},
	}}
	notifier := &recordingNotifier{}
	d := NewDispatcher(rules, &recordingAssigner{}, notifier, slog.Default())

	d.Trigger(context.Background(), "x", paidPayload("Premium"))

	require.Len(t, notifier.sent, 2)
	require.Equal(t, "still delivered", notifier.sent[0].Message)
	require.Equal(t, "second rule runs", notifier.sent[1].Message)
}

func TestTriggerIsolatesAssignerFailure(t *testing.T) {
	rules := &stubRules{rules: []Rule{
		{ID: 1, Name: "grant", OnEvent: "x", Actions: []Action{
			{Kind: ActionAssignRole, Template: "{{plan.grantRole}}"},
			{Kind: ActionSendNotification, Template: "after failure"},
		}},
	}}
	notifier := &recordingNotifier{}
	d := NewDispatcher(rules, &recordingAssigner{err: errors.New("role store down")}, notifier, slog.Default())

	d.Trigger(context.Background(), "x", paidPayload("Premium"))

	require.Len(t, notifier.sent, 1)
	require.Equal(t, "after failure", notifier.sent[0].Message)
}

func TestTriggerRejectsUnknownResolvedRole(t *testing.T) {
	rules := &stubRules{rules: []Rule{
		{ID: 1, Name: "grant", OnEvent: "x", Actions: []Action{
			{Kind: ActionAssignRole, Template: "{{plan.grantRole}}"},
		}},
	}}
	assigner := &recordingAssigner{}
	d := NewDispatcher(rules, assigner, &recordingNotifier{}, slog.Default())

	d.Trigger(context.Background(), "x", paidPayload("Gold"))

	require.Zero(t, assigner.calls, "unknown roles must not reach the role store")
}

func TestTriggerDropsOnRuleListingFailure(t *testing.T) {
	rules := &stubRules{err: errors.New("connection refused")}
	assigner := &recordingAssigner{}
	notifier := &recordingNotifier{}
	d := NewDispatcher(rules, assigner, notifier, slog.Default())

	d.Trigger(context.Background(), "x", paidPayload("Premium"))

	require.Zero(t, assigner.calls)
	require.Empty(t, notifier.sent)
}

func TestTriggerStringUserID(t *testing.T) {
	rules := &stubRules{rules: []Rule{
		{ID: 1, Name: "grant", OnEvent: "x", Actions: []Action{
			{Kind: ActionAssignRole, Template: "Premium"},
		}},
	}}
	assigner := &recordingAssigner{}
	d := NewDispatcher(rules, assigner, &recordingNotifier{}, slog.Default())

	d.Trigger(context.Background(), "x", map[string]any{"user": "42", "plan": map[string]any{}})

	require.Equal(t, entitlement.RolePremium, assigner.assigned[42])
}
