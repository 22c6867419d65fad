package workflow

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestActionsUnmarshalStoredForm(t *testing.T) {
	raw := `[{"assign_role": "{{plan.grantRole}}"}, {"send_notification": "환영합니다!"}]`
	var actions []Action
	require.NoError(t, json.Unmarshal([]byte(raw), &actions))
	require.Equal(t, []Action{
		{Kind: ActionAssignRole, Template: "{{plan.grantRole}}"},
		{Kind: ActionSendNotification, Template: "환영합니다!"},
	}, actions)
}

func TestActionUnmarshalRejectsUnknownKind(t *testing.T) {
	var a Action
	err := json.Unmarshal([]byte(`{"send_sms": "hi"}`), &a)
	require.Error(t, err)
}

func TestActionUnmarshalRejectsMultipleKinds(t *testing.T) {
	var a Action
	err := json.Unmarshal([]byte(`{"assign_role": "x", "send_notification": "y"}`), &a)
	require.Error(t, err)
}

func TestActionMarshalRoundTrip(t *testing.T) {
	in := Action{Kind: ActionAssignRole, Template: "{{plan.grantRole}}"}
	raw, err := json.Marshal(in)
	require.NoError(t, err)
	require.JSONEq(t, `{"assign_role": "{{plan.grantRole}}"}`, string(raw))

	var out Action
	require.NoError(t, json.Unmarshal(raw, &out))
	require.Equal(t, in, out)
}

func TestKnownEvent(t *testing.T) {
	require.True(t, KnownEvent(EventSubscriptionPaid))
	require.False(t, KnownEvent("subscription.payed"))
	require.False(t, KnownEvent(""))
}
