package jobs

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/require"

	"github.com/hagwonhq/hagwon/internal/workflow"
)

type recordingTriggerer struct {
	events   []string
	payloads []map[string]any
}

func (r *recordingTriggerer) Trigger(ctx context.Context, event string, payload map[string]any) {
	r.events = append(r.events, event)
	r.payloads = append(r.payloads, payload)
}

func TestWorkflowDispatchTaskRoundTrip(t *testing.T) {
	in := WorkflowDispatchPayload{
		Event: workflow.EventSubscriptionPaid,
		Payload: map[string]any{
			"plan": map[string]any{"grantRole": "Premium"},
			"user": float64(7),
		},
	}
	task, err := NewWorkflowDispatchTask(in)
	require.NoError(t, err)
	require.Equal(t, TaskWorkflowDispatch, task.Type())

	var out WorkflowDispatchPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &out))
	require.Equal(t, in, out)
}

func TestWorkflowDispatchJobHandle(t *testing.T) {
	triggerer := &recordingTriggerer{}
	job := NewWorkflowDispatchJob(triggerer, nil)

	task, err := NewWorkflowDispatchTask(WorkflowDispatchPayload{
		Event:   workflow.EventSubscriptionPaid,
		Payload: map[string]any{"user": float64(7)},
	})
	require.NoError(t, err)

	require.NoError(t, job.Handle(context.Background(), task))
	require.Equal(t, []string{workflow.EventSubscriptionPaid}, triggerer.events)
	require.Equal(t, float64(7), triggerer.payloads[0]["user"])
}

func TestWorkflowDispatchJobSkipsMalformedPayload(t *testing.T) {
	triggerer := &recordingTriggerer{}
	job := NewWorkflowDispatchJob(triggerer, nil)

	err := job.Handle(context.Background(), asynq.NewTask(TaskWorkflowDispatch, []byte("not json")))
	require.ErrorIs(t, err, asynq.SkipRetry)
	require.Empty(t, triggerer.events)
}

func TestWorkflowDispatchJobRejectsUnknownEvent(t *testing.T) {
	triggerer := &recordingTriggerer{}
	job := NewWorkflowDispatchJob(triggerer, nil)

	raw, err := json.Marshal(WorkflowDispatchPayload{Event: "subscription.payed"})
	require.NoError(t, err)

	err = job.Handle(context.Background(), asynq.NewTask(TaskWorkflowDispatch, raw))
	require.ErrorIs(t, err, asynq.SkipRetry)
	require.ErrorIs(t, err, workflow.ErrUnknownEvent)
	require.Empty(t, triggerer.events)
}

type stubWarmer struct {
	calls int
	err   error
}

func (s *stubWarmer) WarmCache(ctx context.Context) error {
	s.calls++
	return s.err
}

func TestPlansWarmupJobHandle(t *testing.T) {
	warmer := &stubWarmer{}
	job := NewPlansWarmupJob(warmer, nil)

	require.NoError(t, job.Handle(context.Background(), NewPlansWarmupTask()))
	require.Equal(t, 1, warmer.calls)
}
