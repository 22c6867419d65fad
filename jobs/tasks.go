package jobs

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	jobmetrics "github.com/hagwonhq/hagwon/internal/jobs"
	"github.com/hagwonhq/hagwon/internal/workflow"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskWorkflowDispatch carries an emitted event to the workflow dispatcher.
	TaskWorkflowDispatch = "workflow:dispatch"
	// TaskPlansWarmup re-primes the plan catalog cache.
	TaskPlansWarmup = "plans:warmup"
)

// WorkflowDispatchPayload is the serialized form of an emitted event.
type WorkflowDispatchPayload struct {
	Event   string         `json:"event"`
	Payload map[string]any `json:"payload"`
}

// NewWorkflowDispatchTask constructs an Asynq task for an emitted event.
// Dispatch is single-attempt: actions are best-effort side effects, so
// failed runs are not retried.
func NewWorkflowDispatchTask(payload WorkflowDispatchPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskWorkflowDispatch, data, asynq.MaxRetry(0)), nil
}

// NewPlansWarmupTask constructs the cache warmup task.
func NewPlansWarmupTask() *asynq.Task {
	return asynq.NewTask(TaskPlansWarmup, nil)
}

// Triggerer is the workflow dispatcher entry point used by the worker.
type Triggerer interface {
	Trigger(ctx context.Context, event string, payload map[string]any)
}

// WorkflowDispatchJob processes TaskWorkflowDispatch tasks.
type WorkflowDispatchJob struct {
	dispatcher Triggerer
	metrics    *jobmetrics.Metrics
}

// NewWorkflowDispatchJob constructs the job. Metrics may be nil.
func NewWorkflowDispatchJob(dispatcher Triggerer, metrics *jobmetrics.Metrics) *WorkflowDispatchJob {
	return &WorkflowDispatchJob{dispatcher: dispatcher, metrics: metrics}
}

// Handle unpacks the event and hands it to the dispatcher. Dispatcher
// failures are contained inside Trigger, so Handle only fails on a
// malformed payload.
func (j *WorkflowDispatchJob) Handle(ctx context.Context, t *asynq.Task) error {
	tracker := j.metrics.Track("workflow_dispatch")
	var payload WorkflowDispatchPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return tracker.End(fmt.Errorf("jobs: workflow dispatch payload: %v: %w", err, asynq.SkipRetry))
	}
	if !workflow.KnownEvent(payload.Event) {
		return tracker.End(fmt.Errorf("jobs: %w: %q: %w", workflow.ErrUnknownEvent, payload.Event, asynq.SkipRetry))
	}
	j.dispatcher.Trigger(ctx, payload.Event, payload.Payload)
	return tracker.End(nil)
}

// CacheWarmer primes a read-through cache.
type CacheWarmer interface {
	WarmCache(ctx context.Context) error
}

// PlansWarmupJob processes TaskPlansWarmup tasks.
type PlansWarmupJob struct {
	plans   CacheWarmer
	metrics *jobmetrics.Metrics
}

// NewPlansWarmupJob constructs the job. Metrics may be nil.
func NewPlansWarmupJob(plans CacheWarmer, metrics *jobmetrics.Metrics) *PlansWarmupJob {
	return &PlansWarmupJob{plans: plans, metrics: metrics}
}

// Handle reloads the plan catalog into the cache.
func (j *PlansWarmupJob) Handle(ctx context.Context, t *asynq.Task) error {
	tracker := j.metrics.Track("plans_warmup")
	return tracker.End(j.plans.WarmCache(ctx))
}
