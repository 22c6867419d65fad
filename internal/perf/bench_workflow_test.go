package perf

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/hagwonhq/hagwon/internal/entitlement"
	jobmetrics "github.com/hagwonhq/hagwon/internal/jobs"
	"github.com/hagwonhq/hagwon/internal/workflow"
)

type staticRules struct{ rules []workflow.Rule }

func (s staticRules) ListRules(ctx context.Context) ([]workflow.Rule, error) {
	return s.rules, nil
}

type noopAssigner struct{}

func (noopAssigner) AssignRole(ctx context.Context, userID int64, role entitlement.Role) error {
	return nil
}

func benchPayload() map[string]any {
	return map[string]any{
		"user": float64(42),
		"plan": map[string]any{
			"code":      "premium-monthly",
			"name":      "프리미엄 멤버십",
			"price":     float64(9900),
			"currency":  "KRW",
			"grantRole": "Premium",
		},
		"payment": map[string]any{
			"id":        float64(7),
			"reference": "c0ffee",
		},
	}
}

func BenchmarkInterpolate(b *testing.B) {
	payload := benchPayload()
	const template = "{{plan.name}} 결제 {{plan.price}} {{plan.currency}} ({{payment.reference}})"
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		workflow.Interpolate(template, payload)
	}
}

func BenchmarkDispatcherTrigger(b *testing.B) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	dispatcher := workflow.NewDispatcher(staticRules{rules: []workflow.Rule{
		{
			ID:      1,
			Name:    "grant premium on paid invoice",
			OnEvent: workflow.EventSubscriptionPaid,
			Actions: []workflow.Action{
				{Kind: workflow.ActionAssignRole, Template: "{{plan.grantRole}}"},
				{Kind: workflow.ActionSendNotification, Template: "{{plan.name}} 결제가 완료되었습니다."},
			},
		},
	}}, noopAssigner{}, nil, logger)

	payload := benchPayload()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		dispatcher.Trigger(context.Background(), workflow.EventSubscriptionPaid, payload)
	}
}

func TestJobMetricsRecordOutcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := jobmetrics.NewMetrics(reg)

	for i := 0; i < 20; i++ {
		tracker := metrics.Track("workflow_dispatch")
		if err := tracker.End(nil); err != nil {
			t.Fatalf("unexpected error ending tracker: %v", err)
		}
	}
	for i := 0; i < 2; i++ {
		tracker := metrics.Track("workflow_dispatch")
		if err := tracker.End(errors.New("timeout")); err == nil {
			t.Fatal("expected error to propagate")
		}
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	success := metricValue(t, families, "hagwon_jobs_total", map[string]string{"job": "workflow_dispatch", "status": "success"})
	failure := metricValue(t, families, "hagwon_jobs_total", map[string]string{"job": "workflow_dispatch", "status": "failure"})
	if success != 20 {
		t.Fatalf("expected 20 successes, got %f", success)
	}
	if failure != 2 {
		t.Fatalf("expected 2 failures, got %f", failure)
	}
}

func metricValue(t *testing.T, families []*dto.MetricFamily, name string, labels map[string]string) float64 {
	t.Helper()
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		for _, metric := range family.GetMetric() {
			if matchLabels(metric, labels) {
				return metric.GetCounter().GetValue()
			}
		}
	}
	t.Fatalf("metric %s with labels %v not found", name, labels)
	return 0
}

func matchLabels(metric *dto.Metric, labels map[string]string) bool {
	found := 0
	for _, pair := range metric.GetLabel() {
		if want, ok := labels[pair.GetName()]; ok && pair.GetValue() == want {
			found++
		}
	}
	return found == len(labels)
}
