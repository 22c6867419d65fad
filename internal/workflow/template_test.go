package workflow

import "testing"

func TestInterpolate(t *testing.T) {
	payload := map[string]any{
		"user": map[string]any{"name": "Kim"},
		"plan": map[string]any{
			"grantRole": "Premium",
			"price":     float64(9900),
		},
	}

	cases := []struct {
		name     string
		template string
		want     string
	}{
		{"simple path", "Hello {{user.name}}", "Hello Kim"},
		{"nested value", "{{plan.grantRole}}", "Premium"},
		{"whole number without exponent", "₩{{plan.price}}", "₩9900"},
		{"missing path stays verbatim", "Hello {{user.name}} of {{team.name}}", "Hello Kim of {{team.name}}"},
		{"path through non-object stays verbatim", "{{user.name.first}}", "{{user.name.first}}"},
		{"whitespace tolerated", "Hello {{ user.name }}", "Hello Kim"},
		{"no placeholders", "plain text", "plain text"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Interpolate(tc.template, payload); got != tc.want {
				t.Fatalf("Interpolate(%q) = %q, want %q", tc.template, got, tc.want)
			}
		})
	}
}

func TestInterpolateEmptyPayload(t *testing.T) {
	got := Interpolate("Hello {{user.name}}", map[string]any{})
	if got != "Hello {{user.name}}" {
		t.Fatalf("missing path must keep the literal token, got %q", got)
	}
}
