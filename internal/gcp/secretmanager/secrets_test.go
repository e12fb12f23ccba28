package secretmanager

import "testing"

func TestFormatLabels(t *testing.T) {
	tests := []struct {
		name   string
		labels map[string]string
		query  string
		want   string
	}{
		{"no labels", nil, "", "—"},
		{"single pair", map[string]string{"env": "prod"}, "", "env:prod"},
		{"key only", map[string]string{"managed": ""}, "", "managed"},
		{
			"first sorted pair with overflow count",
			map[string]string{"env": "prod", "app": "web"},
			"",
			"app:web +1",
		},
		{
			"long label truncated",
			map[string]string{"deployment-target": "production-eu"},
			"",
			"deployment-target…",
		},
		{
			"query surfaces best match",
			map[string]string{"env": "prod", "team": "data"},
			"data",
			"team:data +1",
		},
		{
			"query surfaces long match truncated",
			map[string]string{"a": "b", "deployment-target": "production-eu"},
			"prod",
			"deployment-target… +1",
		},
	}
	for _, tc := range tests {
		if got := formatLabels(tc.labels, tc.query); got != tc.want {
			t.Errorf("%s: formatLabels(%v, %q) = %q, want %q", tc.name, tc.labels, tc.query, got, tc.want)
		}
	}
}
