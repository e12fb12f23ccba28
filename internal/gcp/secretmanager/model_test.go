package secretmanager

import "testing"

func TestSecret_Matches(t *testing.T) {
	secret := Secret{
		Name:   "db-pass",
		Labels: map[string]string{"env": "prod", "team": "data"},
	}

	tests := []struct {
		query string
		want  bool
	}{
		{"", true},
		{"db", true},
		{"dbpass", true},
		{"prod", true},
		{"team", true},
		{"zz", false},
		{"env:", true},
		{"env:prod", true},
		{"e:p", true},
		{":prod", true},
		{"env:stag", false},
		{"x:prod", false},
	}
	for _, tc := range tests {
		if got := secret.Matches(tc.query); got != tc.want {
			t.Errorf("Matches(%q) = %v, want %v", tc.query, got, tc.want)
		}
	}

	bare := Secret{Name: "api-key"}
	if bare.Matches("env:prod") {
		t.Error(`Matches("env:prod") on an unlabeled secret = true, want false`)
	}
}

func TestReplication_ShortDisplay(t *testing.T) {
	tests := []struct {
		name string
		r    Replication
		want string
	}{
		{"automatic", Replication{Automatic: true}, "Automatic"},
		{"single region", Replication{Locations: []string{"us-east1"}}, "us-east1"},
		{"several regions", Replication{Locations: []string{"us-east1", "europe-west1", "asia-east1"}}, "3 regions"},
	}
	for _, tc := range tests {
		if got := tc.r.ShortDisplay(); got != tc.want {
			t.Errorf("%s: ShortDisplay() = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestVersion_Matches(t *testing.T) {
	v := Version{VersionID: "12", State: "Enabled"}

	tests := []struct {
		query string
		want  bool
	}{
		{"12", true},
		{"1", true},
		{"enab", true},
		{"destroyed", false},
	}
	for _, tc := range tests {
		if got := v.Matches(tc.query); got != tc.want {
			t.Errorf("Matches(%q) = %v, want %v", tc.query, got, tc.want)
		}
	}
}

func TestIamBinding_Matches(t *testing.T) {
	b := IamBinding{
		Role:    "roles/secretmanager.admin",
		Members: []string{"user:alice@example.com", "group:eng@example.com"},
	}

	tests := []struct {
		query string
		want  bool
	}{
		{"admin", true},
		{"alice", true},
		{"group", true},
		{"bob", false},
	}
	for _, tc := range tests {
		if got := b.Matches(tc.query); got != tc.want {
			t.Errorf("Matches(%q) = %v, want %v", tc.query, got, tc.want)
		}
	}
}
