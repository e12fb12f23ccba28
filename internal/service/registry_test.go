package service

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jorgeparavicini/lazycloud/internal/cloud"
	"github.com/jorgeparavicini/lazycloud/internal/theme"
)

type stubService struct{}

func (stubService) Init()                             {}
func (stubService) Destroy()                          {}
func (stubService) HandleTick()                       {}
func (stubService) HandleInput(tea.KeyMsg) bool       { return false }
func (stubService) Update() UpdateResult              { return Idle() }
func (stubService) View(int, int, theme.Theme) string { return "" }
func (stubService) Breadcrumbs() []string             { return []string{"Mock"} }
func (stubService) Keybindings() []Hint               { return nil }

type stubProvider struct {
	key  string
	name string
}

func (p stubProvider) Provider() cloud.Provider { return cloud.GCP }
func (p stubProvider) Key() string              { return p.key }
func (p stubProvider) DisplayName() string      { return p.name }
func (p stubProvider) Description() string      { return "" }
func (p stubProvider) Icon() string             { return "" }

func (p stubProvider) Available(ctx cloud.Context) bool {
	return ctx.Provider == cloud.GCP
}

func (p stubProvider) New(cloud.Context, Deps) (Service, error) {
	return stubService{}, nil
}

func gcpContext() cloud.Context {
	return cloud.NewGCPContext(cloud.GCPContext{
		ConfigName: "test-config",
		ProjectID:  "test",
		Account:    "user@example.com",
	})
}

func TestID_String(t *testing.T) {
	id := NewID(cloud.GCP, "secret-manager")
	if got := id.String(); got != "gcp:secret-manager" {
		t.Fatalf("String() = %q, want %q", got, "gcp:secret-manager")
	}
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := NewRegistry()
	r.Register(stubProvider{key: "mock-service", name: "Mock Service"})

	if _, ok := r.Get(NewID(cloud.GCP, "mock-service")); !ok {
		t.Fatal("Get() did not find registered provider")
	}
	if got := r.Len(); got != 1 {
		t.Fatalf("Len() = %d, want 1", got)
	}
	if _, ok := r.Get(NewID(cloud.AWS, "mock-service")); ok {
		t.Fatal("Get() found provider under wrong platform")
	}
}

func TestRegistry_Available(t *testing.T) {
	r := NewRegistry()
	r.Register(stubProvider{key: "mock-service", name: "Mock Service"})

	if got := len(r.Available(gcpContext())); got != 1 {
		t.Fatalf("Available(gcp) = %d services, want 1", got)
	}

	aws := cloud.Context{Provider: cloud.AWS, AWS: &cloud.AWSContext{Profile: "work"}}
	if got := len(r.Available(aws)); got != 0 {
		t.Fatalf("Available(aws) = %d services, want 0", got)
	}
}

func TestRegistry_FindByKey(t *testing.T) {
	r := NewRegistry()
	r.Register(stubProvider{key: "secret-manager", name: "Secret Manager"})

	if _, ok := r.FindByKey("Secret-Manager"); !ok {
		t.Fatal("FindByKey() should match case-insensitively")
	}
	if _, ok := r.FindByKey("storage"); ok {
		t.Fatal("FindByKey() matched unknown key")
	}
}

func TestRegistry_ReplaceKeepsPosition(t *testing.T) {
	r := NewRegistry()
	r.Register(stubProvider{key: "alpha", name: "Old Alpha"})
	r.Register(stubProvider{key: "beta", name: "Beta"})
	r.Register(stubProvider{key: "alpha", name: "New Alpha"})

	if got := r.Len(); got != 2 {
		t.Fatalf("Len() = %d, want 2", got)
	}
	ids := r.IDs()
	if ids[0].Key != "alpha" || ids[1].Key != "beta" {
		t.Fatalf("IDs() = %v, want [alpha beta]", ids)
	}
	p, _ := r.Get(NewID(cloud.GCP, "alpha"))
	if p.DisplayName() != "New Alpha" {
		t.Fatalf("DisplayName() = %q, want replacement", p.DisplayName())
	}
}

func TestUpdateResult_Kinds(t *testing.T) {
	if !Idle().IsIdle() {
		t.Fatal("Idle().IsIdle() = false")
	}
	if !RunCommands().IsIdle() {
		t.Fatal("RunCommands() with no commands should collapse to Idle")
	}
	if !Close().IsClose() {
		t.Fatal("Close().IsClose() = false")
	}

	res := Fail("bad transition")
	if msg, ok := res.Err(); !ok || msg != "bad transition" {
		t.Fatalf("Err() = %q, %v", msg, ok)
	}
	if _, ok := Idle().Err(); ok {
		t.Fatal("Idle().Err() reported an error")
	}
}
