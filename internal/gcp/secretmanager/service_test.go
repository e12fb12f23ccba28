package secretmanager

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jorgeparavicini/lazycloud/internal/command"
	"github.com/jorgeparavicini/lazycloud/internal/keymap"
	"github.com/jorgeparavicini/lazycloud/internal/service"
)

// memStore is an in-memory Store for driving the service in tests.
// The error fields inject failures for the next matching call.
type memStore struct {
	secrets  []Secret
	versions map[string][]Version
	payloads map[string]Payload
	policies map[string]IamPolicy

	listSecretsErr  error
	listVersionsErr error
	accessErr       error

	closed bool
}

func newMemStore() *memStore {
	return &memStore{
		versions: map[string][]Version{},
		payloads: map[string]Payload{},
		policies: map[string]IamPolicy{},
	}
}

func (m *memStore) ListSecrets(context.Context) ([]Secret, error) {
	if m.listSecretsErr != nil {
		return nil, m.listSecretsErr
	}
	return append([]Secret(nil), m.secrets...), nil
}

func (m *memStore) GetSecret(_ context.Context, name string) (Secret, error) {
	for _, s := range m.secrets {
		if s.Name == name {
			return s, nil
		}
	}
	return Secret{}, fmt.Errorf("secret %s not found", name)
}

func (m *memStore) CreateSecret(_ context.Context, name string, payload []byte) (Secret, error) {
	secret := Secret{Name: name, Replication: Replication{Automatic: true}, CreatedAt: "2025-01-01 00:00"}
	m.secrets = append(m.secrets, secret)
	if len(payload) > 0 {
		m.versions[name] = []Version{{VersionID: "1", State: "Enabled", CreatedAt: secret.CreatedAt}}
		m.payloads[name+"/1"] = payloadFromBytes(payload)
		m.payloads[name+"/latest"] = payloadFromBytes(payload)
	}
	return secret, nil
}

func (m *memStore) DeleteSecret(_ context.Context, name string) error {
	m.secrets = slices.DeleteFunc(m.secrets, func(s Secret) bool { return s.Name == name })
	delete(m.versions, name)
	return nil
}

func (m *memStore) UpdateLabels(_ context.Context, name string, labels map[string]string) (Secret, error) {
	for i := range m.secrets {
		if m.secrets[i].Name == name {
			m.secrets[i].Labels = labels
			return m.secrets[i], nil
		}
	}
	return Secret{}, fmt.Errorf("secret %s not found", name)
}

func (m *memStore) ListVersions(_ context.Context, secretName string) ([]Version, error) {
	if m.listVersionsErr != nil {
		return nil, m.listVersionsErr
	}
	return append([]Version(nil), m.versions[secretName]...), nil
}

func (m *memStore) AddVersion(_ context.Context, secretName string, payload []byte) error {
	id := fmt.Sprintf("%d", len(m.versions[secretName])+1)
	version := Version{VersionID: id, State: "Enabled", CreatedAt: "2025-01-02 00:00"}
	m.versions[secretName] = append([]Version{version}, m.versions[secretName]...)
	m.payloads[secretName+"/"+id] = payloadFromBytes(payload)
	m.payloads[secretName+"/latest"] = payloadFromBytes(payload)
	return nil
}

func (m *memStore) setState(secretName, versionID, state string) error {
	for i := range m.versions[secretName] {
		if m.versions[secretName][i].VersionID == versionID {
			m.versions[secretName][i].State = state
			return nil
		}
	}
	return fmt.Errorf("version %s of %s not found", versionID, secretName)
}

func (m *memStore) EnableVersion(_ context.Context, secretName, versionID string) error {
	return m.setState(secretName, versionID, "Enabled")
}

func (m *memStore) DisableVersion(_ context.Context, secretName, versionID string) error {
	return m.setState(secretName, versionID, "Disabled")
}

func (m *memStore) DestroyVersion(_ context.Context, secretName, versionID string) error {
	return m.setState(secretName, versionID, "Destroyed")
}

func (m *memStore) AccessVersion(_ context.Context, secretName, versionID string) (Payload, error) {
	if m.accessErr != nil {
		return Payload{}, m.accessErr
	}
	payload, ok := m.payloads[secretName+"/"+versionID]
	if !ok {
		return Payload{}, fmt.Errorf("no payload for %s/%s", secretName, versionID)
	}
	return payload, nil
}

func (m *memStore) AccessLatest(ctx context.Context, secretName string) (Payload, error) {
	return m.AccessVersion(ctx, secretName, "latest")
}

func (m *memStore) IamPolicy(_ context.Context, secretName string) (IamPolicy, error) {
	return m.policies[secretName], nil
}

func (m *memStore) Close() error {
	m.closed = true
	return nil
}

func fixtureStore() *memStore {
	st := newMemStore()
	st.secrets = []Secret{
		{Name: "api-key", Replication: Replication{Automatic: true}, CreatedAt: "2025-03-01 10:00"},
		{
			Name:        "db-pass",
			Replication: Replication{Locations: []string{"us-east1"}},
			CreatedAt:   "2025-03-02 11:00",
			Labels:      map[string]string{"env": "prod"},
		},
	}
	st.versions["db-pass"] = []Version{
		{VersionID: "2", State: "Enabled", CreatedAt: "2025-03-10 09:00"},
		{VersionID: "1", State: "Disabled", CreatedAt: "2025-03-02 11:00"},
	}
	st.payloads["db-pass/2"] = Payload{Data: "hunter2"}
	st.payloads["db-pass/1"] = Payload{Data: "hunter1"}
	st.payloads["db-pass/latest"] = Payload{Data: "hunter2"}
	return st
}

func newTestService(store Store) *SecretManager {
	s := newService(service.Deps{Resolver: keymap.Default(), Env: command.NewEnv(nil)})
	s.dial = func(context.Context) (Store, error) { return store, nil }
	return s
}

// pump runs update passes, executing every returned command inline,
// until the service settles. Command errors are swallowed the way the
// app swallows them after raising the error dialog.
func pump(t *testing.T, s *SecretManager) []string {
	t.Helper()
	var names []string
	for range 32 {
		res := s.Update()
		if msg, failed := res.Err(); failed {
			t.Fatalf("update failed: %s", msg)
		}
		cmds := res.Commands()
		if len(cmds) == 0 {
			return names
		}
		for _, cmd := range cmds {
			names = append(names, cmd.Name())
			_ = cmd.Execute(context.Background())
		}
	}
	t.Fatal("service did not settle after 32 update passes")
	return nil
}

func startedService(t *testing.T, store Store) *SecretManager {
	t.Helper()
	s := newTestService(store)
	s.Init()
	pump(t, s)
	return s
}

func press(t *testing.T, s *SecretManager, msg tea.KeyMsg) []string {
	t.Helper()
	if !s.HandleInput(msg) {
		t.Fatalf("key %v not consumed", msg)
	}
	return pump(t, s)
}

func keyRune(r rune) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}} }
func keyEnter() tea.KeyMsg      { return tea.KeyMsg{Type: tea.KeyEnter} }
func keyEsc() tea.KeyMsg        { return tea.KeyMsg{Type: tea.KeyEsc} }

func wantBreadcrumbs(t *testing.T, s *SecretManager, want ...string) {
	t.Helper()
	if got := s.Breadcrumbs(); !slices.Equal(got, want) {
		t.Fatalf("Breadcrumbs() = %v, want %v", got, want)
	}
}

func TestSecretManager_InitShowsSecretList(t *testing.T) {
	s := newTestService(fixtureStore())
	s.Init()

	names := pump(t, s)
	want := []string{"Initializing Secret Manager", "Loading secrets"}
	if !slices.Equal(names, want) {
		t.Fatalf("startup commands = %v, want %v", names, want)
	}
	if s.loading != "" {
		t.Fatalf("still loading %q after startup", s.loading)
	}

	top, ok := s.topScreen().(*secretListScreen)
	if !ok {
		t.Fatalf("top screen is %T, want *secretListScreen", s.topScreen())
	}
	if secret, ok := top.table.SelectedItem(); !ok || secret.Name != "api-key" {
		t.Fatalf("selected secret = %v %v, want api-key", secret, ok)
	}
	wantBreadcrumbs(t, s, "Secret Manager", "Secrets")
	if len(s.Keybindings()) == 0 {
		t.Fatal("Keybindings() empty on secret list")
	}
}

func TestSecretManager_FilterThenSelectOpensVersions(t *testing.T) {
	st := newMemStore()
	for _, name := range []string{"api-key", "db-pass", "jwt-signing-key", "oauth-client", "session-key"} {
		st.secrets = append(st.secrets, Secret{Name: name, Replication: Replication{Automatic: true}})
	}
	st.versions["db-pass"] = []Version{{VersionID: "1", State: "Enabled"}}
	s := startedService(t, st)

	press(t, s, keyRune('/'))
	press(t, s, keyRune('d'))
	press(t, s, keyRune('b'))

	top := s.topScreen().(*secretListScreen)
	if secret, ok := top.table.SelectedItem(); !ok || secret.Name != "db-pass" {
		t.Fatalf("selected secret after filter = %v %v, want db-pass", secret, ok)
	}

	// First Enter leaves the filter editor, second activates the row.
	press(t, s, keyEnter())
	if !s.HandleInput(keyEnter()) {
		t.Fatal("Enter not consumed")
	}
	names := pump(t, s)
	if !slices.Equal(names, []string{"Loading versions"}) {
		t.Fatalf("commands = %v, want [Loading versions]", names)
	}

	versions, ok := s.topScreen().(*versionListScreen)
	if !ok {
		t.Fatalf("top screen is %T, want *versionListScreen", s.topScreen())
	}
	if versions.secret.Name != "db-pass" {
		t.Fatalf("version list for %q, want db-pass", versions.secret.Name)
	}
	wantBreadcrumbs(t, s, "Secret Manager", "Secrets", "Versions")
}

func TestSecretManager_BackUnwindsStackThenCloses(t *testing.T) {
	s := startedService(t, fixtureStore())

	press(t, s, keyRune('j'))
	press(t, s, keyEnter()) // versions of db-pass
	names := press(t, s, keyEnter())
	if !slices.Equal(names, []string{"Loading secret payload"}) {
		t.Fatalf("commands = %v, want [Loading secret payload]", names)
	}
	wantBreadcrumbs(t, s, "Secret Manager", "Secrets", "Versions", "Payload")

	press(t, s, keyEsc())
	wantBreadcrumbs(t, s, "Secret Manager", "Secrets", "Versions")

	press(t, s, keyEsc())
	wantBreadcrumbs(t, s, "Secret Manager", "Secrets")

	if !s.HandleInput(keyEsc()) {
		t.Fatal("Esc not consumed on root screen")
	}
	if res := s.Update(); !res.IsClose() {
		t.Fatalf("Update() = %+v, want close", res)
	}
}

func TestSecretManager_LoadFailureLeavesEmptyListAndRetries(t *testing.T) {
	st := newMemStore()
	st.listSecretsErr = errors.New("permission denied")
	s := newTestService(st)
	s.Init()

	cmds := s.Update().Commands()
	if len(cmds) != 1 {
		t.Fatalf("got %d startup commands, want 1", len(cmds))
	}
	if err := cmds[0].Execute(context.Background()); err != nil {
		t.Fatalf("init command failed: %v", err)
	}

	cmds = s.Update().Commands()
	if len(cmds) != 1 || cmds[0].Name() != "Loading secrets" {
		t.Fatalf("commands = %v, want [Loading secrets]", cmds)
	}
	err := cmds[0].Execute(context.Background())
	if err == nil || err.Error() != "Failed to load secrets: permission denied" {
		t.Fatalf("command error = %v, want wrapped permission denied", err)
	}

	if res := s.Update(); !res.IsIdle() {
		t.Fatalf("Update() after failure = %+v, want idle", res)
	}
	if s.loading != "" {
		t.Fatalf("spinner still up after failure: %q", s.loading)
	}
	top, ok := s.topScreen().(*secretListScreen)
	if !ok {
		t.Fatalf("top screen is %T, want *secretListScreen", s.topScreen())
	}
	if _, ok := top.table.SelectedItem(); ok {
		t.Fatal("recovery list should be empty")
	}

	// The store recovers; r refetches.
	st.listSecretsErr = nil
	st.secrets = []Secret{{Name: "api-key", Replication: Replication{Automatic: true}}}
	names := press(t, s, keyRune('r'))
	if !slices.Equal(names, []string{"Loading secrets"}) {
		t.Fatalf("retry commands = %v, want [Loading secrets]", names)
	}
	top = s.topScreen().(*secretListScreen)
	if secret, ok := top.table.SelectedItem(); !ok || secret.Name != "api-key" {
		t.Fatalf("selected secret after retry = %v %v, want api-key", secret, ok)
	}
}

func TestSecretManager_InputRefusedWhileLoading(t *testing.T) {
	s := newTestService(fixtureStore())
	if s.loading == "" {
		t.Fatal("fresh service should be loading")
	}

	if s.HandleInput(keyRune('j')) {
		t.Fatal("input consumed while loading")
	}
	if got := s.queue.Len(); got != 0 {
		t.Fatalf("queue grew to %d on refused input", got)
	}

	s.Init()
	if s.HandleInput(keyEnter()) {
		t.Fatal("input consumed while loading")
	}
	if got := s.queue.Len(); got != 1 {
		t.Fatalf("queue length = %d, want just the init message", got)
	}
}

func TestSecretManager_UpdateIdleWhenQueueEmpty(t *testing.T) {
	s := startedService(t, fixtureStore())
	if res := s.Update(); !res.IsIdle() {
		t.Fatalf("Update() on empty queue = %+v, want idle", res)
	}
}

func TestSecretManager_StaleVersionResultDiscarded(t *testing.T) {
	s := startedService(t, fixtureStore())
	press(t, s, keyRune('j'))
	press(t, s, keyEnter())
	press(t, s, keyEnter()) // payload screen on top

	depth := len(s.screens)
	s.queue.Push(versionsLoadedMsg{
		secret:   Secret{Name: "ghost"},
		versions: []Version{{VersionID: "9", State: "Enabled"}},
	})
	if res := s.Update(); !res.IsIdle() {
		t.Fatalf("Update() = %+v, want idle", res)
	}

	if len(s.screens) != depth {
		t.Fatalf("stack depth changed: %d, want %d", len(s.screens), depth)
	}
	if _, ok := s.topScreen().(*payloadScreen); !ok {
		t.Fatalf("top screen is %T, want *payloadScreen", s.topScreen())
	}
	if _, ok := s.versions["ghost"]; ok {
		t.Fatal("stale result wrote the versions cache")
	}
}

func TestSecretManager_CreateSecretWizard(t *testing.T) {
	st := fixtureStore()
	s := startedService(t, st)

	press(t, s, keyRune('n'))
	if _, ok := s.modal.(*secretNameDialog); !ok {
		t.Fatalf("modal is %T, want *secretNameDialog", s.modal)
	}

	for _, r := range "ssh-key" {
		if !s.HandleInput(keyRune(r)) {
			t.Fatalf("rune %q not consumed by name input", r)
		}
	}
	press(t, s, keyEnter())
	if _, ok := s.modal.(*secretPayloadDialog); !ok {
		t.Fatalf("modal is %T, want *secretPayloadDialog", s.modal)
	}

	names := press(t, s, keyEnter()) // empty payload: secret without initial version
	if !slices.Equal(names, []string{"Creating secret", "Loading secrets"}) {
		t.Fatalf("commands = %v, want [Creating secret, Loading secrets]", names)
	}
	if s.modal != nil {
		t.Fatalf("modal still open: %T", s.modal)
	}
	if len(st.secrets) != 3 {
		t.Fatalf("store has %d secrets, want 3", len(st.secrets))
	}
	if _, ok := st.versions["ssh-key"]; ok {
		t.Fatal("empty payload must not create an initial version")
	}
}

func TestSecretManager_CreateSecretEmptyNameCancels(t *testing.T) {
	s := startedService(t, fixtureStore())

	press(t, s, keyRune('n'))
	names := press(t, s, keyEnter())
	if len(names) != 0 {
		t.Fatalf("commands = %v, want none", names)
	}
	if s.modal != nil {
		t.Fatalf("modal still open after empty submit: %T", s.modal)
	}
}

func TestSecretManager_DeleteSecretFlow(t *testing.T) {
	st := fixtureStore()
	s := startedService(t, st)

	// Declining keeps everything.
	press(t, s, keyRune('d'))
	if _, ok := s.modal.(*deleteSecretDialog); !ok {
		t.Fatalf("modal is %T, want *deleteSecretDialog", s.modal)
	}
	press(t, s, keyRune('n'))
	if s.modal != nil || len(st.secrets) != 2 {
		t.Fatalf("decline mutated state: modal=%T secrets=%d", s.modal, len(st.secrets))
	}

	press(t, s, keyRune('d'))
	names := press(t, s, keyRune('y'))
	if !slices.Equal(names, []string{"Deleting secret", "Loading secrets"}) {
		t.Fatalf("commands = %v, want [Deleting secret, Loading secrets]", names)
	}
	if len(st.secrets) != 1 || st.secrets[0].Name != "db-pass" {
		t.Fatalf("store secrets = %v, want only db-pass", st.secrets)
	}
}

func TestSecretManager_VersionMutations(t *testing.T) {
	st := fixtureStore()
	s := startedService(t, st)
	press(t, s, keyRune('j'))
	press(t, s, keyEnter()) // versions of db-pass, cursor on version 2 (Enabled)

	// Enable is gated off while the version is enabled.
	if s.HandleInput(keyRune('e')) {
		t.Fatal("enable consumed on an enabled version")
	}

	names := press(t, s, keyRune('d'))
	if !slices.Equal(names, []string{"Disabling version", "Loading versions"}) {
		t.Fatalf("disable commands = %v", names)
	}
	top := s.topScreen().(*versionListScreen)
	if v, _ := top.table.SelectedItem(); v.State != "Disabled" {
		t.Fatalf("version state = %q, want Disabled", v.State)
	}

	names = press(t, s, keyRune('e'))
	if !slices.Equal(names, []string{"Enabling version", "Loading versions"}) {
		t.Fatalf("enable commands = %v", names)
	}

	press(t, s, keyRune('D'))
	if _, ok := s.modal.(*destroyVersionDialog); !ok {
		t.Fatalf("modal is %T, want *destroyVersionDialog", s.modal)
	}
	names = press(t, s, keyRune('y'))
	if !slices.Equal(names, []string{"Destroying version", "Loading versions"}) {
		t.Fatalf("destroy commands = %v", names)
	}
	top = s.topScreen().(*versionListScreen)
	if v, _ := top.table.SelectedItem(); v.State != "Destroyed" {
		t.Fatalf("version state = %q, want Destroyed", v.State)
	}
}

func TestSecretManager_AddVersionFlow(t *testing.T) {
	st := fixtureStore()
	s := startedService(t, st)
	press(t, s, keyRune('j'))
	press(t, s, keyEnter())

	press(t, s, keyRune('a'))
	if _, ok := s.modal.(*versionPayloadDialog); !ok {
		t.Fatalf("modal is %T, want *versionPayloadDialog", s.modal)
	}
	for _, r := range "s3cret" {
		if !s.HandleInput(keyRune(r)) {
			t.Fatalf("rune %q not consumed by payload input", r)
		}
	}
	names := press(t, s, keyEnter())
	if !slices.Equal(names, []string{"Adding secret version", "Loading versions"}) {
		t.Fatalf("commands = %v", names)
	}
	if got := len(s.versions["db-pass"]); got != 3 {
		t.Fatalf("cached versions = %d, want 3", got)
	}
}

func TestSecretManager_PayloadCachedOnReturnVisit(t *testing.T) {
	s := startedService(t, fixtureStore())
	press(t, s, keyRune('j'))
	press(t, s, keyEnter())
	press(t, s, keyEnter()) // fetches and caches the payload
	press(t, s, keyEsc())

	names := press(t, s, keyEnter())
	if len(names) != 0 {
		t.Fatalf("commands on cached payload = %v, want none", names)
	}
	top, ok := s.topScreen().(*payloadScreen)
	if !ok {
		t.Fatalf("top screen is %T, want *payloadScreen", s.topScreen())
	}
	if top.cacheKey() != "db-pass/2" {
		t.Fatalf("payload key = %q, want db-pass/2", top.cacheKey())
	}
}

func TestSecretManager_LatestPayloadFromSecretList(t *testing.T) {
	s := startedService(t, fixtureStore())
	press(t, s, keyRune('j'))

	names := press(t, s, keyRune('v'))
	if !slices.Equal(names, []string{"Loading latest secret payload"}) {
		t.Fatalf("commands = %v, want [Loading latest secret payload]", names)
	}
	top, ok := s.topScreen().(*payloadScreen)
	if !ok {
		t.Fatalf("top screen is %T, want *payloadScreen", s.topScreen())
	}
	if top.cacheKey() != "db-pass/latest" {
		t.Fatalf("payload key = %q, want db-pass/latest", top.cacheKey())
	}
	wantBreadcrumbs(t, s, "Secret Manager", "Secrets", "Payload")
}

func TestSecretManager_DestroyDropsCachedPayload(t *testing.T) {
	s := startedService(t, fixtureStore())
	press(t, s, keyRune('j'))
	press(t, s, keyEnter())
	press(t, s, keyEnter()) // cache db-pass/2
	press(t, s, keyEsc())

	press(t, s, keyRune('D'))
	press(t, s, keyRune('y'))

	if _, ok := s.payloads["db-pass/2"]; ok {
		t.Fatal("destroyed version still cached")
	}
	if _, ok := s.payloads["db-pass/latest"]; ok {
		t.Fatal("latest alias still cached after destroy")
	}
}

func TestSecretManager_MetadataScreens(t *testing.T) {
	st := fixtureStore()
	st.policies["api-key"] = IamPolicy{Bindings: []IamBinding{
		{Role: "roles/secretmanager.admin", Members: []string{"user:ops@example.com"}},
	}}
	s := startedService(t, st)

	names := press(t, s, keyRune('i'))
	if !slices.Equal(names, []string{"Loading IAM policy"}) {
		t.Fatalf("commands = %v, want [Loading IAM policy]", names)
	}
	wantBreadcrumbs(t, s, "Secret Manager", "Secrets", "IAM Policy")

	press(t, s, keyEsc())
	names = press(t, s, keyRune('R'))
	if !slices.Equal(names, []string{"Loading secret metadata"}) {
		t.Fatalf("commands = %v, want [Loading secret metadata]", names)
	}
	wantBreadcrumbs(t, s, "Secret Manager", "Secrets", "Replication")

	press(t, s, keyEsc())
	press(t, s, keyRune('j'))
	names = press(t, s, keyRune('l'))
	if len(names) != 0 {
		t.Fatalf("labels screen ran commands: %v", names)
	}
	wantBreadcrumbs(t, s, "Secret Manager", "Secrets", "Labels")
}

func TestSecretManager_UpdateLabelsRefreshesScreen(t *testing.T) {
	st := fixtureStore()
	s := startedService(t, st)
	press(t, s, keyRune('j'))
	press(t, s, keyRune('l'))

	s.queue.Push(updateLabelsMsg{
		secret: st.secrets[1],
		labels: map[string]string{"env": "staging", "team": "core"},
	})
	names := pump(t, s)
	if !slices.Equal(names, []string{"Updating labels"}) {
		t.Fatalf("commands = %v, want [Updating labels]", names)
	}

	if got := st.secrets[1].Labels["env"]; got != "staging" {
		t.Fatalf("store label env = %q, want staging", got)
	}
	top, ok := s.topScreen().(*labelsScreen)
	if !ok {
		t.Fatalf("top screen is %T, want *labelsScreen", s.topScreen())
	}
	if got := len(top.secret.Labels); got != 2 {
		t.Fatalf("labels screen shows %d labels, want 2", got)
	}
	if s.haveSecrets {
		t.Fatal("secret list cache should be invalidated after a label update")
	}
}

func TestSecretManager_DestroyClosesStore(t *testing.T) {
	st := fixtureStore()
	s := startedService(t, st)
	s.Destroy()
	if !st.closed {
		t.Fatal("Destroy did not close the store")
	}
}
