package secretmanager

import (
	"context"
	"errors"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jorgeparavicini/lazycloud/internal/cloud"
	"github.com/jorgeparavicini/lazycloud/internal/command"
	"github.com/jorgeparavicini/lazycloud/internal/keymap"
	"github.com/jorgeparavicini/lazycloud/internal/service"
	"github.com/jorgeparavicini/lazycloud/internal/theme"
	"github.com/jorgeparavicini/lazycloud/internal/view"
)

// screen is one full-area view in the navigation stack.
type screen interface {
	handleKey(msg tea.KeyMsg) view.Result[message]
	render(width, height int, th theme.Theme) string
	breadcrumb() string
	reload() message
	hints() []service.Hint
}

// dialog is a modal drawn instead of the current screen. Dialogs must
// consume every key so nothing reaches the screen below them.
type dialog interface {
	handleKey(msg tea.KeyMsg) view.Result[message]
	render(width int, th theme.Theme) string
}

// SecretManager is the Secret Manager service: a navigation stack of
// screens over cached API data. All mutation flows through process.
type SecretManager struct {
	resolver *keymap.Resolver
	env      command.Env
	dial     func(ctx context.Context) (Store, error)

	queue   service.Queue[message]
	store   Store
	spinner *view.Spinner
	loading string
	screens []screen
	modal   dialog

	secrets     []Secret
	haveSecrets bool
	versions    map[string][]Version
	payloads    map[string]Payload
}

// New builds the service for a GCP context.
func New(ctx cloud.Context, deps service.Deps) (*SecretManager, error) {
	gcp := ctx.GCP
	if gcp == nil {
		return nil, errors.New("secret manager requires a GCP context")
	}
	s := newService(deps)
	s.dial = func(ctx context.Context) (Store, error) {
		return Dial(ctx, gcp.ProjectID, gcp.CredentialsPath)
	}
	return s, nil
}

// newService wires everything except the store dialer, which New (or a
// test) supplies.
func newService(deps service.Deps) *SecretManager {
	return &SecretManager{
		resolver: deps.Resolver,
		env:      deps.Env,
		spinner:  view.NewSpinner(),
		loading:  "Initializing...",
		versions: make(map[string][]Version),
		payloads: make(map[string]Payload),
	}
}

// Init implements service.Service.
func (s *SecretManager) Init() {
	s.queue.Push(initializeMsg{})
}

// Destroy implements service.Service.
func (s *SecretManager) Destroy() {
	if s.store != nil {
		_ = s.store.Close()
	}
}

// HandleTick implements service.Service.
func (s *SecretManager) HandleTick() {
	if s.loading != "" {
		s.spinner.Advance()
	}
}

// HandleInput implements service.Service. While a load is in flight all
// keys are refused so they stay available to the app's global handlers.
// Otherwise the modal gets the key first, then the top screen, then the
// global back binding.
func (s *SecretManager) HandleInput(msg tea.KeyMsg) bool {
	if s.loading != "" {
		return false
	}

	if s.modal != nil {
		res := s.modal.handleKey(msg)
		if ev, ok := res.Event(); ok {
			s.queue.Push(ev)
		}
		if res.IsConsumed() {
			return true
		}
	}

	if top := s.topScreen(); top != nil {
		res := top.handleKey(msg)
		if ev, ok := res.Event(); ok {
			s.queue.Push(ev)
		}
		if res.IsConsumed() {
			return true
		}
	}

	if ev, ok := keymap.FromKeyMsg(msg); ok {
		if s.resolver.Matches(keymap.LayerGlobal, keymap.ActionBack, ev) {
			s.queue.Push(navigateBackMsg{})
			return true
		}
	}
	return false
}

// Update implements service.Service. It drains the queue, including
// messages queued while processing, and accumulates commands. A close
// or an error ends the pass immediately; the rest of the batch is
// dropped, since after either outcome replaying it could only repeat
// the failure.
func (s *SecretManager) Update() service.UpdateResult {
	var cmds []command.Command
	for {
		msgs := s.queue.Drain()
		if len(msgs) == 0 {
			break
		}
		for _, msg := range msgs {
			res, err := s.process(msg)
			if err != nil {
				return service.Fail(err.Error())
			}
			if res.IsClose() {
				return res
			}
			cmds = append(cmds, res.Commands()...)
		}
	}
	return service.RunCommands(cmds...)
}

// View implements service.Service.
func (s *SecretManager) View(width, height int, th theme.Theme) string {
	if s.modal != nil {
		return centered(width, height, s.modal.render(dialogWidth(width), th), th)
	}
	if s.loading != "" {
		s.spinner.SetLabel(s.loading)
		return centered(width, height, s.spinner.View(th), th)
	}
	if top := s.topScreen(); top != nil {
		return top.render(width, height, th)
	}
	return ""
}

// Breadcrumbs implements service.Service.
func (s *SecretManager) Breadcrumbs() []string {
	crumbs := make([]string, 0, len(s.screens)+1)
	crumbs = append(crumbs, "Secret Manager")
	for _, sc := range s.screens {
		crumbs = append(crumbs, sc.breadcrumb())
	}
	return crumbs
}

// Keybindings implements service.Service.
func (s *SecretManager) Keybindings() []service.Hint {
	if top := s.topScreen(); top != nil {
		return top.hints()
	}
	return nil
}

// process applies one message. It is the only place navigation state,
// the modal and the caches change. A returned error surfaces as an
// error dialog while the service stays up.
func (s *SecretManager) process(msg message) (service.UpdateResult, error) {
	switch m := msg.(type) {
	case initializeMsg:
		s.loading = "Initializing Secret Manager..."
		return service.RunCommands(s.initCmd()), nil

	case clientInitializedMsg:
		s.store = m.store
		s.queue.Push(loadSecretsMsg{})
		return service.Idle(), nil

	case navigateBackMsg:
		if s.popScreen() {
			return service.Idle(), nil
		}
		return service.Close(), nil

	case reloadDataMsg:
		top := s.topScreen()
		if top == nil {
			return service.Idle(), nil
		}
		s.invalidateFor(top)
		s.queue.Push(top.reload())
		return service.Idle(), nil

	case dialogCancelledMsg:
		s.modal = nil
		return service.Idle(), nil

	case loadSecretsMsg:
		if s.haveSecrets {
			s.presentSecretList(s.secrets)
			return service.Idle(), nil
		}
		st, err := s.requireStore()
		if err != nil {
			return service.Idle(), err
		}
		s.loading = "Loading secrets..."
		return service.RunCommands(s.fetchSecretsCmd(st)), nil

	case selectSecretMsg:
		if versions, ok := s.versions[m.secret.Name]; ok {
			s.presentVersionList(m.secret, versions)
			return service.Idle(), nil
		}
		st, err := s.requireStore()
		if err != nil {
			return service.Idle(), err
		}
		s.loading = "Loading versions..."
		return service.RunCommands(s.fetchVersionsCmd(st, m.secret)), nil

	case showCreateSecretMsg:
		s.modal = newSecretNameDialog()
		return service.Idle(), nil

	case createSecretStep2Msg:
		s.modal = newSecretPayloadDialog(m.name)
		return service.Idle(), nil

	case createSecretMsg:
		st, err := s.requireStore()
		if err != nil {
			return service.Idle(), err
		}
		s.modal = nil
		s.loading = "Creating secret..."
		return service.RunCommands(s.createSecretCmd(st, m.name, []byte(m.payload))), nil

	case showDeleteSecretMsg:
		s.modal = newDeleteSecretDialog(m.secret, s.resolver)
		return service.Idle(), nil

	case deleteSecretMsg:
		st, err := s.requireStore()
		if err != nil {
			return service.Idle(), err
		}
		s.modal = nil
		s.loading = "Deleting secret..."
		return service.RunCommands(s.deleteSecretCmd(st, m.secret.Name)), nil

	case showCreateVersionMsg:
		s.modal = newVersionPayloadDialog(m.secret)
		return service.Idle(), nil

	case createVersionMsg:
		st, err := s.requireStore()
		if err != nil {
			return service.Idle(), err
		}
		s.modal = nil
		delete(s.versions, m.secret.Name)
		delete(s.payloads, m.secret.Name+"/latest")
		s.loading = "Creating version..."
		return service.RunCommands(s.addVersionCmd(st, m.secret, []byte(m.payload))), nil

	case enableVersionMsg:
		st, err := s.requireStore()
		if err != nil {
			return service.Idle(), err
		}
		delete(s.versions, m.secret.Name)
		s.loading = "Enabling version..."
		return service.RunCommands(s.enableVersionCmd(st, m.secret, m.version)), nil

	case disableVersionMsg:
		st, err := s.requireStore()
		if err != nil {
			return service.Idle(), err
		}
		delete(s.versions, m.secret.Name)
		s.loading = "Disabling version..."
		return service.RunCommands(s.disableVersionCmd(st, m.secret, m.version)), nil

	case showDestroyVersionMsg:
		s.modal = newDestroyVersionDialog(m.secret, m.version, s.resolver)
		return service.Idle(), nil

	case destroyVersionMsg:
		st, err := s.requireStore()
		if err != nil {
			return service.Idle(), err
		}
		s.modal = nil
		delete(s.versions, m.secret.Name)
		delete(s.payloads, payloadCacheKey(m.secret, &m.version))
		delete(s.payloads, m.secret.Name+"/latest")
		s.loading = "Destroying version..."
		return service.RunCommands(s.destroyVersionCmd(st, m.secret, m.version)), nil

	case selectVersionMsg:
		version := m.version
		s.queue.Push(loadPayloadMsg{secret: m.secret, version: &version})
		return service.Idle(), nil

	case loadPayloadMsg:
		if payload, ok := s.payloads[payloadCacheKey(m.secret, m.version)]; ok {
			s.presentPayload(m.secret, m.version, payload)
			return service.Idle(), nil
		}
		st, err := s.requireStore()
		if err != nil {
			return service.Idle(), err
		}
		s.loading = "Loading payload..."
		if m.version != nil {
			return service.RunCommands(s.fetchPayloadCmd(st, m.secret, *m.version)), nil
		}
		return service.RunCommands(s.fetchLatestPayloadCmd(st, m.secret)), nil

	case copyTextMsg:
		return service.RunCommands(command.NewCopy(s.env, m.text, m.what)), nil

	case showLabelsMsg:
		next := newLabelsScreen(m.secret, s.resolver)
		if top, ok := s.topScreen().(*labelsScreen); ok && top.secret.Name == m.secret.Name {
			s.replaceTop(next)
		} else {
			s.pushScreen(next)
		}
		return service.Idle(), nil

	case updateLabelsMsg:
		st, err := s.requireStore()
		if err != nil {
			return service.Idle(), err
		}
		s.loading = "Updating labels..."
		return service.RunCommands(s.updateLabelsCmd(st, m.secret, m.labels)), nil

	case showIamPolicyMsg:
		st, err := s.requireStore()
		if err != nil {
			return service.Idle(), err
		}
		s.loading = "Loading IAM policy..."
		return service.RunCommands(s.fetchIamPolicyCmd(st, m.secret)), nil

	case showReplicationMsg:
		st, err := s.requireStore()
		if err != nil {
			return service.Idle(), err
		}
		s.loading = "Loading replication info..."
		return service.RunCommands(s.fetchMetadataCmd(st, m.secret)), nil

	case secretsLoadedMsg:
		switch s.topScreen().(type) {
		case nil, *secretListScreen:
			s.secrets, s.haveSecrets = m.secrets, true
			s.presentSecretList(m.secrets)
		default:
			// Stale result; the user has navigated elsewhere.
		}
		return service.Idle(), nil

	case secretCreatedMsg:
		s.secrets, s.haveSecrets = nil, false
		s.queue.Push(loadSecretsMsg{})
		return service.Idle(), nil

	case secretDeletedMsg:
		s.secrets, s.haveSecrets = nil, false
		delete(s.versions, m.name)
		s.dropPayloads(m.name)
		s.queue.Push(loadSecretsMsg{})
		return service.Idle(), nil

	case versionsLoadedMsg:
		if s.acceptsVersionList(m.secret) {
			s.versions[m.secret.Name] = m.versions
			s.presentVersionList(m.secret, m.versions)
		}
		return service.Idle(), nil

	case payloadLoadedMsg:
		if s.acceptsPayload(m.secret, m.version) {
			s.payloads[payloadCacheKey(m.secret, m.version)] = m.payload
			s.presentPayload(m.secret, m.version, m.payload)
		}
		return service.Idle(), nil

	case versionAddedMsg:
		s.queue.Push(selectSecretMsg{secret: m.secret})
		return service.Idle(), nil

	case versionEnabledMsg:
		s.queue.Push(selectSecretMsg{secret: m.secret})
		return service.Idle(), nil

	case versionDisabledMsg:
		s.queue.Push(selectSecretMsg{secret: m.secret})
		return service.Idle(), nil

	case versionDestroyedMsg:
		s.queue.Push(selectSecretMsg{secret: m.secret})
		return service.Idle(), nil

	case labelsUpdatedMsg:
		s.secrets, s.haveSecrets = nil, false
		if top, ok := s.topScreen().(*labelsScreen); ok && top.secret.Name == m.secret.Name {
			s.replaceTop(newLabelsScreen(m.secret, s.resolver))
		}
		return service.Idle(), nil

	case iamPolicyLoadedMsg:
		next := newIamPolicyScreen(m.secret, m.policy, s.resolver)
		switch top := s.topScreen().(type) {
		case *secretListScreen:
			s.pushScreen(next)
		case *iamPolicyScreen:
			if top.secret.Name == m.secret.Name {
				s.replaceTop(next)
			}
		}
		return service.Idle(), nil

	case replicationLoadedMsg:
		next := newReplicationScreen(m.secret, m.replication, s.resolver)
		switch top := s.topScreen().(type) {
		case *secretListScreen:
			s.pushScreen(next)
		case *replicationScreen:
			if top.secret.Name == m.secret.Name {
				s.replaceTop(next)
			}
		}
		return service.Idle(), nil

	case operationFailedMsg:
		slog.Warn("secret manager operation failed", "error", m.message)
		s.loading = ""
		if len(s.screens) == 0 {
			s.pushScreen(newSecretListScreen(nil, s.resolver))
		}
		return service.Idle(), nil
	}

	return service.Idle(), nil
}

func (s *SecretManager) requireStore() (Store, error) {
	if s.store == nil {
		return nil, errors.New("Secret Manager client not initialized")
	}
	return s.store, nil
}

func (s *SecretManager) topScreen() screen {
	if len(s.screens) == 0 {
		return nil
	}
	return s.screens[len(s.screens)-1]
}

// pushScreen adds a screen and hides the spinner, since arriving
// anywhere means the load that was in flight finished.
func (s *SecretManager) pushScreen(sc screen) {
	s.loading = ""
	s.screens = append(s.screens, sc)
}

func (s *SecretManager) replaceTop(sc screen) {
	s.loading = ""
	s.screens[len(s.screens)-1] = sc
}

func (s *SecretManager) popScreen() bool {
	if len(s.screens) <= 1 {
		return false
	}
	s.screens = s.screens[:len(s.screens)-1]
	return true
}

// presentSecretList replaces the list when it is already on top and
// pushes it otherwise (the initial load).
func (s *SecretManager) presentSecretList(secrets []Secret) {
	next := newSecretListScreen(secrets, s.resolver)
	if _, ok := s.topScreen().(*secretListScreen); ok {
		s.replaceTop(next)
		return
	}
	s.pushScreen(next)
}

func (s *SecretManager) presentVersionList(secret Secret, versions []Version) {
	next := newVersionListScreen(secret, versions, s.resolver)
	if top, ok := s.topScreen().(*versionListScreen); ok && top.secret.Name == secret.Name {
		s.replaceTop(next)
		return
	}
	s.pushScreen(next)
}

func (s *SecretManager) presentPayload(secret Secret, version *Version, payload Payload) {
	next := newPayloadScreen(secret, version, payload, s.resolver)
	if top, ok := s.topScreen().(*payloadScreen); ok && top.cacheKey() == payloadCacheKey(secret, version) {
		s.replaceTop(next)
		return
	}
	s.pushScreen(next)
}

// acceptsVersionList reports whether an arriving version list is still
// wanted: the user is on the secret list waiting for it, or on this
// secret's version list refreshing it. Anything else is a stale result
// and is discarded without touching cache or views.
func (s *SecretManager) acceptsVersionList(secret Secret) bool {
	switch top := s.topScreen().(type) {
	case *secretListScreen:
		return true
	case *versionListScreen:
		return top.secret.Name == secret.Name
	}
	return false
}

func (s *SecretManager) acceptsPayload(secret Secret, version *Version) bool {
	switch top := s.topScreen().(type) {
	case *secretListScreen:
		// Latest payload opened straight from the list.
		return true
	case *versionListScreen:
		return top.secret.Name == secret.Name
	case *payloadScreen:
		return top.cacheKey() == payloadCacheKey(secret, version)
	}
	return false
}

// invalidateFor drops the cache behind the given screen so its reload
// message refetches.
func (s *SecretManager) invalidateFor(top screen) {
	switch sc := top.(type) {
	case *secretListScreen:
		s.secrets, s.haveSecrets = nil, false
	case *versionListScreen:
		delete(s.versions, sc.secret.Name)
	case *payloadScreen:
		delete(s.payloads, sc.cacheKey())
	}
}

// dropPayloads removes every cached payload of one secret.
func (s *SecretManager) dropPayloads(name string) {
	prefix := name + "/"
	for key := range s.payloads {
		if len(key) > len(prefix) && key[:len(prefix)] == prefix {
			delete(s.payloads, key)
		}
	}
}

func payloadCacheKey(secret Secret, version *Version) string {
	id := "latest"
	if version != nil {
		id = version.VersionID
	}
	return secret.Name + "/" + id
}

func dialogWidth(width int) int {
	w := min(width-8, 64)
	if w < 20 {
		w = max(width-2, 10)
	}
	return w
}

// centered places content in the middle of the service area, filling
// the rest with the theme background.
func centered(width, height int, content string, th theme.Theme) string {
	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		content,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(th.Base)),
	)
}
