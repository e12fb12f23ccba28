package secretmanager

// message is the closed alphabet the service queue carries. Everything
// that moves the service (user intent, navigation, async results) is
// one of these values; process consumes them in arrival order.
type message interface{ isMessage() }

// Lifecycle.

type initializeMsg struct{}

type clientInitializedMsg struct{ store Store }

// Navigation.

type navigateBackMsg struct{}

type reloadDataMsg struct{}

type dialogCancelledMsg struct{}

// Secrets.

type loadSecretsMsg struct{}

type selectSecretMsg struct{ secret Secret }

type showCreateSecretMsg struct{}

type createSecretStep2Msg struct{ name string }

// createSecretMsg creates a secret; an empty payload skips the initial
// version.
type createSecretMsg struct {
	name    string
	payload string
}

type showDeleteSecretMsg struct{ secret Secret }

type deleteSecretMsg struct{ secret Secret }

// Versions.

type showCreateVersionMsg struct{ secret Secret }

type createVersionMsg struct {
	secret  Secret
	payload string
}

type enableVersionMsg struct {
	secret  Secret
	version Version
}

type disableVersionMsg struct {
	secret  Secret
	version Version
}

type showDestroyVersionMsg struct {
	secret  Secret
	version Version
}

type destroyVersionMsg struct {
	secret  Secret
	version Version
}

// Payload.

type selectVersionMsg struct {
	secret  Secret
	version Version
}

// loadPayloadMsg loads a version's payload; a nil version means latest.
type loadPayloadMsg struct {
	secret  Secret
	version *Version
}

// copyTextMsg copies text to the clipboard; what names it in the
// status tracker and the confirmation toast.
type copyTextMsg struct {
	text string
	what string
}

// Metadata.

type showLabelsMsg struct{ secret Secret }

type updateLabelsMsg struct {
	secret Secret
	labels map[string]string
}

type showIamPolicyMsg struct{ secret Secret }

type showReplicationMsg struct{ secret Secret }

// Async results.

type secretsLoadedMsg struct{ secrets []Secret }

type secretCreatedMsg struct{ secret Secret }

type secretDeletedMsg struct{ name string }

type versionsLoadedMsg struct {
	secret   Secret
	versions []Version
}

type payloadLoadedMsg struct {
	secret  Secret
	version *Version
	payload Payload
}

type versionAddedMsg struct{ secret Secret }

type versionEnabledMsg struct{ secret Secret }

type versionDisabledMsg struct{ secret Secret }

type versionDestroyedMsg struct{ secret Secret }

type labelsUpdatedMsg struct{ secret Secret }

type iamPolicyLoadedMsg struct {
	secret Secret
	policy IamPolicy
}

type replicationLoadedMsg struct {
	secret      Secret
	replication Replication
}

// operationFailedMsg restores view state after a failed command. The
// error dialog itself is raised by the app from the command's error.
type operationFailedMsg struct{ message string }

func (initializeMsg) isMessage()         {}
func (clientInitializedMsg) isMessage()  {}
func (navigateBackMsg) isMessage()       {}
func (reloadDataMsg) isMessage()         {}
func (dialogCancelledMsg) isMessage()    {}
func (loadSecretsMsg) isMessage()        {}
func (selectSecretMsg) isMessage()       {}
func (showCreateSecretMsg) isMessage()   {}
func (createSecretStep2Msg) isMessage()  {}
func (createSecretMsg) isMessage()       {}
func (showDeleteSecretMsg) isMessage()   {}
func (deleteSecretMsg) isMessage()       {}
func (showCreateVersionMsg) isMessage()  {}
func (createVersionMsg) isMessage()      {}
func (enableVersionMsg) isMessage()      {}
func (disableVersionMsg) isMessage()     {}
func (showDestroyVersionMsg) isMessage() {}
func (destroyVersionMsg) isMessage()     {}
func (selectVersionMsg) isMessage()      {}
func (loadPayloadMsg) isMessage()        {}
func (copyTextMsg) isMessage()           {}
func (showLabelsMsg) isMessage()         {}
func (updateLabelsMsg) isMessage()       {}
func (showIamPolicyMsg) isMessage()      {}
func (showReplicationMsg) isMessage()    {}
func (secretsLoadedMsg) isMessage()      {}
func (secretCreatedMsg) isMessage()      {}
func (secretDeletedMsg) isMessage()      {}
func (versionsLoadedMsg) isMessage()     {}
func (payloadLoadedMsg) isMessage()      {}
func (versionAddedMsg) isMessage()       {}
func (versionEnabledMsg) isMessage()     {}
func (versionDisabledMsg) isMessage()    {}
func (versionDestroyedMsg) isMessage()   {}
func (labelsUpdatedMsg) isMessage()      {}
func (iamPolicyLoadedMsg) isMessage()    {}
func (replicationLoadedMsg) isMessage()  {}
func (operationFailedMsg) isMessage()    {}
