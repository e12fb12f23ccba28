package secretmanager

import (
	"context"
	"fmt"

	"github.com/jorgeparavicini/lazycloud/internal/command"
)

// fail queues the state repair for a failed command and passes the
// error through for the app's error dialog. Command errors are full
// sentences because they render verbatim in that dialog.
func (s *SecretManager) fail(err error) error {
	s.queue.Push(operationFailedMsg{message: err.Error()})
	return err
}

func (s *SecretManager) initCmd() command.Command {
	return command.NewFunc("Initializing Secret Manager", func(ctx context.Context) error {
		store, err := s.dial(ctx)
		if err != nil {
			return s.fail(fmt.Errorf("Failed to load Secret Manager service: %w", err))
		}
		s.queue.Push(clientInitializedMsg{store: store})
		return nil
	})
}

func (s *SecretManager) fetchSecretsCmd(st Store) command.Command {
	return command.NewFunc("Loading secrets", func(ctx context.Context) error {
		secrets, err := st.ListSecrets(ctx)
		if err != nil {
			return s.fail(fmt.Errorf("Failed to load secrets: %w", err))
		}
		s.queue.Push(secretsLoadedMsg{secrets: secrets})
		return nil
	})
}

func (s *SecretManager) createSecretCmd(st Store, name string, payload []byte) command.Command {
	return command.NewFunc("Creating secret", func(ctx context.Context) error {
		secret, err := st.CreateSecret(ctx, name, payload)
		if err != nil {
			return s.fail(fmt.Errorf("Failed to create secret %s: %w", name, err))
		}
		s.env.ShowToast("Secret created", command.ToastSuccess)
		s.queue.Push(secretCreatedMsg{secret: secret})
		return nil
	})
}

func (s *SecretManager) deleteSecretCmd(st Store, name string) command.Command {
	return command.NewFunc("Deleting secret", func(ctx context.Context) error {
		if err := st.DeleteSecret(ctx, name); err != nil {
			return s.fail(fmt.Errorf("Failed to delete secret %s: %w", name, err))
		}
		s.env.ShowToast("Secret deleted", command.ToastSuccess)
		s.queue.Push(secretDeletedMsg{name: name})
		return nil
	})
}

func (s *SecretManager) fetchVersionsCmd(st Store, secret Secret) command.Command {
	return command.NewFunc("Loading versions", func(ctx context.Context) error {
		versions, err := st.ListVersions(ctx, secret.Name)
		if err != nil {
			return s.fail(fmt.Errorf("Failed to load versions for secret %s: %w", secret.Name, err))
		}
		s.queue.Push(versionsLoadedMsg{secret: secret, versions: versions})
		return nil
	})
}

func (s *SecretManager) addVersionCmd(st Store, secret Secret, payload []byte) command.Command {
	return command.NewFunc("Adding secret version", func(ctx context.Context) error {
		if err := st.AddVersion(ctx, secret.Name, payload); err != nil {
			return s.fail(fmt.Errorf("Failed to add version to secret %s: %w", secret.Name, err))
		}
		s.env.ShowToast("Version added", command.ToastSuccess)
		s.queue.Push(versionAddedMsg{secret: secret})
		return nil
	})
}

func (s *SecretManager) enableVersionCmd(st Store, secret Secret, version Version) command.Command {
	return command.NewFunc("Enabling version", func(ctx context.Context) error {
		if err := st.EnableVersion(ctx, secret.Name, version.VersionID); err != nil {
			return s.fail(fmt.Errorf("Failed to enable version %s of secret %s: %w",
				version.VersionID, secret.Name, err))
		}
		s.queue.Push(versionEnabledMsg{secret: secret})
		return nil
	})
}

func (s *SecretManager) disableVersionCmd(st Store, secret Secret, version Version) command.Command {
	return command.NewFunc("Disabling version", func(ctx context.Context) error {
		if err := st.DisableVersion(ctx, secret.Name, version.VersionID); err != nil {
			return s.fail(fmt.Errorf("Failed to disable version %s of secret %s: %w",
				version.VersionID, secret.Name, err))
		}
		s.queue.Push(versionDisabledMsg{secret: secret})
		return nil
	})
}

func (s *SecretManager) destroyVersionCmd(st Store, secret Secret, version Version) command.Command {
	return command.NewFunc("Destroying version", func(ctx context.Context) error {
		if err := st.DestroyVersion(ctx, secret.Name, version.VersionID); err != nil {
			return s.fail(fmt.Errorf("Failed to destroy version %s of secret %s: %w",
				version.VersionID, secret.Name, err))
		}
		s.queue.Push(versionDestroyedMsg{secret: secret})
		return nil
	})
}

func (s *SecretManager) fetchPayloadCmd(st Store, secret Secret, version Version) command.Command {
	return command.NewFunc("Loading secret payload", func(ctx context.Context) error {
		payload, err := st.AccessVersion(ctx, secret.Name, version.VersionID)
		if err != nil {
			return s.fail(fmt.Errorf("Failed to load payload for secret %s version %s: %w",
				secret.Name, version.VersionID, err))
		}
		s.queue.Push(payloadLoadedMsg{secret: secret, version: &version, payload: payload})
		return nil
	})
}

func (s *SecretManager) fetchLatestPayloadCmd(st Store, secret Secret) command.Command {
	return command.NewFunc("Loading latest secret payload", func(ctx context.Context) error {
		payload, err := st.AccessLatest(ctx, secret.Name)
		if err != nil {
			return s.fail(fmt.Errorf("Failed to load latest payload for secret %s: %w", secret.Name, err))
		}
		s.queue.Push(payloadLoadedMsg{secret: secret, payload: payload})
		return nil
	})
}

func (s *SecretManager) updateLabelsCmd(st Store, secret Secret, labels map[string]string) command.Command {
	return command.NewFunc("Updating labels", func(ctx context.Context) error {
		updated, err := st.UpdateLabels(ctx, secret.Name, labels)
		if err != nil {
			return s.fail(fmt.Errorf("Failed to update labels on secret %s: %w", secret.Name, err))
		}
		s.env.ShowToast("Labels updated", command.ToastSuccess)
		s.queue.Push(labelsUpdatedMsg{secret: updated})
		return nil
	})
}

func (s *SecretManager) fetchIamPolicyCmd(st Store, secret Secret) command.Command {
	return command.NewFunc("Loading IAM policy", func(ctx context.Context) error {
		policy, err := st.IamPolicy(ctx, secret.Name)
		if err != nil {
			return s.fail(fmt.Errorf("Failed to load IAM policy for secret %s: %w", secret.Name, err))
		}
		s.queue.Push(iamPolicyLoadedMsg{secret: secret, policy: policy})
		return nil
	})
}

func (s *SecretManager) fetchMetadataCmd(st Store, secret Secret) command.Command {
	return command.NewFunc("Loading secret metadata", func(ctx context.Context) error {
		fresh, err := st.GetSecret(ctx, secret.Name)
		if err != nil {
			return s.fail(fmt.Errorf("Failed to load metadata for secret %s: %w", secret.Name, err))
		}
		s.queue.Push(replicationLoadedMsg{secret: fresh, replication: fresh.Replication})
		return nil
	})
}
