package secretmanager

import "context"

// Store is the backend the service talks to. The production
// implementation wraps the Secret Manager API; tests substitute fakes.
// All calls may block and are only ever made from commands, never from
// the event loop.
type Store interface {
	ListSecrets(ctx context.Context) ([]Secret, error)
	GetSecret(ctx context.Context, name string) (Secret, error)
	CreateSecret(ctx context.Context, name string, payload []byte) (Secret, error)
	DeleteSecret(ctx context.Context, name string) error
	UpdateLabels(ctx context.Context, name string, labels map[string]string) (Secret, error)

	ListVersions(ctx context.Context, secretName string) ([]Version, error)
	AddVersion(ctx context.Context, secretName string, payload []byte) error
	EnableVersion(ctx context.Context, secretName, versionID string) error
	DisableVersion(ctx context.Context, secretName, versionID string) error
	DestroyVersion(ctx context.Context, secretName, versionID string) error

	AccessVersion(ctx context.Context, secretName, versionID string) (Payload, error)
	AccessLatest(ctx context.Context, secretName string) (Payload, error)

	IamPolicy(ctx context.Context, secretName string) (IamPolicy, error)

	Close() error
}
