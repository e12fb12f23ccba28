package secretmanager

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/protobuf/types/known/fieldmaskpb"
	"google.golang.org/protobuf/types/known/timestamppb"
)

const timeLayout = "2006-01-02 15:04"

// Client implements Store against the real Secret Manager API.
type Client struct {
	api       *secretmanager.Client
	projectID string
}

// Dial connects a client for the given project. When credentialsFile is
// non-empty it overrides application default credentials, so each
// context authenticates as its own account.
func Dial(ctx context.Context, projectID, credentialsFile string) (*Client, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	api, err := secretmanager.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect to secret manager: %w", err)
	}
	return &Client{api: api, projectID: projectID}, nil
}

// Close releases the underlying connection.
func (c *Client) Close() error { return c.api.Close() }

func (c *Client) parent() string {
	return "projects/" + c.projectID
}

func (c *Client) secretPath(name string) string {
	return fmt.Sprintf("projects/%s/secrets/%s", c.projectID, name)
}

func (c *Client) versionPath(secretName, versionID string) string {
	return fmt.Sprintf("projects/%s/secrets/%s/versions/%s", c.projectID, secretName, versionID)
}

// ListSecrets returns all secrets in the project.
func (c *Client) ListSecrets(ctx context.Context) ([]Secret, error) {
	it := c.api.ListSecrets(ctx, &secretmanagerpb.ListSecretsRequest{Parent: c.parent()})

	var secrets []Secret
	for {
		s, err := it.Next()
		if err == iterator.Done {
			return secrets, nil
		}
		if err != nil {
			return nil, fmt.Errorf("list secrets: %w", err)
		}
		secrets = append(secrets, secretFromPB(s))
	}
}

// GetSecret fetches one secret's metadata.
func (c *Client) GetSecret(ctx context.Context, name string) (Secret, error) {
	s, err := c.api.GetSecret(ctx, &secretmanagerpb.GetSecretRequest{Name: c.secretPath(name)})
	if err != nil {
		return Secret{}, fmt.Errorf("get secret %s: %w", name, err)
	}
	return secretFromPB(s), nil
}

// CreateSecret creates a secret with automatic replication and, when
// payload is non-empty, an initial version holding it.
func (c *Client) CreateSecret(ctx context.Context, name string, payload []byte) (Secret, error) {
	created, err := c.api.CreateSecret(ctx, &secretmanagerpb.CreateSecretRequest{
		Parent:   c.parent(),
		SecretId: name,
		Secret: &secretmanagerpb.Secret{
			Replication: &secretmanagerpb.Replication{
				Replication: &secretmanagerpb.Replication_Automatic_{
					Automatic: &secretmanagerpb.Replication_Automatic{},
				},
			},
		},
	})
	if err != nil {
		return Secret{}, fmt.Errorf("create secret %s: %w", name, err)
	}

	if len(payload) > 0 {
		_, err = c.api.AddSecretVersion(ctx, &secretmanagerpb.AddSecretVersionRequest{
			Parent:  created.GetName(),
			Payload: &secretmanagerpb.SecretPayload{Data: payload},
		})
		if err != nil {
			return Secret{}, fmt.Errorf("add initial version to %s: %w", name, err)
		}
	}
	return secretFromPB(created), nil
}

// DeleteSecret deletes a secret and all its versions.
func (c *Client) DeleteSecret(ctx context.Context, name string) error {
	err := c.api.DeleteSecret(ctx, &secretmanagerpb.DeleteSecretRequest{Name: c.secretPath(name)})
	if err != nil {
		return fmt.Errorf("delete secret %s: %w", name, err)
	}
	return nil
}

// UpdateLabels replaces a secret's label set.
func (c *Client) UpdateLabels(ctx context.Context, name string, labels map[string]string) (Secret, error) {
	updated, err := c.api.UpdateSecret(ctx, &secretmanagerpb.UpdateSecretRequest{
		Secret: &secretmanagerpb.Secret{
			Name:   c.secretPath(name),
			Labels: labels,
		},
		UpdateMask: &fieldmaskpb.FieldMask{Paths: []string{"labels"}},
	})
	if err != nil {
		return Secret{}, fmt.Errorf("update labels on %s: %w", name, err)
	}
	return secretFromPB(updated), nil
}

// ListVersions returns all versions of a secret, newest first as the
// API orders them.
func (c *Client) ListVersions(ctx context.Context, secretName string) ([]Version, error) {
	it := c.api.ListSecretVersions(ctx, &secretmanagerpb.ListSecretVersionsRequest{
		Parent: c.secretPath(secretName),
	})

	var versions []Version
	for {
		v, err := it.Next()
		if err == iterator.Done {
			return versions, nil
		}
		if err != nil {
			return nil, fmt.Errorf("list versions of %s: %w", secretName, err)
		}
		versions = append(versions, Version{
			VersionID: resourceID(v.GetName()),
			State:     versionState(v.GetState()),
			CreatedAt: formatTimestamp(v.GetCreateTime()),
		})
	}
}

// AddVersion appends a new version holding payload.
func (c *Client) AddVersion(ctx context.Context, secretName string, payload []byte) error {
	_, err := c.api.AddSecretVersion(ctx, &secretmanagerpb.AddSecretVersionRequest{
		Parent:  c.secretPath(secretName),
		Payload: &secretmanagerpb.SecretPayload{Data: payload},
	})
	if err != nil {
		return fmt.Errorf("add version to %s: %w", secretName, err)
	}
	return nil
}

// EnableVersion re-enables a disabled version.
func (c *Client) EnableVersion(ctx context.Context, secretName, versionID string) error {
	_, err := c.api.EnableSecretVersion(ctx, &secretmanagerpb.EnableSecretVersionRequest{
		Name: c.versionPath(secretName, versionID),
	})
	if err != nil {
		return fmt.Errorf("enable version %s of %s: %w", versionID, secretName, err)
	}
	return nil
}

// DisableVersion disables a version without destroying its data.
func (c *Client) DisableVersion(ctx context.Context, secretName, versionID string) error {
	_, err := c.api.DisableSecretVersion(ctx, &secretmanagerpb.DisableSecretVersionRequest{
		Name: c.versionPath(secretName, versionID),
	})
	if err != nil {
		return fmt.Errorf("disable version %s of %s: %w", versionID, secretName, err)
	}
	return nil
}

// DestroyVersion permanently destroys a version's payload.
func (c *Client) DestroyVersion(ctx context.Context, secretName, versionID string) error {
	_, err := c.api.DestroySecretVersion(ctx, &secretmanagerpb.DestroySecretVersionRequest{
		Name: c.versionPath(secretName, versionID),
	})
	if err != nil {
		return fmt.Errorf("destroy version %s of %s: %w", versionID, secretName, err)
	}
	return nil
}

// AccessVersion decodes the payload of a specific version.
func (c *Client) AccessVersion(ctx context.Context, secretName, versionID string) (Payload, error) {
	return c.access(ctx, c.versionPath(secretName, versionID))
}

// AccessLatest decodes the payload of the latest version.
func (c *Client) AccessLatest(ctx context.Context, secretName string) (Payload, error) {
	return c.access(ctx, c.versionPath(secretName, "latest"))
}

func (c *Client) access(ctx context.Context, name string) (Payload, error) {
	resp, err := c.api.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{Name: name})
	if err != nil {
		return Payload{}, fmt.Errorf("access %s: %w", resourceID(name), err)
	}
	return payloadFromBytes(resp.GetPayload().GetData()), nil
}

// IamPolicy fetches the bindings attached to a secret.
func (c *Client) IamPolicy(ctx context.Context, secretName string) (IamPolicy, error) {
	policy, err := c.api.IAM(c.secretPath(secretName)).Policy(ctx)
	if err != nil {
		return IamPolicy{}, fmt.Errorf("get iam policy of %s: %w", secretName, err)
	}

	var out IamPolicy
	for _, role := range policy.Roles() {
		out.Bindings = append(out.Bindings, IamBinding{
			Role:    string(role),
			Members: policy.Members(role),
		})
	}
	return out, nil
}

// resourceID strips the path prefix from a resource name, returning the
// segment after the final slash.
func resourceID(path string) string {
	if i := strings.LastIndex(path, "/"); i >= 0 {
		return path[i+1:]
	}
	return path
}

func formatTimestamp(ts *timestamppb.Timestamp) string {
	if ts == nil {
		return "Unknown"
	}
	return ts.AsTime().UTC().Format(timeLayout)
}

func versionState(s secretmanagerpb.SecretVersion_State) string {
	switch s {
	case secretmanagerpb.SecretVersion_ENABLED:
		return "Enabled"
	case secretmanagerpb.SecretVersion_DISABLED:
		return "Disabled"
	case secretmanagerpb.SecretVersion_DESTROYED:
		return "Destroyed"
	default:
		return "Unknown"
	}
}

// payloadFromBytes decodes payload data, replacing invalid UTF-8 so the
// result is always renderable.
func payloadFromBytes(data []byte) Payload {
	if utf8.Valid(data) {
		return Payload{Data: string(data)}
	}
	return Payload{Data: strings.ToValidUTF8(string(data), "�"), IsBinary: true}
}

func secretFromPB(s *secretmanagerpb.Secret) Secret {
	return Secret{
		Name:        resourceID(s.GetName()),
		Replication: replicationFromPB(s.GetReplication()),
		CreatedAt:   formatTimestamp(s.GetCreateTime()),
		ExpireTime:  expireTimeFromPB(s),
		Labels:      s.GetLabels(),
	}
}

func replicationFromPB(r *secretmanagerpb.Replication) Replication {
	if um := r.GetUserManaged(); um != nil {
		locations := make([]string, 0, len(um.GetReplicas()))
		for _, replica := range um.GetReplicas() {
			locations = append(locations, replica.GetLocation())
		}
		return Replication{Locations: locations}
	}
	return Replication{Automatic: true}
}

func expireTimeFromPB(s *secretmanagerpb.Secret) string {
	if t := s.GetExpireTime(); t != nil {
		return formatTimestamp(t)
	}
	return ""
}
