package cloud

import "fmt"

// Context is a connection target. Exactly one of the per-provider
// fields is set, matching Provider.
type Context struct {
	Provider Provider      `json:"provider"`
	AWS      *AWSContext   `json:"aws,omitempty"`
	Azure    *AzureContext `json:"azure,omitempty"`
	GCP      *GCPContext   `json:"gcp,omitempty"`
}

// AWSContext holds AWS connection details.
type AWSContext struct {
	Region  string `json:"region"`
	Profile string `json:"profile"`
}

// AzureContext holds Azure connection details.
type AzureContext struct {
	SubscriptionID string `json:"subscription_id"`
	TenantID       string `json:"tenant_id"`
}

// GCPContext holds a gcloud configuration.
type GCPContext struct {
	ConfigName      string `json:"config_name"`
	ProjectID       string `json:"project_id"`
	Account         string `json:"account"`
	Region          string `json:"region,omitempty"`
	Zone            string `json:"zone,omitempty"`
	CredentialsPath string `json:"credentials_path,omitempty"`
}

// NewGCPContext wraps a gcloud configuration as a Context.
func NewGCPContext(gcp GCPContext) Context {
	return Context{Provider: GCP, GCP: &gcp}
}

// Name returns the short name identifying the context within its
// provider, e.g. the gcloud configuration name.
func (c Context) Name() string {
	switch {
	case c.GCP != nil:
		return c.GCP.ConfigName
	case c.AWS != nil:
		return c.AWS.Profile
	case c.Azure != nil:
		return c.Azure.SubscriptionID
	}
	return ""
}

// String renders the context the way selector lists show it.
func (c Context) String() string {
	switch {
	case c.GCP != nil:
		return fmt.Sprintf("GCP - %s (%s)", c.GCP.ConfigName, c.GCP.ProjectID)
	case c.AWS != nil:
		return fmt.Sprintf("AWS - Profile: %s, Region: %s", c.AWS.Profile, c.AWS.Region)
	case c.Azure != nil:
		return fmt.Sprintf("Azure - Subscription: %s, Tenant: %s", c.Azure.SubscriptionID, c.Azure.TenantID)
	}
	return c.Provider.DisplayName()
}
