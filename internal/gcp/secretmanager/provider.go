package secretmanager

import (
	"github.com/jorgeparavicini/lazycloud/internal/cloud"
	"github.com/jorgeparavicini/lazycloud/internal/service"
)

// ServiceProvider registers Secret Manager with the service registry.
type ServiceProvider struct{}

func (ServiceProvider) Provider() cloud.Provider { return cloud.GCP }

func (ServiceProvider) Key() string { return "secret-manager" }

func (ServiceProvider) DisplayName() string { return "Secret Manager" }

func (ServiceProvider) Description() string {
	return "Store and manage secrets, API keys, and certificates"
}

func (ServiceProvider) Icon() string { return "🔐" }

// Available needs a GCP context with a project to list secrets in.
func (ServiceProvider) Available(ctx cloud.Context) bool {
	return ctx.GCP != nil && ctx.GCP.ProjectID != ""
}

func (ServiceProvider) New(ctx cloud.Context, deps service.Deps) (service.Service, error) {
	return New(ctx, deps)
}
