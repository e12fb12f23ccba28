// Package gcp discovers Google Cloud contexts from the local gcloud
// CLI installation. Each gcloud configuration becomes one context with
// its own project and credentials.
package gcp

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"gopkg.in/ini.v1"

	"github.com/jorgeparavicini/lazycloud/internal/cloud"
)

// DefaultDir returns the per-OS gcloud configuration directory:
// ~/.config/gcloud on Linux and macOS, %APPDATA%/gcloud on Windows.
func DefaultDir() (string, error) {
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "gcloud"), nil
		}
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".config", "gcloud"), nil
}

// DiscoverContexts reads every configurations/config_* file under
// gcloudDir and returns one context per gcloud configuration, sorted
// by configuration name. A missing directory yields no contexts;
// unparseable files and configurations without an account or project
// are skipped.
func DiscoverContexts(gcloudDir string) []cloud.Context {
	entries, err := os.ReadDir(filepath.Join(gcloudDir, "configurations"))
	if err != nil {
		return nil
	}

	var contexts []cloud.Context
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, "config_") {
			continue
		}
		configName := strings.TrimPrefix(name, "config_")
		path := filepath.Join(gcloudDir, "configurations", name)
		ctx, ok := parseConfig(path, configName)
		if !ok {
			continue
		}
		ctx.CredentialsPath = credentialsPath(gcloudDir, ctx.Account)
		contexts = append(contexts, cloud.NewGCPContext(ctx))
	}

	sort.Slice(contexts, func(i, j int) bool {
		return contexts[i].GCP.ConfigName < contexts[j].GCP.ConfigName
	})
	return contexts
}

func parseConfig(path, configName string) (cloud.GCPContext, bool) {
	file, err := ini.Load(path)
	if err != nil {
		return cloud.GCPContext{}, false
	}

	core := file.Section("core")
	account := core.Key("account").String()
	project := core.Key("project").String()
	if account == "" || project == "" {
		return cloud.GCPContext{}, false
	}

	compute := file.Section("compute")
	return cloud.GCPContext{
		ConfigName: configName,
		ProjectID:  project,
		Account:    account,
		Region:     compute.Key("region").String(),
		Zone:       compute.Key("zone").String(),
	}, true
}

// credentialsPath looks for per-account credentials under
// legacy_credentials/{account}/adc.json. Empty when none exist.
func credentialsPath(gcloudDir, account string) string {
	path := filepath.Join(gcloudDir, "legacy_credentials", account, "adc.json")
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}
