// Package cloud defines the provider and context model shared by all
// services: which platform a context belongs to and the account and
// project details needed to reach it.
package cloud

import (
	"fmt"

	"github.com/goccy/go-json"
)

// Provider identifies a cloud platform.
type Provider uint8

const (
	AWS Provider = iota
	Azure
	GCP
)

// DisplayName returns the human-readable provider name.
func (p Provider) DisplayName() string {
	switch p {
	case AWS:
		return "AWS"
	case Azure:
		return "Azure"
	case GCP:
		return "GCP"
	}
	return "unknown"
}

// ID returns the short lowercase provider identifier.
func (p Provider) ID() string {
	switch p {
	case AWS:
		return "aws"
	case Azure:
		return "azure"
	case GCP:
		return "gcp"
	}
	return "unknown"
}

func (p Provider) String() string { return p.ID() }

// ParseProvider resolves a lowercase provider id.
func ParseProvider(id string) (Provider, error) {
	switch id {
	case "aws":
		return AWS, nil
	case "azure":
		return Azure, nil
	case "gcp":
		return GCP, nil
	}
	return 0, fmt.Errorf("unknown provider %q", id)
}

// MarshalJSON encodes the provider as its lowercase id.
func (p Provider) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.ID())
}

// UnmarshalJSON decodes a lowercase provider id.
func (p *Provider) UnmarshalJSON(data []byte) error {
	var id string
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	parsed, err := ParseProvider(id)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
