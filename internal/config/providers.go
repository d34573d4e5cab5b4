package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LLM auth variants. The variant is chosen at configuration time; the
// client never infers the header style from the endpoint URL.
const (
	LLMAuthAPIKey = "api-key"
	LLMAuthBearer = "bearer"
)

// JiraSettings holds the connection settings for a Jira issue tracker.
type JiraSettings struct {
	Enabled    bool   `yaml:"enabled"`
	URL        string `yaml:"url"`
	Email      string `yaml:"email"`
	APIToken   string `yaml:"api_token"`
	ProjectKey string `yaml:"project_key"`
}

// AzureSettings holds the connection settings for an Azure DevOps org.
type AzureSettings struct {
	Enabled bool   `yaml:"enabled"`
	OrgURL  string `yaml:"org_url"`
	Project string `yaml:"project"`
	PAT     string `yaml:"pat"`
}

// LLMSettings holds the connection settings for the completion endpoint.
type LLMSettings struct {
	Enabled    bool   `yaml:"enabled"`
	Endpoint   string `yaml:"endpoint"`
	APIKey     string `yaml:"api_key"`
	Deployment string `yaml:"deployment"`
	APIVersion string `yaml:"api_version"`
	Auth       string `yaml:"auth"` // "api-key" or "bearer"
}

// Providers is the typed per-provider settings schema, loaded from
// providers.yaml. Each collaborator receives its section explicitly at
// call time; nothing reads ambient state.
type Providers struct {
	Jira  JiraSettings  `yaml:"jira"`
	Azure AzureSettings `yaml:"azure"`
	LLM   LLMSettings   `yaml:"llm"`
}

// ProvidersPath returns the path to providers.yaml under dir.
func ProvidersPath(dir string) string {
	return filepath.Join(dir, ".testdeck", "providers.yaml")
}

// LoadProviders reads and validates .testdeck/providers.yaml from dir.
// A missing file yields an empty Providers (all disabled), not an error.
func LoadProviders(dir string) (*Providers, error) {
	data, err := os.ReadFile(ProvidersPath(dir))
	if os.IsNotExist(err) {
		return &Providers{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read providers config: %w", err)
	}

	var p Providers
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse providers config: %w", err)
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// SaveProviders writes providers.yaml to dir.
func SaveProviders(dir string, p *Providers) error {
	if err := p.Validate(); err != nil {
		return err
	}

	tdDir := filepath.Join(dir, ".testdeck")
	if err := os.MkdirAll(tdDir, 0755); err != nil {
		return fmt.Errorf("failed to create .testdeck dir: %w", err)
	}

	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal providers config: %w", err)
	}

	if err := os.WriteFile(ProvidersPath(dir), data, 0600); err != nil {
		return fmt.Errorf("failed to write providers config: %w", err)
	}
	return nil
}

// Validate checks that every enabled provider carries its required
// fields. Disabled providers are not validated.
func (p *Providers) Validate() error {
	if p.Jira.Enabled {
		if p.Jira.URL == "" || p.Jira.Email == "" || p.Jira.APIToken == "" || p.Jira.ProjectKey == "" {
			return fmt.Errorf("jira provider enabled but missing url, email, api_token or project_key")
		}
	}
	if p.Azure.Enabled {
		if p.Azure.OrgURL == "" || p.Azure.Project == "" || p.Azure.PAT == "" {
			return fmt.Errorf("azure provider enabled but missing org_url, project or pat")
		}
	}
	if p.LLM.Enabled {
		if p.LLM.Endpoint == "" || p.LLM.APIKey == "" || p.LLM.Deployment == "" {
			return fmt.Errorf("llm provider enabled but missing endpoint, api_key or deployment")
		}
		switch p.LLM.Auth {
		case LLMAuthAPIKey, LLMAuthBearer:
		case "":
			return fmt.Errorf("llm provider enabled but auth variant not set (want %q or %q)", LLMAuthAPIKey, LLMAuthBearer)
		default:
			return fmt.Errorf("unknown llm auth variant %q (want %q or %q)", p.LLM.Auth, LLMAuthAPIKey, LLMAuthBearer)
		}
		if p.LLM.Auth == LLMAuthAPIKey && p.LLM.APIVersion == "" {
			return fmt.Errorf("llm api-key variant requires api_version")
		}
	}
	return nil
}
