// Package branding provides compile-time identity values for the CLI.
//
// Forks of the site edit branding.yaml in this package; Go's //go:embed
// bakes it into the binary. Every value has a hard default so a missing or
// partial file still yields a working tool.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName        string `yaml:"cli_name"`
	DisplayName    string `yaml:"display_name"`
	Description    string `yaml:"description"`
	EnvPrefix      string `yaml:"env_prefix"`
	GitHubRepo     string `yaml:"github_repo"`
	PagesBaseURL   string `yaml:"pages_base_url"`
	RepoHostPrefix string `yaml:"repo_host_prefix"`
	RawHost        string `yaml:"raw_host"`
	DefaultBranch  string `yaml:"default_branch"`
	AppsDir        string `yaml:"apps_dir"`
	ManifestFile   string `yaml:"manifest_file"`
	IndexFile      string `yaml:"index_file"`
	ConfigFile     string `yaml:"config_file"`
}

func load() {
	once.Do(func() {
		defaults = brand{
			CLIName:        "openapps",
			DisplayName:    "IAMMETER OpenApps",
			Description:    "Validate app manifests and generate the OpenApps index",
			EnvPrefix:      "OPENAPPS",
			GitHubRepo:     "IAMMETER/IAMMETER-OpenApps",
			PagesBaseURL:   "https://iammeter.github.io/IAMMETER-OpenApps/",
			RepoHostPrefix: "https://github.com/",
			RawHost:        "https://raw.githubusercontent.com/",
			DefaultBranch:  "main",
			AppsDir:        "apps",
			ManifestFile:   "manifest.json",
			IndexFile:      "index.json",
			ConfigFile:     ".openapps.yaml",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "openapps").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// EnvPrefix returns the environment variable prefix (e.g., "OPENAPPS").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// GitHubRepo returns the "owner/repo" string of the site repository.
func GitHubRepo() string { load(); return defaults.GitHubRepo }

// SiteRepoURL returns the repository root URL of the site itself.
func SiteRepoURL() string {
	load()
	return strings.TrimRight(defaults.RepoHostPrefix, "/") + "/" + defaults.GitHubRepo
}

// PagesBaseURL returns the default base URL that static apps are served from.
func PagesBaseURL() string { load(); return defaults.PagesBaseURL }

// RepoHostPrefix returns the URL prefix that source repository links must
// start with for raw file URLs to be derived (e.g., "https://github.com/").
func RepoHostPrefix() string { load(); return defaults.RepoHostPrefix }

// RawHost returns the raw-content host URL, with a trailing slash.
func RawHost() string { load(); return defaults.RawHost }

// DefaultBranch returns the branch all repository URLs point at.
func DefaultBranch() string { load(); return defaults.DefaultBranch }

// AppsDir returns the directory, relative to the site root, holding one
// subdirectory per application.
func AppsDir() string { load(); return defaults.AppsDir }

// ManifestFile returns the manifest file name inside each app directory.
func ManifestFile() string { load(); return defaults.ManifestFile }

// IndexFile returns the file name of the generated index inside AppsDir.
func IndexFile() string { load(); return defaults.IndexFile }

// ConfigFile returns the site-level config file name.
func ConfigFile() string { load(); return defaults.ConfigFile }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("schema") → "OPENAPPS_SCHEMA".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
