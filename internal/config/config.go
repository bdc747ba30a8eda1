package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/iammeter/openapps/internal/branding"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

const fileType = "yaml"

// Recognized configuration keys.
const (
	KeyPagesBaseURL = "pages_base_url"
	KeyAppsDir      = "apps_dir"
	KeyIndexPath    = "index_path"
	KeySchema       = "schema"
	KeyLogLevel     = "log_level"
	KeyLogFormat    = "log_format"
)

// Keys lists every key accepted by Get and Set.
var Keys = []string{
	KeyPagesBaseURL,
	KeyAppsDir,
	KeyIndexPath,
	KeySchema,
	KeyLogLevel,
	KeyLogFormat,
}

// legacyPagesEnv is honored for compatibility with the site's CI workflows.
const legacyPagesEnv = "PAGES_BASE_URL"

// Settings is the resolved configuration for one run.
type Settings struct {
	Root         string // site root all relative paths resolve against
	File         string // config file that was consulted (may not exist)
	PagesBaseURL string
	AppsDir      string
	IndexPath    string
	Schema       string // external schema path; empty selects the embedded schema
	LogLevel     string
	LogFormat    string
}

// FilePath returns the config file path for a site root.
func FilePath(root string) string {
	return filepath.Join(root, branding.ConfigFile())
}

// Load resolves settings for the site at root. file overrides the default
// config file location when non-empty. A missing config file is not an error.
func Load(fs afero.Fs, root, file string) (*Settings, error) {
	if file == "" {
		file = FilePath(root)
	}

	v, err := newViper(fs, file)
	if err != nil {
		return nil, err
	}

	s := &Settings{
		Root:         root,
		File:         file,
		PagesBaseURL: strings.TrimSpace(v.GetString(KeyPagesBaseURL)),
		AppsDir:      strings.TrimSpace(v.GetString(KeyAppsDir)),
		IndexPath:    strings.TrimSpace(v.GetString(KeyIndexPath)),
		Schema:       strings.TrimSpace(v.GetString(KeySchema)),
		LogLevel:     strings.TrimSpace(v.GetString(KeyLogLevel)),
		LogFormat:    strings.TrimSpace(v.GetString(KeyLogFormat)),
	}

	// An explicitly empty base falls back to the default rather than
	// producing relative URLs.
	if s.PagesBaseURL == "" {
		s.PagesBaseURL = branding.PagesBaseURL()
	}
	if s.AppsDir == "" {
		s.AppsDir = branding.AppsDir()
	}
	if s.IndexPath == "" {
		s.IndexPath = filepath.Join(s.AppsDir, branding.IndexFile())
	}
	return s, nil
}

// Resolve returns p joined to the site root unless p is already absolute.
func (s *Settings) Resolve(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(s.Root, p)
}

// Get returns the effective value of key for the site at root.
func Get(fs afero.Fs, root, file, key string) (string, error) {
	if !IsKnownKey(key) {
		return "", unknownKeyError(key)
	}
	s, err := Load(fs, root, file)
	if err != nil {
		return "", err
	}
	switch key {
	case KeyPagesBaseURL:
		return s.PagesBaseURL, nil
	case KeyAppsDir:
		return s.AppsDir, nil
	case KeyIndexPath:
		return s.IndexPath, nil
	case KeySchema:
		return s.Schema, nil
	case KeyLogLevel:
		return s.LogLevel, nil
	default:
		return s.LogFormat, nil
	}
}

// Set writes a key-value pair into the config file, creating it if needed.
// Only values from the file itself are persisted; environment overrides are not.
func Set(fs afero.Fs, root, file, key, value string) error {
	if !IsKnownKey(key) {
		return unknownKeyError(key)
	}
	if file == "" {
		file = FilePath(root)
	}

	v := viper.New()
	v.SetFs(fs)
	v.SetConfigFile(file)
	v.SetConfigType(fileType)

	exists, err := afero.Exists(fs, file)
	if err != nil {
		return fmt.Errorf("checking config file %s: %w", file, err)
	}
	if exists {
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file %s: %w", file, err)
		}
	} else if err := fs.MkdirAll(filepath.Dir(file), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	v.Set(key, value)
	if err := v.WriteConfigAs(file); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// IsKnownKey reports whether key is a recognized configuration key.
func IsKnownKey(key string) bool {
	return slices.Contains(Keys, key)
}

func unknownKeyError(key string) error {
	return fmt.Errorf("unknown config key %q (valid keys: %s)", key, strings.Join(Keys, ", "))
}

func newViper(fs afero.Fs, file string) (*viper.Viper, error) {
	v := viper.New()
	v.SetFs(fs)
	v.SetConfigFile(file)
	v.SetConfigType(fileType)

	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "text")
	bindEnv(v)

	exists, err := afero.Exists(fs, file)
	if err != nil {
		return nil, fmt.Errorf("checking config file %s: %w", file, err)
	}
	if exists {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", file, err)
		}
	}
	return v, nil
}

// envNames returns the environment variables that override key, highest
// precedence first.
func envNames(key string) []string {
	names := []string{branding.EnvVar(key)}
	if key == KeyPagesBaseURL {
		names = append(names, legacyPagesEnv)
	}
	return names
}

// bindEnv binds each key to its environment variables that hold a non-blank
// value. A blank variable leaves the config file value in effect.
func bindEnv(v *viper.Viper) {
	for _, key := range Keys {
		var set []string
		for _, name := range envNames(key) {
			if strings.TrimSpace(os.Getenv(name)) != "" {
				set = append(set, name)
			}
		}
		if len(set) > 0 {
			_ = v.BindEnv(append([]string{key}, set...)...)
		}
	}
}
