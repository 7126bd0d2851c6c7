package entities

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	FetcherRaw    = "raw"
	FetcherGitHub = "github"
	FetcherGit    = "git"

	defaultMaxDepth      = 5
	defaultLookupTimeout = 10 * time.Second
	defaultWorkers       = 4
)

// ErrConfigNotFound is returned by FindConfigFile when no file exists in
// any of the searched locations.
var ErrConfigNotFound = errors.New("config file not found in default locations")

// Settings is the top-level configuration for depscan.
type Settings struct {
	Fetcher      string             `yaml:"fetcher"`      // "raw", "github" or "git"
	GitHubToken  string             `yaml:"github_token"` // Inline, ${ENV_VAR}, or file path
	Workers      int                `yaml:"workers"`
	ParentLookup ParentLookupConfig `yaml:"parent_lookup"`
	MetricsFile  string             `yaml:"metrics_file"`
}

// ParentLookupConfig bounds the walk up the directory tree when a Maven
// property is only defined in a parent POM.
type ParentLookupConfig struct {
	MaxDepth int           `yaml:"max_depth"`
	Timeout  time.Duration `yaml:"timeout"`
	// GitDir is the local clone the "git" fetcher reads parent files from.
	GitDir string `yaml:"git_dir"`
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// NewDefaultSettings returns the settings used when no config file is found.
func NewDefaultSettings() *Settings {
	settings := &Settings{}
	settings.applyDefaults()
	return settings
}

// NewSettings reads and parses a configuration file, expanding environment
// variables and resolving the token file path.
func NewSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	var settings Settings
	if unmarshalErr := yaml.Unmarshal(data, &settings); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
	}

	settings.GitHubToken = resolveToken(settings.GitHubToken)
	settings.applyDefaults()

	if validateErr := settings.validate(); validateErr != nil {
		return nil, validateErr
	}
	return &settings, nil
}

// LoadSettings uses the given path, or searches the default locations when
// it is empty. A missing file yields the defaults.
func LoadSettings(path string) (*Settings, error) {
	if path == "" {
		found, err := FindConfigFile()
		if errors.Is(err, ErrConfigNotFound) {
			logger.Debug("[config] no config file found, using defaults")
			return NewDefaultSettings(), nil
		}
		path = found
	}
	logger.Infof("[config] using config file: %s", path)
	return NewSettings(path)
}

// FindConfigFile searches for a configuration file in standard locations.
// Returns the path to the first file found or ErrConfigNotFound.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{
		".",
		".config",
		"configs",
	}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		".depscan.yaml",
		".depscan.yml",
		"depscan.yaml",
		"depscan.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", ErrConfigNotFound
}

func (s *Settings) applyDefaults() {
	if s.Fetcher == "" {
		s.Fetcher = FetcherRaw
	}
	if s.Workers <= 0 {
		s.Workers = defaultWorkers
	}
	if s.ParentLookup.MaxDepth <= 0 {
		s.ParentLookup.MaxDepth = defaultMaxDepth
	}
	if s.ParentLookup.Timeout <= 0 {
		s.ParentLookup.Timeout = defaultLookupTimeout
	}
	if s.GitHubToken == "" {
		s.GitHubToken = os.Getenv("GITHUB_TOKEN")
	}
}

func (s *Settings) validate() error {
	switch s.Fetcher {
	case FetcherRaw, FetcherGitHub:
	case FetcherGit:
		if s.ParentLookup.GitDir == "" {
			return errors.New("parent_lookup.git_dir is required when fetcher is \"git\"")
		}
	default:
		return fmt.Errorf("fetcher must be one of raw, github, git (got %q)", s.Fetcher)
	}
	return nil
}

// resolveToken expands environment variable references (${VAR}) and, if the
// resulting string is a path to an existing file, reads the token from the file.
func resolveToken(raw string) string {
	if raw == "" {
		return raw
	}

	resolved := envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})

	if _, statErr := os.Stat(resolved); statErr == nil {
		data, readErr := os.ReadFile(resolved)
		if readErr != nil {
			logger.Warnf("Failed to read token file %q: %v", resolved, readErr)
			return resolved
		}
		logger.Infof("Read token from file %q", resolved)
		return strings.TrimSpace(string(data))
	}

	return resolved
}
