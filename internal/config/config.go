// Package config layers expire-issues settings from defaults, a YAML config
// file, EXPIRE_ISSUES_* environment variables and command-line flags, in
// increasing order of precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment variable binding.
const EnvPrefix = "EXPIRE_ISSUES"

// ConfigFileName is looked up in the working directory.
const ConfigFileName = ".expire-issues.yaml"

// Setting keys.
const (
	KeyPath           = "path"
	KeyDryRun         = "dry-run"
	KeyJSON           = "json"
	KeyNow            = "now"
	KeyGitHubToken    = "github.token"
	KeyGitHubEndpoint = "github.endpoint"
	KeyGitHubTimeout  = "github.timeout"
	KeyRateLimit      = "github.rate-limit"
	KeyRateBurst      = "github.rate-burst"

	KeyTelemetryEnabled  = "telemetry.enabled"
	KeyTelemetryStdout   = "telemetry.stdout"
	KeyTelemetryEndpoint = "telemetry.endpoint"
)

// DefaultPath is the issue list read when no path is configured.
const DefaultPath = ".github/expires.txt"

// redacted replaces secret values in dumps.
const redacted = "<redacted>"

var secretKeys = map[string]bool{
	KeyGitHubToken: true,
}

var v *viper.Viper

// Initialize (re)builds the configuration from defaults, the config file and
// the environment. It is safe to call more than once; each call starts over.
func Initialize() error {
	v = viper.New()

	v.SetDefault(KeyPath, DefaultPath)
	v.SetDefault(KeyDryRun, false)
	v.SetDefault(KeyJSON, false)
	v.SetDefault(KeyNow, "")
	v.SetDefault(KeyGitHubToken, "")
	v.SetDefault(KeyGitHubEndpoint, "https://api.github.com/graphql")
	v.SetDefault(KeyGitHubTimeout, 30*time.Second)
	v.SetDefault(KeyRateLimit, 0.0)
	v.SetDefault(KeyRateBurst, 1)
	v.SetDefault(KeyTelemetryEnabled, false)
	v.SetDefault(KeyTelemetryStdout, false)
	v.SetDefault(KeyTelemetryEndpoint, "")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	// Actions runners export GITHUB_TOKEN; the prefixed variable wins.
	if err := v.BindEnv(KeyGitHubToken, EnvPrefix+"_GITHUB_TOKEN", "GITHUB_TOKEN"); err != nil {
		return fmt.Errorf("binding %s: %w", KeyGitHubToken, err)
	}
	// The standard OTLP variable works without the prefix.
	if err := v.BindEnv(KeyTelemetryEndpoint, EnvPrefix+"_TELEMETRY_ENDPOINT", "OTEL_EXPORTER_OTLP_ENDPOINT"); err != nil {
		return fmt.Errorf("binding %s: %w", KeyTelemetryEndpoint, err)
	}

	path := findConfigFile()
	if path == "" {
		return nil
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return nil
}

// findConfigFile returns the first config file that exists: an explicit
// EXPIRE_ISSUES_CONFIG, the working directory, then the user config dir.
func findConfigFile() string {
	if explicit := os.Getenv(EnvPrefix + "_CONFIG"); explicit != "" {
		return explicit
	}

	var candidates []string
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, ConfigFileName))
	}
	if dir, err := os.UserConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, "expire-issues", "config.yaml"))
	}

	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return c
		}
	}
	return ""
}

func ensure() *viper.Viper {
	if v == nil {
		_ = Initialize()
	}
	return v
}

// BindPFlag makes flag override key when it was set on the command line.
func BindPFlag(key string, flag *pflag.Flag) error {
	if flag == nil {
		return fmt.Errorf("no flag for %s", key)
	}
	return ensure().BindPFlag(key, flag)
}

func GetString(key string) string          { return ensure().GetString(key) }
func GetBool(key string) bool              { return ensure().GetBool(key) }
func GetInt(key string) int                { return ensure().GetInt(key) }
func GetFloat64(key string) float64        { return ensure().GetFloat64(key) }
func GetDuration(key string) time.Duration { return ensure().GetDuration(key) }

// Set overrides key for the rest of the process.
func Set(key string, value interface{}) {
	ensure().Set(key, value)
}

// ConfigFileUsed returns the config file that was loaded, or "".
func ConfigFileUsed() string {
	return ensure().ConfigFileUsed()
}

// AllSettings returns the effective settings with secrets redacted.
func AllSettings() map[string]interface{} {
	settings := ensure().AllSettings()
	redact(settings, "")
	return settings
}

func redact(m map[string]interface{}, prefix string) {
	for k, val := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if nested, ok := val.(map[string]interface{}); ok {
			redact(nested, key)
			continue
		}
		if secretKeys[key] {
			if s, ok := val.(string); ok && s != "" {
				m[k] = redacted
			}
		}
	}
}

// DumpYAML renders the effective settings as YAML with secrets redacted.
func DumpYAML() (string, error) {
	out, err := yaml.Marshal(AllSettings())
	if err != nil {
		return "", fmt.Errorf("failed to encode settings: %w", err)
	}
	return string(out), nil
}

// Keys returns every known setting key, sorted.
func Keys() []string {
	keys := ensure().AllKeys()
	sort.Strings(keys)
	return keys
}

// Value returns the effective value of key with secrets redacted.
// Unknown keys are an error naming the known ones.
func Value(key string) (interface{}, error) {
	keys := Keys()
	i := sort.SearchStrings(keys, key)
	if i == len(keys) || keys[i] != key {
		return nil, fmt.Errorf("unknown setting %q (known: %s)", key, strings.Join(keys, ", "))
	}
	if secretKeys[key] && GetString(key) != "" {
		return redacted, nil
	}
	return ensure().Get(key), nil
}

// ResetForTesting drops the current configuration.
func ResetForTesting() {
	v = nil
}
