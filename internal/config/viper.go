// Package config resolves radar configuration through Viper.
//
// Values arrive from flags bound by the CLI root, the optional
// .radar.yaml config file, and environment variables. The accessors
// here validate what they read and fall back to the defaults in
// pkg/constants when a value is absent or out of range.
package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/agentstation/radar/pkg/constants"
)

// Viper keys for the scan configuration surface.
const (
	KeyDataDir       = "data_dir"
	KeyTablePath     = "table"
	KeyDigestDir     = "digest_dir"
	KeyFeedsFile     = "feeds"
	KeyRulesFile     = "rules"
	KeyWindowDays    = "window_days"
	KeyLimit         = "limit"
	KeySuppressFirst = "suppress_first"
	KeyEnhance       = "enhance"
	KeyGeminiModel   = "gemini_model"
)

// EnvGeminiAPIKey is the environment variable holding the Gemini key.
const EnvGeminiAPIKey = "GEMINI_API_KEY"

// GetString is a helper to get string values from Viper.
// It checks both Viper configuration and OS environment variables.
func GetString(key string) string {
	if value := viper.GetString(key); value != "" {
		return value
	}
	return os.Getenv(key)
}

// DataDir returns the directory holding the table and digests.
func DataDir() string {
	if dir := viper.GetString(KeyDataDir); dir != "" {
		return dir
	}
	return "."
}

// TablePath returns the path of the dataset table. When no explicit
// path is configured the default filename is resolved under DataDir.
func TablePath() string {
	if path := viper.GetString(KeyTablePath); path != "" {
		return path
	}
	return filepath.Join(DataDir(), constants.DefaultTableFile)
}

// DigestDir returns the directory daily digests are written to. When
// not configured the default directory is resolved under DataDir.
func DigestDir() string {
	if dir := viper.GetString(KeyDigestDir); dir != "" {
		return dir
	}
	return filepath.Join(DataDir(), constants.DefaultDigestDir)
}

// FeedsFile returns the path of the feed registry file, or "" when the
// built-in registry should be used.
func FeedsFile() string {
	return viper.GetString(KeyFeedsFile)
}

// RulesFile returns the path of the classification rules file, or ""
// when the built-in rules should be used.
func RulesFile() string {
	return viper.GetString(KeyRulesFile)
}

// WindowDays returns the digest recency window in days. Absent or
// non-positive values fall back to the default window.
func WindowDays() int {
	if days := viper.GetInt(KeyWindowDays); days > 0 {
		return days
	}
	return constants.DefaultWindowDays
}

// Limit returns the digest entry cap. Zero means unbounded; negative
// configuration values are treated as unset.
func Limit() int {
	if limit := viper.GetInt(KeyLimit); limit > 0 {
		return limit
	}
	return 0
}

// SuppressFirst reports whether the digest should be suppressed on the
// run that seeds an empty table.
func SuppressFirst() bool {
	return viper.GetBool(KeySuppressFirst)
}

// Enhance reports whether digest summaries should be polished through
// the Gemini enhancer.
func Enhance() bool {
	return viper.GetBool(KeyEnhance)
}

// GeminiModel returns the configured Gemini model, or "" to use the
// enhancer's default.
func GeminiModel() string {
	return viper.GetString(KeyGeminiModel)
}

// GeminiAPIKey returns the Gemini API key from configuration or the
// environment.
func GeminiAPIKey() string {
	return GetString(EnvGeminiAPIKey)
}
