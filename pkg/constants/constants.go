// Package constants provides shared constants used throughout the radar codebase.
// This includes timeouts, limits, file permissions, and other configuration values
// that should be consistent across the application.
package constants

import "time"

// Timeout constants define various timeout durations used in the application
const (
	// DefaultHTTPTimeout is the standard timeout for HTTP requests to feeds
	DefaultHTTPTimeout = 30 * time.Second

	// ScanTimeout is the timeout for a full scan run across all feeds
	ScanTimeout = 10 * time.Minute

	// CommandTimeout is the default timeout for CLI commands
	CommandTimeout = 10 * time.Minute

	// DialTimeout is the timeout for establishing network connections
	DialTimeout = 10 * time.Second

	// KeepAliveInterval is the interval between keep-alive probes
	KeepAliveInterval = 30 * time.Second
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Limit constants define various limits and capacities
const (
	// MaxFeedBodyBytes caps how much of a feed response body is read
	MaxFeedBodyBytes = 10 * 1024 * 1024

	// MaxIdleConnections is the maximum number of idle connections in the pool
	MaxIdleConnections = 100

	// MaxSummaryRunes is the maximum length of a digest entry summary
	MaxSummaryRunes = 280

	// MaxProductRunes is the maximum length of a product name derived from a title
	MaxProductRunes = 80

	// MaxIdentityRunes is the maximum length of a dataset row identity slug
	MaxIdentityRunes = 64
)

// Digest constants
const (
	// DefaultWindowDays is the default recency window for digest selection
	DefaultWindowDays = 7

	// DigestFilePrefix is the filename prefix for daily digest files
	DigestFilePrefix = "daily_"
)

// Path constants
const (
	// DefaultTableFile is the default filename of the dataset table
	DefaultTableFile = "products.csv"

	// DefaultDigestDir is the default directory for digest files
	DefaultDigestDir = "digests"

	// DefaultConfigName is the default config file name (without extension)
	DefaultConfigName = ".radar"
)

// Format constants
const (
	// DateFormat is the calendar date format used in the table and digests
	DateFormat = "2006-01-02"
)

// Source defaults applied to candidates built from feed entries
const (
	// DefaultSourceType marks candidates observed via syndication feeds
	DefaultSourceType = "RSS/Blog"

	// DefaultSourcePriority marks first-party sources
	DefaultSourcePriority = "official"

	// DefaultConfidence is the baseline confidence for keyword classification
	DefaultConfidence = "0.6"

	// DefaultRegions is the region tag applied when a source names none
	DefaultRegions = "global"
)
