// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package offline

import (
	"errors"
	"net"
	"net/url"
	"strings"
	"sync"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrNonLocalhost is returned for a non-loopback URL in local-only mode.
	ErrNonLocalhost = errors.New("local-only mode: only localhost connections are allowed")

	// ErrCloudBlocked is returned when a cloud provider is selected in local-only mode.
	ErrCloudBlocked = errors.New("local-only mode: cloud providers are disabled")

	// ErrInvalidURLScheme is returned when a URL scheme is not http or https.
	ErrInvalidURLScheme = errors.New("only http and https URLs are allowed")

	// ErrInvalidURL is returned for a URL that does not parse or has no host.
	ErrInvalidURL = errors.New("invalid URL")
)

// =============================================================================
// MODE MANAGEMENT
// =============================================================================

var (
	offlineMode      bool
	offlineModeMutex sync.RWMutex
)

// SetOfflineMode forces local-only mode for the whole process, regardless of
// configuration.
func SetOfflineMode(enabled bool) {
	offlineModeMutex.Lock()
	defer offlineModeMutex.Unlock()
	offlineMode = enabled
}

// IsOfflineMode returns true if local-only mode is forced.
func IsOfflineMode() bool {
	offlineModeMutex.RLock()
	defer offlineModeMutex.RUnlock()
	return offlineMode
}

// LocalOnly combines the configured setting with the process-wide switch.
func LocalOnly(configured bool) bool {
	return configured || IsOfflineMode()
}

// =============================================================================
// URL VALIDATION
// =============================================================================

// IsLocalhost checks if a host string refers to a loopback address. A port
// and IPv6 brackets are ignored; the whole 127.0.0.0/8 range counts.
func IsLocalhost(host string) bool {
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	host = strings.ToLower(strings.Trim(host, "[]"))

	if host == "localhost" {
		return true
	}
	if ip := net.ParseIP(host); ip != nil {
		return ip.IsLoopback()
	}
	return false
}

// ValidateURL checks a server URL. The scheme must always be http or https;
// in local-only mode the host must also be loopback.
func ValidateURL(rawURL string, localOnly bool) error {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return ErrInvalidURL
	}

	scheme := strings.ToLower(parsed.Scheme)
	if scheme != "http" && scheme != "https" {
		return ErrInvalidURLScheme
	}

	if LocalOnly(localOnly) && !IsLocalhost(parsed.Hostname()) {
		return ErrNonLocalhost
	}
	return nil
}

// =============================================================================
// FEATURE GUARDS
// =============================================================================

// CheckCloudAllowed returns ErrCloudBlocked in local-only mode.
func CheckCloudAllowed(localOnly bool) error {
	if LocalOnly(localOnly) {
		return ErrCloudBlocked
	}
	return nil
}

// StatusIndicator returns a short label for the banner, or "" when cloud
// providers are allowed.
func StatusIndicator(localOnly bool) string {
	if LocalOnly(localOnly) {
		return "LOCAL ONLY"
	}
	return ""
}
