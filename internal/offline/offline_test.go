// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package offline

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func withOfflineMode(t *testing.T, enabled bool) {
	t.Helper()
	original := IsOfflineMode()
	SetOfflineMode(enabled)
	t.Cleanup(func() { SetOfflineMode(original) })
}

// =============================================================================
// MODE MANAGEMENT
// =============================================================================

func TestSetOfflineMode(t *testing.T) {
	withOfflineMode(t, true)
	assert.True(t, IsOfflineMode())
	assert.True(t, LocalOnly(false))

	SetOfflineMode(false)
	assert.False(t, IsOfflineMode())
	assert.False(t, LocalOnly(false))
	assert.True(t, LocalOnly(true))
}

func TestOfflineModeConcurrentAccess(t *testing.T) {
	withOfflineMode(t, false)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				SetOfflineMode(j%2 == 0)
				_ = IsOfflineMode()
			}
		}()
	}
	wg.Wait()
}

// =============================================================================
// LOCALHOST DETECTION
// =============================================================================

func TestIsLocalhost(t *testing.T) {
	tests := []struct {
		host string
		want bool
	}{
		{"localhost", true},
		{"LOCALHOST", true},
		{"localhost:11434", true},
		{"127.0.0.1", true},
		{"127.0.0.1:11434", true},
		{"127.8.9.10", true},
		{"::1", true},
		{"[::1]", true},
		{"[::1]:11434", true},
		{"0:0:0:0:0:0:0:1", true},
		{"192.168.1.10", false},
		{"10.0.0.1:11434", false},
		{"example.com", false},
		{"localhost.example.com", false},
		{"", false},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, IsLocalhost(tc.host), tc.host)
	}
}

// =============================================================================
// URL VALIDATION
// =============================================================================

func TestValidateURL(t *testing.T) {
	withOfflineMode(t, false)

	tests := []struct {
		url       string
		localOnly bool
		want      error
	}{
		{"http://127.0.0.1:11434", false, nil},
		{"https://gpu-box.lan:11434", false, nil},
		{"http://127.0.0.1:11434", true, nil},
		{"http://localhost:11434", true, nil},
		{"http://[::1]:11434", true, nil},
		{"http://gpu-box.lan:11434", true, ErrNonLocalhost},
		{"file:///etc/passwd", false, ErrInvalidURL},
		{"ftp://127.0.0.1", false, ErrInvalidURLScheme},
		{"javascript://127.0.0.1/alert", true, ErrInvalidURLScheme},
		{"not a url", false, ErrInvalidURL},
		{"", false, ErrInvalidURL},
	}

	for _, tc := range tests {
		err := ValidateURL(tc.url, tc.localOnly)
		if tc.want == nil {
			assert.NoError(t, err, tc.url)
			continue
		}
		assert.ErrorIs(t, err, tc.want, tc.url)
	}
}

func TestValidateURLForcedOffline(t *testing.T) {
	withOfflineMode(t, true)

	assert.ErrorIs(t, ValidateURL("http://gpu-box.lan:11434", false), ErrNonLocalhost)
	assert.NoError(t, ValidateURL("http://127.0.0.1:11434", false))
}

// =============================================================================
// FEATURE GUARDS
// =============================================================================

func TestCheckCloudAllowed(t *testing.T) {
	withOfflineMode(t, false)

	assert.NoError(t, CheckCloudAllowed(false))
	assert.ErrorIs(t, CheckCloudAllowed(true), ErrCloudBlocked)

	SetOfflineMode(true)
	assert.ErrorIs(t, CheckCloudAllowed(false), ErrCloudBlocked)
}

func TestStatusIndicator(t *testing.T) {
	withOfflineMode(t, false)

	assert.Empty(t, StatusIndicator(false))
	assert.Equal(t, "LOCAL ONLY", StatusIndicator(true))
}
