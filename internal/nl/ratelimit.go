// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package nl

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"
)

// RateLimited spaces out calls to the wrapped translator. The first call is
// never delayed.
type RateLimited struct {
	next    Translator
	limiter *rate.Limiter
}

// NewRateLimited wraps next with a limit of perMinute calls. A non-positive
// limit returns next unchanged.
func NewRateLimited(next Translator, perMinute int) Translator {
	if perMinute <= 0 {
		return next
	}
	return &RateLimited{
		next:    next,
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1),
	}
}

// Translate waits for a token, honoring ctx, then delegates.
func (r *RateLimited) Translate(ctx context.Context, text string, known []string) (string, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit: %w", err)
	}
	return r.next.Translate(ctx, text, known)
}
