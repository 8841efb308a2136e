// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

// Package ratelimit throttles requests per caller with token buckets.
package ratelimit

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	httptypes "github.com/canonical/finance-tracker/internal/http/types"
	"github.com/canonical/finance-tracker/internal/logging"
)

const cleanupInterval = 5 * time.Minute

// KeyExtractor picks the bucket a request is charged to. An empty key is not throttled.
type KeyExtractor func(*http.Request) string

// RemoteIP keys on the first X-Forwarded-For hop, falling back to the socket address.
func RemoteIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return strings.TrimSpace(strings.Split(xff, ",")[0])
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// FirstOf returns the first non empty key.
func FirstOf(extractors ...KeyExtractor) KeyExtractor {
	return func(r *http.Request) string {
		for _, e := range extractors {
			if key := e(r); key != "" {
				return key
			}
		}
		return ""
	}
}

type Limiter struct {
	limiters sync.Map
	rate     rate.Limit
	burst    int
	key      KeyExtractor

	mu          sync.Mutex
	lastCleanup time.Time

	logger logging.LoggerInterface
}

func (l *Limiter) get(key string) *rate.Limiter {
	if limiter, ok := l.limiters.Load(key); ok {
		return limiter.(*rate.Limiter)
	}

	actual, _ := l.limiters.LoadOrStore(key, rate.NewLimiter(l.rate, l.burst))
	l.cleanup()

	return actual.(*rate.Limiter)
}

// cleanup drops idle buckets, a full bucket has not been used for a while.
func (l *Limiter) cleanup() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if time.Since(l.lastCleanup) < cleanupInterval {
		return
	}
	l.lastCleanup = time.Now()

	l.limiters.Range(func(key, value any) bool {
		if value.(*rate.Limiter).Tokens() >= float64(l.burst) {
			l.limiters.Delete(key)
		}
		return true
	})
}

func (l *Limiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := l.key(r)
		if key == "" {
			next.ServeHTTP(w, r)
			return
		}

		limiter := l.get(key)
		if limiter.Allow() {
			next.ServeHTTP(w, r)
			return
		}

		reservation := limiter.Reserve()
		retryAfter := max(int(reservation.Delay().Seconds()), 1)
		reservation.Cancel()

		l.logger.Warnw("rate limit exceeded", "key", key, "path", r.URL.Path, "retry_after", retryAfter)

		w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
		_ = httptypes.WriteJSON(w, http.StatusTooManyRequests, httptypes.ErrorResponse{
			Status:  http.StatusTooManyRequests,
			Message: "too many requests, retry later",
			Kind:    "RateLimited",
		})
	})
}

// NewLimiter allows perSecond requests per key on average with bursts up to burst.
func NewLimiter(perSecond float64, burst int, key KeyExtractor, logger logging.LoggerInterface) *Limiter {
	l := new(Limiter)
	l.rate = rate.Limit(perSecond)
	l.burst = burst
	l.key = key
	l.lastCleanup = time.Now()
	l.logger = logger

	return l
}
