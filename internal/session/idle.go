// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package session

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-journal-vault/internal/logger"
)

// DefaultIdleTimeout is used when NewIdleGuard gets a non-positive timeout.
const DefaultIdleTimeout = 15 * time.Minute

// IdleGuard clears a [KeyCache] once no activity has been reported for the
// configured timeout. Run ties the cache to a context: when the context
// ends the cache is cleared as well.
type IdleGuard struct {
	cache   KeyCache
	clock   Clock
	timeout time.Duration
	logger  *logger.Logger

	mu       sync.Mutex
	timer    Timer
	armedAt  time.Time
	sequence uint64
	onExpire func()
}

// IdleOption configures an IdleGuard.
type IdleOption func(*IdleGuard)

// WithClock replaces the wall clock.
func WithClock(clock Clock) IdleOption {
	return func(g *IdleGuard) {
		g.clock = clock
	}
}

// WithExpireHook registers f to run after the cache is cleared for
// inactivity.
func WithExpireHook(f func()) IdleOption {
	return func(g *IdleGuard) {
		g.onExpire = f
	}
}

func NewIdleGuard(cache KeyCache, timeout time.Duration, logger *logger.Logger, opts ...IdleOption) *IdleGuard {
	if timeout <= 0 {
		timeout = DefaultIdleTimeout
	}

	g := &IdleGuard{
		cache:   cache,
		clock:   RealClock(),
		timeout: timeout,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Touch records activity and re-arms the timer.
func (g *IdleGuard) Touch() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.timer != nil {
		g.timer.Stop()
	}
	g.sequence++
	seq := g.sequence
	g.armedAt = g.clock.Now()
	g.timer = g.clock.AfterFunc(g.timeout, func() { g.expire(seq) })
}

// Remaining returns how long the session stays unlocked without activity.
func (g *IdleGuard) Remaining() time.Duration {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.timer == nil {
		return 0
	}
	left := g.timeout - g.clock.Now().Sub(g.armedAt)
	if left < 0 {
		return 0
	}
	return left
}

// Run arms the guard and blocks until ctx is done, then clears the cache.
func (g *IdleGuard) Run(ctx context.Context) {
	g.Touch()
	<-ctx.Done()

	g.stop()
	g.cache.Clear()
	g.logger.Info().Msg("session closed, key cache cleared")
}

func (g *IdleGuard) expire(seq uint64) {
	g.mu.Lock()
	if seq != g.sequence {
		// re-armed since this timer was scheduled
		g.mu.Unlock()
		return
	}
	g.timer = nil
	hook := g.onExpire
	g.mu.Unlock()

	g.cache.Clear()
	g.logger.Info().Dur("timeout", g.timeout).Msg("idle timeout reached, key cache cleared")

	if hook != nil {
		hook()
	}
}

func (g *IdleGuard) stop() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.timer != nil {
		g.timer.Stop()
		g.timer = nil
	}
	g.sequence++
}
