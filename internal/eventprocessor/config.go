// Cashpick - Cashback Offer Recommendations for Chat Assistants
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cashpick

package eventprocessor

import "time"

// Event bus backends.
const (
	BackendMemory   = "memory"
	BackendNATS     = "nats"
	BackendEmbedded = "embedded" // nats backend against an in-process server
)

// NATS connection defaults.
const (
	defaultMaxReconnects   = -1 // Unlimited
	defaultReconnectWait   = 2 * time.Second
	defaultReconnectBuffer = 8 * 1024 * 1024
	defaultCloseTimeout    = 30 * time.Second
	defaultOutputBuffer    = 256
)

// CircuitBreakerConfig holds circuit breaker settings.
type CircuitBreakerConfig struct {
	Name             string
	MaxRequests      uint32        // Allowed in half-open state
	Interval         time.Duration // Reset interval for counts
	Timeout          time.Duration // Time to stay open
	FailureThreshold uint32        // Failures before opening
}

// DefaultCircuitBreakerConfig returns production defaults.
func DefaultCircuitBreakerConfig(name string) CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Name:             name,
		MaxRequests:      3,
		Interval:         30 * time.Second,
		Timeout:          10 * time.Second,
		FailureThreshold: 5,
	}
}
