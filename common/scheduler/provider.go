package scheduler

import "sync"

// Provider hands out one shared Scheduler, built lazily from a factory on
// first use. Concurrent first use still creates exactly one instance; a
// second worker resource would silently leak otherwise. The shared instance
// lives until the process exits, no teardown is performed here.
type Provider struct {
	mu      sync.Mutex
	factory func() Scheduler
	shared  Scheduler
}

// NewProvider creates a Provider. The factory runs at most once, on the
// first call to Shared. A factory panic propagates to that first caller and
// leaves the provider empty, so a later call retries.
func NewProvider(factory func() Scheduler) *Provider {
	return &Provider{factory: factory}
}

// Shared returns the shared scheduler, creating it on first use.
func (p *Provider) Shared() Scheduler {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.shared == nil {
		p.shared = p.factory()
	}
	return p.shared
}
