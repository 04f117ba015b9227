// Copyright 2013 Alexandre Fiori
//
//  Licensed under the Apache License, Version 2.0 (the "License");
//  you may not use this file except in compliance with the License.
//  You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
//  Unless required by applicable law or agreed to in writing, software
//  distributed under the License is distributed on an "AS IS" BASIS,
//  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//  See the License for the specific language governing permissions and
//  limitations under the License.

package redis

import (
	"context"
	"sync"
)

// pubsubState tracks the subscription sets (exact channels, patterns,
// sharded channels) shared by both pub/sub backends (spec §4.G: "a
// single subscription-state model shared by both backends"), and owns
// whichever backend handle is presently live. The backend is selected
// once, at construction, by Options.EnableEventBasedPubSub; switching
// backends mid-life is not supported, matching ioredis itself (the
// backend is picked at Redis() construction time).
type pubsubState struct {
	c *Client

	mu      sync.Mutex
	exact   map[string]struct{}
	pattern map[string]struct{}
	sharded map[string]struct{}

	direct *directBackend
	resp   *respBackend
}

func newPubsubState(c *Client) *pubsubState {
	return &pubsubState{
		c:       c,
		exact:   make(map[string]struct{}),
		pattern: make(map[string]struct{}),
		sharded: make(map[string]struct{}),
	}
}

func (p *pubsubState) useEventBased() bool { return p.c.opts.EnableEventBasedPubSub }

// Subscribe adds channels to the exact-match subscription set and
// (re)establishes the subscriber handle.
func (p *pubsubState) Subscribe(ctx context.Context, channels ...string) error {
	p.mu.Lock()
	for _, ch := range channels {
		p.exact[ch] = struct{}{}
	}
	p.mu.Unlock()

	if err := p.resync(ctx); err != nil {
		return err
	}
	for _, ch := range channels {
		p.c.emitter.Emit(EventSubscribe, ch, p.count())
	}
	return nil
}

// PSubscribe adds patterns to the pattern subscription set.
func (p *pubsubState) PSubscribe(ctx context.Context, patterns ...string) error {
	p.mu.Lock()
	for _, pt := range patterns {
		p.pattern[pt] = struct{}{}
	}
	p.mu.Unlock()

	if err := p.resync(ctx); err != nil {
		return err
	}
	for _, pt := range patterns {
		p.c.emitter.Emit(EventPSubscribe, pt, p.count())
	}
	return nil
}

// SSubscribe adds sharded channels (cluster only, spec §4.I).
func (p *pubsubState) SSubscribe(ctx context.Context, channels ...string) error {
	if !p.c.opts.IsCluster {
		return ErrShardedNotSupported
	}
	p.mu.Lock()
	for _, ch := range channels {
		p.sharded[ch] = struct{}{}
	}
	p.mu.Unlock()
	return p.resync(ctx)
}

// Unsubscribe removes channels from the exact-match set. With no
// arguments, every exact channel is removed (ioredis parity).
func (p *pubsubState) Unsubscribe(ctx context.Context, channels ...string) error {
	p.mu.Lock()
	if len(channels) == 0 {
		for ch := range p.exact {
			channels = append(channels, ch)
		}
		p.exact = make(map[string]struct{})
	} else {
		for _, ch := range channels {
			delete(p.exact, ch)
		}
	}
	p.mu.Unlock()

	if err := p.resync(ctx); err != nil {
		return err
	}
	for _, ch := range channels {
		p.c.emitter.Emit(EventUnsubscribe, ch, p.count())
	}
	return nil
}

// PUnsubscribe removes patterns from the pattern set. With no
// arguments, every pattern is removed.
func (p *pubsubState) PUnsubscribe(ctx context.Context, patterns ...string) error {
	p.mu.Lock()
	if len(patterns) == 0 {
		for pt := range p.pattern {
			patterns = append(patterns, pt)
		}
		p.pattern = make(map[string]struct{})
	} else {
		for _, pt := range patterns {
			delete(p.pattern, pt)
		}
	}
	p.mu.Unlock()

	if err := p.resync(ctx); err != nil {
		return err
	}
	for _, pt := range patterns {
		p.c.emitter.Emit(EventPUnsubscribe, pt, p.count())
	}
	return nil
}

// SUnsubscribe removes sharded channels (cluster only).
func (p *pubsubState) SUnsubscribe(ctx context.Context, channels ...string) error {
	if !p.c.opts.IsCluster {
		return ErrShardedNotSupported
	}
	p.mu.Lock()
	if len(channels) == 0 {
		for ch := range p.sharded {
			channels = append(channels, ch)
		}
		p.sharded = make(map[string]struct{})
	} else {
		for _, ch := range channels {
			delete(p.sharded, ch)
		}
	}
	p.mu.Unlock()
	return p.resync(ctx)
}

func (p *pubsubState) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.exact) + len(p.pattern) + len(p.sharded)
}

func (p *pubsubState) snapshot() SubscriptionConfig {
	p.mu.Lock()
	defer p.mu.Unlock()
	cfg := SubscriptionConfig{
		Exact:   make([]string, 0, len(p.exact)),
		Pattern: make([]string, 0, len(p.pattern)),
		Sharded: make([]string, 0, len(p.sharded)),
	}
	for ch := range p.exact {
		cfg.Exact = append(cfg.Exact, ch)
	}
	for pt := range p.pattern {
		cfg.Pattern = append(cfg.Pattern, pt)
	}
	for ch := range p.sharded {
		cfg.Sharded = append(cfg.Sharded, ch)
	}
	return cfg
}

// resync tears down and recreates the live backend's subscriber handle
// with the current subscription sets. Drivers that support incremental
// subscribe/unsubscribe natively may optimize this internally; the
// adapter's contract with Driver only requires that Subscribe fully
// replaces the prior configuration.
func (p *pubsubState) resync(ctx context.Context) error {
	p.mu.Lock()
	empty := len(p.exact) == 0 && len(p.pattern) == 0 && len(p.sharded) == 0
	p.mu.Unlock()
	if empty {
		p.mu.Lock()
		d, r := p.direct, p.resp
		p.direct, p.resp = nil, nil
		p.mu.Unlock()
		if d != nil {
			_ = d.close()
		}
		if r != nil {
			_ = r.close()
		}
		return nil
	}

	if p.useEventBased() {
		return p.resyncResp(ctx)
	}
	return p.resyncDirect(ctx)
}

func (p *pubsubState) closeAll() {
	p.mu.Lock()
	d, r := p.direct, p.resp
	p.direct, p.resp = nil, nil
	p.mu.Unlock()
	if d != nil {
		_ = d.close()
	}
	if r != nil {
		_ = r.close()
	}
}
