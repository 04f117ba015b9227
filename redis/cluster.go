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
//
// nodeHintRing is adapted from this package's original HashRingSelector,
// which picked a backend server by consistent hashing. Actual command
// routing in cluster mode is the driver's job (spec §1 Non-goals); this
// type is kept only to produce a stable, human-readable "preferred
// node" hint, exposed through ClusterClient.NodeHint. Nothing else in
// the package, including SPublish and Duplicate, consults it.

package redis

import (
	"context"
	"sync"

	"github.com/stathat/consistent"
	"go.uber.org/zap"
)

// nodeHintRing tracks the cluster's known node addresses and can
// suggest which one a given key would consistently hash to, purely for
// observability. Unlike the original selector it never panics on an
// empty ring; callers get ("", false) instead.
type nodeHintRing struct {
	mu   sync.RWMutex
	ring *consistent.Consistent
	seen map[string]struct{}
}

func newNodeHintRing() *nodeHintRing {
	return &nodeHintRing{ring: consistent.New(), seen: make(map[string]struct{})}
}

func (r *nodeHintRing) setNodes(nodes []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ring = consistent.New()
	r.seen = make(map[string]struct{}, len(nodes))
	for _, n := range nodes {
		r.ring.Add(n)
		r.seen[n] = struct{}{}
	}
}

func (r *nodeHintRing) hint(key string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.seen) == 0 {
		return "", false
	}
	addr, err := r.ring.Get(key)
	if err != nil {
		return "", false
	}
	return addr, true
}

// ClusterClient specializes Client for a cluster deployment (spec
// §4.I): it reports IsCluster() true, dispatches Unwatch through
// UnwatchCluster, enables the sharded (s-prefixed) pub/sub commands,
// and maintains a nodeHintRing refreshed from Driver.Nodes by
// RefreshNodeHints.
type ClusterClient struct {
	*Client
	hints *nodeHintRing
}

// NewClusterClient constructs a cluster-mode client. opts.IsCluster is
// forced true regardless of its incoming value.
func NewClusterClient(opts Options, newDriver NewDriverFunc, logger *zap.SugaredLogger) *ClusterClient {
	opts.IsCluster = true
	return &ClusterClient{
		Client: NewClient(opts, newDriver, logger),
		hints:  newNodeHintRing(),
	}
}

// Nodes returns the current known cluster nodes, delegating directly
// to the driver (spec §4.I: "nodes() returns the current known nodes
// from the driver"). This is the caller-facing query; RefreshNodeHints
// additionally feeds the result into the consistent-hash hint ring
// below.
func (cc *ClusterClient) Nodes(ctx context.Context) ([]string, error) {
	drv, err := cc.ensureConnected(ctx)
	if err != nil {
		return nil, err
	}
	nodes, err := drv.Nodes(ctx)
	if err != nil {
		return nil, wrapf(err, "redis: nodes")
	}
	return nodes, nil
}

// RefreshNodeHints queries the driver for its current node list and
// rebuilds the hint ring. Safe to call periodically; failures are
// non-fatal since hints are advisory only.
func (cc *ClusterClient) RefreshNodeHints(ctx context.Context) error {
	nodes, err := cc.Nodes(ctx)
	if err != nil {
		return err
	}
	cc.hints.setNodes(nodes)
	return nil
}

// NodeHint returns the node this ring would consistently route key to,
// for logging only; it does not influence actual dispatch.
func (cc *ClusterClient) NodeHint(key string) (string, bool) {
	return cc.hints.hint(key)
}

// UnwatchWithRoute clears watched keys using an explicit cluster
// routing hint, overriding the route Unwatch would otherwise pass.
func (cc *ClusterClient) UnwatchWithRoute(ctx context.Context, route string) error {
	drv, err := cc.ensureConnected(ctx)
	if err != nil {
		return err
	}
	return wrapf(drv.UnwatchCluster(ctx, route), "redis: unwatch")
}
