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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodeHintRingEmptyReturnsNotOk(t *testing.T) {
	r := newNodeHintRing()
	_, ok := r.hint("any-key")
	assert.False(t, ok)
}

func TestNodeHintRingStableForSameKey(t *testing.T) {
	r := newNodeHintRing()
	r.setNodes([]string{"node-a:6379", "node-b:6379", "node-c:6379"})

	first, ok := r.hint("user:42")
	require.True(t, ok)
	second, _ := r.hint("user:42")
	assert.Equal(t, first, second)
}

func TestClusterClientForcesIsCluster(t *testing.T) {
	cc := NewClusterClient(Options{LazyConnect: true}, newFakeDriver, nil)
	defer cc.Close()
	assert.True(t, cc.IsCluster())
}

func TestClusterClientNodesDelegatesToDriver(t *testing.T) {
	cc := NewClusterClient(Options{LazyConnect: true}, newFakeDriver, nil)
	defer cc.Close()

	nodes, err := cc.Nodes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"127.0.0.1:6379"}, nodes)
}

func TestClusterClientRefreshNodeHints(t *testing.T) {
	cc := NewClusterClient(Options{LazyConnect: true}, newFakeDriver, nil)
	defer cc.Close()

	require.NoError(t, cc.RefreshNodeHints(context.Background()))
	_, ok := cc.NodeHint("somekey")
	assert.True(t, ok)
}
