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

func TestPipelineExecReturnsSlotsInOrder(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	slots, err := c.Pipeline().
		Key("SET", "a", "1").
		Key("SET", "b", "2").
		Key("GET", "a").
		Exec(ctx)

	require.NoError(t, err)
	require.Len(t, slots, 3)
	assert.Equal(t, "OK", slots[0].Value)
	assert.Equal(t, "OK", slots[1].Value)
	assert.Equal(t, "1", slots[2].Value)
}

func TestPipelineDiscardReturnsEmptySlice(t *testing.T) {
	c := newTestClient(t)
	p := c.Pipeline().Key("SET", "a", "1")
	p.Discard()

	slots, err := p.Exec(context.Background())
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestPipelineEmptyExecReturnsEmptySlice(t *testing.T) {
	c := newTestClient(t)
	slots, err := c.Pipeline().Exec(context.Background())
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestMultiExecNilOnWatchConflict(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, c.Watch(ctx, "a"))
	slots, err := c.Multi().Key("SET", "a", "2").Exec(ctx)
	require.NoError(t, err)
	assert.Nil(t, slots)
}

func TestPipelineAppliesKeyPrefixAtRecordTime(t *testing.T) {
	c := NewClient(Options{LazyConnect: true, KeyPrefix: "app:"}, newFakeDriver, nil)
	defer c.Close()

	p := c.Pipeline().Key("SET", "a", "1")
	require.Len(t, p.cmds, 1)
	assert.Equal(t, "app:a", p.cmds[0].Args[0])
}
