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
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	c := NewClient(Options{LazyConnect: true}, newFakeDriver, nil)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestClientLazyConnectDoesNotDialUntilFirstCommand(t *testing.T) {
	c := newTestClient(t)
	assert.Equal(t, "disconnected", c.Status())

	_, err := c.Call(context.Background(), "PING")
	require.NoError(t, err)
	assert.Equal(t, "ready", c.Status())
}

func TestClientEagerConnectEmitsConnectAndReady(t *testing.T) {
	var gotConnect, gotReady bool
	c := NewClient(Options{}, newFakeDriver, nil)
	defer c.Close()

	c.On(EventConnect, func(args ...interface{}) { gotConnect = true })
	c.On(EventReady, func(args ...interface{}) { gotReady = true })

	require.NoError(t, c.WaitUntilReady(context.Background()))
	assert.True(t, gotConnect)
	assert.True(t, gotReady)
}

func TestClientSetStatusOverridesUntilNextTransition(t *testing.T) {
	c := newTestClient(t)
	require.NoError(t, c.Connect(context.Background()))
	assert.Equal(t, "ready", c.Status())

	c.SetStatus("end")
	assert.Equal(t, "end", c.Status())

	require.NoError(t, c.Disconnect())
	assert.Equal(t, "end", c.Status())
}

func TestClientCloseEmitsCloseThenEnd(t *testing.T) {
	c := NewClient(Options{LazyConnect: true}, newFakeDriver, nil)
	var order []string
	c.On(EventClose, func(args ...interface{}) { order = append(order, "close") })
	c.On(EventEnd, func(args ...interface{}) { order = append(order, "end") })

	require.NoError(t, c.Connect(context.Background()))
	require.NoError(t, c.Close())

	require.Equal(t, []string{"close", "end"}, order)
	assert.Equal(t, "end", c.Status())
}

func TestClientDuplicateCopiesOptionsNotState(t *testing.T) {
	c := NewClient(Options{LazyConnect: true, KeyPrefix: "app:"}, newFakeDriver, nil)
	defer c.Close()

	dup := c.Duplicate()
	defer dup.Close()

	assert.Equal(t, c.Options().KeyPrefix, dup.Options().KeyPrefix)
	assert.NotEqual(t, c.Status(), "") // both start disconnected; independent instances
	assert.NotSame(t, c, dup)
}

func TestWaitUntilReadyTimesOutViaContext(t *testing.T) {
	c := &Client{
		state: newStateMachine(),
		opts:  Options{},
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	err := c.WaitUntilReady(ctx)
	assert.Error(t, err)
}
