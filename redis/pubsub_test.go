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

func TestSubscribeEmitsSubscribeEvent(t *testing.T) {
	c := newTestClient(t)
	var gotChannel string
	var gotCount int
	c.On(EventSubscribe, func(args ...interface{}) {
		gotChannel, _ = args[0].(string)
		gotCount, _ = args[1].(int)
	})

	require.NoError(t, c.Subscribe(context.Background(), "news"))
	assert.Equal(t, "news", gotChannel)
	assert.Equal(t, 1, gotCount)
}

func TestUnsubscribeWithNoArgsClearsAll(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	require.NoError(t, c.Subscribe(ctx, "a", "b"))

	require.NoError(t, c.Unsubscribe(ctx))
	assert.Equal(t, 0, c.pubsub.count())
}

func TestSShardedPubSubRejectedOnStandaloneClient(t *testing.T) {
	c := newTestClient(t)
	err := c.SSubscribe(context.Background(), "shard1")
	assert.ErrorIs(t, err, ErrShardedNotSupported)
}

func TestEncodeDecodeBinaryFrameRoundTrip(t *testing.T) {
	payload := []byte{0xff, 0x00, 0xfe, 0x10}
	framed := encodeBinaryFrame(payload)
	assert.Contains(t, string(framed), binarySentinel)

	decoded := decodeBinaryFrame(framed)
	assert.Equal(t, payload, decoded)
}

func TestEncodeBinaryFrameLeavesValidUTF8Untouched(t *testing.T) {
	payload := []byte("hello world")
	framed := encodeBinaryFrame(payload)
	assert.Equal(t, payload, framed)
}

func TestPublishOnNonClusterSPublishRejected(t *testing.T) {
	c := newTestClient(t)
	_, err := c.SPublish(context.Background(), "shard1", []byte("x"))
	assert.ErrorIs(t, err, ErrShardedNotSupported)
}
