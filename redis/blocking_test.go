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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveBlockingArgsClassicTimeoutFirst(t *testing.T) {
	timeout, keys, err := resolveBlockingArgs([]string{"0", "a", "b"})
	require.NoError(t, err)
	assert.Equal(t, 0.0, timeout)
	assert.Equal(t, []string{"a", "b"}, keys)
}

func TestResolveBlockingArgsBullMQTimeoutLast(t *testing.T) {
	timeout, keys, err := resolveBlockingArgs([]string{"a", "b", "5"})
	require.NoError(t, err)
	assert.Equal(t, 5.0, timeout)
	assert.Equal(t, []string{"a", "b"}, keys)
}

func TestResolveBlockingArgsAmbiguousAllNumericPrefersLastAsTimeout(t *testing.T) {
	// Both ends parse as numbers; per spec the last-argument check runs
	// first, so this is treated as the BullMQ form.
	timeout, keys, err := resolveBlockingArgs([]string{"1", "2"})
	require.NoError(t, err)
	assert.Equal(t, 2.0, timeout)
	assert.Equal(t, []string{"1"}, keys)
}

func TestResolveBlockingArgsNoTimeoutRejected(t *testing.T) {
	_, _, err := resolveBlockingArgs([]string{"a", "b"})
	assert.ErrorIs(t, err, ErrNoTimeout)
}

func TestResolveBlockingArgsEmpty(t *testing.T) {
	_, _, err := resolveBlockingArgs(nil)
	assert.ErrorIs(t, err, ErrNoTimeout)
}

func TestFormatTimeoutIntegerVsFractional(t *testing.T) {
	assert.Equal(t, "0", formatTimeout(0))
	assert.Equal(t, "5", formatTimeout(5))
	assert.Equal(t, "1.5", formatTimeout(1.5))
}

func TestStripPrefix(t *testing.T) {
	assert.Equal(t, "foo", stripPrefix("app:foo", "app:"))
	assert.Equal(t, "foo", stripPrefix("foo", ""))
	assert.Equal(t, "foo", stripPrefix("foo", "app:"))
}
