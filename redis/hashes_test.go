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

func TestHSetMapFormThenHGetAll(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	n, err := c.HSet(ctx, "user:1", map[string]interface{}{"name": "ada", "age": 30})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	all, err := c.HGetAll(ctx, "user:1")
	require.NoError(t, err)
	assert.Equal(t, "ada", all["name"])
	assert.Equal(t, "30", all["age"])
}

func TestHSetVariadicForm(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	n, err := c.HSet(ctx, "user:2", "name", "grace")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestDelRemovesMultipleKeys(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	_, err := c.Set(ctx, "a", "1", nil)
	require.NoError(t, err)
	_, err = c.Set(ctx, "b", "1", nil)
	require.NoError(t, err)

	n, err := c.Del(ctx, "a", "b", "missing")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}
