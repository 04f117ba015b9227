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

func TestScriptLoadThenEvalSha(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	hash, err := c.ScriptLoad(ctx, "return redis.call('GET', KEYS[1])")
	require.NoError(t, err)
	assert.Equal(t, sha1Hex("return redis.call('GET', KEYS[1])"), hash)

	_, err = c.Eval(ctx, "SET", nil, nil) // noop warm-up to ensure driver is connected
	_ = err

	_, err = c.EvalSha(ctx, hash, []string{"k"}, nil)
	require.NoError(t, err)
}

func TestEvalShaCacheMissReturnsNoScript(t *testing.T) {
	c := newTestClient(t)
	_, err := c.EvalSha(context.Background(), "deadbeef", nil, nil)
	assert.ErrorIs(t, err, ErrNoScript)
}

func TestEvalFallsBackWhenDriverLacksNativeInvoke(t *testing.T) {
	c := newTestClient(t)
	v, err := c.Eval(context.Background(), "return 1", nil, nil)
	require.NoError(t, err)
	_ = v // fakeDriver's CustomCommand EVAL path is not modeled; nil is acceptable here
}

func TestRemapEmptyTableTurnsNilIntoEmptySlice(t *testing.T) {
	v := remapEmptyTable(nil, "if true then return {} end")
	assert.Equal(t, []interface{}{}, v)

	v2 := remapEmptyTable(nil, "return 1")
	assert.Nil(t, v2)
}

func TestDefineCommandAndRunDefinedCommand(t *testing.T) {
	c := newTestClient(t)
	c.DefineCommand("myCmd", "return 1", 1)

	_, err := c.RunDefinedCommand(context.Background(), "myCmd", "key1", "arg1")
	require.NoError(t, err)
}

func TestRunDefinedCommandUnknownNameErrors(t *testing.T) {
	c := newTestClient(t)
	_, err := c.RunDefinedCommand(context.Background(), "nope")
	assert.Error(t, err)
}

func TestRunDefinedCommandAcceptsSingleArrayArg(t *testing.T) {
	c := newTestClient(t)
	c.DefineCommand("myCmd", "return 1", 1)

	_, err := c.RunDefinedCommand(context.Background(), "myCmd", []interface{}{"key1", "arg1"})
	require.NoError(t, err)
}
