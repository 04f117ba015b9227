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
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"sync"
)

// scriptCache is the per-client SHA1(source) -> Script map populated
// by ScriptLoad and by the first Eval, consulted by EvalSha (spec
// §4.F). Scoped to the client instance, not the process: a fresh
// client has an empty cache.
type scriptCache struct {
	mu    sync.RWMutex
	byHash map[string]Script
}

func newScriptCache() *scriptCache {
	return &scriptCache{byHash: make(map[string]Script)}
}

func sha1Hex(s string) string {
	sum := sha1.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

func (sc *scriptCache) put(script Script) string {
	hash := sha1Hex(script.Source)
	sc.mu.Lock()
	sc.byHash[hash] = script
	sc.mu.Unlock()
	return hash
}

func (sc *scriptCache) get(hash string) (Script, bool) {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	s, ok := sc.byHash[hash]
	return s, ok
}

// ScriptLoad computes the SHA1 of src, registers it in this client's
// script cache, and returns the hash.
func (c *Client) ScriptLoad(ctx context.Context, src string) (string, error) {
	drv, err := c.ensureConnected(ctx)
	if err != nil {
		return "", err
	}
	script := drv.NewScript(src)
	if script.Source == "" {
		script.Source = src
	}
	return c.scripts.put(script), nil
}

// EvalSha looks up sha1 in the script cache and invokes it with numkeys
// keys (keyPrefix applied) and the remaining args. A cache miss
// surfaces as an error whose text begins with "NOSCRIPT" so callers
// know to retry with Eval.
func (c *Client) EvalSha(ctx context.Context, sha1hex string, keys, args []string) (interface{}, error) {
	script, ok := c.scripts.get(sha1hex)
	if !ok {
		return nil, ErrNoScript
	}
	return c.runScript(ctx, script, keys, args)
}

// Eval loads src into the script cache (if not already present) and
// invokes it immediately.
func (c *Client) Eval(ctx context.Context, src string, keys, args []string) (interface{}, error) {
	drv, err := c.ensureConnected(ctx)
	if err != nil {
		return nil, err
	}
	hash := sha1Hex(src)
	script, ok := c.scripts.get(hash)
	if !ok {
		script = drv.NewScript(src)
		if script.Source == "" {
			script.Source = src
		}
		c.scripts.put(script)
	}
	return c.runScript(ctx, script, keys, args)
}

func (c *Client) runScript(ctx context.Context, script Script, keys, args []string) (interface{}, error) {
	drv, err := c.ensureConnected(ctx)
	if err != nil {
		return nil, err
	}

	prefixedKeys := make([]string, len(keys))
	for i, k := range keys {
		prefixedKeys[i] = normalizeKey(k, c.opts.KeyPrefix)
	}

	v, err := drv.InvokeScript(ctx, script, prefixedKeys, args)
	if err != nil && errors.Is(err, ErrScriptInvocationUnsupported) {
		return c.evalFallback(ctx, drv, script.Source, prefixedKeys, args)
	}
	if err != nil {
		return nil, wrapf(err, "redis: eval")
	}
	return remapEmptyTable(v, script.Source), nil
}

// evalFallback issues EVAL ... numkeys KEY... ARG... via the raw
// escape hatch, used when the driver has no native script object
// support (spec §4.F item 3).
func (c *Client) evalFallback(ctx context.Context, drv Driver, src string, keys, args []string) (interface{}, error) {
	argv := make([]interface{}, 0, 3+len(keys)+len(args))
	argv = append(argv, "EVAL", src, strconv.Itoa(len(keys)))
	for _, k := range keys {
		argv = append(argv, k)
	}
	for _, a := range args {
		argv = append(argv, a)
	}
	v, err := drv.CustomCommand(ctx, argv)
	if err != nil {
		return nil, wrapf(err, "redis: eval (fallback)")
	}
	return remapEmptyTable(v, src), nil
}

// remapEmptyTable implements spec §4.F item 4: if the script returned
// nil and the source contains the literal token "return {}", remap
// the result to an empty slice, because drivers normalize empty-table
// returns to nil but ioredis callers expect an empty array (property
// P9).
func remapEmptyTable(v interface{}, source string) interface{} {
	if v == nil && strings.Contains(source, "return {}") {
		return []interface{}{}
	}
	return v
}

// DefineCommand installs a method-like callable named name on this
// client instance (spec §4.F). Go does not support adding methods to
// an existing value at runtime, so the installed "method" is exposed
// as a callable stored in Client.defined and invoked via
// Client.RunDefinedCommand(name, args...) — callers that need the
// ioredis ergonomics of `client.myCommand(...)` wrap that lookup in a
// generated or hand-written accessor.
func (c *Client) DefineCommand(name string, lua string, numberOfKeys int) {
	c.mu.Lock()
	if c.defined == nil {
		c.defined = make(map[string]definedCommand)
	}
	c.defined[name] = definedCommand{lua: lua, numberOfKeys: numberOfKeys}
	c.mu.Unlock()
}

type definedCommand struct {
	lua          string
	numberOfKeys int
}

// RunDefinedCommand invokes a command installed by DefineCommand.
// args may be passed either as individual variadic values or as a
// single []interface{} (both forms are observed from queue libraries,
// spec §4.F item 1); the single-array form is detected when exactly
// one argument was given and it is a slice.
func (c *Client) RunDefinedCommand(ctx context.Context, name string, args ...interface{}) (interface{}, error) {
	c.mu.Lock()
	def, ok := c.defined[name]
	c.mu.Unlock()
	if !ok {
		return nil, errors.New("redis: unknown defined command " + name)
	}

	if len(args) == 1 {
		if arr, ok := args[0].([]interface{}); ok {
			args = arr
		}
	}
	if len(args) < def.numberOfKeys {
		return nil, ErrWrongNumberOfArguments
	}

	keys := make([]string, def.numberOfKeys)
	for i := 0; i < def.numberOfKeys; i++ {
		s, _ := asString(args[i])
		keys[i] = s
	}

	valueArgs := args[def.numberOfKeys:]
	strArgs := make([]string, len(valueArgs))
	for i, v := range valueArgs {
		strArgs[i] = stringifyScriptArg(v)
	}

	return c.Eval(ctx, def.lua, keys, strArgs)
}

// stringifyScriptArg implements spec §4.F item 2's value encoding:
// buffers preserved unchanged, objects JSON-serialized, everything
// else stringified. Since the driver boundary here is []string,
// "preserved unchanged" means the bytes are carried as a string
// without further transformation (callers needing true binary-safe
// script args should route through a driver that accepts []byte args
// directly via a custom TypedDriver extension).
func stringifyScriptArg(v interface{}) string {
	switch t := v.(type) {
	case []byte:
		return string(t)
	case string:
		return t
	default:
		if s, ok := asString(v); ok {
			return s
		}
		b, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(b)
	}
}
