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
	"strconv"
)

// resolveBlockingArgs disambiguates the two call conventions observed
// for BLPOP/BRPOP/BZPOPMIN/BZPOPMAX: ioredis classic (timeout first)
// and the BullMQ variant (timeout last). Spec §4.H: if the last
// argument is numeric, it is the timeout (BullMQ form); else if the
// first argument is numeric, it is the timeout (classic form);
// otherwise the call is rejected.
func resolveBlockingArgs(args []string) (timeout float64, keys []string, err error) {
	if len(args) == 0 {
		return 0, nil, ErrNoTimeout
	}
	if t, ok := parseTimeout(args[len(args)-1]); ok {
		return t, args[:len(args)-1], nil
	}
	if t, ok := parseTimeout(args[0]); ok {
		return t, args[1:], nil
	}
	return 0, nil, ErrNoTimeout
}

func parseTimeout(s string) (float64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// blockingKV pops from the head/tail of the first list among keys that
// has an element, blocking up to timeout seconds (0 = indefinitely).
// Backs BLPop/BRPop. On timeout it returns ok == false with empty key
// and value and a nil error.
func (c *Client) blockingKV(ctx context.Context, cmd string, args ...string) (key, value string, ok bool, err error) {
	timeout, keys, err := resolveBlockingArgs(args)
	if err != nil {
		return "", "", false, err
	}
	if len(keys) == 0 {
		return "", "", false, ErrWrongNumberOfArguments
	}

	c.mu.Lock()
	c.blocked = true
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		c.blocked = false
		c.mu.Unlock()
	}()

	argv := make([]interface{}, 0, len(keys)+1)
	for _, k := range keys {
		argv = append(argv, normalizeKey(k, c.opts.KeyPrefix))
	}
	argv = append(argv, formatTimeout(timeout))

	v, err := c.sendRaw(ctx, cmd, argv...)
	if err != nil {
		return "", "", false, err
	}
	if v == nil {
		return "", "", false, nil
	}
	items, isSlice := asSlice(v)
	if !isSlice || len(items) != 2 {
		return "", "", false, ErrWrongNumberOfArguments
	}
	k, _ := asString(items[0])
	val, _ := asString(items[1])
	return stripPrefix(k, c.opts.KeyPrefix), val, true, nil
}

// BLPop implements BLPOP accepting either call convention (spec §4.H).
func (c *Client) BLPop(ctx context.Context, args ...string) (key, value string, ok bool, err error) {
	return c.blockingKV(ctx, "BLPOP", args...)
}

// BRPop implements BRPOP accepting either call convention.
func (c *Client) BRPop(ctx context.Context, args ...string) (key, value string, ok bool, err error) {
	return c.blockingKV(ctx, "BRPOP", args...)
}

// blockingZ backs BZPopMin/BZPopMax, returning [key, member, score] or
// not-ok on timeout.
func (c *Client) blockingZ(ctx context.Context, cmd string, args ...string) (key, member, score string, ok bool, err error) {
	timeout, keys, err := resolveBlockingArgs(args)
	if err != nil {
		return "", "", "", false, err
	}
	if len(keys) == 0 {
		return "", "", "", false, ErrWrongNumberOfArguments
	}

	c.mu.Lock()
	c.blocked = true
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		c.blocked = false
		c.mu.Unlock()
	}()

	argv := make([]interface{}, 0, len(keys)+1)
	for _, k := range keys {
		argv = append(argv, normalizeKey(k, c.opts.KeyPrefix))
	}
	argv = append(argv, formatTimeout(timeout))

	v, err := c.sendRaw(ctx, cmd, argv...)
	if err != nil {
		return "", "", "", false, err
	}
	if v == nil {
		return "", "", "", false, nil
	}
	items, isSlice := asSlice(v)
	if !isSlice || len(items) != 3 {
		return "", "", "", false, ErrWrongNumberOfArguments
	}
	k, _ := asString(items[0])
	m, _ := asString(items[1])
	sc, err := asScoreString(items[2])
	if err != nil {
		return "", "", "", false, err
	}
	return stripPrefix(k, c.opts.KeyPrefix), m, sc, true, nil
}

// BZPopMin implements BZPOPMIN accepting either call convention.
func (c *Client) BZPopMin(ctx context.Context, args ...string) (key, member, score string, ok bool, err error) {
	return c.blockingZ(ctx, "BZPOPMIN", args...)
}

// BZPopMax implements BZPOPMAX accepting either call convention.
func (c *Client) BZPopMax(ctx context.Context, args ...string) (key, member, score string, ok bool, err error) {
	return c.blockingZ(ctx, "BZPOPMAX", args...)
}

// BRPopLPush implements BRPOPLPUSH src dst timeout. It has a single,
// unambiguous argument order in ioredis, so no timeout-position
// resolver is needed here.
func (c *Client) BRPopLPush(ctx context.Context, src, dst string, timeoutSeconds float64) (string, bool, error) {
	c.mu.Lock()
	c.blocked = true
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		c.blocked = false
		c.mu.Unlock()
	}()

	v, err := c.sendRaw(ctx, "BRPOPLPUSH",
		normalizeKey(src, c.opts.KeyPrefix),
		normalizeKey(dst, c.opts.KeyPrefix),
		formatTimeout(timeoutSeconds))
	if err != nil {
		return "", false, err
	}
	if v == nil {
		return "", false, nil
	}
	s, _ := asString(v)
	return s, true, nil
}

func formatTimeout(t float64) string {
	if t == float64(int64(t)) {
		return strconv.FormatInt(int64(t), 10)
	}
	return strconv.FormatFloat(t, 'f', -1, 64)
}

func stripPrefix(key, prefix string) string {
	if prefix == "" {
		return key
	}
	if len(key) >= len(prefix) && key[:len(prefix)] == prefix {
		return key[len(prefix):]
	}
	return key
}

func asScoreString(v interface{}) (string, error) {
	if s, ok := asString(v); ok {
		return s, nil
	}
	return "", ErrWrongNumberOfArguments
}
