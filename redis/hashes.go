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

import "context"

// HSet accepts either a map[string]interface{}/map[string]string or an
// alternating field,value,... variadic list (spec §4.D HSET/HMSET
// forms).
func (c *Client) HSet(ctx context.Context, key string, args ...interface{}) (int64, error) {
	fields, values, err := parseHashSetArgs(args)
	if err != nil {
		return 0, err
	}
	argv := make([]interface{}, 0, 1+len(fields)*2)
	argv = append(argv, normalizeKey(key, c.opts.KeyPrefix))
	for i, f := range fields {
		argv = append(argv, f, normalizeValue(values[i]))
	}
	v, err := c.sendRaw(ctx, "HSET", argv...)
	if err != nil {
		return 0, err
	}
	return asInt64(v)
}

// HMSet is HSet's historical alias; it returns no count, only an
// error (nil when the server replied "OK").
func (c *Client) HMSet(ctx context.Context, key string, args ...interface{}) error {
	fields, values, err := parseHashSetArgs(args)
	if err != nil {
		return err
	}
	argv := make([]interface{}, 0, 1+len(fields)*2)
	argv = append(argv, normalizeKey(key, c.opts.KeyPrefix))
	for i, f := range fields {
		argv = append(argv, f, normalizeValue(values[i]))
	}
	_, err = c.sendRaw(ctx, "HMSET", argv...)
	return err
}

// http://redis.io/commands/hget
func (c *Client) HGet(ctx context.Context, key, field string) (string, bool, error) {
	v, err := c.sendRaw(ctx, "HGET", normalizeKey(key, c.opts.KeyPrefix), field)
	if err != nil {
		return "", false, err
	}
	return asString(v)
}

// HGetAll canonicalizes the flat field,value,... reply into a map
// (spec §4.D: "HGETALL response reshaping").
func (c *Client) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	v, err := c.sendRaw(ctx, "HGETALL", normalizeKey(key, c.opts.KeyPrefix))
	if err != nil {
		return nil, err
	}
	items, ok := asSlice(v)
	if !ok {
		return map[string]string{}, nil
	}
	out := make(map[string]string, len(items)/2)
	for i := 0; i+1 < len(items); i += 2 {
		k, _ := asString(items[i])
		val, _ := asString(items[i+1])
		out[k] = val
	}
	return out, nil
}

// http://redis.io/commands/hdel
func (c *Client) HDel(ctx context.Context, key string, fields ...string) (int64, error) {
	argv := make([]interface{}, 0, len(fields)+1)
	argv = append(argv, normalizeKey(key, c.opts.KeyPrefix))
	for _, f := range fields {
		argv = append(argv, f)
	}
	v, err := c.sendRaw(ctx, "HDEL", argv...)
	if err != nil {
		return 0, err
	}
	return asInt64(v)
}

// http://redis.io/commands/hexists
func (c *Client) HExists(ctx context.Context, key, field string) (bool, error) {
	v, err := c.sendRaw(ctx, "HEXISTS", normalizeKey(key, c.opts.KeyPrefix), field)
	if err != nil {
		return false, err
	}
	n, _ := asInt64(v)
	return n == 1, nil
}

// http://redis.io/commands/hlen
func (c *Client) HLen(ctx context.Context, key string) (int64, error) {
	v, err := c.sendRaw(ctx, "HLEN", normalizeKey(key, c.opts.KeyPrefix))
	if err != nil {
		return 0, err
	}
	return asInt64(v)
}

// http://redis.io/commands/hincrby
func (c *Client) HIncrBy(ctx context.Context, key, field string, delta int64) (int64, error) {
	v, err := c.sendRaw(ctx, "HINCRBY", normalizeKey(key, c.opts.KeyPrefix), field, delta)
	if err != nil {
		return 0, err
	}
	return asInt64(v)
}

// http://redis.io/commands/hkeys
func (c *Client) HKeys(ctx context.Context, key string) ([]string, error) {
	v, err := c.sendRaw(ctx, "HKEYS", normalizeKey(key, c.opts.KeyPrefix))
	if err != nil {
		return nil, err
	}
	items, _ := asSlice(v)
	return vargsToStrings(items), nil
}

// http://redis.io/commands/hvals
func (c *Client) HVals(ctx context.Context, key string) ([]string, error) {
	v, err := c.sendRaw(ctx, "HVALS", normalizeKey(key, c.opts.KeyPrefix))
	if err != nil {
		return nil, err
	}
	items, _ := asSlice(v)
	return vargsToStrings(items), nil
}

// HScan is HSCAN: cursor-based iteration over a hash's field,value
// pairs (spec §4.D SCAN family). Like Scan, it returns the raw
// [cursor, elements[]] shape as strings; elements alternate
// field,value,field,value,... exactly as the server returns them.
func (c *Client) HScan(ctx context.Context, key string, cursor string, match string, count int64) (nextCursor string, elements []string, err error) {
	args := []interface{}{normalizeKey(key, c.opts.KeyPrefix), cursor}
	if match != "" {
		args = append(args, "MATCH", match)
	}
	if count > 0 {
		args = append(args, "COUNT", count)
	}
	v, err := c.sendRaw(ctx, "HSCAN", args...)
	if err != nil {
		return "", nil, err
	}
	return decodeCursorReply(v)
}

// HMGet returns one value per requested field, preserving nil for
// fields absent from the hash.
func (c *Client) HMGet(ctx context.Context, key string, fields ...string) ([]interface{}, error) {
	argv := make([]interface{}, 0, len(fields)+1)
	argv = append(argv, normalizeKey(key, c.opts.KeyPrefix))
	for _, f := range fields {
		argv = append(argv, f)
	}
	v, err := c.sendRaw(ctx, "HMGET", argv...)
	if err != nil {
		return nil, err
	}
	items, _ := asSlice(v)
	return items, nil
}
