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

// pushArgs flattens the ioredis list-push polymorphism: a single
// []interface{} argument is spread, otherwise the variadic values are
// used as given (spec §4.D "LPUSH/RPUSH array-or-variadic").
func pushArgs(values []interface{}) []interface{} {
	if len(values) == 1 {
		if arr, ok := values[0].([]interface{}); ok {
			return arr
		}
	}
	return values
}

// http://redis.io/commands/lpush
func (c *Client) LPush(ctx context.Context, key string, values ...interface{}) (int64, error) {
	vals := pushArgs(values)
	argv := make([]interface{}, 0, len(vals)+1)
	argv = append(argv, normalizeKey(key, c.opts.KeyPrefix))
	for _, v := range vals {
		argv = append(argv, normalizeValue(v))
	}
	v, err := c.sendRaw(ctx, "LPUSH", argv...)
	if err != nil {
		return 0, err
	}
	return asInt64(v)
}

// http://redis.io/commands/rpush
func (c *Client) RPush(ctx context.Context, key string, values ...interface{}) (int64, error) {
	vals := pushArgs(values)
	argv := make([]interface{}, 0, len(vals)+1)
	argv = append(argv, normalizeKey(key, c.opts.KeyPrefix))
	for _, v := range vals {
		argv = append(argv, normalizeValue(v))
	}
	v, err := c.sendRaw(ctx, "RPUSH", argv...)
	if err != nil {
		return 0, err
	}
	return asInt64(v)
}

// LPop pops up to count elements (spec §4.D "LPOP/RPOP count
// handling"): count < 0 means "no COUNT argument"; the result is then
// a one-element slice holding the popped value, or nil when nothing
// was popped.
func (c *Client) LPop(ctx context.Context, key string, count int) ([]interface{}, error) {
	return c.listPop(ctx, "LPOP", key, count)
}

// http://redis.io/commands/rpop
func (c *Client) RPop(ctx context.Context, key string, count int) ([]interface{}, error) {
	return c.listPop(ctx, "RPOP", key, count)
}

func (c *Client) listPop(ctx context.Context, cmd, key string, count int) ([]interface{}, error) {
	args := []interface{}{normalizeKey(key, c.opts.KeyPrefix)}
	if count >= 0 {
		args = append(args, count)
	}
	v, err := c.sendRaw(ctx, cmd, args...)
	if err != nil {
		return nil, err
	}
	if count < 0 {
		if v == nil {
			return nil, nil
		}
		return []interface{}{v}, nil
	}
	items, _ := asSlice(v)
	return items, nil
}

// http://redis.io/commands/llen
func (c *Client) LLen(ctx context.Context, key string) (int64, error) {
	v, err := c.sendRaw(ctx, "LLEN", normalizeKey(key, c.opts.KeyPrefix))
	if err != nil {
		return 0, err
	}
	return asInt64(v)
}

// http://redis.io/commands/lrange
func (c *Client) LRange(ctx context.Context, key string, start, stop int64) ([]string, error) {
	v, err := c.sendRaw(ctx, "LRANGE", normalizeKey(key, c.opts.KeyPrefix), start, stop)
	if err != nil {
		return nil, err
	}
	items, _ := asSlice(v)
	return vargsToStrings(items), nil
}

// http://redis.io/commands/lindex
func (c *Client) LIndex(ctx context.Context, key string, index int64) (string, bool, error) {
	v, err := c.sendRaw(ctx, "LINDEX", normalizeKey(key, c.opts.KeyPrefix), index)
	if err != nil {
		return "", false, err
	}
	return asString(v)
}

// http://redis.io/commands/lrem
func (c *Client) LRem(ctx context.Context, key string, count int64, value string) (int64, error) {
	v, err := c.sendRaw(ctx, "LREM", normalizeKey(key, c.opts.KeyPrefix), count, value)
	if err != nil {
		return 0, err
	}
	return asInt64(v)
}

// http://redis.io/commands/ltrim
func (c *Client) LTrim(ctx context.Context, key string, start, stop int64) error {
	_, err := c.sendRaw(ctx, "LTRIM", normalizeKey(key, c.opts.KeyPrefix), start, stop)
	return err
}

// http://redis.io/commands/lset
func (c *Client) LSet(ctx context.Context, key string, index int64, value string) error {
	_, err := c.sendRaw(ctx, "LSET", normalizeKey(key, c.opts.KeyPrefix), index, value)
	return err
}

// http://redis.io/commands/rpoplpush
func (c *Client) RPopLPush(ctx context.Context, src, dst string) (string, bool, error) {
	v, err := c.sendRaw(ctx, "RPOPLPUSH", normalizeKey(src, c.opts.KeyPrefix), normalizeKey(dst, c.opts.KeyPrefix))
	if err != nil {
		return "", false, err
	}
	return asString(v)
}

// http://redis.io/commands/lmove
func (c *Client) LMove(ctx context.Context, src, dst, fromWhere, toWhere string) (string, bool, error) {
	v, err := c.sendRaw(ctx, "LMOVE", normalizeKey(src, c.opts.KeyPrefix), normalizeKey(dst, c.opts.KeyPrefix), fromWhere, toWhere)
	if err != nil {
		return "", false, err
	}
	return asString(v)
}
