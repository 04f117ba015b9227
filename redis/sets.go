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

// http://redis.io/commands/sadd
func (c *Client) SAdd(ctx context.Context, key string, members ...interface{}) (int64, error) {
	vals := pushArgs(members)
	argv := make([]interface{}, 0, len(vals)+1)
	argv = append(argv, normalizeKey(key, c.opts.KeyPrefix))
	for _, v := range vals {
		argv = append(argv, normalizeValue(v))
	}
	v, err := c.sendRaw(ctx, "SADD", argv...)
	if err != nil {
		return 0, err
	}
	return asInt64(v)
}

// http://redis.io/commands/srem
func (c *Client) SRem(ctx context.Context, key string, members ...interface{}) (int64, error) {
	vals := pushArgs(members)
	argv := make([]interface{}, 0, len(vals)+1)
	argv = append(argv, normalizeKey(key, c.opts.KeyPrefix))
	for _, v := range vals {
		argv = append(argv, normalizeValue(v))
	}
	v, err := c.sendRaw(ctx, "SREM", argv...)
	if err != nil {
		return 0, err
	}
	return asInt64(v)
}

// http://redis.io/commands/sismember
func (c *Client) SIsMember(ctx context.Context, key string, member interface{}) (bool, error) {
	v, err := c.sendRaw(ctx, "SISMEMBER", normalizeKey(key, c.opts.KeyPrefix), normalizeValue(member))
	if err != nil {
		return false, err
	}
	n, _ := asInt64(v)
	return n == 1, nil
}

// http://redis.io/commands/smembers
func (c *Client) SMembers(ctx context.Context, key string) ([]string, error) {
	v, err := c.sendRaw(ctx, "SMEMBERS", normalizeKey(key, c.opts.KeyPrefix))
	if err != nil {
		return nil, err
	}
	items, _ := asSlice(v)
	return vargsToStrings(items), nil
}

// http://redis.io/commands/scard
func (c *Client) SCard(ctx context.Context, key string) (int64, error) {
	v, err := c.sendRaw(ctx, "SCARD", normalizeKey(key, c.opts.KeyPrefix))
	if err != nil {
		return 0, err
	}
	return asInt64(v)
}

// http://redis.io/commands/spop
func (c *Client) SPop(ctx context.Context, key string, count int) ([]string, error) {
	args := []interface{}{normalizeKey(key, c.opts.KeyPrefix)}
	if count >= 0 {
		args = append(args, count)
	}
	v, err := c.sendRaw(ctx, "SPOP", args...)
	if err != nil {
		return nil, err
	}
	if count < 0 {
		s, ok := asString(v)
		if !ok {
			return nil, nil
		}
		return []string{s}, nil
	}
	items, _ := asSlice(v)
	return vargsToStrings(items), nil
}

func (c *Client) setOp(ctx context.Context, cmd string, keys ...string) ([]string, error) {
	argv := make([]interface{}, len(keys))
	for i, k := range keys {
		argv[i] = normalizeKey(k, c.opts.KeyPrefix)
	}
	v, err := c.sendRaw(ctx, cmd, argv...)
	if err != nil {
		return nil, err
	}
	items, _ := asSlice(v)
	return vargsToStrings(items), nil
}

// http://redis.io/commands/sunion
func (c *Client) SUnion(ctx context.Context, keys ...string) ([]string, error) { return c.setOp(ctx, "SUNION", keys...) }

// http://redis.io/commands/sinter
func (c *Client) SInter(ctx context.Context, keys ...string) ([]string, error) { return c.setOp(ctx, "SINTER", keys...) }

// http://redis.io/commands/sdiff
func (c *Client) SDiff(ctx context.Context, keys ...string) ([]string, error) { return c.setOp(ctx, "SDIFF", keys...) }

// SScan is SSCAN: cursor-based iteration over a set's members (spec
// §4.D SCAN family). Returns the raw [cursor, elements[]] shape.
func (c *Client) SScan(ctx context.Context, key string, cursor string, match string, count int64) (nextCursor string, elements []string, err error) {
	args := []interface{}{normalizeKey(key, c.opts.KeyPrefix), cursor}
	if match != "" {
		args = append(args, "MATCH", match)
	}
	if count > 0 {
		args = append(args, "COUNT", count)
	}
	v, err := c.sendRaw(ctx, "SSCAN", args...)
	if err != nil {
		return "", nil, err
	}
	return decodeCursorReply(v)
}

// http://redis.io/commands/smove
func (c *Client) SMove(ctx context.Context, src, dst string, member interface{}) (bool, error) {
	v, err := c.sendRaw(ctx, "SMOVE", normalizeKey(src, c.opts.KeyPrefix), normalizeKey(dst, c.opts.KeyPrefix), normalizeValue(member))
	if err != nil {
		return false, err
	}
	n, _ := asInt64(v)
	return n == 1, nil
}
