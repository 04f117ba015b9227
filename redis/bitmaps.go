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

// http://redis.io/commands/setbit
func (c *Client) SetBit(ctx context.Context, key string, offset int64, value int) (int64, error) {
	v, err := c.sendRaw(ctx, "SETBIT", normalizeKey(key, c.opts.KeyPrefix), offset, value)
	if err != nil {
		return 0, err
	}
	return asInt64(v)
}

// http://redis.io/commands/getbit
func (c *Client) GetBit(ctx context.Context, key string, offset int64) (int64, error) {
	v, err := c.sendRaw(ctx, "GETBIT", normalizeKey(key, c.opts.KeyPrefix), offset)
	if err != nil {
		return 0, err
	}
	return asInt64(v)
}

// BitCount sends the start/end range only when start >= 0; pass
// start < 0 to count the whole key. start = end = 0 is sent as a range
// and counts only the first byte.
func (c *Client) BitCount(ctx context.Context, key string, start, end int64) (int64, error) {
	args := []interface{}{normalizeKey(key, c.opts.KeyPrefix)}
	if start >= 0 {
		args = append(args, start, end)
	}
	v, err := c.sendRaw(ctx, "BITCOUNT", args...)
	if err != nil {
		return 0, err
	}
	return asInt64(v)
}

// http://redis.io/commands/bitop
func (c *Client) BitOp(ctx context.Context, op, destKey string, keys ...string) (int64, error) {
	argv := make([]interface{}, 0, len(keys)+2)
	argv = append(argv, op, normalizeKey(destKey, c.opts.KeyPrefix))
	for _, k := range keys {
		argv = append(argv, normalizeKey(k, c.opts.KeyPrefix))
	}
	v, err := c.sendRaw(ctx, "BITOP", argv...)
	if err != nil {
		return 0, err
	}
	return asInt64(v)
}

// http://redis.io/commands/pfadd
func (c *Client) PFAdd(ctx context.Context, key string, elements ...string) (int64, error) {
	argv := make([]interface{}, 0, len(elements)+1)
	argv = append(argv, normalizeKey(key, c.opts.KeyPrefix))
	for _, e := range elements {
		argv = append(argv, e)
	}
	v, err := c.sendRaw(ctx, "PFADD", argv...)
	if err != nil {
		return 0, err
	}
	return asInt64(v)
}

// http://redis.io/commands/pfcount
func (c *Client) PFCount(ctx context.Context, keys ...string) (int64, error) {
	argv := make([]interface{}, len(keys))
	for i, k := range keys {
		argv[i] = normalizeKey(k, c.opts.KeyPrefix)
	}
	v, err := c.sendRaw(ctx, "PFCOUNT", argv...)
	if err != nil {
		return 0, err
	}
	return asInt64(v)
}

// http://redis.io/commands/pfmerge
func (c *Client) PFMerge(ctx context.Context, destKey string, sourceKeys ...string) error {
	argv := make([]interface{}, 0, len(sourceKeys)+1)
	argv = append(argv, normalizeKey(destKey, c.opts.KeyPrefix))
	for _, k := range sourceKeys {
		argv = append(argv, normalizeKey(k, c.opts.KeyPrefix))
	}
	_, err := c.sendRaw(ctx, "PFMERGE", argv...)
	return err
}
