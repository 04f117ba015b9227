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

// http://redis.io/commands/del
func (c *Client) Del(ctx context.Context, keys ...string) (int64, error) {
	argv := make([]interface{}, len(keys))
	for i, k := range keys {
		argv[i] = normalizeKey(k, c.opts.KeyPrefix)
	}
	v, err := c.sendRaw(ctx, "DEL", argv...)
	if err != nil {
		return 0, err
	}
	return asInt64(v)
}

// http://redis.io/commands/exists
func (c *Client) Exists(ctx context.Context, keys ...string) (int64, error) {
	argv := make([]interface{}, len(keys))
	for i, k := range keys {
		argv[i] = normalizeKey(k, c.opts.KeyPrefix)
	}
	v, err := c.sendRaw(ctx, "EXISTS", argv...)
	if err != nil {
		return 0, err
	}
	return asInt64(v)
}

// http://redis.io/commands/expire
func (c *Client) Expire(ctx context.Context, key string, seconds int64) (bool, error) {
	v, err := c.sendRaw(ctx, "EXPIRE", normalizeKey(key, c.opts.KeyPrefix), seconds)
	if err != nil {
		return false, err
	}
	n, _ := asInt64(v)
	return n == 1, nil
}

// http://redis.io/commands/pexpire
func (c *Client) PExpire(ctx context.Context, key string, millis int64) (bool, error) {
	v, err := c.sendRaw(ctx, "PEXPIRE", normalizeKey(key, c.opts.KeyPrefix), millis)
	if err != nil {
		return false, err
	}
	n, _ := asInt64(v)
	return n == 1, nil
}

// http://redis.io/commands/expireat
func (c *Client) ExpireAt(ctx context.Context, key string, unixSeconds int64) (bool, error) {
	v, err := c.sendRaw(ctx, "EXPIREAT", normalizeKey(key, c.opts.KeyPrefix), unixSeconds)
	if err != nil {
		return false, err
	}
	n, _ := asInt64(v)
	return n == 1, nil
}

// http://redis.io/commands/ttl
func (c *Client) TTL(ctx context.Context, key string) (int64, error) {
	v, err := c.sendRaw(ctx, "TTL", normalizeKey(key, c.opts.KeyPrefix))
	if err != nil {
		return 0, err
	}
	return asInt64(v)
}

// http://redis.io/commands/pttl
func (c *Client) PTTL(ctx context.Context, key string) (int64, error) {
	v, err := c.sendRaw(ctx, "PTTL", normalizeKey(key, c.opts.KeyPrefix))
	if err != nil {
		return 0, err
	}
	return asInt64(v)
}

// http://redis.io/commands/persist
func (c *Client) Persist(ctx context.Context, key string) (bool, error) {
	v, err := c.sendRaw(ctx, "PERSIST", normalizeKey(key, c.opts.KeyPrefix))
	if err != nil {
		return false, err
	}
	n, _ := asInt64(v)
	return n == 1, nil
}

// http://redis.io/commands/type
func (c *Client) Type(ctx context.Context, key string) (string, error) {
	v, err := c.sendRaw(ctx, "TYPE", normalizeKey(key, c.opts.KeyPrefix))
	if err != nil {
		return "", err
	}
	s, _ := asString(v)
	return s, nil
}

// http://redis.io/commands/rename
func (c *Client) Rename(ctx context.Context, key, newKey string) error {
	_, err := c.sendRaw(ctx, "RENAME", normalizeKey(key, c.opts.KeyPrefix), normalizeKey(newKey, c.opts.KeyPrefix))
	return err
}

// http://redis.io/commands/renamenx
func (c *Client) RenameNX(ctx context.Context, key, newKey string) (bool, error) {
	v, err := c.sendRaw(ctx, "RENAMENX", normalizeKey(key, c.opts.KeyPrefix), normalizeKey(newKey, c.opts.KeyPrefix))
	if err != nil {
		return false, err
	}
	n, _ := asInt64(v)
	return n == 1, nil
}

// http://redis.io/commands/copy
func (c *Client) Copy(ctx context.Context, src, dst string, replace bool) (bool, error) {
	args := []interface{}{normalizeKey(src, c.opts.KeyPrefix), normalizeKey(dst, c.opts.KeyPrefix)}
	if replace {
		args = append(args, "REPLACE")
	}
	v, err := c.sendRaw(ctx, "COPY", args...)
	if err != nil {
		return false, err
	}
	n, _ := asInt64(v)
	return n == 1, nil
}

// Scan is the building block behind ScanStream (spec §4.D SCAN
// family). cursor "0" both starts and (when returned) ends an
// iteration.
func (c *Client) Scan(ctx context.Context, cursor string, match string, count int64, typ string) (nextCursor string, keys []string, err error) {
	args := []interface{}{cursor}
	if match != "" {
		args = append(args, "MATCH", normalizeKey(match, c.opts.KeyPrefix))
	}
	if count > 0 {
		args = append(args, "COUNT", count)
	}
	if typ != "" {
		args = append(args, "TYPE", typ)
	}
	v, err := c.sendRaw(ctx, "SCAN", args...)
	if err != nil {
		return "", nil, err
	}
	return decodeScanReply(v, c.opts.KeyPrefix)
}

func decodeScanReply(v interface{}, prefix string) (string, []string, error) {
	cursor, elements, err := decodeCursorReply(v)
	if err != nil {
		return "", nil, err
	}
	keys := make([]string, len(elements))
	for i, s := range elements {
		keys[i] = stripPrefix(s, prefix)
	}
	return cursor, keys, nil
}

// decodeCursorReply unpacks the common [cursor, elements[]] shape
// shared by SCAN/HSCAN/SSCAN/ZSCAN (spec §4.D), with elements returned
// as strings verbatim (no keyPrefix stripping — callers scanning a
// single key's fields/members/scores, rather than the keyspace, don't
// carry the prefix on their elements).
func decodeCursorReply(v interface{}) (string, []string, error) {
	items, ok := asSlice(v)
	if !ok || len(items) != 2 {
		return "", nil, ErrWrongNumberOfArguments
	}
	cursor, _ := asString(items[0])
	raw, _ := asSlice(items[1])
	elements := make([]string, len(raw))
	for i, r := range raw {
		s, _ := asString(r)
		elements[i] = s
	}
	return cursor, elements, nil
}
