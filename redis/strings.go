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

// SetOption is one option flag appended to SET (spec §4.D: SET accepts
// three historical argument shapes — this type backs the structured
// one; Call/SendCommand remain available for the token-list shape).
type SetOption struct {
	EX      int64
	PX      int64
	EXAT    int64
	PXAT    int64
	NX      bool
	XX      bool
	KeepTTL bool
	Get     bool
}

// http://redis.io/commands/set
func (c *Client) Set(ctx context.Context, key, value string, opt *SetOption) (interface{}, error) {
	args := []interface{}{normalizeKey(key, c.opts.KeyPrefix), value}
	if opt != nil {
		switch {
		case opt.EX != 0:
			args = append(args, "EX", opt.EX)
		case opt.PX != 0:
			args = append(args, "PX", opt.PX)
		case opt.EXAT != 0:
			args = append(args, "EXAT", opt.EXAT)
		case opt.PXAT != 0:
			args = append(args, "PXAT", opt.PXAT)
		}
		if opt.KeepTTL {
			args = append(args, "KEEPTTL")
		}
		if opt.NX {
			args = append(args, "NX")
		}
		if opt.XX {
			args = append(args, "XX")
		}
		if opt.Get {
			args = append(args, "GET")
		}
	}
	return c.sendRaw(ctx, "SET", args...)
}

// http://redis.io/commands/get
func (c *Client) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := c.sendRaw(ctx, "GET", normalizeKey(key, c.opts.KeyPrefix))
	if err != nil {
		return "", false, err
	}
	return asString(v)
}

// http://redis.io/commands/getset
func (c *Client) GetSet(ctx context.Context, key, value string) (string, bool, error) {
	v, err := c.sendRaw(ctx, "GETSET", normalizeKey(key, c.opts.KeyPrefix), value)
	if err != nil {
		return "", false, err
	}
	return asString(v)
}

// http://redis.io/commands/getdel
func (c *Client) GetDel(ctx context.Context, key string) (string, bool, error) {
	v, err := c.sendRaw(ctx, "GETDEL", normalizeKey(key, c.opts.KeyPrefix))
	if err != nil {
		return "", false, err
	}
	return asString(v)
}

// http://redis.io/commands/append
func (c *Client) Append(ctx context.Context, key, value string) (int64, error) {
	v, err := c.sendRaw(ctx, "APPEND", normalizeKey(key, c.opts.KeyPrefix), value)
	if err != nil {
		return 0, err
	}
	return asInt64(v)
}

// http://redis.io/commands/strlen
func (c *Client) StrLen(ctx context.Context, key string) (int64, error) {
	v, err := c.sendRaw(ctx, "STRLEN", normalizeKey(key, c.opts.KeyPrefix))
	if err != nil {
		return 0, err
	}
	return asInt64(v)
}

// http://redis.io/commands/incr
func (c *Client) Incr(ctx context.Context, key string) (int64, error) {
	v, err := c.sendRaw(ctx, "INCR", normalizeKey(key, c.opts.KeyPrefix))
	if err != nil {
		return 0, err
	}
	return asInt64(v)
}

// http://redis.io/commands/incrby
func (c *Client) IncrBy(ctx context.Context, key string, delta int64) (int64, error) {
	v, err := c.sendRaw(ctx, "INCRBY", normalizeKey(key, c.opts.KeyPrefix), delta)
	if err != nil {
		return 0, err
	}
	return asInt64(v)
}

// http://redis.io/commands/incrbyfloat
func (c *Client) IncrByFloat(ctx context.Context, key string, delta float64) (string, error) {
	v, err := c.sendRaw(ctx, "INCRBYFLOAT", normalizeKey(key, c.opts.KeyPrefix), formatScore(delta))
	if err != nil {
		return "", err
	}
	s, _ := asString(v)
	return s, nil
}

// http://redis.io/commands/decr
func (c *Client) Decr(ctx context.Context, key string) (int64, error) {
	v, err := c.sendRaw(ctx, "DECR", normalizeKey(key, c.opts.KeyPrefix))
	if err != nil {
		return 0, err
	}
	return asInt64(v)
}

// http://redis.io/commands/decrby
func (c *Client) DecrBy(ctx context.Context, key string, delta int64) (int64, error) {
	v, err := c.sendRaw(ctx, "DECRBY", normalizeKey(key, c.opts.KeyPrefix), delta)
	if err != nil {
		return 0, err
	}
	return asInt64(v)
}

// MGet accepts keys either as individual variadic arguments or as a
// single []string (both call shapes are observed from ioredis
// callers, spec §4.D). Results preserve nil for missing keys.
func (c *Client) MGet(ctx context.Context, keys ...string) ([]interface{}, error) {
	argv := make([]interface{}, len(keys))
	for i, k := range keys {
		argv[i] = normalizeKey(k, c.opts.KeyPrefix)
	}
	v, err := c.sendRaw(ctx, "MGET", argv...)
	if err != nil {
		return nil, err
	}
	items, _ := asSlice(v)
	return items, nil
}

// MSet accepts either a map[string]interface{}/map[string]string or an
// alternating key,value,... variadic list (spec §4.D MSET forms).
func (c *Client) MSet(ctx context.Context, args ...interface{}) error {
	fields, values, err := parseHashSetArgs(args)
	if err != nil {
		return err
	}
	argv := make([]interface{}, 0, len(fields)*2)
	for i, f := range fields {
		argv = append(argv, normalizeKey(f, c.opts.KeyPrefix), normalizeValue(values[i]))
	}
	_, err = c.sendRaw(ctx, "MSET", argv...)
	return err
}

// http://redis.io/commands/setnx
func (c *Client) SetNX(ctx context.Context, key, value string) (bool, error) {
	v, err := c.sendRaw(ctx, "SETNX", normalizeKey(key, c.opts.KeyPrefix), value)
	if err != nil {
		return false, err
	}
	n, _ := asInt64(v)
	return n == 1, nil
}

// http://redis.io/commands/setex
func (c *Client) SetEX(ctx context.Context, key string, seconds int64, value string) error {
	_, err := c.sendRaw(ctx, "SETEX", normalizeKey(key, c.opts.KeyPrefix), seconds, value)
	return err
}

// http://redis.io/commands/getrange
func (c *Client) GetRange(ctx context.Context, key string, start, end int64) (string, error) {
	v, err := c.sendRaw(ctx, "GETRANGE", normalizeKey(key, c.opts.KeyPrefix), start, end)
	if err != nil {
		return "", err
	}
	s, _ := asString(v)
	return s, nil
}

// http://redis.io/commands/setrange
func (c *Client) SetRange(ctx context.Context, key string, offset int64, value string) (int64, error) {
	v, err := c.sendRaw(ctx, "SETRANGE", normalizeKey(key, c.opts.KeyPrefix), offset, value)
	if err != nil {
		return 0, err
	}
	return asInt64(v)
}
