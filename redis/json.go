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
	"encoding/json"
	"strings"
)

// JSONSet issues JSON.SET key path value, where value is marshaled to
// JSON unless it is already a string (treated as a pre-encoded JSON
// document, matching ioredis client conventions for RedisJSON).
func (c *Client) JSONSet(ctx context.Context, key, path string, value interface{}) error {
	payload, err := jsonEncode(value)
	if err != nil {
		return err
	}
	_, err = c.sendRaw(ctx, "JSON.SET", normalizeKey(key, c.opts.KeyPrefix), path, payload)
	return err
}

// JSONGet issues JSON.GET, decodes the JSON reply, and unwraps it via
// unwrapJSONPathResult (spec §4.D: a "$."-prefixed path on a RedisJSON
// reply is returned as an array). The decision rests on the number of
// results only: a one-element array becomes its element even when the
// path holds a wildcard or filter, an empty array becomes nil, and
// longer arrays are returned as they are.
func (c *Client) JSONGet(ctx context.Context, key string, paths ...string) (interface{}, error) {
	args := []interface{}{normalizeKey(key, c.opts.KeyPrefix)}
	for _, p := range paths {
		args = append(args, p)
	}
	v, err := c.sendRaw(ctx, "JSON.GET", args...)
	if err != nil {
		return nil, err
	}
	s, ok := asString(v)
	if !ok {
		return v, nil
	}
	var decoded interface{}
	if err := json.Unmarshal([]byte(s), &decoded); err != nil {
		return s, nil
	}
	return unwrapJSONPathResult(decoded, paths), nil
}

// unwrapJSONPathResult implements the single-"$."-path unwrap rule
// (spec §4.D, SPEC_FULL.md §D.4: preserved as-is, not generalized to
// other JSONPath roots): when exactly one path was requested and it
// literally starts with "$." — not just "$", so a bare "$[0]" root is
// left alone — a RedisJSON v2 array reply is unwrapped: a one-element
// array becomes its inner value, and an empty array becomes nil.
// Any other shape (multiple paths, a non-"$."-prefixed path, >1
// results) is returned unchanged.
func unwrapJSONPathResult(decoded interface{}, paths []string) interface{} {
	if len(paths) != 1 || !strings.HasPrefix(paths[0], "$.") {
		return decoded
	}
	arr, ok := decoded.([]interface{})
	if !ok {
		return decoded
	}
	switch len(arr) {
	case 0:
		return nil
	case 1:
		return arr[0]
	default:
		return decoded
	}
}

// http://redis.io/commands/json.del
func (c *Client) JSONDel(ctx context.Context, key, path string) (int64, error) {
	v, err := c.sendRaw(ctx, "JSON.DEL", normalizeKey(key, c.opts.KeyPrefix), path)
	if err != nil {
		return 0, err
	}
	return asInt64(v)
}

// JSONType issues JSON.TYPE.
func (c *Client) JSONType(ctx context.Context, key, path string) (string, error) {
	v, err := c.sendRaw(ctx, "JSON.TYPE", normalizeKey(key, c.opts.KeyPrefix), path)
	if err != nil {
		return "", err
	}
	s, ok := asString(v)
	if !ok {
		items, isSlice := asSlice(v)
		if isSlice && len(items) == 1 {
			s, _ = asString(items[0])
		}
	}
	return s, nil
}

func jsonEncode(value interface{}) (string, error) {
	if s, ok := value.(string); ok {
		return s, nil
	}
	b, err := json.Marshal(value)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
