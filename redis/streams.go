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

// StreamEntry is one XADD/XRANGE/XREAD entry: an ID paired with its
// flat field,value,... contents decoded into a map.
type StreamEntry struct {
	ID     string
	Fields map[string]string
}

// XAdd appends an entry. id may be "*" for auto-generated IDs. fields
// accepts the same map-or-variadic shapes as HSet (spec §4.D streams
// translation reuses the hash field/value parsing rule).
func (c *Client) XAdd(ctx context.Context, key, id string, fields ...interface{}) (string, error) {
	names, values, err := parseHashSetArgs(fields)
	if err != nil {
		return "", err
	}
	args := []interface{}{normalizeKey(key, c.opts.KeyPrefix), id}
	for i, f := range names {
		args = append(args, f, normalizeValue(values[i]))
	}
	v, err := c.sendRaw(ctx, "XADD", args...)
	if err != nil {
		return "", err
	}
	s, _ := asString(v)
	return s, nil
}

// http://redis.io/commands/xlen
func (c *Client) XLen(ctx context.Context, key string) (int64, error) {
	v, err := c.sendRaw(ctx, "XLEN", normalizeKey(key, c.opts.KeyPrefix))
	if err != nil {
		return 0, err
	}
	return asInt64(v)
}

// XRange returns entries between start and end (use "-"/"+" for
// unbounded), with an optional COUNT cap.
func (c *Client) XRange(ctx context.Context, key, start, end string, count int64) ([]StreamEntry, error) {
	args := []interface{}{normalizeKey(key, c.opts.KeyPrefix), start, end}
	if count > 0 {
		args = append(args, "COUNT", count)
	}
	v, err := c.sendRaw(ctx, "XRANGE", args...)
	if err != nil {
		return nil, err
	}
	return decodeStreamEntries(v)
}

// http://redis.io/commands/xrevrange
func (c *Client) XRevRange(ctx context.Context, key, end, start string, count int64) ([]StreamEntry, error) {
	args := []interface{}{normalizeKey(key, c.opts.KeyPrefix), end, start}
	if count > 0 {
		args = append(args, "COUNT", count)
	}
	v, err := c.sendRaw(ctx, "XREVRANGE", args...)
	if err != nil {
		return nil, err
	}
	return decodeStreamEntries(v)
}

func decodeStreamEntries(v interface{}) ([]StreamEntry, error) {
	items, _ := asSlice(v)
	out := make([]StreamEntry, 0, len(items))
	for _, it := range items {
		pair, ok := asSlice(it)
		if !ok || len(pair) != 2 {
			continue
		}
		id, _ := asString(pair[0])
		flat, _ := asSlice(pair[1])
		fields := make(map[string]string, len(flat)/2)
		for i := 0; i+1 < len(flat); i += 2 {
			k, _ := asString(flat[i])
			val, _ := asString(flat[i+1])
			fields[k] = val
		}
		out = append(out, StreamEntry{ID: id, Fields: fields})
	}
	return out, nil
}

// http://redis.io/commands/xdel
func (c *Client) XDel(ctx context.Context, key string, ids ...string) (int64, error) {
	argv := make([]interface{}, 0, len(ids)+1)
	argv = append(argv, normalizeKey(key, c.opts.KeyPrefix))
	for _, id := range ids {
		argv = append(argv, id)
	}
	v, err := c.sendRaw(ctx, "XDEL", argv...)
	if err != nil {
		return 0, err
	}
	return asInt64(v)
}

// http://redis.io/commands/xtrim
func (c *Client) XTrim(ctx context.Context, key string, maxLen int64, approx bool) (int64, error) {
	args := []interface{}{normalizeKey(key, c.opts.KeyPrefix), "MAXLEN"}
	if approx {
		args = append(args, "~")
	}
	args = append(args, maxLen)
	v, err := c.sendRaw(ctx, "XTRIM", args...)
	if err != nil {
		return 0, err
	}
	return asInt64(v)
}

// http://redis.io/commands/xgroup-create
func (c *Client) XGroupCreate(ctx context.Context, key, group, start string, mkstream bool) error {
	args := []interface{}{"CREATE", normalizeKey(key, c.opts.KeyPrefix), group, start}
	if mkstream {
		args = append(args, "MKSTREAM")
	}
	_, err := c.sendRaw(ctx, "XGROUP", args...)
	return err
}

// XReadGroup reads pending/new entries for a consumer group. "id"
// is typically ">" for new entries.
func (c *Client) XReadGroup(ctx context.Context, group, consumer, key, id string, count int64) ([]StreamEntry, error) {
	args := []interface{}{"GROUP", group, consumer}
	if count > 0 {
		args = append(args, "COUNT", count)
	}
	args = append(args, "STREAMS", normalizeKey(key, c.opts.KeyPrefix), id)
	v, err := c.sendRaw(ctx, "XREADGROUP", args...)
	if err != nil {
		return nil, err
	}
	return decodeXReadReply(v)
}

// XRead reads new entries from one stream starting after id.
func (c *Client) XRead(ctx context.Context, key, id string, count int64) ([]StreamEntry, error) {
	args := []interface{}{}
	if count > 0 {
		args = append(args, "COUNT", count)
	}
	args = append(args, "STREAMS", normalizeKey(key, c.opts.KeyPrefix), id)
	v, err := c.sendRaw(ctx, "XREAD", args...)
	if err != nil {
		return nil, err
	}
	return decodeXReadReply(v)
}

func decodeXReadReply(v interface{}) ([]StreamEntry, error) {
	streams, _ := asSlice(v)
	if len(streams) == 0 {
		return nil, nil
	}
	first, ok := asSlice(streams[0])
	if !ok || len(first) != 2 {
		return nil, nil
	}
	return decodeStreamEntries(first[1])
}

// XInfo implements XINFO STREAM|GROUPS|CONSUMERS, dispatching by sub
// (the first token) and reshaping each result as an array of
// alternating field,value pairs — the ioredis shape — regardless of
// whether the driver handed back a map or an already-flat reply (spec
// §4.D: "XINFO dispatches by first token ... and reshapes each result
// as an array of alternating field, value pairs").
func (c *Client) XInfo(ctx context.Context, sub string, key string, extra ...string) (interface{}, error) {
	subToken := upper(sub)
	argv := []interface{}{subToken, normalizeKey(key, c.opts.KeyPrefix)}
	for _, e := range extra {
		argv = append(argv, e)
	}
	v, err := c.sendRaw(ctx, "XINFO", argv...)
	if err != nil {
		return nil, err
	}
	switch subToken {
	case "GROUPS", "CONSUMERS":
		items, _ := asSlice(v)
		out := make([]interface{}, len(items))
		for i, it := range items {
			out[i] = reshapeFieldValuePairs(it)
		}
		return out, nil
	default: // STREAM
		return reshapeFieldValuePairs(v), nil
	}
}

// reshapeFieldValuePairs flattens a driver-returned map into the
// alternating field,value slice ioredis callers expect; an
// already-flat reply passes through unchanged.
func reshapeFieldValuePairs(v interface{}) []interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		out := make([]interface{}, 0, len(t)*2)
		for k, val := range t {
			out = append(out, k, val)
		}
		return out
	case []interface{}:
		return t
	default:
		return []interface{}{}
	}
}

// XPendingSummary is the reply shape of XPENDING key group (no range
// arguments): an overall count, the ID bounds of the pending entries,
// and a per-consumer count.
type XPendingSummary struct {
	Count     int64
	MinID     string
	MaxID     string
	Consumers map[string]int64
}

// XPending implements the summary form of XPENDING.
func (c *Client) XPending(ctx context.Context, key, group string) (XPendingSummary, error) {
	v, err := c.sendRaw(ctx, "XPENDING", normalizeKey(key, c.opts.KeyPrefix), group)
	if err != nil {
		return XPendingSummary{}, err
	}
	items, ok := asSlice(v)
	if !ok || len(items) != 4 {
		return XPendingSummary{}, ErrWrongNumberOfArguments
	}
	count, _ := asInt64(items[0])
	minID, _ := asString(items[1])
	maxID, _ := asString(items[2])
	consumers := make(map[string]int64)
	if rows, ok := asSlice(items[3]); ok {
		for _, row := range rows {
			pair, ok := asSlice(row)
			if !ok || len(pair) != 2 {
				continue
			}
			name, _ := asString(pair[0])
			cnt, _ := asInt64(pair[1])
			consumers[name] = cnt
		}
	}
	return XPendingSummary{Count: count, MinID: minID, MaxID: maxID, Consumers: consumers}, nil
}

// XPendingEntry is one row of the extended (ranged) XPENDING reply.
type XPendingEntry struct {
	ID            string
	Consumer      string
	IdleMillis    int64
	DeliveryCount int64
}

// XPendingRange implements the extended form of XPENDING: key group
// start end count [consumer].
func (c *Client) XPendingRange(ctx context.Context, key, group, start, end string, count int64, consumer string) ([]XPendingEntry, error) {
	args := []interface{}{normalizeKey(key, c.opts.KeyPrefix), group, start, end, count}
	if consumer != "" {
		args = append(args, consumer)
	}
	v, err := c.sendRaw(ctx, "XPENDING", args...)
	if err != nil {
		return nil, err
	}
	items, _ := asSlice(v)
	out := make([]XPendingEntry, 0, len(items))
	for _, it := range items {
		row, ok := asSlice(it)
		if !ok || len(row) != 4 {
			continue
		}
		id, _ := asString(row[0])
		cons, _ := asString(row[1])
		idle, _ := asInt64(row[2])
		delivery, _ := asInt64(row[3])
		out = append(out, XPendingEntry{ID: id, Consumer: cons, IdleMillis: idle, DeliveryCount: delivery})
	}
	return out, nil
}

// XClaim reclaims pending entries idle for at least minIdleMillis,
// returning their full contents.
func (c *Client) XClaim(ctx context.Context, key, group, consumer string, minIdleMillis int64, ids ...string) ([]StreamEntry, error) {
	args := []interface{}{normalizeKey(key, c.opts.KeyPrefix), group, consumer, minIdleMillis}
	for _, id := range ids {
		args = append(args, id)
	}
	v, err := c.sendRaw(ctx, "XCLAIM", args...)
	if err != nil {
		return nil, err
	}
	return decodeStreamEntries(v)
}

// XClaimJustID is XCLAIM ... JUSTID: reclaims entries but returns only
// their IDs, not their contents.
func (c *Client) XClaimJustID(ctx context.Context, key, group, consumer string, minIdleMillis int64, ids ...string) ([]string, error) {
	args := []interface{}{normalizeKey(key, c.opts.KeyPrefix), group, consumer, minIdleMillis}
	for _, id := range ids {
		args = append(args, id)
	}
	args = append(args, "JUSTID")
	v, err := c.sendRaw(ctx, "XCLAIM", args...)
	if err != nil {
		return nil, err
	}
	items, _ := asSlice(v)
	return vargsToStrings(items), nil
}

// XAutoClaim implements XAUTOCLAIM: a cursor-driven alternative to
// XCLAIM that reclaims entries in batches. Returns the next cursor,
// the claimed entries, and (server 7.0+) any IDs deleted from the
// stream since they were last claimed.
func (c *Client) XAutoClaim(ctx context.Context, key, group, consumer string, minIdleMillis int64, start string, count int64) (nextCursor string, entries []StreamEntry, deletedIDs []string, err error) {
	args := []interface{}{normalizeKey(key, c.opts.KeyPrefix), group, consumer, minIdleMillis, start}
	if count > 0 {
		args = append(args, "COUNT", count)
	}
	v, err := c.sendRaw(ctx, "XAUTOCLAIM", args...)
	if err != nil {
		return "", nil, nil, err
	}
	items, ok := asSlice(v)
	if !ok || len(items) < 2 {
		return "", nil, nil, ErrWrongNumberOfArguments
	}
	cursor, _ := asString(items[0])
	entries, err = decodeStreamEntries(items[1])
	if err != nil {
		return "", nil, nil, err
	}
	if len(items) >= 3 {
		if raw, ok := asSlice(items[2]); ok {
			deletedIDs = vargsToStrings(raw)
		}
	}
	return cursor, entries, deletedIDs, nil
}

// http://redis.io/commands/xack
func (c *Client) XAck(ctx context.Context, key, group string, ids ...string) (int64, error) {
	argv := make([]interface{}, 0, len(ids)+2)
	argv = append(argv, normalizeKey(key, c.opts.KeyPrefix), group)
	for _, id := range ids {
		argv = append(argv, id)
	}
	v, err := c.sendRaw(ctx, "XACK", argv...)
	if err != nil {
		return 0, err
	}
	return asInt64(v)
}
