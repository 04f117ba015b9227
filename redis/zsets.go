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

// ZMember is one (score, member) pair, the unit ZAdd and the
// WithScores-decoded reads operate on.
type ZMember struct {
	Score  float64
	Member string
}

// ZAdd adds or updates members, applying flags (NX/XX/GT/LT/CH) in the
// documented order before the score,member pairs (spec §4.D ZADD
// option handling).
func (c *Client) ZAdd(ctx context.Context, key string, nx, xx, gt, lt, ch bool, members ...ZMember) (int64, error) {
	args := []interface{}{normalizeKey(key, c.opts.KeyPrefix)}
	switch {
	case nx:
		args = append(args, "NX")
	case xx:
		args = append(args, "XX")
	}
	switch {
	case gt:
		args = append(args, "GT")
	case lt:
		args = append(args, "LT")
	}
	if ch {
		args = append(args, "CH")
	}
	for _, m := range members {
		args = append(args, formatScore(m.Score), m.Member)
	}
	v, err := c.sendRaw(ctx, "ZADD", args...)
	if err != nil {
		return 0, err
	}
	return asInt64(v)
}

// http://redis.io/commands/zscore
func (c *Client) ZScore(ctx context.Context, key, member string) (float64, bool, error) {
	v, err := c.sendRaw(ctx, "ZSCORE", normalizeKey(key, c.opts.KeyPrefix), member)
	if err != nil {
		return 0, false, err
	}
	s, ok := asString(v)
	if !ok {
		return 0, false, nil
	}
	b, perr := parseScoreBoundary(s)
	if perr != nil {
		return 0, false, perr
	}
	return b.Value, true, nil
}

// http://redis.io/commands/zcard
func (c *Client) ZCard(ctx context.Context, key string) (int64, error) {
	v, err := c.sendRaw(ctx, "ZCARD", normalizeKey(key, c.opts.KeyPrefix))
	if err != nil {
		return 0, err
	}
	return asInt64(v)
}

// http://redis.io/commands/zrem
func (c *Client) ZRem(ctx context.Context, key string, members ...string) (int64, error) {
	argv := make([]interface{}, 0, len(members)+1)
	argv = append(argv, normalizeKey(key, c.opts.KeyPrefix))
	for _, m := range members {
		argv = append(argv, m)
	}
	v, err := c.sendRaw(ctx, "ZREM", argv...)
	if err != nil {
		return 0, err
	}
	return asInt64(v)
}

// http://redis.io/commands/zincrby
func (c *Client) ZIncrBy(ctx context.Context, key string, delta float64, member string) (float64, error) {
	v, err := c.sendRaw(ctx, "ZINCRBY", normalizeKey(key, c.opts.KeyPrefix), formatScore(delta), member)
	if err != nil {
		return 0, err
	}
	s, _ := asString(v)
	b, err := parseScoreBoundary(s)
	if err != nil {
		return 0, err
	}
	return b.Value, nil
}

// ZRange returns members in [start, stop]. When withScores is true the
// flat member,score,member,score,... reply is reassembled into
// ZMember pairs (spec §4.D "ZRANGE WITHSCORES flattening").
func (c *Client) ZRange(ctx context.Context, key string, start, stop int64, withScores, rev bool) ([]ZMember, error) {
	args := []interface{}{normalizeKey(key, c.opts.KeyPrefix), start, stop}
	if rev {
		args = append(args, "REV")
	}
	if withScores {
		args = append(args, "WITHSCORES")
	}
	v, err := c.sendRaw(ctx, "ZRANGE", args...)
	if err != nil {
		return nil, err
	}
	return decodeZMembers(v, withScores)
}

// ZRangeByScore implements ZRANGEBYSCORE min max, parsing the
// score-boundary tokens via parseScoreBoundary to validate them before
// dispatch (the server receives the original tokens verbatim; parsing
// here exists to fail fast and to support the formatScore
// infinity-formatting contract for callers that pass float64 bounds
// through FormatScoreArg).
func (c *Client) ZRangeByScore(ctx context.Context, key, min, max string, withScores bool, offset, count int64) ([]ZMember, error) {
	if _, err := parseScoreBoundary(min); err != nil {
		return nil, err
	}
	if _, err := parseScoreBoundary(max); err != nil {
		return nil, err
	}
	args := []interface{}{normalizeKey(key, c.opts.KeyPrefix), min, max}
	if withScores {
		args = append(args, "WITHSCORES")
	}
	if count >= 0 {
		args = append(args, "LIMIT", offset, count)
	}
	v, err := c.sendRaw(ctx, "ZRANGEBYSCORE", args...)
	if err != nil {
		return nil, err
	}
	return decodeZMembers(v, withScores)
}

// ZRevRange is ZREVRANGE: the index-based complement of ZRange, read
// back to front. Unlike the score-range variant below, the driver's
// REV flag is reliable for index-based ranges, so this is a thin
// wrapper rather than a manual reversal.
func (c *Client) ZRevRange(ctx context.Context, key string, start, stop int64, withScores bool) ([]ZMember, error) {
	return c.ZRange(ctx, key, start, stop, withScores, true)
}

// ZRevRangeByScore implements ZREVRANGEBYSCORE max min, accepting the
// boundary tokens in ioredis's max-then-min order. The driver's reverse
// flag is unreliable for score ranges (spec §4.D), so this issues the
// equivalent forward ZRANGEBYSCORE min max query and reverses the
// decoded result client-side rather than trusting server/driver
// ordering. LIMIT offset/count (count >= 0) is applied client-side
// after the reversal, so offset counts from the highest score.
func (c *Client) ZRevRangeByScore(ctx context.Context, key, max, min string, withScores bool, offset, count int64) ([]ZMember, error) {
	if _, err := parseScoreBoundary(min); err != nil {
		return nil, err
	}
	if _, err := parseScoreBoundary(max); err != nil {
		return nil, err
	}
	args := []interface{}{normalizeKey(key, c.opts.KeyPrefix), min, max}
	if withScores {
		args = append(args, "WITHSCORES")
	}
	v, err := c.sendRaw(ctx, "ZRANGEBYSCORE", args...)
	if err != nil {
		return nil, err
	}
	members, err := decodeZMembers(v, withScores)
	if err != nil {
		return nil, err
	}
	reverseZMembers(members)
	if count >= 0 {
		if offset < 0 || offset > int64(len(members)) {
			offset = int64(len(members))
		}
		members = members[offset:]
		if count < int64(len(members)) {
			members = members[:count]
		}
	}
	return members, nil
}

func reverseZMembers(members []ZMember) {
	for i, j := 0, len(members)-1; i < j; i, j = i+1, j-1 {
		members[i], members[j] = members[j], members[i]
	}
}

// ZRangeByLex implements ZRANGEBYLEX min max, validating the boundary
// tokens via parseLexBoundary.
func (c *Client) ZRangeByLex(ctx context.Context, key, min, max string, offset, count int64) ([]string, error) {
	if _, err := parseLexBoundary(min); err != nil {
		return nil, err
	}
	if _, err := parseLexBoundary(max); err != nil {
		return nil, err
	}
	args := []interface{}{normalizeKey(key, c.opts.KeyPrefix), min, max}
	if count >= 0 {
		args = append(args, "LIMIT", offset, count)
	}
	v, err := c.sendRaw(ctx, "ZRANGEBYLEX", args...)
	if err != nil {
		return nil, err
	}
	items, _ := asSlice(v)
	return vargsToStrings(items), nil
}

// FormatScoreArg exposes formatScore for callers building their own
// boundary tokens (e.g. "(" + FormatScoreArg(x) for an exclusive
// bound).
func FormatScoreArg(f float64) string { return formatScore(f) }

func decodeZMembers(v interface{}, withScores bool) ([]ZMember, error) {
	items, _ := asSlice(v)
	if !withScores {
		out := make([]ZMember, len(items))
		for i, it := range items {
			s, _ := asString(it)
			out[i] = ZMember{Member: s}
		}
		return out, nil
	}
	out := make([]ZMember, 0, len(items)/2)
	for i := 0; i+1 < len(items); i += 2 {
		m, _ := asString(items[i])
		scoreStr, _ := asString(items[i+1])
		b, err := parseScoreBoundary(scoreStr)
		if err != nil {
			return nil, err
		}
		out = append(out, ZMember{Member: m, Score: b.Value})
	}
	return out, nil
}

// ZScan is ZSCAN: cursor-based iteration over a sorted set's
// member,score pairs (spec §4.D SCAN family). Like Scan, it returns the
// raw [cursor, elements[]] shape as strings; elements alternate
// member,score,member,score,... exactly as the server returns them.
func (c *Client) ZScan(ctx context.Context, key string, cursor string, match string, count int64) (nextCursor string, elements []string, err error) {
	args := []interface{}{normalizeKey(key, c.opts.KeyPrefix), cursor}
	if match != "" {
		args = append(args, "MATCH", match)
	}
	if count > 0 {
		args = append(args, "COUNT", count)
	}
	v, err := c.sendRaw(ctx, "ZSCAN", args...)
	if err != nil {
		return "", nil, err
	}
	return decodeCursorReply(v)
}

// http://redis.io/commands/zrank
func (c *Client) ZRank(ctx context.Context, key, member string) (int64, bool, error) {
	v, err := c.sendRaw(ctx, "ZRANK", normalizeKey(key, c.opts.KeyPrefix), member)
	if err != nil {
		return 0, false, err
	}
	if v == nil {
		return 0, false, nil
	}
	n, err := asInt64(v)
	return n, true, err
}
