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
	"fmt"
	"math"
	"strconv"
	"strings"
)

// normalizeKey applies keyPrefix (if any) to a key argument. Empty
// keys are rejected by callers that require one; normalizeKey itself
// only applies the prefix.
func normalizeKey(key string, prefix string) string {
	if prefix == "" {
		return key
	}
	return prefix + key
}

// normalizeValue stringifies a value for dispatch. Numbers stringify,
// strings and byte buffers pass through unchanged (critical for
// Lua-script msgpack payloads and pub/sub binary payloads).
func normalizeValue(v interface{}) interface{} {
	switch t := v.(type) {
	case []byte:
		return t
	case string:
		return t
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return formatScore(t)
	case bool:
		if t {
			return "true"
		}
		return "false"
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", t)
	}
}

// parseHashSetArgs accepts either a single map[string]interface{}
// argument or an alternating field,value,... variadic list and
// returns a canonical ordered mapping. Order is preserved for the
// variadic form; map form has no defined order (matches ioredis,
// which does not guarantee field order for object-form HSET either).
func parseHashSetArgs(args []interface{}) ([]string, []interface{}, error) {
	if len(args) == 1 {
		if m, ok := args[0].(map[string]interface{}); ok {
			fields := make([]string, 0, len(m))
			values := make([]interface{}, 0, len(m))
			for k, v := range m {
				fields = append(fields, k)
				values = append(values, v)
			}
			return fields, values, nil
		}
		if m, ok := args[0].(map[string]string); ok {
			fields := make([]string, 0, len(m))
			values := make([]interface{}, 0, len(m))
			for k, v := range m {
				fields = append(fields, k)
				values = append(values, v)
			}
			return fields, values, nil
		}
	}
	if len(args)%2 != 0 {
		return nil, nil, ErrWrongNumberOfArguments
	}
	fields := make([]string, 0, len(args)/2)
	values := make([]interface{}, 0, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		f, ok := args[i].(string)
		if !ok {
			return nil, nil, fmt.Errorf("redis: hash field at position %d is not a string", i)
		}
		fields = append(fields, f)
		values = append(values, args[i+1])
	}
	return fields, values, nil
}

// scoreBoundary is the parsed form of a ZRANGEBYSCORE-style boundary
// token: a bare number (inclusive), "(number" (exclusive), "+inf"/
// "-inf" (inclusive infinities), or "(+inf"/"(-inf" (exclusive
// infinities).
type scoreBoundary struct {
	Value     float64
	Inclusive bool
}

func parseScoreBoundary(s string) (scoreBoundary, error) {
	inclusive := true
	if strings.HasPrefix(s, "(") {
		inclusive = false
		s = s[1:]
	}
	switch s {
	case "+inf":
		return scoreBoundary{Value: math.Inf(1), Inclusive: inclusive}, nil
	case "-inf":
		return scoreBoundary{Value: math.Inf(-1), Inclusive: inclusive}, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return scoreBoundary{}, fmt.Errorf("redis: invalid score boundary %q: %w", s, err)
	}
	return scoreBoundary{Value: v, Inclusive: inclusive}, nil
}

// lexBoundary is the parsed form of a ZRANGEBYLEX boundary token: "-"
// / "+" (unbounded ends), "[member" (inclusive), "(member" (exclusive).
type lexBoundary struct {
	Unbounded bool
	Min       bool // true if this is the unbounded "-" (negative) end
	Inclusive bool
	Member    string
}

func parseLexBoundary(s string) (lexBoundary, error) {
	switch s {
	case "-":
		return lexBoundary{Unbounded: true, Min: true}, nil
	case "+":
		return lexBoundary{Unbounded: true, Min: false}, nil
	}
	if len(s) < 1 {
		return lexBoundary{}, fmt.Errorf("redis: invalid lex boundary %q", s)
	}
	switch s[0] {
	case '[':
		return lexBoundary{Inclusive: true, Member: s[1:]}, nil
	case '(':
		return lexBoundary{Inclusive: false, Member: s[1:]}, nil
	}
	return lexBoundary{}, fmt.Errorf("redis: invalid lex boundary %q", s)
}

// convertGlideString canonicalizes a driver-returned value (which may
// arrive as string or []byte) to a string, unless raw is true in which
// case byte values are returned unchanged (used by *Buffer event
// variants, spec §4.G).
func convertGlideString(v interface{}, raw bool) interface{} {
	switch t := v.(type) {
	case []byte:
		if raw {
			return t
		}
		return string(t)
	default:
		return v
	}
}

// formatScore serializes a float64 score the way ioredis expects:
// "inf"/"-inf" for infinities (never "Infinity"), otherwise the
// shortest round-tripping decimal representation.
func formatScore(f float64) string {
	if math.IsInf(f, 1) {
		return "inf"
	}
	if math.IsInf(f, -1) {
		return "-inf"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// asString best-effort converts a driver result to a string, treating
// []byte and string interchangeably. ok is false for nil or types that
// cannot be interpreted as text.
func asString(v interface{}) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case []byte:
		return string(t), true
	case nil:
		return "", false
	case int64:
		return strconv.FormatInt(t, 10), true
	case int:
		return strconv.Itoa(t), true
	case float64:
		return formatScore(t), true
	default:
		return "", false
	}
}

func asInt64(v interface{}) (int64, error) {
	switch t := v.(type) {
	case int64:
		return t, nil
	case int:
		return int64(t), nil
	case string:
		return strconv.ParseInt(t, 10, 64)
	case []byte:
		return strconv.ParseInt(string(t), 10, 64)
	default:
		return 0, fmt.Errorf("redis: cannot convert %T to int64", v)
	}
}

func asSlice(v interface{}) ([]interface{}, bool) {
	s, ok := v.([]interface{})
	return s, ok
}

// vargsToStrings converts a variadic interface{} slice of strings or
// []byte to []string, for call sites that only ever pass textual
// arguments.
func vargsToStrings(args []interface{}) []string {
	out := make([]string, len(args))
	for i, a := range args {
		s, _ := asString(a)
		out[i] = s
	}
	return out
}
