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

// ScanStream is a convenience iterator over repeated SCAN calls
// (SPEC_FULL.md §C: a supplemented feature the distilled spec mentions
// only abstractly). It iterates the keyspace only; HSCAN/SSCAN/ZSCAN
// are not wrapped.
// It is not concurrency-safe; a single goroutine should drive Next or
// consume Stream.
type ScanStream struct {
	c       *Client
	match   string
	count   int64
	typ     string
	cursor  string
	buf     []string
	started bool
	done    bool
	err     error
}

// ScanStream constructs an iterator over the keyspace. match and typ
// may be empty to mean "no filter"; count is a hint forwarded as SCAN
// COUNT (0 means "let the server choose").
func (c *Client) ScanStream(match string, count int64, typ string) *ScanStream {
	return &ScanStream{c: c, match: match, count: count, typ: typ, cursor: "0"}
}

// Next advances to the next key, returning false when the scan is
// exhausted or ctx is done. Call Err after a false return to
// distinguish exhaustion from failure.
func (s *ScanStream) Next(ctx context.Context) (string, bool) {
	for {
		if len(s.buf) > 0 {
			k := s.buf[0]
			s.buf = s.buf[1:]
			return k, true
		}
		if s.done {
			return "", false
		}
		if s.started && s.cursor == "0" {
			s.done = true
			return "", false
		}
		s.started = true

		select {
		case <-ctx.Done():
			s.err = ctx.Err()
			s.done = true
			return "", false
		default:
		}

		next, keys, err := s.c.Scan(ctx, s.cursor, s.match, s.count, s.typ)
		if err != nil {
			s.err = err
			s.done = true
			return "", false
		}
		s.cursor = next
		s.buf = keys
	}
}

// Err reports the error that ended iteration, if any.
func (s *ScanStream) Err() error { return s.err }

// Stream drives the iterator on a background goroutine and returns a
// channel of keys, closed when the scan completes or ctx is done.
// Errors are available via Err after the channel closes.
func (s *ScanStream) Stream(ctx context.Context) <-chan string {
	out := make(chan string)
	go func() {
		defer close(out)
		for {
			k, ok := s.Next(ctx)
			if !ok {
				return
			}
			select {
			case out <- k:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}
