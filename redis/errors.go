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
	"errors"

	pkgerrors "github.com/pkg/errors"
)

var (
	// ErrClosed is returned when a command finds no live main driver
	// handle, and by WaitUntilReady when the client reaches "end"
	// instead of "ready". A command issued after "end" reconnects
	// rather than failing with ErrClosed.
	ErrClosed = errors.New("redis: client is closed")

	// ErrClosing is returned when a command is rejected because
	// teardown is already in flight.
	ErrClosing = errors.New("redis: client shutdown in progress")

	// ErrShardedNotSupported is returned by ssubscribe/sunsubscribe/spublish
	// on a non-cluster client.
	ErrShardedNotSupported = errors.New("Sharded pub/sub is not supported in standalone mode")

	// ErrNoScript is the prefix-matched error returned by evalsha on a
	// cache miss. Callers inspect Error() for the "NOSCRIPT" prefix,
	// matching ioredis/server convention.
	ErrNoScript = errors.New("NOSCRIPT No matching script, please use EVAL")

	// ErrTxFailed names a failed transaction. Nothing in this package
	// returns or checks for it: Exec surfaces WATCH aborts as a nil
	// result, not as this error.
	ErrTxFailed = errors.New("redis: transaction failed")

	// ErrNoTimeout is returned by the blocking-op resolver when no
	// argument in the call can be parsed as a numeric timeout.
	ErrNoTimeout = errors.New("timeout must be provided")

	// ErrWrongNumberOfArguments mirrors the server's own message for
	// malformed variadic argument lists caught client-side.
	ErrWrongNumberOfArguments = errors.New("wrong number of arguments")
)

// wrapf wraps a driver/server error with additional context while
// preserving the original error text verbatim, so callers pattern
// matching on substrings like NOSCRIPT/WRONGTYPE/MOVED/READONLY keep
// working through the wrap.
func wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return pkgerrors.Wrapf(err, format, args...)
}
