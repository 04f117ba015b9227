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

// Package redis presents an ioredis-compatible client API on top of a
// driver interface describing the Valkey GLIDE client. It does not
// speak RESP itself; the driver does.
package redis

import "context"

// Script is a driver-side handle returned by Driver.NewScript, paired
// with the source it was built from so the adapter can fall back to
// raw EVAL when a driver has no native script object support.
type Script struct {
	Source string
	Handle interface{}
}

// PreparedCommand is one command recorded into a Batch by the
// pipeline/transaction engine (component E). Args are fully
// normalized (keyPrefix applied, values stringified/byte-preserved)
// before being recorded.
type PreparedCommand struct {
	Name string
	Args []interface{}
}

// Batch is an ordered sequence of prepared commands, submitted to the
// driver in one round trip.
type Batch struct {
	Commands []PreparedCommand
	Atomic   bool
}

// SubscriptionConfig describes the set of channels/patterns/sharded
// channels a subscriber driver handle should be configured with, and
// the single delivery callback invoked per message (component G).
type SubscriptionConfig struct {
	Exact   []string
	Pattern []string
	Sharded []string
	OnMessage func(msg DriverMessage)
}

// DriverMessage is a single pub/sub delivery from the driver. Channel,
// Pattern and Payload may be raw bytes; the adapter decides how to
// canonicalize them (component B, convertGlideString).
type DriverMessage struct {
	Channel []byte
	Pattern []byte
	Payload []byte
	HasPattern bool
}

// Subscriber is a live subscriber handle created by Driver.Subscribe.
// Closing it stops delivery and releases any underlying connection.
type Subscriber interface {
	Close() error
}

// Driver is the set of capabilities the adapter consumes from the
// underlying wire client (spec component A). Any client satisfying
// this interface — in particular a Valkey GLIDE client wrapper — can
// back a Client.
type Driver interface {
	// CustomCommand is the raw escape hatch used for commands the
	// driver does not model natively, for module commands (JSON.*),
	// and for XINFO-style dispatch. argv elements are strings or
	// []byte.
	CustomCommand(ctx context.Context, argv []interface{}) (interface{}, error)

	// NewScript builds a driver-side script object from Lua source.
	// Drivers without native script object support may return a
	// Script whose Handle is nil; InvokeScript is then expected to
	// fall back to EVAL internally, or the adapter does it for them
	// (see scripting.go).
	NewScript(source string) Script

	// InvokeScript runs a previously built script with the given key
	// and argument lists. If the driver has no native support it
	// should return an error satisfying errors.Is against
	// ErrScriptInvocationUnsupported so the adapter can fall back to
	// EVAL via CustomCommand.
	InvokeScript(ctx context.Context, script Script, keys, args []string) (interface{}, error)

	// Exec runs a batch atomically (MULTI/EXEC) or as a pipeline,
	// returning nil when a watched key changed or the batch was
	// discarded server-side, otherwise one result (or error sentinel)
	// per command in order.
	Exec(ctx context.Context, batch Batch, raiseOnError bool) ([]interface{}, error)

	// Watch marks keys for optimistic-concurrency tracking on the
	// connection that will run the next Exec.
	Watch(ctx context.Context, keys []string) error

	// UnwatchStandalone clears all watched keys (no routing hint).
	UnwatchStandalone(ctx context.Context) error

	// UnwatchCluster clears all watched keys using a cluster routing
	// hint (component I); route may be empty for "any node".
	UnwatchCluster(ctx context.Context, route string) error

	// Subscribe creates a new subscriber handle configured with cfg.
	// The adapter calls this once per subscription-set change in
	// native-callback mode (component G, Mode 1).
	Subscribe(ctx context.Context, cfg SubscriptionConfig) (Subscriber, error)

	// Publish sends a message to channel, optionally as a sharded
	// publish (cluster only).
	Publish(ctx context.Context, channel string, message []byte, sharded bool) error

	// Nodes reports the currently known cluster nodes. Standalone
	// drivers may return a single-element slice.
	Nodes(ctx context.Context) ([]string, error)

	// Close releases all resources held by the driver. Must be
	// idempotent and best-effort.
	Close() error
}

// ErrScriptInvocationUnsupported is returned by InvokeScript
// implementations that have no native script-object support, signaling
// the adapter to fall back to EVAL via CustomCommand.
var ErrScriptInvocationUnsupported = errWrap("redis: driver does not support native script invocation")

func errWrap(msg string) error { return simpleError(msg) }

type simpleError string

func (e simpleError) Error() string { return string(e) }

// TypedDriver describes typed per-command methods a Driver may also
// offer. No code in this package type-asserts for it: every command,
// including GET/SET/INCR/DEL/EXPIRE/TTL, is dispatched through
// Driver.CustomCommand whether or not the driver implements it.
type TypedDriver interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Incr(ctx context.Context, key string) (int64, error)
	Del(ctx context.Context, keys []string) (int64, error)
	Expire(ctx context.Context, key string, seconds int64) (bool, error)
	TTL(ctx context.Context, key string) (int64, error)
}
