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
//
// This is a modified version of a gomemcache-derived redis client,
// rebuilt as an ioredis-compatible adapter over a pluggable driver.

package redis

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// NewDriverFunc builds a Driver for the given Options. Client never
// dials a socket itself; Connect asks the caller-supplied factory for
// the main driver handle. Subscriber handles are not built by this
// factory: they come from the main handle's Driver.Subscribe.
type NewDriverFunc func(ctx context.Context, opts Options) (Driver, error)

// Client is an ioredis-compatible adapter over a Driver (spec §3).
// It is safe for concurrent use by multiple goroutines in the sense
// that commands may be issued concurrently; ordering guarantees are
// documented in spec §5.
type Client struct {
	id string

	opts      Options
	newDriver NewDriverFunc
	baseLog   *zap.SugaredLogger
	log       *zap.SugaredLogger
	emitter   *emitter
	state     *stateMachine

	mu         sync.Mutex
	main       Driver
	connectErr error
	connecting chan struct{} // closed when an in-flight connect resolves

	scripts *scriptCache
	defined map[string]definedCommand

	pubsub *pubsubState

	blocked bool
}

// NewClient constructs a client from Options. Construction never
// blocks: if LazyConnect is false, a connect is scheduled to run after
// the current goroutine yields, so callers that attach event listeners
// immediately after construction still observe "connecting"/"connect"/
// "ready".
func NewClient(opts Options, newDriver NewDriverFunc, logger *zap.SugaredLogger) *Client {
	opts.applyDefaults()
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	id := uuid.NewString()
	c := &Client{
		id:        id,
		opts:      opts,
		newDriver: newDriver,
		baseLog:   logger,
		log:       logger.Named("redis").With("client_id", id),
		emitter:   newEmitter(),
		state:     newStateMachine(),
		scripts:   newScriptCache(),
	}
	c.pubsub = newPubsubState(c)

	if !opts.LazyConnect {
		go func() {
			_ = c.Connect(context.Background())
		}()
	}
	return c
}

// Duplicate creates a new, independent Client with a copy of this
// client's Options (verbatim, including LazyConnect — see
// SPEC_FULL.md Open Question 3) and its own driver handles. It does
// not copy connection state, the script cache, or subscriptions.
func (c *Client) Duplicate() *Client {
	return NewClient(c.opts, c.newDriver, c.baseLog)
}

// Options returns a copy of the Options this client was constructed
// with.
func (c *Client) Options() Options { return c.opts }

// IsCluster reports whether this client was constructed as a cluster
// client (component I).
func (c *Client) IsCluster() bool { return c.opts.IsCluster }

// Status returns the ioredis-compatible connection status. See
// SetStatus for the writable half of this property.
func (c *Client) Status() string { return c.state.status() }

// SetStatus overrides the reported status until the next internal
// state transition. Some consumer libraries (notably BullMQ) assign
// to status during their own teardown; this preserves that quirk
// explicitly (spec §4.C, §9).
func (c *Client) SetStatus(s string) { c.state.setStatus(s) }

// Ready reports whether the client is presently in the "ready"
// (internally: connected) state.
func (c *Client) Ready() bool { return c.state.current() == stateConnected }

// Blocked reports whether a blocking command is presently in flight on
// this client.
func (c *Client) Blocked() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.blocked
}

func (c *Client) On(name EventName, fn Listener) int { return c.emitter.On(name, fn) }
func (c *Client) Off(name EventName)                 { c.emitter.Off(name) }

// Connect establishes the main driver handle. A second call while
// already connecting waits on the in-flight attempt; while connected
// it is a no-op. Connect after End re-initializes the client
// (reusable instance, spec §4.C).
func (c *Client) Connect(ctx context.Context) error {
	if c.state.closing() {
		return ErrClosing
	}

	c.mu.Lock()
	switch c.state.current() {
	case stateConnected:
		c.mu.Unlock()
		return nil
	case stateConnecting:
		waitCh := c.connecting
		c.mu.Unlock()
		if waitCh != nil {
			select {
			case <-waitCh:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return c.connectErr
	}
	waitCh := make(chan struct{})
	c.connecting = waitCh
	c.mu.Unlock()

	c.state.set(stateConnecting)
	c.emitter.Emit(EventConnecting)

	connectCtx := ctx
	if c.opts.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		connectCtx, cancel = context.WithTimeout(ctx, c.opts.ConnectTimeout)
		defer cancel()
	}

	drv, err := c.newDriver(connectCtx, c.opts)

	c.mu.Lock()
	c.connectErr = err
	if err == nil {
		c.main = drv
	}
	close(c.connecting)
	c.connecting = nil
	c.mu.Unlock()

	if err != nil {
		c.state.set(stateDisconnected)
		c.emitter.Emit(EventError, err)
		c.log.Warnw("connect failed", "error", err)
		return err
	}

	c.state.set(stateConnected)
	c.emitter.Emit(EventConnect)
	c.emitter.Emit(EventReady)
	c.log.Infow("connected", "addr", c.opts.Addr())
	return nil
}

// WaitUntilReady blocks until the client reaches the ready state or
// ctx is done.
func (c *Client) WaitUntilReady(ctx context.Context) error {
	if c.Ready() {
		return nil
	}
	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		c.state.waitUntil(func(s connState) bool {
			return s == stateConnected || s == stateEnd
		}, stop)
		close(done)
	}()
	select {
	case <-done:
		if !c.Ready() {
			return ErrClosed
		}
		return nil
	case <-ctx.Done():
		close(stop)
		return ctx.Err()
	}
}

// ensureConnected implements the implicit-connect-on-first-command
// rule for LazyConnect clients (spec §4.C), and rejects commands
// issued while teardown is in flight.
func (c *Client) ensureConnected(ctx context.Context) (Driver, error) {
	if c.state.closing() {
		return nil, ErrClosing
	}
	switch c.state.current() {
	case stateConnected:
		c.mu.Lock()
		d := c.main
		c.mu.Unlock()
		if d == nil {
			return nil, ErrClosed
		}
		return d, nil
	case stateEnd, stateDisconnected:
		if err := c.Connect(ctx); err != nil {
			return nil, err
		}
	case stateConnecting:
		if err := c.Connect(ctx); err != nil {
			return nil, err
		}
	}
	c.mu.Lock()
	d := c.main
	c.mu.Unlock()
	if d == nil {
		return nil, ErrClosed
	}
	return d, nil
}

// Disconnect tears the client down without marking it as intentionally
// quit (mirrors ioredis disconnect()/close(), an alias of the same
// path).
func (c *Client) Disconnect() error { return c.teardown(context.Background()) }

// Close is an alias of Disconnect.
func (c *Client) Close() error { return c.Disconnect() }

// Quit is an alias of Disconnect in this adapter: the underlying
// driver owns any QUIT handshake semantics; the adapter's
// responsibility is the local teardown ordering.
func (c *Client) Quit() error { return c.Disconnect() }

// teardown awaits a pending connect (bounded, 50ms), then closes the
// main handle and the pub/sub handles (direct, then RESP-binary)
// concurrently and waits for both, then sleeps a short grace delay so
// underlying sockets flush. The main handle is not guaranteed to close
// before the pub/sub handles. All close calls swallow their own
// errors; this is the one place the adapter intentionally does that
// (spec §7).
func (c *Client) teardown(ctx context.Context) error {
	c.state.setClosing(true)
	defer c.state.setClosing(false)

	c.mu.Lock()
	waitCh := c.connecting
	c.mu.Unlock()
	if waitCh != nil {
		select {
		case <-waitCh:
		case <-time.After(50 * time.Millisecond):
		}
	}

	c.state.set(stateDisconnecting)
	c.emitter.Emit(EventClose)

	c.mu.Lock()
	main := c.main
	c.main = nil
	c.mu.Unlock()

	var g errgroup.Group
	if main != nil {
		g.Go(func() error { _ = main.Close(); return nil })
	}
	g.Go(func() error { c.pubsub.closeAll(); return nil })
	_ = g.Wait()

	time.Sleep(100 * time.Millisecond)

	c.state.set(stateEnd)
	c.emitter.Emit(EventEnd)
	c.log.Infow("closed")
	return nil
}

// Call forwards to the driver's raw escape hatch, uppercasing cmd
// (spec §4.D "Generic execution").
func (c *Client) Call(ctx context.Context, cmd string, args ...interface{}) (interface{}, error) {
	return c.sendRaw(ctx, upper(cmd), args...)
}

// SendCommand accepts either a pre-built []interface{} (cmd followed
// by args) or a single command name with no args.
func (c *Client) SendCommand(ctx context.Context, cmdObj []interface{}) (interface{}, error) {
	if len(cmdObj) == 0 {
		return nil, ErrWrongNumberOfArguments
	}
	name, _ := asString(cmdObj[0])
	return c.sendRaw(ctx, name, cmdObj[1:]...)
}

func (c *Client) sendRaw(ctx context.Context, cmd string, args ...interface{}) (interface{}, error) {
	drv, err := c.ensureConnected(ctx)
	if err != nil {
		return nil, err
	}
	argv := make([]interface{}, 0, len(args)+1)
	argv = append(argv, cmd)
	argv = append(argv, args...)
	v, err := drv.CustomCommand(ctx, argv)
	if err != nil {
		return nil, wrapf(err, "redis: %s", cmd)
	}
	return v, nil
}

func upper(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - ('a' - 'A')
		}
	}
	return string(b)
}

func (c *Client) String() string {
	return fmt.Sprintf("Client<%s db:%d>", c.opts.Addr(), c.opts.DB)
}
