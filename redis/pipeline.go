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

// Pipeline is a builder for a batch of commands (spec §4.E). It is not
// safe for concurrent use; callers build it up on one goroutine and
// call Exec once.
type Pipeline struct {
	c        *Client
	isAtomic bool
	watched  []string
	discarded bool
	cmds     []PreparedCommand
}

// Pipeline starts a non-atomic batch: commands are sent together but
// failures are independent (one command's error does not abort the
// rest).
func (c *Client) Pipeline() *Pipeline {
	return &Pipeline{c: c, isAtomic: false}
}

// Multi starts an atomic batch (MULTI/EXEC semantics): if any watched
// key changed before EXEC, Exec returns (nil, nil) rather than partial
// results (spec §4.E, property P3).
func (c *Client) Multi() *Pipeline {
	return &Pipeline{c: c, isAtomic: true}
}

// Watch marks keys for optimistic locking ahead of a Multi/Exec. It
// issues WATCH immediately rather than deferring it into the batch,
// matching ioredis/Redis semantics (WATCH runs outside MULTI).
func (c *Client) Watch(ctx context.Context, keys ...string) error {
	drv, err := c.ensureConnected(ctx)
	if err != nil {
		return err
	}
	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = normalizeKey(k, c.opts.KeyPrefix)
	}
	if err := drv.Watch(ctx, prefixed); err != nil {
		return wrapf(err, "redis: watch")
	}
	return nil
}

// Unwatch clears all watched keys. Standalone and cluster clients use
// different driver entry points (component I); route is ignored by
// standalone clients.
func (c *Client) Unwatch(ctx context.Context, route string) error {
	drv, err := c.ensureConnected(ctx)
	if err != nil {
		return err
	}
	if c.opts.IsCluster {
		return wrapf(drv.UnwatchCluster(ctx, route), "redis: unwatch")
	}
	return wrapf(drv.UnwatchStandalone(ctx), "redis: unwatch")
}

// Command records a single command into the batch. name is
// uppercased; args are recorded as given (key-prefixing is applied at
// record time, not at exec time, so later mutation of the client's
// KeyPrefix does not retroactively affect an in-flight pipeline).
func (p *Pipeline) Command(name string, args ...interface{}) *Pipeline {
	p.cmds = append(p.cmds, PreparedCommand{Name: upper(name), Args: args})
	return p
}

// Key records a command whose first argument is a key, applying the
// client's KeyPrefix to it before recording.
func (p *Pipeline) Key(name string, key string, rest ...interface{}) *Pipeline {
	args := make([]interface{}, 0, len(rest)+1)
	args = append(args, normalizeKey(key, p.c.opts.KeyPrefix))
	args = append(args, rest...)
	return p.Command(name, args...)
}

// Discard cancels an atomic batch. Exec on a discarded pipeline returns
// an empty slice and does not contact the driver (spec §4.E).
func (p *Pipeline) Discard() {
	p.discarded = true
}

// Len reports the number of commands recorded so far.
func (p *Pipeline) Len() int { return len(p.cmds) }

// PipelineSlot is one [error, value] result slot (spec §4.E property
// P3): Err is non-nil for a command that itself failed while the batch
// as a whole still completed; Value is the command's raw result
// otherwise.
type PipelineSlot struct {
	Err   error
	Value interface{}
}

// Exec runs the batch. It returns:
//   - (nil, nil) if this is an atomic batch and a watched key changed
//     (spec §4.E property P3, the WATCH-conflict case — the only case
//     where the whole result is nil rather than a slice);
//   - ([], nil) if the pipeline was discarded or empty;
//   - one PipelineSlot per recorded command otherwise, in order.
func (p *Pipeline) Exec(ctx context.Context) ([]PipelineSlot, error) {
	if p.discarded || len(p.cmds) == 0 {
		return []PipelineSlot{}, nil
	}

	drv, err := p.c.ensureConnected(ctx)
	if err != nil {
		return nil, err
	}

	batch := Batch{Commands: p.cmds, Atomic: p.isAtomic}
	results, err := drv.Exec(ctx, batch, false)
	if err != nil {
		return nil, wrapf(err, "redis: exec")
	}
	if results == nil {
		// Watched key changed, or the driver reports the whole batch as
		// aborted; this is the one nil-result case (not an empty slice).
		return nil, nil
	}

	slots := make([]PipelineSlot, len(results))
	for i, r := range results {
		if e, ok := r.(error); ok {
			slots[i] = PipelineSlot{Err: e}
			continue
		}
		slots[i] = PipelineSlot{Value: r}
	}
	return slots, nil
}
