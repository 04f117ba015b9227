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
)

// respBackend is pub/sub Mode 2 (spec §4.G). Its subscriber handle
// comes from Driver.Subscribe, the same entry point Mode 1 uses; it
// opens no connection of its own and sends no RESP commands itself.
// What differs is delivery: payloads reach listeners unchanged, with
// no sentinel decoding, so byte fidelity is whatever the driver's
// delivery provides. Selected by Options.EnableEventBasedPubSub == true.
type respBackend struct {
	sub Subscriber
}

func (p *pubsubState) resyncResp(ctx context.Context) error {
	drv, err := p.c.ensureConnected(ctx)
	if err != nil {
		return err
	}

	p.mu.Lock()
	old := p.resp
	p.resp = nil
	p.mu.Unlock()
	if old != nil {
		_ = old.close()
	}

	cfg := p.snapshot()
	cfg.OnMessage = p.deliverResp
	sub, err := drv.Subscribe(ctx, cfg)
	if err != nil {
		return wrapf(err, "redis: subscribe")
	}

	p.mu.Lock()
	p.resp = &respBackend{sub: sub}
	p.mu.Unlock()
	return nil
}

func (p *pubsubState) deliverResp(msg DriverMessage) {
	channel := string(msg.Channel)
	payload := msg.Payload

	if msg.HasPattern {
		pattern := string(msg.Pattern)
		p.c.emitter.Emit(EventPMessage, pattern, channel, string(payload))
		p.c.emitter.Emit(EventPMessageBuffer, pattern, msg.Channel, payload)
		return
	}
	p.c.emitter.Emit(EventMessage, channel, string(payload))
	p.c.emitter.Emit(EventMessageBuffer, msg.Channel, payload)
}

func (r *respBackend) close() error {
	if r.sub == nil {
		return nil
	}
	return r.sub.Close()
}

// Publish sends message on channel. In native-callback mode, non-UTF8
// payloads are sentinel-framed before transmission since that backend's
// transport only guarantees text fidelity (spec §4.G item 2); in
// RESP-binary mode payloads are sent unchanged, since RESP itself is
// byte-clean.
func (c *Client) Publish(ctx context.Context, channel string, message []byte) (int64, error) {
	drv, err := c.ensureConnected(ctx)
	if err != nil {
		return 0, err
	}
	payload := message
	if !c.opts.EnableEventBasedPubSub {
		payload = encodeBinaryFrame(message)
	}
	if err := drv.Publish(ctx, channel, payload, false); err != nil {
		return 0, wrapf(err, "redis: publish")
	}
	return 1, nil
}

// SPublish sends message on a sharded channel (cluster only, spec
// §4.I).
func (c *Client) SPublish(ctx context.Context, channel string, message []byte) (int64, error) {
	if !c.opts.IsCluster {
		return 0, ErrShardedNotSupported
	}
	drv, err := c.ensureConnected(ctx)
	if err != nil {
		return 0, err
	}
	payload := message
	if !c.opts.EnableEventBasedPubSub {
		payload = encodeBinaryFrame(message)
	}
	if err := drv.Publish(ctx, channel, payload, true); err != nil {
		return 0, wrapf(err, "redis: spublish")
	}
	return 1, nil
}

// Subscribe subscribes to one or more exact channels.
func (c *Client) Subscribe(ctx context.Context, channels ...string) error {
	return c.pubsub.Subscribe(ctx, channels...)
}

// PSubscribe subscribes to one or more glob patterns.
func (c *Client) PSubscribe(ctx context.Context, patterns ...string) error {
	return c.pubsub.PSubscribe(ctx, patterns...)
}

// SSubscribe subscribes to one or more sharded channels (cluster only).
func (c *Client) SSubscribe(ctx context.Context, channels ...string) error {
	return c.pubsub.SSubscribe(ctx, channels...)
}

// Unsubscribe removes channels from the subscription set; with no
// arguments, every exact-match subscription is removed.
func (c *Client) Unsubscribe(ctx context.Context, channels ...string) error {
	return c.pubsub.Unsubscribe(ctx, channels...)
}

// PUnsubscribe removes patterns from the subscription set; with no
// arguments, every pattern subscription is removed.
func (c *Client) PUnsubscribe(ctx context.Context, patterns ...string) error {
	return c.pubsub.PUnsubscribe(ctx, patterns...)
}

// SUnsubscribe removes sharded channels (cluster only).
func (c *Client) SUnsubscribe(ctx context.Context, channels ...string) error {
	return c.pubsub.SUnsubscribe(ctx, channels...)
}

// PSubscribeFunc mirrors the redis v4-style pSubscribe(pattern,
// callback) alternate API (spec §4.G item 5): it subscribes to pattern
// and routes only messages matching it to fn, independent of any other
// pmessage listeners registered via On.
func (c *Client) PSubscribeFunc(ctx context.Context, pattern string, fn func(channel, message string)) error {
	if err := c.PSubscribe(ctx, pattern); err != nil {
		return err
	}
	c.On(EventPMessage, func(args ...interface{}) {
		if len(args) != 3 {
			return
		}
		p, _ := args[0].(string)
		if p != pattern {
			return
		}
		ch, _ := args[1].(string)
		msg, _ := args[2].(string)
		fn(ch, msg)
	})
	return nil
}
