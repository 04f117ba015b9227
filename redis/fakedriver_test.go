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
	"strconv"
	"strings"
	"sync"
)

// fakeDriver is a minimal in-memory Driver used to exercise the
// adapter without a real GLIDE connection. It supports just enough of
// the command surface (GET/SET/DEL/INCR/EXPIRE/TTL/HSET/HGETALL and a
// permissive fallback) for the package's own tests; it is not a
// general-purpose Redis simulator.
type fakeDriver struct {
	mu       sync.Mutex
	data     map[string]interface{}
	ttl      map[string]int64
	scripts  map[string]Script
	watched  []string
	closed   bool
	failNext error
	nodes    []string
}

func newFakeDriver(context.Context, Options) (Driver, error) {
	return &fakeDriver{
		data:    make(map[string]interface{}),
		ttl:     make(map[string]int64),
		scripts: make(map[string]Script),
		nodes:   []string{"127.0.0.1:6379"},
	}, nil
}

func (f *fakeDriver) CustomCommand(ctx context.Context, argv []interface{}) (interface{}, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failNext != nil {
		err := f.failNext
		f.failNext = nil
		return nil, err
	}

	if len(argv) == 0 {
		return nil, ErrWrongNumberOfArguments
	}
	name, _ := asString(argv[0])
	args := argv[1:]

	switch strings.ToUpper(name) {
	case "PING":
		if len(args) == 0 {
			return "PONG", nil
		}
		return args[0], nil
	case "SET":
		key, _ := asString(args[0])
		f.data[key] = args[1]
		return "OK", nil
	case "GET":
		key, _ := asString(args[0])
		v, ok := f.data[key]
		if !ok {
			return nil, nil
		}
		return v, nil
	case "DEL":
		var n int64
		for _, a := range args {
			key, _ := asString(a)
			if _, ok := f.data[key]; ok {
				delete(f.data, key)
				n++
			}
		}
		return n, nil
	case "EXISTS":
		var n int64
		for _, a := range args {
			key, _ := asString(a)
			if _, ok := f.data[key]; ok {
				n++
			}
		}
		return n, nil
	case "INCR":
		key, _ := asString(args[0])
		cur, _ := asInt64(f.data[key])
		cur++
		f.data[key] = strconv.FormatInt(cur, 10)
		return cur, nil
	case "EXPIRE":
		key, _ := asString(args[0])
		seconds, _ := asInt64(args[1])
		if _, ok := f.data[key]; !ok {
			return int64(0), nil
		}
		f.ttl[key] = seconds
		return int64(1), nil
	case "TTL":
		key, _ := asString(args[0])
		if v, ok := f.ttl[key]; ok {
			return v, nil
		}
		if _, ok := f.data[key]; ok {
			return int64(-1), nil
		}
		return int64(-2), nil
	case "HSET":
		key, _ := asString(args[0])
		m, _ := f.data[key].(map[string]string)
		if m == nil {
			m = make(map[string]string)
		}
		var n int64
		for i := 1; i+1 < len(args); i += 2 {
			field, _ := asString(args[i])
			val, _ := asString(args[i+1])
			if _, exists := m[field]; !exists {
				n++
			}
			m[field] = val
		}
		f.data[key] = m
		return n, nil
	case "HGETALL":
		key, _ := asString(args[0])
		m, _ := f.data[key].(map[string]string)
		out := make([]interface{}, 0, len(m)*2)
		for k, v := range m {
			out = append(out, k, v)
		}
		return out, nil
	default:
		return nil, nil
	}
}

func (f *fakeDriver) NewScript(source string) Script {
	return Script{Source: source}
}

func (f *fakeDriver) InvokeScript(ctx context.Context, script Script, keys, args []string) (interface{}, error) {
	return nil, ErrScriptInvocationUnsupported
}

func (f *fakeDriver) Exec(ctx context.Context, batch Batch, raiseOnError bool) ([]interface{}, error) {
	f.mu.Lock()
	watched := len(f.watched) > 0
	f.watched = nil
	f.mu.Unlock()
	if watched {
		return nil, nil
	}
	out := make([]interface{}, len(batch.Commands))
	for i, cmd := range batch.Commands {
		argv := make([]interface{}, 0, len(cmd.Args)+1)
		argv = append(argv, cmd.Name)
		argv = append(argv, cmd.Args...)
		v, err := f.CustomCommand(ctx, argv)
		if err != nil {
			out[i] = err
			continue
		}
		out[i] = v
	}
	return out, nil
}

func (f *fakeDriver) Watch(ctx context.Context, keys []string) error {
	f.mu.Lock()
	f.watched = keys
	f.mu.Unlock()
	return nil
}

func (f *fakeDriver) UnwatchStandalone(ctx context.Context) error {
	f.mu.Lock()
	f.watched = nil
	f.mu.Unlock()
	return nil
}

func (f *fakeDriver) UnwatchCluster(ctx context.Context, route string) error {
	return f.UnwatchStandalone(ctx)
}

type fakeSubscriber struct{}

func (fakeSubscriber) Close() error { return nil }

func (f *fakeDriver) Subscribe(ctx context.Context, cfg SubscriptionConfig) (Subscriber, error) {
	return fakeSubscriber{}, nil
}

func (f *fakeDriver) Publish(ctx context.Context, channel string, message []byte, sharded bool) error {
	return nil
}

func (f *fakeDriver) Nodes(ctx context.Context) ([]string, error) {
	return f.nodes, nil
}

func (f *fakeDriver) Close() error {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
	return nil
}
