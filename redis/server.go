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

// http://redis.io/commands/ping
func (c *Client) Ping(ctx context.Context, message string) (string, error) {
	var v interface{}
	var err error
	if message == "" {
		v, err = c.sendRaw(ctx, "PING")
	} else {
		v, err = c.sendRaw(ctx, "PING", message)
	}
	if err != nil {
		return "", err
	}
	s, _ := asString(v)
	return s, nil
}

// http://redis.io/commands/flushdb
func (c *Client) FlushDB(ctx context.Context, async bool) error {
	args := []interface{}{}
	if async {
		args = append(args, "ASYNC")
	}
	_, err := c.sendRaw(ctx, "FLUSHDB", args...)
	return err
}

// http://redis.io/commands/flushall
func (c *Client) FlushAll(ctx context.Context, async bool) error {
	args := []interface{}{}
	if async {
		args = append(args, "ASYNC")
	}
	_, err := c.sendRaw(ctx, "FLUSHALL", args...)
	return err
}

// http://redis.io/commands/dbsize
func (c *Client) DBSize(ctx context.Context) (int64, error) {
	v, err := c.sendRaw(ctx, "DBSIZE")
	if err != nil {
		return 0, err
	}
	return asInt64(v)
}

// http://redis.io/commands/config-get
func (c *Client) ConfigGet(ctx context.Context, parameter string) (map[string]string, error) {
	v, err := c.sendRaw(ctx, "CONFIG", "GET", parameter)
	if err != nil {
		return nil, err
	}
	items, _ := asSlice(v)
	out := make(map[string]string, len(items)/2)
	for i := 0; i+1 < len(items); i += 2 {
		k, _ := asString(items[i])
		val, _ := asString(items[i+1])
		out[k] = val
	}
	return out, nil
}

// http://redis.io/commands/config-set
func (c *Client) ConfigSet(ctx context.Context, parameter, value string) error {
	_, err := c.sendRaw(ctx, "CONFIG", "SET", parameter, value)
	return err
}

// http://redis.io/commands/client-setname
func (c *Client) ClientSetName(ctx context.Context, name string) error {
	_, err := c.sendRaw(ctx, "CLIENT", "SETNAME", name)
	return err
}

// http://redis.io/commands/client-getname
func (c *Client) ClientGetName(ctx context.Context) (string, error) {
	v, err := c.sendRaw(ctx, "CLIENT", "GETNAME")
	if err != nil {
		return "", err
	}
	s, _ := asString(v)
	return s, nil
}

// http://redis.io/commands/info
func (c *Client) Info(ctx context.Context, section string) (string, error) {
	var v interface{}
	var err error
	if section == "" {
		v, err = c.sendRaw(ctx, "INFO")
	} else {
		v, err = c.sendRaw(ctx, "INFO", section)
	}
	if err != nil {
		return "", err
	}
	s, _ := asString(v)
	return s, nil
}

// http://redis.io/commands/command-count
func (c *Client) CommandCount(ctx context.Context) (int64, error) {
	v, err := c.sendRaw(ctx, "COMMAND", "COUNT")
	if err != nil {
		return 0, err
	}
	return asInt64(v)
}
