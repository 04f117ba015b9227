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
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Options configures a Client (spec §3).
type Options struct {
	Host string
	Port int

	Username string
	Password string
	DB       int

	// LazyConnect, when true, defers connection until the first
	// command. When false, construction schedules a connect on the
	// next iteration of the event queue (see NewClient).
	LazyConnect bool

	// KeyPrefix is prepended to every key argument, including keys
	// inside defineCommand-registered scripts.
	KeyPrefix string

	// EnableEventBasedPubSub selects the pub/sub backend: false (the
	// default) uses the native-callback ("direct") backend; true uses
	// the binary-safe RESP backend (spec §4.G).
	EnableEventBasedPubSub bool

	MaxRetriesPerRequest int
	ConnectTimeout       time.Duration
	CommandTimeout       time.Duration
	// EnableOfflineQueue defaults to true. It is stored only: no code
	// path reads it, so setting it to false does not change how
	// commands issued before ready are handled.
	EnableOfflineQueue *bool
	EnableReadyCheck   bool

	ReadFrom string
	ClientAZ string

	TLS bool

	// IsCluster selects the cluster specialization (component I). Set
	// by NewClusterClient; not normally set directly.
	IsCluster bool
}

func (o Options) clone() Options {
	return o
}

func (o *Options) applyDefaults() {
	if o.Host == "" {
		o.Host = "127.0.0.1"
	}
	if o.Port == 0 {
		o.Port = 6379
	}
	if o.MaxRetriesPerRequest == 0 {
		o.MaxRetriesPerRequest = 20
	}
	if o.ConnectTimeout == 0 {
		o.ConnectTimeout = 10 * time.Second
	}
	if o.CommandTimeout == 0 {
		o.CommandTimeout = 5 * time.Second
	}
	if o.EnableOfflineQueue == nil {
		t := true
		o.EnableOfflineQueue = &t
	}
}

func (o Options) offlineQueueEnabled() bool {
	return o.EnableOfflineQueue == nil || *o.EnableOfflineQueue
}

// Addr returns the "host:port" address this Options targets.
func (o Options) Addr() string {
	return fmt.Sprintf("%s:%d", o.Host, o.Port)
}

// ParseURL recognizes redis://[user:pass@]host[:port][/db] and
// rediss://... (TLS) and returns the equivalent Options.
func ParseURL(rawurl string) (Options, error) {
	u, err := url.Parse(rawurl)
	if err != nil {
		return Options{}, fmt.Errorf("redis: invalid URL %q: %w", rawurl, err)
	}
	var opts Options
	switch u.Scheme {
	case "redis":
		opts.TLS = false
	case "rediss":
		opts.TLS = true
	default:
		return Options{}, fmt.Errorf("redis: invalid URL scheme %q", u.Scheme)
	}

	host := u.Hostname()
	if host == "" {
		host = "127.0.0.1"
	}
	opts.Host = host

	if p := u.Port(); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil {
			return Options{}, fmt.Errorf("redis: invalid URL port %q: %w", p, err)
		}
		opts.Port = port
	}

	if u.User != nil {
		opts.Username = u.User.Username()
		if pw, ok := u.User.Password(); ok {
			opts.Password = pw
		}
	}

	if path := strings.TrimPrefix(u.Path, "/"); path != "" {
		db, err := strconv.Atoi(path)
		if err != nil {
			return Options{}, fmt.Errorf("redis: invalid URL db %q: %w", path, err)
		}
		opts.DB = db
	}

	return opts, nil
}
