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

// GeoMember is one (longitude, latitude, member) triple for GeoAdd.
type GeoMember struct {
	Longitude float64
	Latitude  float64
	Member    string
}

// http://redis.io/commands/geoadd
func (c *Client) GeoAdd(ctx context.Context, key string, members ...GeoMember) (int64, error) {
	args := []interface{}{normalizeKey(key, c.opts.KeyPrefix)}
	for _, m := range members {
		args = append(args, formatScore(m.Longitude), formatScore(m.Latitude), m.Member)
	}
	v, err := c.sendRaw(ctx, "GEOADD", args...)
	if err != nil {
		return 0, err
	}
	return asInt64(v)
}

// GeoSearchByRadius implements the GEOSEARCH form of what was
// historically GEORADIUS (spec §4.D: "GEORADIUS -> GEOSEARCH mapping":
// GEORADIUS is deprecated server-side, so the adapter always issues
// GEOSEARCH and accepts the simpler radius-from-member/point inputs).
func (c *Client) GeoSearchByRadius(ctx context.Context, key string, fromMember string, longitude, latitude float64, radius float64, unit string, withCoord, withDist bool) ([]string, error) {
	args := []interface{}{normalizeKey(key, c.opts.KeyPrefix)}
	if fromMember != "" {
		args = append(args, "FROMMEMBER", fromMember)
	} else {
		args = append(args, "FROMLONLAT", formatScore(longitude), formatScore(latitude))
	}
	args = append(args, "BYRADIUS", formatScore(radius), unit)
	if withCoord {
		args = append(args, "WITHCOORD")
	}
	if withDist {
		args = append(args, "WITHDIST")
	}
	v, err := c.sendRaw(ctx, "GEOSEARCH", args...)
	if err != nil {
		return nil, err
	}
	items, _ := asSlice(v)
	out := make([]string, 0, len(items))
	for _, it := range items {
		if s, ok := asString(it); ok {
			out = append(out, s)
			continue
		}
		if pair, ok := asSlice(it); ok && len(pair) > 0 {
			s, _ := asString(pair[0])
			out = append(out, s)
		}
	}
	return out, nil
}

// http://redis.io/commands/geopos
func (c *Client) GeoPos(ctx context.Context, key string, members ...string) ([][2]float64, error) {
	argv := make([]interface{}, 0, len(members)+1)
	argv = append(argv, normalizeKey(key, c.opts.KeyPrefix))
	for _, m := range members {
		argv = append(argv, m)
	}
	v, err := c.sendRaw(ctx, "GEOPOS", argv...)
	if err != nil {
		return nil, err
	}
	items, _ := asSlice(v)
	out := make([][2]float64, len(items))
	for i, it := range items {
		pair, ok := asSlice(it)
		if !ok || len(pair) != 2 {
			continue
		}
		lon, _ := asString(pair[0])
		lat, _ := asString(pair[1])
		lonB, _ := parseScoreBoundary(lon)
		latB, _ := parseScoreBoundary(lat)
		out[i] = [2]float64{lonB.Value, latB.Value}
	}
	return out, nil
}

// http://redis.io/commands/geodist
func (c *Client) GeoDist(ctx context.Context, key, member1, member2, unit string) (string, bool, error) {
	args := []interface{}{normalizeKey(key, c.opts.KeyPrefix), member1, member2}
	if unit != "" {
		args = append(args, unit)
	}
	v, err := c.sendRaw(ctx, "GEODIST", args...)
	if err != nil {
		return "", false, err
	}
	return asString(v)
}
