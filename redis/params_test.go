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
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHashSetArgsMapForm(t *testing.T) {
	fields, values, err := parseHashSetArgs([]interface{}{map[string]string{"a": "1"}})
	require.NoError(t, err)
	require.Len(t, fields, 1)
	assert.Equal(t, "a", fields[0])
	assert.Equal(t, "1", values[0])
}

func TestParseHashSetArgsVariadicForm(t *testing.T) {
	fields, values, err := parseHashSetArgs([]interface{}{"a", "1", "b", "2"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, fields)
	assert.Equal(t, []interface{}{"1", "2"}, values)
}

func TestParseHashSetArgsOddLengthRejected(t *testing.T) {
	_, _, err := parseHashSetArgs([]interface{}{"a", "1", "b"})
	assert.ErrorIs(t, err, ErrWrongNumberOfArguments)
}

func TestParseScoreBoundary(t *testing.T) {
	b, err := parseScoreBoundary("5")
	require.NoError(t, err)
	assert.Equal(t, scoreBoundary{Value: 5, Inclusive: true}, b)

	b, err = parseScoreBoundary("(5")
	require.NoError(t, err)
	assert.Equal(t, scoreBoundary{Value: 5, Inclusive: false}, b)

	b, err = parseScoreBoundary("+inf")
	require.NoError(t, err)
	assert.True(t, math.IsInf(b.Value, 1))

	b, err = parseScoreBoundary("-inf")
	require.NoError(t, err)
	assert.True(t, math.IsInf(b.Value, -1))
}

func TestParseLexBoundary(t *testing.T) {
	b, err := parseLexBoundary("-")
	require.NoError(t, err)
	assert.True(t, b.Unbounded && b.Min)

	b, err = parseLexBoundary("[foo")
	require.NoError(t, err)
	assert.Equal(t, "foo", b.Member)
	assert.True(t, b.Inclusive)

	b, err = parseLexBoundary("(bar")
	require.NoError(t, err)
	assert.Equal(t, "bar", b.Member)
	assert.False(t, b.Inclusive)
}

func TestFormatScoreNeverEmitsInfinity(t *testing.T) {
	assert.Equal(t, "inf", formatScore(math.Inf(1)))
	assert.Equal(t, "-inf", formatScore(math.Inf(-1)))
	assert.NotContains(t, formatScore(math.Inf(1)), "Infinity")
}
