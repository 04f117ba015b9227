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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeCursorReply(t *testing.T) {
	cursor, elements, err := decodeCursorReply([]interface{}{"12", []interface{}{"a", "1", "b", "2"}})
	require.NoError(t, err)
	assert.Equal(t, "12", cursor)
	assert.Equal(t, []string{"a", "1", "b", "2"}, elements)
}

func TestDecodeCursorReplyMalformedRejected(t *testing.T) {
	_, _, err := decodeCursorReply([]interface{}{"0"})
	assert.ErrorIs(t, err, ErrWrongNumberOfArguments)
}

func TestDecodeScanReplyStripsKeyPrefix(t *testing.T) {
	cursor, keys, err := decodeScanReply([]interface{}{"0", []interface{}{"t:a", "t:b"}}, "t:")
	require.NoError(t, err)
	assert.Equal(t, "0", cursor)
	assert.Equal(t, []string{"a", "b"}, keys)
}
