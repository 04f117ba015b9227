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
)

func TestReverseZMembers(t *testing.T) {
	members := []ZMember{{Member: "a", Score: 1}, {Member: "b", Score: 2}, {Member: "c", Score: 3}}
	reverseZMembers(members)
	assert.Equal(t, []ZMember{{Member: "c", Score: 3}, {Member: "b", Score: 2}, {Member: "a", Score: 1}}, members)
}

func TestReverseZMembersEvenLength(t *testing.T) {
	members := []ZMember{{Member: "a"}, {Member: "b"}}
	reverseZMembers(members)
	assert.Equal(t, []ZMember{{Member: "b"}, {Member: "a"}}, members)
}

func TestDecodeZMembersWithScores(t *testing.T) {
	members, err := decodeZMembers([]interface{}{"a", "1", "b", "2"}, true)
	assert.NoError(t, err)
	assert.Equal(t, []ZMember{{Member: "a", Score: 1}, {Member: "b", Score: 2}}, members)
}
