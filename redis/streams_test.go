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

func TestReshapeFieldValuePairsFromMap(t *testing.T) {
	got := reshapeFieldValuePairs(map[string]interface{}{"length": int64(3)})
	assert.ElementsMatch(t, []interface{}{"length", int64(3)}, got)
}

func TestReshapeFieldValuePairsAlreadyFlatPassesThrough(t *testing.T) {
	flat := []interface{}{"length", int64(3)}
	got := reshapeFieldValuePairs(flat)
	assert.Equal(t, flat, got)
}

func TestDecodeStreamEntries(t *testing.T) {
	raw := []interface{}{
		[]interface{}{"1-1", []interface{}{"field", "value"}},
	}
	entries, err := decodeStreamEntries(raw)
	assert.NoError(t, err)
	assert.Equal(t, []StreamEntry{{ID: "1-1", Fields: map[string]string{"field": "value"}}}, entries)
}
