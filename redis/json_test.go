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

func TestUnwrapJSONPathResultDollarDotUnwrapsSingleton(t *testing.T) {
	got := unwrapJSONPathResult([]interface{}{"value"}, []string{"$.name"})
	assert.Equal(t, "value", got)
}

func TestUnwrapJSONPathResultDollarDotEmptyArrayBecomesNil(t *testing.T) {
	got := unwrapJSONPathResult([]interface{}{}, []string{"$.name"})
	assert.Nil(t, got)
}

func TestUnwrapJSONPathResultNonDotRootUntouched(t *testing.T) {
	decoded := []interface{}{"value"}
	got := unwrapJSONPathResult(decoded, []string{"$[0]"})
	assert.Equal(t, decoded, got)
}

func TestUnwrapJSONPathResultBareDollarUntouched(t *testing.T) {
	decoded := []interface{}{"value"}
	got := unwrapJSONPathResult(decoded, []string{"$"})
	assert.Equal(t, decoded, got)
}

func TestUnwrapJSONPathResultMultiplePathsUntouched(t *testing.T) {
	decoded := []interface{}{"value"}
	got := unwrapJSONPathResult(decoded, []string{"$.a", "$.b"})
	assert.Equal(t, decoded, got)
}
