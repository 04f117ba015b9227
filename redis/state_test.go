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
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStateMachineExternalStatusMapping(t *testing.T) {
	assert.Equal(t, "disconnected", stateDisconnected.externalStatus())
	assert.Equal(t, "connecting", stateConnecting.externalStatus())
	assert.Equal(t, "ready", stateConnected.externalStatus())
	assert.Equal(t, "close", stateDisconnecting.externalStatus())
	assert.Equal(t, "end", stateEnd.externalStatus())
}

func TestStateMachineOverrideClearedByNextTransition(t *testing.T) {
	sm := newStateMachine()
	sm.set(stateConnected)
	assert.Equal(t, "ready", sm.status())

	sm.setStatus("end")
	assert.Equal(t, "end", sm.status())

	sm.set(stateDisconnecting)
	assert.Equal(t, "close", sm.status())
}

func TestStateMachineWaitUntilUnblocksOnTransition(t *testing.T) {
	sm := newStateMachine()
	stop := make(chan struct{})
	done := make(chan struct{})

	go func() {
		sm.waitUntil(func(s connState) bool { return s == stateConnected }, stop)
		close(done)
	}()

	time.Sleep(5 * time.Millisecond)
	sm.set(stateConnected)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("waitUntil did not unblock after matching transition")
	}
}

func TestStateMachineClosingFlag(t *testing.T) {
	sm := newStateMachine()
	assert.False(t, sm.closing())
	sm.setClosing(true)
	assert.True(t, sm.closing())
}
