// Copyright 2025 BINARY Members
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountersSnapshotZeroValue(t *testing.T) {
	c := New()
	snap := c.Snapshot()
	assert.Equal(t, Snapshot{}, snap)
}

func TestCountersIncrement(t *testing.T) {
	c := New()
	c.IncCommitQueueInsert(true)
	c.IncCommitQueueInsert(false)
	c.IncReadQueueInsert(true)
	c.IncSetGlobalCall()
	c.IncPinnedFastPath()
	c.IncPinnedSlowPath()

	snap := c.Snapshot()
	assert.Equal(t, uint64(2), snap.CommitQueueInserts)
	assert.Equal(t, uint64(1), snap.CommitQueueHeadInserts)
	assert.Equal(t, uint64(1), snap.ReadQueueInserts)
	assert.Equal(t, uint64(1), snap.ReadQueueHeadInserts)
	assert.Equal(t, uint64(1), snap.SetGlobalCalls)
	assert.Equal(t, uint64(1), snap.PinnedFastPath)
	assert.Equal(t, uint64(1), snap.PinnedSlowPath)
}

func TestCountersReset(t *testing.T) {
	c := New()
	c.IncSetGlobalCall()
	c.Reset()
	assert.Equal(t, Snapshot{}, c.Snapshot())
}
