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

// Package telemetry provides the statistics counters spec §1 names as an
// out-of-scope external collaborator consumed through an interface. This is
// a concrete implementation of that interface: plain atomics with a
// zero-value-safe Snapshot, the shape used throughout this retrieval pack
// for lightweight in-process metrics.
package telemetry

import "sync/atomic"

// Counters tracks the coordinator events the original implementation
// reports as WT_STAT_CONN_INCR calls: all queue inserts and, among them,
// head-inserts (the new key is the smallest queued), set-global calls, and
// the two pinned-recompute paths.
type Counters struct {
	commitQueueHeadInserts atomic.Uint64
	commitQueueInserts     atomic.Uint64
	readQueueHeadInserts   atomic.Uint64
	readQueueInserts       atomic.Uint64
	setGlobalCalls         atomic.Uint64
	pinnedFastPath         atomic.Uint64
	pinnedSlowPath         atomic.Uint64
}

// New returns a zero-valued Counters ready to use.
func New() *Counters {
	return &Counters{}
}

func (c *Counters) IncCommitQueueInsert(head bool) {
	c.commitQueueInserts.Add(1)
	if head {
		c.commitQueueHeadInserts.Add(1)
	}
}

func (c *Counters) IncReadQueueInsert(head bool) {
	c.readQueueInserts.Add(1)
	if head {
		c.readQueueHeadInserts.Add(1)
	}
}

func (c *Counters) IncSetGlobalCall() {
	c.setGlobalCalls.Add(1)
}

func (c *Counters) IncPinnedFastPath() {
	c.pinnedFastPath.Add(1)
}

func (c *Counters) IncPinnedSlowPath() {
	c.pinnedSlowPath.Add(1)
}

// Snapshot is a point-in-time, allocation-free copy of every counter.
type Snapshot struct {
	CommitQueueHeadInserts uint64
	CommitQueueInserts     uint64
	ReadQueueHeadInserts   uint64
	ReadQueueInserts       uint64
	SetGlobalCalls         uint64
	PinnedFastPath         uint64
	PinnedSlowPath         uint64
}

func (c *Counters) Snapshot() Snapshot {
	return Snapshot{
		CommitQueueHeadInserts: c.commitQueueHeadInserts.Load(),
		CommitQueueInserts:     c.commitQueueInserts.Load(),
		ReadQueueHeadInserts:   c.readQueueHeadInserts.Load(),
		ReadQueueInserts:       c.readQueueInserts.Load(),
		SetGlobalCalls:         c.setGlobalCalls.Load(),
		PinnedFastPath:         c.pinnedFastPath.Load(),
		PinnedSlowPath:         c.pinnedSlowPath.Load(),
	}
}

// Reset zeroes every counter.
func (c *Counters) Reset() {
	c.commitQueueHeadInserts.Store(0)
	c.commitQueueInserts.Store(0)
	c.readQueueHeadInserts.Store(0)
	c.readQueueInserts.Store(0)
	c.setGlobalCalls.Store(0)
	c.pinnedFastPath.Store(0)
	c.pinnedSlowPath.Store(0)
}
