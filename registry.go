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

package tscoord

import (
	"sync"

	"github.com/B1NARY-GR0UP/tscoord/ts"
)

// registry holds the four global timestamps and their presence flags. All
// of it is guarded by a single RWMutex (rw_main in spec terms); the two
// ordered queues live next to it but are guarded independently (queue.go).
type registry struct {
	mu sync.RWMutex

	commitTs ts.Timestamp
	oldestTs ts.Timestamp
	stableTs ts.Timestamp
	pinnedTs ts.Timestamp

	hasCommit bool
	hasOldest bool
	hasStable bool
	hasPinned bool

	// oldestIsPinned is a fast-path flag: once pinned_ts == oldest_ts,
	// no reader can be older than oldest, so recomputePinned can return
	// immediately without scanning the read queue. It is cleared
	// whenever oldest moves.
	oldestIsPinned bool
	// stableIsPinned is the analogous flag for stable, cleared whenever
	// stable moves. It is part of the registry's state per spec §3, but
	// nothing in the coordinator sets it to true or reads it to skip
	// work, so it is always false.
	stableIsPinned bool
}

func newRegistry() *registry {
	return &registry{}
}

type registrySnapshot struct {
	commitTs, oldestTs, stableTs, pinnedTs     ts.Timestamp
	hasCommit, hasOldest, hasStable, hasPinned bool
	oldestIsPinned, stableIsPinned             bool
}

// snapshot takes a consistent read of every field under a single shared
// lock hold.
func (r *registry) snapshot() registrySnapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return registrySnapshot{
		commitTs:       r.commitTs,
		oldestTs:       r.oldestTs,
		stableTs:       r.stableTs,
		pinnedTs:       r.pinnedTs,
		hasCommit:      r.hasCommit,
		hasOldest:      r.hasOldest,
		hasStable:      r.hasStable,
		hasPinned:      r.hasPinned,
		oldestIsPinned: r.oldestIsPinned,
		stableIsPinned: r.stableIsPinned,
	}
}
