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

//go:build debug_invariants

package tscoord

import "github.com/B1NARY-GR0UP/tscoord/ts"

// checkReaderNotBeforePinned implements the clear_read invariant check
// from spec §4.4: a reader being cleared must not have fallen behind
// pinned_ts, since pinned_ts must never advance past a live reader. It is
// compiled in only under the debug_invariants build tag, matching the
// original's debug-build-only assertions.
func (c *Coordinator) checkReaderNotBeforePinned(rt ts.Timestamp) error {
	snap := c.reg.snapshot()
	if snap.hasPinned && ts.Less(rt, snap.pinnedTs) {
		return invalidf("internal error: reader at %s cleared below pinned timestamp %s", ts.ToHex(rt), ts.ToHex(snap.pinnedTs))
	}
	return nil
}
