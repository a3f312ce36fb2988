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
	"bytes"
	"encoding/binary"
	"io"
	"sync"

	"github.com/klauspost/compress/s2"

	"github.com/B1NARY-GR0UP/tscoord/ts"
	"github.com/B1NARY-GR0UP/tscoord/utils"
)

// auditEntry is one set_timestamp call that reached the apply step,
// recorded for DumpAudit. Rejected calls and calls that turn out to be
// no-ops are not recorded. This is a diagnostics export, not a durability
// mechanism: the coordinator itself never reads an entry back, and the
// ring is lost on process restart (spec's "does not persist its state"
// non-goal is about engine state, not about an opt-in operator-facing
// dump of recent transitions).
type auditEntry struct {
	commitSupplied bool
	commit         ts.Timestamp
	oldestSupplied bool
	oldest         ts.Timestamp
	stableSupplied bool
	stable         ts.Timestamp
	force          bool
}

// auditRing is a fixed-capacity circular buffer of the most recent
// auditEntry values, guarded by its own mutex independent of rw_main.
type auditRing struct {
	mu       sync.Mutex
	entries  []auditEntry
	next     int
	size     int
	capacity int
}

func newAuditRing(capacity int) *auditRing {
	return &auditRing{
		entries:  make([]auditEntry, capacity),
		capacity: capacity,
	}
}

func (r *auditRing) push(e auditEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[r.next] = e
	r.next = (r.next + 1) % r.capacity
	if r.size < r.capacity {
		r.size++
	}
}

// snapshot returns entries oldest-first.
func (r *auditRing) snapshot() []auditEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]auditEntry, r.size)
	start := (r.next - r.size + r.capacity) % r.capacity
	for i := 0; i < r.size; i++ {
		out[i] = r.entries[(start+i)%r.capacity]
	}
	return out
}

// auditRecord appends the outcome of a SetGlobalTimestamp call to the
// audit ring, if one is configured (spec §7: "none are swallowed" governs
// errors, not this opt-in side channel, so a disabled ring simply drops
// the record).
func (c *Coordinator) auditRecord(commit, oldest, stable tsUpdate, force bool) {
	if c.audit == nil {
		return
	}
	c.audit.push(auditEntry{
		commitSupplied: commit.supplied,
		commit:         commit.value,
		oldestSupplied: oldest.supplied,
		oldest:         oldest.value,
		stableSupplied: stable.supplied,
		stable:         stable.value,
		force:          force,
	})
}

// DumpAudit streams the audit ring's current contents, oldest first,
// through an s2 compressor into w. Each entry is encoded as a fixed-width
// binary record using the teacher's ErrorWriter pattern, so a single
// binary.Write failure short-circuits the whole dump instead of needing a
// check after every field.
func (c *Coordinator) DumpAudit(w io.Writer) error {
	if c.audit == nil {
		return notFoundf("audit history is disabled (AuditHistory=0)")
	}

	sw := s2.NewWriter(w)
	defer sw.Close()

	entries := c.audit.snapshot()

	buf := &bytes.Buffer{}
	ew := utils.NewErrorWriter(buf)
	ew.Write(binary.BigEndian, uint32(len(entries)))
	for _, e := range entries {
		writeAuditEntry(ew, e)
	}
	if err := ew.Error(); err != nil {
		return invalidf("encode audit entries: %v", err)
	}

	if _, err := sw.Write(buf.Bytes()); err != nil {
		return invalidf("compress audit dump: %v", err)
	}
	return sw.Close()
}

// writeAuditEntry persists both machine words of every timestamp field.
// Width16 coordinators carry real data in the high word, so Uint64 alone
// would silently truncate it; this writes hi then lo for each field
// regardless of the coordinator's configured width.
func writeAuditEntry(ew *utils.ErrorWriter, e auditEntry) {
	ew.Write(binary.BigEndian, e.commitSupplied)
	writeTimestampWords(ew, e.commit)
	ew.Write(binary.BigEndian, e.oldestSupplied)
	writeTimestampWords(ew, e.oldest)
	ew.Write(binary.BigEndian, e.stableSupplied)
	writeTimestampWords(ew, e.stable)
	ew.Write(binary.BigEndian, e.force)
}

func writeTimestampWords(ew *utils.ErrorWriter, t ts.Timestamp) {
	hi, lo := t.Words()
	ew.Write(binary.BigEndian, hi)
	ew.Write(binary.BigEndian, lo)
}
