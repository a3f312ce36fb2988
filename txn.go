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
	"container/list"
	"sync"

	"github.com/B1NARY-GR0UP/tscoord/ts"
)

// TxnState is the lifecycle state of a transaction as far as the
// coordinator is concerned. It follows the iota-enum pattern the teacher
// uses for its own DB.State.
type TxnState uint32

const (
	// TxnRunning is the only state from which a commit timestamp may be
	// set (spec §4.8).
	TxnRunning TxnState = iota + 1
	TxnCommitted
	TxnAborted
)

// Txn is the coordinator's view of a live transaction: the fields spec §3
// calls out, plus the non-owning queue links the coordinator uses to
// unlink it in O(1) on clear/commit/abort. The transaction itself, and
// everything else reachable from it, is owned by the caller's session; the
// coordinator only ever holds these four fields and two list elements.
type Txn struct {
	mu sync.Mutex

	state TxnState

	commitTimestamp      ts.Timestamp
	firstCommitTimestamp ts.Timestamp
	readTimestamp        ts.Timestamp

	hasTsCommit    bool
	hasTsRead      bool
	publicTsCommit bool
	publicTsRead   bool

	commitElem *list.Element
	readElem   *list.Element
}

// NewTxn returns a transaction in TxnRunning state, ready to be handed to a
// Coordinator.
func NewTxn() *Txn {
	return &Txn{state: TxnRunning}
}

// State reports the transaction's current lifecycle state.
func (t *Txn) State() TxnState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// FirstCommitTimestamp returns the commit timestamp this transaction had at
// the moment it was first published to the commit queue. It is frozen
// thereafter even if CommitTimestamp is raised again.
func (t *Txn) FirstCommitTimestamp() ts.Timestamp {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.firstCommitTimestamp
}

// ReadTimestamp returns the transaction's published read timestamp.
func (t *Txn) ReadTimestamp() ts.Timestamp {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.readTimestamp
}

// rawCommitKey and rawReadKey read the frozen queue keys without locking.
// Callers must have already synchronized with the owning orderedQueue,
// either by holding its lock directly (insert's tail walk) or by having
// just received the *Txn from one of its accessors (front, sortedKeys):
// per spec §3 a queued transaction's key is never mutated in place once
// set, so the happens-before edge from that synchronization is all a
// caller ever needs.
func (t *Txn) rawCommitKey() ts.Timestamp { return t.firstCommitTimestamp }
func (t *Txn) rawReadKey() ts.Timestamp   { return t.readTimestamp }
