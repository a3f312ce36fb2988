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

// orderedQueue is a doubly-linked list of live transactions sorted
// ascending by a key extracted from each one, guarded by its own RWMutex.
// It backs both the commit-timestamp queue and the read-timestamp queue
// (spec §3/§4.4); which one a given instance is depends only on keyOf.
//
// Insertion walks from the tail, mirroring __wt_txn_set_commit_timestamp /
// __wt_txn_set_read_timestamp in the original source: newly published
// timestamps are typically the largest seen, so the common case is an O(1)
// append at the tail. Worst case is linear in the number of concurrently
// active transactions.
type orderedQueue struct {
	mu    sync.RWMutex
	l     *list.List
	keyOf func(*Txn) ts.Timestamp
}

func newOrderedQueue(keyOf func(*Txn) ts.Timestamp) *orderedQueue {
	return &orderedQueue{l: list.New(), keyOf: keyOf}
}

// insert places txn in sorted order and reports whether it landed at the
// head (the queue was empty or txn's key was the smallest).
func (q *orderedQueue) insert(txn *Txn) (elem *list.Element, head bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	key := q.keyOf(txn)
	var mark *list.Element
	for e := q.l.Back(); e != nil; e = e.Prev() {
		if ts.Compare(q.keyOf(e.Value.(*Txn)), key) <= 0 {
			mark = e
			break
		}
	}
	if mark == nil {
		elem = q.l.PushFront(txn)
		head = true
	} else {
		elem = q.l.InsertAfter(txn, mark)
		head = elem == q.l.Front()
	}
	return elem, head
}

// remove unlinks elem. It is a no-op for a nil element, mirroring the
// "no-op if not currently public" clear semantics at the call site.
func (q *orderedQueue) remove(elem *list.Element) {
	if elem == nil {
		return
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.l.Remove(elem)
}

// front returns the transaction with the smallest key, if any.
func (q *orderedQueue) front() (*Txn, bool) {
	q.mu.RLock()
	defer q.mu.RUnlock()
	e := q.l.Front()
	if e == nil {
		return nil, false
	}
	return e.Value.(*Txn), true
}

// len returns the number of entries currently queued.
func (q *orderedQueue) len() int {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.l.Len()
}

// sortedKeys is a test helper exposing the observable ordering invariant
// (spec §8, property 2): the queue is sorted ascending by key at every
// observable moment.
func (q *orderedQueue) sortedKeys() []ts.Timestamp {
	q.mu.RLock()
	defer q.mu.RUnlock()
	keys := make([]ts.Timestamp, 0, q.l.Len())
	for e := q.l.Front(); e != nil; e = e.Next() {
		keys = append(keys, q.keyOf(e.Value.(*Txn)))
	}
	return keys
}
