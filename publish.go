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
	"github.com/B1NARY-GR0UP/tscoord/cfgstring"
	"github.com/B1NARY-GR0UP/tscoord/ts"
)

// insertCommit publishes txn's current commit timestamp into the commit
// queue, freezing it as FirstCommitTimestamp. A transaction already public
// in the commit queue is a no-op: raising CommitTimestamp again does not
// move its queue position (spec §4.4, §9 "first_commit_timestamp snapshot").
func (c *Coordinator) insertCommit(txn *Txn) {
	txn.mu.Lock()
	if txn.publicTsCommit {
		txn.mu.Unlock()
		return
	}
	txn.firstCommitTimestamp = txn.commitTimestamp
	txn.hasTsCommit = true
	txn.publicTsCommit = true
	key := txn.firstCommitTimestamp
	txn.mu.Unlock()

	elem, head := c.commitQ.insert(txn)

	txn.mu.Lock()
	txn.commitElem = elem
	txn.mu.Unlock()

	c.stats.IncCommitQueueInsert(head)
	c.commitMark.Begin(key.Uint64())
	c.logger.Debugf("commit queue insert [first_commit_timestamp: %s] [head: %v]", ts.ToHex(key), head)
}

// clearCommit unlinks txn from the commit queue. No-op if not currently
// public.
func (c *Coordinator) clearCommit(txn *Txn) {
	txn.mu.Lock()
	if !txn.publicTsCommit {
		txn.mu.Unlock()
		return
	}
	elem := txn.commitElem
	key := txn.firstCommitTimestamp
	txn.commitElem = nil
	txn.publicTsCommit = false
	txn.mu.Unlock()

	c.commitQ.remove(elem)
	c.commitMark.Done(key.Uint64())
}

// insertRead publishes txn's read timestamp into the read queue. No-op if
// already public.
func (c *Coordinator) insertRead(txn *Txn) {
	txn.mu.Lock()
	if txn.publicTsRead {
		txn.mu.Unlock()
		return
	}
	txn.hasTsRead = true
	txn.publicTsRead = true
	key := txn.readTimestamp
	txn.mu.Unlock()

	elem, head := c.readQ.insert(txn)

	txn.mu.Lock()
	txn.readElem = elem
	txn.mu.Unlock()

	c.stats.IncReadQueueInsert(head)
	c.logger.Debugf("read queue insert [read_timestamp: %s] [head: %v]", ts.ToHex(key), head)
}

// clearRead unlinks txn from the read queue. No-op if not currently public.
// In debug_invariants builds it asserts the reader's timestamp had not
// fallen behind pinned_ts — a violation means pinned advanced past a live
// reader (spec §4.4).
func (c *Coordinator) clearRead(txn *Txn) error {
	txn.mu.Lock()
	if !txn.publicTsRead {
		txn.mu.Unlock()
		return nil
	}
	elem := txn.readElem
	rt := txn.readTimestamp
	txn.readElem = nil
	txn.publicTsRead = false
	txn.mu.Unlock()

	c.readQ.remove(elem)
	return c.checkReaderNotBeforePinned(rt)
}

// SetTransactionTimestamp implements spec §4.8 and the timestamp_transaction
// configuration string (spec §6): it publishes a running transaction's
// commit timestamp, validated against oldest, stable, and the
// transaction's own first commit timestamp. A transaction may raise its
// commit timestamp repeatedly while running; only the first publish fixes
// FirstCommitTimestamp.
func (c *Coordinator) SetTransactionTimestamp(txn *Txn, cfg string) error {
	if err := c.checkEnabled(); err != nil {
		return err
	}

	opts, err := cfgstring.Parse(cfg)
	if err != nil {
		return invalidf("%v", err)
	}
	raw, ok := opts["commit_timestamp"]
	if !ok || raw == "" {
		return nil
	}

	txn.mu.Lock()
	state := txn.state
	txn.mu.Unlock()
	if state != TxnRunning {
		return ErrTransactionNotRunning
	}

	value, err := ts.ParseHex(c.config.Width, "commit", raw)
	if err != nil {
		return invalidf("%v", err)
	}
	if err := c.validate("commit", value, validateOpts{cmpOldest: true, cmpStable: true, cmpCommit: true}, txn); err != nil {
		return err
	}

	txn.mu.Lock()
	txn.commitTimestamp = value
	txn.mu.Unlock()

	c.insertCommit(txn)
	return nil
}

// BeginTransaction implements the transaction-begin configuration string
// (spec §6): {read_timestamp: hex}, which publishes the read timestamp
// into the read queue. A transaction whose read timestamp is already
// published keeps it unchanged.
func (c *Coordinator) BeginTransaction(txn *Txn, cfg string) error {
	if err := c.checkEnabled(); err != nil {
		return err
	}

	opts, err := cfgstring.Parse(cfg)
	if err != nil {
		return invalidf("%v", err)
	}
	raw, ok := opts["read_timestamp"]
	if !ok || raw == "" {
		return nil
	}

	value, err := ts.ParseHex(c.config.Width, "read", raw)
	if err != nil {
		return invalidf("%v", err)
	}
	if err := c.validate("read", value, validateOpts{cmpOldest: true, cmpStable: false, cmpCommit: false}, txn); err != nil {
		return err
	}

	txn.mu.Lock()
	if txn.publicTsRead {
		txn.mu.Unlock()
		return nil
	}
	txn.readTimestamp = value
	txn.mu.Unlock()

	c.insertRead(txn)
	return nil
}

// Commit moves txn to TxnCommitted and clears any published timestamps.
func (c *Coordinator) Commit(txn *Txn) error {
	txn.mu.Lock()
	txn.state = TxnCommitted
	txn.mu.Unlock()
	c.clearCommit(txn)
	return c.clearRead(txn)
}

// Abort moves txn to TxnAborted and clears any published timestamps.
func (c *Coordinator) Abort(txn *Txn) error {
	txn.mu.Lock()
	txn.state = TxnAborted
	txn.mu.Unlock()
	c.clearCommit(txn)
	return c.clearRead(txn)
}
