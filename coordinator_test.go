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
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/B1NARY-GR0UP/tscoord/ts"
)

func TestNewFillsDefaults(t *testing.T) {
	c, err := New(Config{})
	require.NoError(t, err)
	defer c.Close()

	assert.Equal(t, ts.Width8, c.config.Width)
	assert.Equal(t, 0, c.config.AuditHistory)
}

func TestDisabledCoordinatorReturnsNotSupported(t *testing.T) {
	c, err := New(Config{Enabled: false})
	require.NoError(t, err)
	defer c.Close()

	_, err = c.QueryTimestamp("get=oldest")
	require.Error(t, err)
	var cerr *Error
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, NotSupported, cerr.Kind)

	err = c.SetGlobalTimestamp("oldest_timestamp=5")
	require.Error(t, err)
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, NotSupported, cerr.Kind)
}

func TestCheckpointTxnRoundTrip(t *testing.T) {
	c := newTestCoordinator(t)
	assert.Nil(t, c.checkpointTxnRef())

	txn := NewTxn()
	c.SetCheckpointTxn(txn)
	assert.Same(t, txn, c.checkpointTxnRef())

	c.ClearCheckpointTxn()
	assert.Nil(t, c.checkpointTxnRef())
}

func TestStatsTracksQueueInserts(t *testing.T) {
	c := newTestCoordinator(t)

	first := NewTxn()
	first.commitTimestamp = ts.FromUint64(ts.Width8, 5)
	c.insertCommit(first)

	second := NewTxn()
	second.commitTimestamp = ts.FromUint64(ts.Width8, 10)
	c.insertCommit(second)

	snap := c.Stats()
	assert.Equal(t, uint64(2), snap.CommitQueueInserts)
	assert.Equal(t, uint64(1), snap.CommitQueueHeadInserts)
}

func TestWaitForCommittedUnblocksAfterClear(t *testing.T) {
	c := newTestCoordinator(t)

	txn := NewTxn()
	txn.commitTimestamp = ts.FromUint64(ts.Width8, 5)
	c.insertCommit(txn)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- c.WaitForCommitted(ctx, 5) }()

	select {
	case err := <-done:
		t.Fatalf("WaitForCommitted returned early with %v before the transaction cleared", err)
	case <-time.After(10 * time.Millisecond):
	}

	c.clearCommit(txn)
	require.NoError(t, <-done)
}

func TestCommitAndAbortClearBothQueues(t *testing.T) {
	c := newTestCoordinator(t)

	txn := NewTxn()
	txn.commitTimestamp = ts.FromUint64(ts.Width8, 5)
	txn.readTimestamp = ts.FromUint64(ts.Width8, 3)
	c.insertCommit(txn)
	c.insertRead(txn)

	require.NoError(t, c.Commit(txn))
	assert.Equal(t, TxnCommitted, txn.State())
	assert.Equal(t, 0, c.commitQ.len())
	assert.Equal(t, 0, c.readQ.len())

	txn2 := NewTxn()
	txn2.readTimestamp = ts.FromUint64(ts.Width8, 4)
	c.insertRead(txn2)
	require.NoError(t, c.Abort(txn2))
	assert.Equal(t, TxnAborted, txn2.State())
	assert.Equal(t, 0, c.readQ.len())
}
