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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/B1NARY-GR0UP/tscoord/ts"
)

func newTestCoordinator(t *testing.T) *Coordinator {
	t.Helper()
	c, err := New(Config{Width: ts.Width8, Enabled: true})
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return c
}

func TestQueryOldestNotFound(t *testing.T) {
	c := newTestCoordinator(t)
	_, err := c.QueryTimestamp("get=oldest")
	require.Error(t, err)
	var cerr *Error
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, NotFound, cerr.Kind)
}

func TestQueryOldestFound(t *testing.T) {
	c := newTestCoordinator(t)
	require.NoError(t, c.SetGlobalTimestamp("oldest_timestamp=5"))

	v, err := c.QueryTimestamp("get=oldest")
	require.NoError(t, err)
	assert.Equal(t, uint64(5), v.Uint64())
}

func TestQueryUnknownSelector(t *testing.T) {
	c := newTestCoordinator(t)
	_, err := c.QueryTimestamp("get=nonsense")
	require.Error(t, err)
	var cerr *Error
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, Invalid, cerr.Kind)
}

func TestQueryAllCommittedUsesQueueFront(t *testing.T) {
	c := newTestCoordinator(t)
	require.NoError(t, c.SetGlobalTimestamp("commit_timestamp=20"))

	txn := NewTxn()
	txn.state = TxnRunning
	txn.commitTimestamp = ts.FromUint64(ts.Width8, 7)
	c.insertCommit(txn)

	v, err := c.QueryTimestamp("get=all_committed")
	require.NoError(t, err)
	assert.Equal(t, uint64(7), v.Uint64())
}

func TestQueryPinnedDefaultsToOldestWithNoReaders(t *testing.T) {
	c := newTestCoordinator(t)
	require.NoError(t, c.SetGlobalTimestamp("oldest_timestamp=5,stable_timestamp=10,commit_timestamp=15"))

	v, err := c.QueryTimestamp("")
	require.NoError(t, err)
	assert.Equal(t, uint64(5), v.Uint64())
}

func TestQueryPinnedAdoptsReadQueueFront(t *testing.T) {
	c := newTestCoordinator(t)
	require.NoError(t, c.SetGlobalTimestamp("oldest_timestamp=5"))

	txn := NewTxn()
	txn.readTimestamp = ts.FromUint64(ts.Width8, 3)
	c.insertRead(txn)

	v, err := c.QueryTimestamp("get=pinned")
	require.NoError(t, err)
	assert.Equal(t, uint64(3), v.Uint64())
}

func TestQueryPinnedAdoptsCheckpointReadTimestamp(t *testing.T) {
	c := newTestCoordinator(t)
	require.NoError(t, c.SetGlobalTimestamp("oldest_timestamp=5"))

	ckpt := NewTxn()
	ckpt.readTimestamp = ts.FromUint64(ts.Width8, 2)
	c.SetCheckpointTxn(ckpt)

	v, err := c.QueryTimestamp("get=pinned")
	require.NoError(t, err)
	assert.Equal(t, uint64(2), v.Uint64())
}
