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
)

func TestNewTxnStartsRunning(t *testing.T) {
	txn := NewTxn()
	assert.Equal(t, TxnRunning, txn.State())
}

func TestTxnFirstCommitTimestampZeroUntilPublished(t *testing.T) {
	txn := NewTxn()
	assert.True(t, txn.FirstCommitTimestamp().IsZero())
}

func TestTxnReadTimestampZeroUntilPublished(t *testing.T) {
	txn := NewTxn()
	assert.True(t, txn.ReadTimestamp().IsZero())
}
