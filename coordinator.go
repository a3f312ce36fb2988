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

// Package tscoord is the global timestamp coordinator of a transactional
// storage engine: it parses and validates client-supplied timestamps,
// maintains the commit/oldest/stable/pinned global timestamps, and tracks
// per-transaction commit and read timestamps in sorted queues so the
// engine can cheaply answer "what must be retained for readers" and
// "what is the earliest unresolved commit".
//
// The package does not mint timestamps, clock-synchronize, persist state,
// or perform version visibility checks; it only publishes the bounds such
// checks use.
package tscoord

import (
	"context"
	"sync"

	"github.com/B1NARY-GR0UP/tscoord/pkg/logger"
	"github.com/B1NARY-GR0UP/tscoord/pkg/telemetry"
	"github.com/B1NARY-GR0UP/tscoord/pkg/watermark"
)

// Coordinator is the engine handle threaded through every operation
// (spec §9: "avoid true singletons"). The zero value is not usable; build
// one with New.
type Coordinator struct {
	config Config

	reg     *registry
	commitQ *orderedQueue
	readQ   *orderedQueue

	ckptMu        sync.RWMutex
	checkpointTxn *Txn

	commitMark *watermark.WaterMark
	stats      *telemetry.Counters
	logger     logger.Logger

	audit *auditRing
}

// New validates cfg (filling defaults per Config.validate) and returns a
// ready Coordinator.
func New(cfg Config) (*Coordinator, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	c := &Coordinator{
		config:     cfg,
		reg:        newRegistry(),
		commitMark: watermark.New(),
		stats:      telemetry.New(),
		logger:     logger.GetLogger(),
	}
	c.commitQ = newOrderedQueue((*Txn).rawCommitKey)
	c.readQ = newOrderedQueue((*Txn).rawReadKey)
	if cfg.AuditHistory > 0 {
		c.audit = newAuditRing(cfg.AuditHistory)
	}
	return c, nil
}

// Close releases the background resources New started (the commit
// watermark's draining goroutine). A closed Coordinator must not be used
// again.
func (c *Coordinator) Close() {
	c.commitMark.Stop()
}

// SetCheckpointTxn registers txn as the active checkpoint's transaction;
// queryPinned consults its read timestamp per spec §4.5. Pass nil to clear
// it once the checkpoint completes.
func (c *Coordinator) SetCheckpointTxn(txn *Txn) {
	c.ckptMu.Lock()
	c.checkpointTxn = txn
	c.ckptMu.Unlock()
}

// ClearCheckpointTxn is equivalent to SetCheckpointTxn(nil), spelled out
// for callers who want a verb matching the begin/clear naming used
// elsewhere in this package.
func (c *Coordinator) ClearCheckpointTxn() {
	c.SetCheckpointTxn(nil)
}

func (c *Coordinator) checkpointTxnRef() *Txn {
	c.ckptMu.RLock()
	defer c.ckptMu.RUnlock()
	return c.checkpointTxn
}

// checkEnabled implements the NOTSUP runtime feature flag (spec §6):
// the timestamp entry points (SetGlobalTimestamp, QueryTimestamp,
// SetTransactionTimestamp, BeginTransaction, RollbackCommitTimestamp) call
// this first so the subsystem can be disabled without conditional
// compilation. Commit, Abort, and the diagnostics accessors do not.
func (c *Coordinator) checkEnabled() error {
	if !c.config.Enabled {
		return errNotSupported
	}
	return nil
}

// Stats returns a point-in-time snapshot of the coordinator's counters.
func (c *Coordinator) Stats() telemetry.Snapshot {
	return c.stats.Snapshot()
}

// WaitForCommitted blocks until every transaction published to the commit
// queue with a key at or below ts has cleared (committed or aborted),
// mirroring the consumer-visible wait the teacher's oracle performs around
// its own commit watermark. Timestamp width 16 values are tracked by their
// low 64 bits only; this is an enrichment on top of the coordinator's core
// contract; non-goal for callers only using 8-byte timestamps.
func (c *Coordinator) WaitForCommitted(ctx context.Context, tsValue uint64) error {
	return c.commitMark.WaitForMark(ctx, tsValue)
}
