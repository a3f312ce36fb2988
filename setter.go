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

// tsUpdate is one of the three settable global fields, tracked through the
// ten-step algorithm below: whether it was supplied by the caller, its
// parsed value, and its effective value once absent fields are substituted
// from the registry.
type tsUpdate struct {
	supplied  bool
	value     ts.Timestamp
	effective ts.Timestamp
}

// SetGlobalTimestamp implements spec §4.6: the set_timestamp configuration
// string, {commit_timestamp, oldest_timestamp, stable_timestamp, force}.
// Step numbers in comments refer to the ten-step algorithm.
func (c *Coordinator) SetGlobalTimestamp(cfg string) error {
	if err := c.checkEnabled(); err != nil {
		return err
	}
	c.stats.IncSetGlobalCall()

	opts, err := cfgstring.Parse(cfg)
	if err != nil {
		return invalidf("%v", err)
	}

	// Step 1: parse each supplied timestamp.
	commit, err := c.parseOptional(opts, "commit_timestamp")
	if err != nil {
		return err
	}
	oldest, err := c.parseOptional(opts, "oldest_timestamp")
	if err != nil {
		return err
	}
	stable, err := c.parseOptional(opts, "stable_timestamp")
	if err != nil {
		return err
	}
	force, err := cfgstring.Bool(opts, "force", false)
	if err != nil {
		return invalidf("%v", err)
	}

	// Step 2: nothing supplied is a no-op.
	if !commit.supplied && !oldest.supplied && !stable.supplied {
		c.logger.Debugf("set_timestamp: no fields supplied, ignoring")
		return nil
	}

	if !force {
		// Step 4: snapshot effective values, substituting the registry's
		// current value for anything not supplied, under shared rw_main.
		snap := c.reg.snapshot()
		oldest.effective = oldest.value
		if !oldest.supplied && snap.hasOldest {
			oldest.effective = snap.oldestTs
		}
		stable.effective = stable.value
		if !stable.supplied && snap.hasStable {
			stable.effective = snap.stableTs
		}

		oldestKnown := oldest.supplied || snap.hasOldest
		stableKnown := stable.supplied || snap.hasStable

		// Step 5.
		if commit.supplied && oldestKnown && ts.Less(commit.value, oldest.effective) {
			return invalidf("oldest timestamp %s must not be later than the commit timestamp %s", ts.ToHex(oldest.effective), ts.ToHex(commit.value))
		}
		// Step 6.
		if commit.supplied && stableKnown && ts.Less(commit.value, stable.effective) {
			return invalidf("stable timestamp %s must not be later than the commit timestamp %s", ts.ToHex(stable.effective), ts.ToHex(commit.value))
		}
		// Step 7.
		if (oldest.supplied || stable.supplied) && oldestKnown && stableKnown && ts.Less(stable.effective, oldest.effective) {
			return invalidf("oldest timestamp %s must not be later than the stable timestamp %s", ts.ToHex(oldest.effective), ts.ToHex(stable.effective))
		}

		// Step 8: drop redundant, non-advancing updates.
		if oldest.supplied && snap.hasOldest && !ts.Less(snap.oldestTs, oldest.value) {
			oldest.supplied = false
		}
		if stable.supplied && snap.hasStable && !ts.Less(snap.stableTs, stable.value) {
			stable.supplied = false
		}
		if !commit.supplied && !oldest.supplied && !stable.supplied {
			c.logger.Debugf("set_timestamp: all supplied timestamps are non-advancing, ignoring")
			return nil
		}
	}

	// Step 9: apply under exclusive rw_main.
	appliedOldest, appliedStable := c.applyGlobal(commit, oldest, stable, force)

	// Step 10.
	if appliedOldest || appliedStable {
		c.recomputePinned(force)
	}
	c.auditRecord(commit, oldest, stable, force)
	return nil
}

func (c *Coordinator) parseOptional(opts map[string]string, key string) (tsUpdate, error) {
	raw, ok := opts[key]
	if !ok || raw == "" {
		return tsUpdate{}, nil
	}
	v, err := ts.ParseHex(c.config.Width, key, raw)
	if err != nil {
		return tsUpdate{}, invalidf("%v", err)
	}
	return tsUpdate{supplied: true, value: v}, nil
}

// applyGlobal writes the supplied fields under exclusive rw_main. commit is
// unconditional (the documented "rollback knob": it may move the commit
// timestamp backward). oldest and stable are each applied only if unset,
// forced, or strictly advancing.
func (c *Coordinator) applyGlobal(commit, oldest, stable tsUpdate, force bool) (appliedOldest, appliedStable bool) {
	r := c.reg
	r.mu.Lock()
	defer r.mu.Unlock()

	if commit.supplied {
		r.commitTs = commit.value
		r.hasCommit = true
		c.logger.Infof("Updated global commit timestamp: %s", ts.ToHex(commit.value))
	}
	if oldest.supplied && (!r.hasOldest || force || ts.Less(r.oldestTs, oldest.value)) {
		r.oldestTs = oldest.value
		r.hasOldest = true
		r.oldestIsPinned = false
		appliedOldest = true
		c.logger.Infof("Updated global oldest timestamp: %s", ts.ToHex(oldest.value))
	}
	if stable.supplied && (!r.hasStable || force || ts.Less(r.stableTs, stable.value)) {
		r.stableTs = stable.value
		r.hasStable = true
		r.stableIsPinned = false
		appliedStable = true
		c.logger.Infof("Updated global stable timestamp: %s", ts.ToHex(stable.value))
	}
	return appliedOldest, appliedStable
}

// recomputePinned implements spec §4.7, the Pinned Recomputer.
func (c *Coordinator) recomputePinned(force bool) {
	r := c.reg

	r.mu.RLock()
	fastPath := r.oldestIsPinned
	r.mu.RUnlock()
	if fastPath {
		c.stats.IncPinnedFastPath()
		return
	}

	snap := r.snapshot()
	if !snap.hasOldest {
		return
	}

	active, err := c.queryPinned()
	if err != nil {
		return
	}
	candidate := ts.Min(snap.oldestTs, active)

	if !force && snap.hasPinned && ts.Compare(candidate, snap.pinnedTs) <= 0 {
		c.stats.IncPinnedSlowPath()
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if !force && r.hasPinned && ts.Compare(candidate, r.pinnedTs) <= 0 {
		c.stats.IncPinnedSlowPath()
		return
	}
	r.pinnedTs = candidate
	r.hasPinned = true
	r.oldestIsPinned = ts.Compare(r.pinnedTs, r.oldestTs) == 0
	c.stats.IncPinnedSlowPath()
	c.logger.Infof("Updated pinned timestamp: %s", ts.ToHex(r.pinnedTs))
}

// RollbackCommitTimestamp is the named escape hatch for moving commit_ts
// backward, per spec §9's open question. It writes commit_ts directly with
// no ordering checks at all. SetGlobalTimestamp can also move commit_ts
// backward (its commit_timestamp write has no monotonic check), but unless
// forced it still rejects a commit below the known oldest or stable
// timestamp; this operation exists so callers who want the unchecked move
// reach for it by name.
func (c *Coordinator) RollbackCommitTimestamp(value ts.Timestamp) error {
	if err := c.checkEnabled(); err != nil {
		return err
	}
	c.reg.mu.Lock()
	c.reg.commitTs = value
	c.reg.hasCommit = true
	c.reg.mu.Unlock()
	return nil
}
