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

// QueryTimestamp implements spec §4.5 / the query_timestamp configuration
// string: {get: all_committed|oldest|pinned|stable}, defaulting to pinned.
func (c *Coordinator) QueryTimestamp(cfg string) (ts.Timestamp, error) {
	if err := c.checkEnabled(); err != nil {
		return ts.Timestamp{}, err
	}

	opts, err := cfgstring.Parse(cfg)
	if err != nil {
		return ts.Timestamp{}, invalidf("%v", err)
	}
	selector := cfgstring.String(opts, "get", "pinned")

	switch selector {
	case "all_committed":
		return c.queryAllCommitted()
	case "oldest":
		return c.queryOldest()
	case "pinned":
		return c.queryPinned()
	case "stable":
		return c.queryStable()
	default:
		return ts.Timestamp{}, invalidf("unknown query_timestamp selector %q", selector)
	}
}

// queryAllCommitted returns min(commit_ts, front(commit_q).first_commit_timestamp).
func (c *Coordinator) queryAllCommitted() (ts.Timestamp, error) {
	snap := c.reg.snapshot()
	if !snap.hasCommit {
		return ts.Timestamp{}, notFoundf("all_committed: no commit timestamp has been set")
	}
	result := snap.commitTs
	if txn, ok := c.commitQ.front(); ok {
		result = ts.Min(result, txn.rawCommitKey())
	}
	return result, nil
}

func (c *Coordinator) queryOldest() (ts.Timestamp, error) {
	snap := c.reg.snapshot()
	if !snap.hasOldest {
		return ts.Timestamp{}, notFoundf("oldest: no oldest timestamp has been set")
	}
	return snap.oldestTs, nil
}

func (c *Coordinator) queryStable() (ts.Timestamp, error) {
	snap := c.reg.snapshot()
	if !snap.hasStable {
		return ts.Timestamp{}, notFoundf("stable: no stable timestamp has been set")
	}
	return snap.stableTs, nil
}

// queryPinned implements the two-lock-scope walk of
// __txn_global_query_timestamp's default case: rw_main is released before
// rw_read_q is acquired, since the two queue locks (and main plus a queue
// lock, per spec §5) are never meant to be held together beyond the
// instant needed.
func (c *Coordinator) queryPinned() (ts.Timestamp, error) {
	snap := c.reg.snapshot()
	if !snap.hasOldest {
		return ts.Timestamp{}, notFoundf("pinned: no oldest timestamp has been set")
	}
	result := snap.oldestTs

	if ckpt := c.checkpointTxnRef(); ckpt != nil {
		rt := ckpt.ReadTimestamp()
		if !rt.IsZero() && ts.Less(rt, result) {
			result = rt
		}
	}

	if txn, ok := c.readQ.front(); ok {
		if front := txn.rawReadKey(); ts.Less(front, result) {
			result = front
		}
	}
	return result, nil
}
