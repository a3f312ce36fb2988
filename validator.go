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

import "github.com/B1NARY-GR0UP/tscoord/ts"

// validateOpts selects which comparisons validate performs, mirroring the
// cmp_oldest/cmp_stable/cmp_commit flags of __wt_timestamp_validate.
type validateOpts struct {
	cmpOldest bool
	cmpStable bool
	cmpCommit bool
}

// validate enforces spec §4.2 against the current registry snapshot and,
// when cmpCommit is set, against txn's own first_commit_timestamp. Reads
// the registry under a single shared lock hold.
func (c *Coordinator) validate(name string, value ts.Timestamp, opts validateOpts, txn *Txn) error {
	snap := c.reg.snapshot()

	if opts.cmpOldest && snap.hasOldest && ts.Less(value, snap.oldestTs) {
		return invalidf("%s timestamp %s is less than the oldest timestamp %s", name, ts.ToHex(value), ts.ToHex(snap.oldestTs))
	}
	if opts.cmpStable && snap.hasStable && ts.Less(value, snap.stableTs) {
		return invalidf("%s timestamp %s is less than the stable timestamp %s", name, ts.ToHex(value), ts.ToHex(snap.stableTs))
	}
	if opts.cmpCommit && txn != nil {
		txn.mu.Lock()
		hasCommit := txn.hasTsCommit
		first := txn.firstCommitTimestamp
		txn.mu.Unlock()
		if hasCommit && ts.Less(value, first) {
			return invalidf("%s timestamp %s is less than the first commit timestamp %s for this transaction", name, ts.ToHex(value), ts.ToHex(first))
		}
	}
	return nil
}
