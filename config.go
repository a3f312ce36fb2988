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

// Config configures a Coordinator.
type Config struct {
	// Width is the fixed byte width of every timestamp the coordinator
	// handles. Typical values are 8 or 16.
	Width ts.Width

	// Enabled gates the whole subsystem. When false every timestamp entry
	// point (setting, querying, publishing, rollback) returns a
	// NotSupported error, standing in for the original
	// conditionally-compiled "HAVE_TIMESTAMPS" build as a runtime flag.
	Enabled bool

	// AuditHistory is the number of recent set-global transitions kept
	// in memory for DumpAudit. Zero disables the audit ring entirely.
	AuditHistory int
}

// DefaultConfig mirrors the teacher's DefaultConfig pattern: a ready-to-use
// value with the subsystem enabled at the common single-word width.
var DefaultConfig = Config{
	Width:        ts.Width8,
	Enabled:      true,
	AuditHistory: 256,
}

// validate fills a zero Width from DefaultConfig and replaces a negative
// AuditHistory with the default, following config.go's validate() in the
// teacher rather than erroring on omission. A zero AuditHistory is kept
// (it disables the audit ring) and Enabled is left as given.
func (c *Config) validate() error {
	if c.Width <= 0 {
		c.Width = DefaultConfig.Width
	}
	if c.AuditHistory < 0 {
		c.AuditHistory = DefaultConfig.AuditHistory
	}
	return nil
}
