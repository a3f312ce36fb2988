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

package cfgstring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEmpty(t *testing.T) {
	opts, err := Parse("")
	require.NoError(t, err)
	assert.Empty(t, opts)
}

func TestParseMultipleFields(t *testing.T) {
	opts, err := Parse("oldest_timestamp=1f, stable_timestamp=2a ,force=true")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"oldest_timestamp": "1f",
		"stable_timestamp": "2a",
		"force":            "true",
	}, opts)
}

func TestParseMalformedField(t *testing.T) {
	_, err := Parse("oldest_timestamp")
	require.Error(t, err)
}

func TestBoolDefaultsAndParses(t *testing.T) {
	opts, err := Parse("force=true")
	require.NoError(t, err)

	v, err := Bool(opts, "force", false)
	require.NoError(t, err)
	assert.True(t, v)

	v, err = Bool(opts, "missing", true)
	require.NoError(t, err)
	assert.True(t, v)
}

func TestBoolInvalid(t *testing.T) {
	opts, err := Parse("force=notabool")
	require.NoError(t, err)
	_, err = Bool(opts, "force", false)
	require.Error(t, err)
}

func TestString(t *testing.T) {
	opts, err := Parse("get=all_committed")
	require.NoError(t, err)
	assert.Equal(t, "all_committed", String(opts, "get", ""))
	assert.Equal(t, "fallback", String(opts, "missing", "fallback"))
}
