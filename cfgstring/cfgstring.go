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

// Package cfgstring parses the comma-separated "key=value" configuration
// strings the coordinator's entry points accept, standing in for
// WiredTiger's WT_CONFIG_ITEM cursor over a config string. There is no
// comparable parser anywhere in the retrieval pack to ground this on, and
// the grammar is small enough (split on comma, split on equals, trim
// spaces) that reaching for a third-party flag/ini/toml parser would be
// disproportionate to the problem; this is intentionally standard-library
// only.
package cfgstring

import (
	"fmt"
	"strconv"
	"strings"
)

// Parse splits a "key1=value1,key2=value2" string into a map. Whitespace
// around keys and values is trimmed. An empty string parses to an empty,
// non-nil map. A bare key with no "=" is an error: every key the
// coordinator looks for expects a value.
func Parse(s string) (map[string]string, error) {
	out := make(map[string]string)
	s = strings.TrimSpace(s)
	if s == "" {
		return out, nil
	}
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		k, v, ok := strings.Cut(field, "=")
		if !ok {
			return nil, fmt.Errorf("cfgstring: malformed field %q: missing '='", field)
		}
		out[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return out, nil
}

// Bool reports the boolean value of key in opts, defaulting to def if key
// is absent. Accepted spellings follow strconv.ParseBool.
func Bool(opts map[string]string, key string, def bool) (bool, error) {
	raw, ok := opts[key]
	if !ok || raw == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("cfgstring: %s: %w", key, err)
	}
	return v, nil
}

// String returns the value of key in opts, or def if absent.
func String(opts map[string]string, key, def string) string {
	raw, ok := opts[key]
	if !ok {
		return def
	}
	return raw
}
