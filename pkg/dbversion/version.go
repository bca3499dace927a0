// Copyright (c) 2026, the Metron authors.  All rights reserved.
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

package dbversion

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Error types for version parsing failures
var (
	ErrEmptyVersion = errors.New("version string is empty")
	ErrNoNumeric    = errors.New("version string has no numeric component")
)

// Version represents a database engine version with up to three numeric
// components. Engines report versions in wildly different shapes
// ("16.3", "8.0.36-log", "PostgreSQL 9.6.2 on x86_64",
// "2.00.040.00.1553674765"); Version keeps the leading numeric components
// for comparisons and preserves the original string in Raw.
type Version struct {
	Major int `json:"major"`
	Minor int `json:"minor,omitempty"`
	Patch int `json:"patch,omitempty"`

	// Raw is the version string exactly as the engine reported it.
	Raw string `json:"raw,omitempty"`
}

// String returns the parsed components as "Major.Minor.Patch".
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// AtLeast reports whether the version is at or above major.minor.
func (v Version) AtLeast(major, minor int) bool {
	if v.Major != major {
		return v.Major > major
	}
	return v.Minor >= minor
}

// Parse extracts the first dotted numeric token from an engine version
// string. Tokens may carry trailing build metadata ("-log", "+deb") which
// is ignored; components beyond the third are ignored as well.
func Parse(s string) (Version, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Version{}, ErrEmptyVersion
	}

	for _, token := range strings.Fields(s) {
		numeric := leadingNumeric(token)
		if numeric == "" {
			continue
		}

		v := Version{Raw: s}
		for i, part := range strings.SplitN(numeric, ".", 4) {
			if i == 3 {
				break
			}
			n, err := strconv.Atoi(part)
			if err != nil {
				// a trailing dot leaves an empty component
				break
			}
			switch i {
			case 0:
				v.Major = n
			case 1:
				v.Minor = n
			case 2:
				v.Patch = n
			}
		}
		return v, nil
	}

	return Version{}, fmt.Errorf("%w: %q", ErrNoNumeric, s)
}

// leadingNumeric returns the longest prefix of the token made of digits
// and dots, provided it starts with a digit.
func leadingNumeric(token string) string {
	if token == "" || token[0] < '0' || token[0] > '9' {
		return ""
	}
	for i := 0; i < len(token); i++ {
		ch := token[i]
		if (ch < '0' || ch > '9') && ch != '.' {
			return token[:i]
		}
	}
	return token
}
