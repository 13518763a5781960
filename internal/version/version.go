// Copyright 2024 The Monero Update authors. All Rights Reserved.
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

// Package version parses update TXT records and selects the newest version
// published for a (software, build tag) pair.
package version

import (
	"strings"

	goversion "github.com/hashicorp/go-version"
)

var zero = goversion.Must(goversion.NewVersion("0"))

func parse(s string) *goversion.Version {
	s = strings.TrimSpace(s)
	if s == "" {
		return zero
	}
	v, err := goversion.NewVersion(s)
	if err != nil {
		return zero
	}
	return v
}

// Compare returns -1, 0 or 1 as version a is older than, equal to or newer
// than version b, comparing dotted components numerically. Empty and
// unparseable versions compare as version zero.
func Compare(a, b string) int {
	return parse(a).Compare(parse(b))
}

// Select scans the consensus records for software on buildTag and returns
// the highest advertised (version, hash). Both are empty when no record
// survives, or when two records advertise the same version with different
// hashes.
func Select(software, buildTag string, records []string, logf func(string)) (string, string) {
	var version, hash string
	found := false
	var kept [][2]string

	for _, record := range records {
		logf("Got record: " + record)
		fields := strings.Split(record, ":")
		if len(fields) != 4 {
			logf("Updates record does not have 4 fields: " + record)
			continue
		}
		if software != fields[0] || buildTag != fields[1] {
			continue
		}
		if len(fields[3]) != 64 && !alphanumeric(fields[3]) {
			logf("Invalid hash: " + fields[3])
			continue
		}

		for _, k := range kept {
			if Compare(k[0], fields[2]) == 0 && k[1] != fields[3] {
				logf("Two matches found for " + software + " version " + fields[2] + " on " + buildTag)
				return "", ""
			}
		}
		kept = append(kept, [2]string{fields[2], fields[3]})

		// use highest version
		if found && Compare(version, fields[2]) > 0 {
			continue
		}
		version = fields[2]
		hash = fields[3]

		logf("Found new version " + version + " with hash " + hash)
		found = true
	}

	if version == "" {
		return "", ""
	}
	return version, hash
}

func alphanumeric(s string) bool {
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		default:
			return false
		}
	}
	return true
}
