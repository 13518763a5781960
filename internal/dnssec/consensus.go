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

package dnssec

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"

	"k8s.io/klog/v2"
)

// MinMatchingEndpoints is the quorum: at least this many endpoints must
// validate and agree before a record set is trusted.
const MinMatchingEndpoints = 2

// QueryAll issues one TXT lookup per host in parallel and returns the
// results in host order. A failed lookup yields a zero QueryResult, which
// the consensus pass treats as not valid.
func QueryAll(ctx context.Context, r TXTResolver, hosts []string, logf func(string)) []QueryResult {
	logf("Lookup up DNS TXT records for: " + strings.Join(hosts, ", "))

	results := make([]QueryResult, len(hosts))
	var wg sync.WaitGroup
	for i, host := range hosts {
		wg.Add(1)
		go func(i int, host string) {
			defer wg.Done()
			res, err := r.LookupTXT(ctx, host)
			if err != nil {
				klog.Warningf("TXT lookup for %s failed: %v", host, err)
				return
			}
			results[i] = res
		}(i, host)
	}
	wg.Wait()
	return results
}

// Consensus applies the quorum rule over per-endpoint results: at least
// MinMatchingEndpoints endpoints must be DNSSEC-valid, non-empty, and two
// of them must agree set-wise. It returns the agreed record set and whether
// consensus was reached.
func Consensus(hosts []string, results []QueryResult, logf func(string)) ([]string, bool) {
	for i, res := range results {
		switch {
		case !res.DNSSECAvailable:
			logf("DNSSEC not available for hostname: " + hosts[i] + ", skipping.")
		case !res.DNSSECValid:
			logf("DNSSEC validation failed for hostname: " + hosts[i] + ", skipping.")
		case len(res.Records) == 0:
			logf("No records for hostname: " + hosts[i] + ", skipping.")
		}
	}

	numValid := 0
	for _, res := range results {
		if usable(res) {
			numValid++
		}
	}
	if numValid < MinMatchingEndpoints {
		logf("WARNING: no two valid DNS TXT records were received")
		return nil, false
	}

	for i := 0; i < len(results); i++ {
		if !usable(results[i]) {
			continue
		}
		for j := i + 1; j < len(results); j++ {
			if !usable(results[j]) {
				continue
			}
			if recordsMatch(results[i].Records, results[j].Records) {
				logf("Found " + strconv.Itoa(numValid) + "/" + strconv.Itoa(len(hosts)) + " matching DNSSEC records")
				return results[i].Records, true
			}
		}
	}

	logf("WARNING: no two DNS TXT records matched")
	return nil, false
}

func usable(res QueryResult) bool {
	return res.DNSSECAvailable && res.DNSSECValid && len(res.Records) != 0
}

// recordsMatch compares two record sets modulo ordering.
func recordsMatch(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	as := append([]string(nil), a...)
	bs := append([]string(nil), b...)
	sort.Strings(as)
	sort.Strings(bs)
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}
