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

package gitian

import (
	"context"
	"regexp"
	"strings"

	"github.com/monero-ecosystem/monero-update/api"
	"github.com/monero-ecosystem/monero-update/internal/urls"
)

// maxSignerLen bounds a signer directory name scraped from the tree index.
const maxSignerLen = 20

// Fetcher is the HTTP surface the verifier needs.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// SignatureVerifier is the keyring surface the verifier needs.
type SignatureVerifier interface {
	VerifyDetached(signed, sig []byte) (api.Tristate, string)
	Identity(fingerprint string) (string, bool)
}

// Hooks receive verification progress. All fields must be set.
type Hooks struct {
	// Logf publishes a diagnostic line.
	Logf func(string)
	// OnVerifying fires once when discovery succeeded and per-signer
	// verification starts.
	OnVerifying func()
	// SetTotal, SetProcessed and SetValid publish counter changes.
	SetTotal     func(uint32)
	SetProcessed func(uint32)
	SetValid     func(uint32)
}

// Result is the outcome of one verification run.
type Result struct {
	// Found is false when discovery yielded no candidate signers.
	Found bool
	// Valid counts distinct known fingerprints whose assertion names the
	// expected hash.
	Valid uint32
	// Processed and Total count candidate signers.
	Processed, Total uint32
	// BadFound is set when any signature verified red. It is fatal
	// regardless of Valid.
	BadFound bool
}

// Succeeded reports whether the run reached minSigs valid signatures
// without seeing a single bad one.
func (r Result) Succeeded(minSigs uint32) bool {
	return r.Valid >= minSigs && !r.BadFound
}

// Verifier checks Gitian attestations for a release.
type Verifier struct {
	Fetcher Fetcher
	Keyring SignatureVerifier
}

// Run discovers the per-signer assertion directories for a release and
// verifies each signer's attestation in discovery order.
func (v *Verifier) Run(ctx context.Context, software, buildTag, version, expectedHash string, h Hooks) Result {
	platform := urls.GitianPlatform(buildTag)
	treePath := urls.GitianTreePath(version, platform)
	treeURL := urls.GitianTree(version, platform)

	h.Logf("Fetching Gitian signatures from " + treeURL)
	index, err := v.Fetcher.Fetch(ctx, treeURL)
	if err != nil {
		h.Logf("Gitian signatures not found")
		h.SetValid(0)
		return Result{}
	}

	h.SetValid(0)
	users := parseSigners(string(index), treePath)
	if len(users) == 0 {
		h.Logf("No Gitian signatures found")
		return Result{}
	}

	h.OnVerifying()
	h.SetTotal(uint32(len(users)))

	// The assertion names the artifact by the file name of its canonical
	// download URL, built with the gitian build tag.
	subdir := urls.Subdir(software, buildTag)
	gitianTag := urls.GitianBuildTag(buildTag)
	filename := urls.Filename(urls.Update(software, subdir, gitianTag, version))
	hashLine := regexp.MustCompile(`^([0-9a-fA-F]+)  ` + regexp.QuoteMeta(filename) + `$`)

	res := Result{Found: true, Total: uint32(len(users))}
	seen := make(map[string]string)

	for _, user := range users {
		assertURL := urls.GitianAssert(version, platform, user, software)
		sigURL := assertURL + ".sig"

		assertBody, err := v.Fetcher.Fetch(ctx, assertURL)
		if err != nil {
			h.Logf("Failed to fetch " + assertURL)
			res.Processed++
			h.SetProcessed(res.Processed)
			continue
		}
		sigBody, err := v.Fetcher.Fetch(ctx, sigURL)
		if err != nil {
			h.Logf("Failed to fetch " + sigURL)
			res.Processed++
			h.SetProcessed(res.Processed)
			continue
		}

		outcome, fingerprint := v.Keyring.VerifyDetached(assertBody, sigBody)
		_, known := v.Keyring.Identity(fingerprint)
		previous, duplicate := seen[fingerprint]

		switch {
		case outcome == api.TriTrue && !duplicate && known:
			hash, found := assertedHash(string(assertBody), hashLine)
			switch {
			case !found:
				h.Logf("No hash found in Gitian assert file for " + filename + " from " + user)
			case hash != expectedHash:
				h.Logf("Gitian hash does not match expected hash for " + filename + " from " + user)
			default:
				h.Logf("Good Gitian signature with matching hash from " + user + ", fingerprint " + fingerprint)
				res.Valid++
				h.SetValid(res.Valid)
				seen[fingerprint] = user
			}
		case outcome == api.TriTrue && !duplicate:
			h.Logf("Valid Gitian signature from " + user + ", but from key " + fingerprint + " which is not the one on record")
		case outcome == api.TriTrue:
			h.Logf("Duplicate Gitian signature from " + user + ", previously seen from " + previous + ", fingerprint " + fingerprint)
		case outcome == api.TriFalse:
			h.Logf("Bad Gitian signature from " + user)
			res.BadFound = true
		default:
			h.Logf("Inconclusive Gitian signature from " + user + ", fingerprint " + fingerprint)
		}

		res.Processed++
		h.SetProcessed(res.Processed)
	}

	return res
}

// parseSigners scans a tree index page for anchors under treePath and
// returns the candidate signer names, rejecting anything longer than
// maxSignerLen or containing characters outside [A-Za-z0-9_-].
func parseSigners(index, treePath string) []string {
	var users []string
	prefix := `href="` + treePath
	idx := 0
	for {
		i := strings.Index(index[idx:], prefix)
		if i < 0 {
			break
		}
		i += idx
		rest := index[i+len(prefix):]
		j := strings.Index(rest, `"`)
		if j < 0 || i+len(prefix)+j+2 >= len(index) {
			break
		}
		idx = i + len(prefix) + j
		if j < 2 || rest[0] != '/' {
			continue
		}
		user := rest[1:j]
		if len(user) > maxSignerLen || !validSigner(user) {
			continue
		}
		users = append(users, user)
	}
	return users
}

func validSigner(s string) bool {
	for _, c := range s {
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '_' || c == '-':
		default:
			return false
		}
	}
	return true
}

// assertedHash extracts the artifact hash an assertion claims: the last
// line of the form "<hex>  <filename>" wins. Lines are matched with their
// surrounding whitespace trimmed, so indented manifest lines count.
func assertedHash(assertBody string, hashLine *regexp.Regexp) (string, bool) {
	var hash string
	found := false
	for _, line := range strings.Split(assertBody, "\n") {
		if m := hashLine.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
			hash = m[1]
			found = true
		}
	}
	return hash, found
}
