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
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/crypto/openpgp"

	"github.com/monero-ecosystem/monero-update/api"
)

const (
	testVersion  = "0.18.3.1"
	testBuildTag = "linux-x64"
	testSoftware = "monero"
	testHash     = "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"

	// Artifact file name for the gitian build tag of linux-x64.
	testFilename = "monero-x86_64-linux-gnu-v0.18.3.1.tar.bz2"

	treeURL  = "https://github.com/monero-project/gitian.sigs/tree/master/v0.18.3.1-linux"
	treePath = "/monero-project/gitian.sigs/tree/master/v0.18.3.1-linux"
	rawBase  = "https://raw.githubusercontent.com/monero-project/gitian.sigs/master/v0.18.3.1-linux"
)

type fakeFetcher map[string][]byte

func (f fakeFetcher) Fetch(_ context.Context, url string) ([]byte, error) {
	if b, ok := f[url]; ok {
		return b, nil
	}
	return nil, os.ErrNotExist
}

// capture implements Hooks over recorded state.
type capture struct {
	logs                    []string
	verifying               bool
	total, processed, valid uint32
}

func (c *capture) hooks() Hooks {
	return Hooks{
		Logf:         func(s string) { c.logs = append(c.logs, s) },
		OnVerifying:  func() { c.verifying = true },
		SetTotal:     func(n uint32) { c.total = n },
		SetProcessed: func(n uint32) { c.processed = n },
		SetValid:     func(n uint32) { c.valid = n },
	}
}

func treePage(users ...string) []byte {
	var b strings.Builder
	b.WriteString("<html><body>\n")
	for _, u := range users {
		fmt.Fprintf(&b, `<a href="%s/%s">%s</a>`+"\n", treePath, u, u)
	}
	b.WriteString("</body></html>\n")
	return []byte(b.String())
}

func assertBody(hash string) []byte {
	return []byte("--- !!omap\n- out_manifest: |\n  " + hash + "  " + testFilename + "\n")
}

func assertURL(user string) string {
	return rawBase + "/" + user + "/monero-linux-0.18-build.assert"
}

// signedAssert places a signed assert document for user into f.
func signedAssert(t *testing.T, f fakeFetcher, e *openpgp.Entity, user, hash string) {
	t.Helper()
	body := assertBody(hash)
	f[assertURL(user)] = body
	f[assertURL(user)+".sig"] = detachSign(t, e, body)
}

// testKeyring imports one generated key per name and returns the keyring
// with the entities.
func testKeyring(t *testing.T, names ...string) (*Keyring, map[string]*openpgp.Entity) {
	t.Helper()
	k, err := NewKeyring()
	if err != nil {
		t.Fatalf("NewKeyring: %v", err)
	}
	t.Cleanup(k.Close)

	entities := make(map[string]*openpgp.Entity)
	for _, name := range names {
		e, armored := newSigner(t, name)
		if _, err := k.Import(PublicKeyEntry{Identity: name, ArmoredKey: armored}); err != nil {
			t.Fatalf("Import(%s): %v", name, err)
		}
		entities[name] = e
	}
	return k, entities
}

func run(t *testing.T, f fakeFetcher, k SignatureVerifier, c *capture) Result {
	t.Helper()
	v := &Verifier{Fetcher: f, Keyring: k}
	return v.Run(context.Background(), testSoftware, testBuildTag, testVersion, testHash, c.hooks())
}

func TestRunThresholdMet(t *testing.T) {
	k, entities := testKeyring(t, "alice", "bob", "carol")
	f := fakeFetcher{treeURL: treePage("alice", "bob", "carol")}
	for name, e := range entities {
		signedAssert(t, f, e, name, testHash)
	}

	c := &capture{}
	res := run(t, f, k, c)

	want := Result{Found: true, Valid: 3, Processed: 3, Total: 3}
	if diff := cmp.Diff(want, res); diff != "" {
		t.Errorf("result diff (-want +got):\n%s", diff)
	}
	if !res.Succeeded(2) {
		t.Error("Succeeded(2) = false, want true")
	}
	if !c.verifying {
		t.Error("OnVerifying not fired")
	}
	if c.valid != 3 || c.processed != 3 || c.total != 3 {
		t.Errorf("hook counters = (%d, %d, %d), want (3, 3, 3)", c.valid, c.processed, c.total)
	}
}

func TestRunRedSignatureFatal(t *testing.T) {
	k, entities := testKeyring(t, "alice", "bob", "carol", "dave")
	f := fakeFetcher{treeURL: treePage("alice", "bob", "carol", "dave")}
	for _, name := range []string{"alice", "bob", "carol"} {
		signedAssert(t, f, entities[name], name, testHash)
	}
	// dave's signature does not cover the body served.
	f[assertURL("dave")] = assertBody(testHash)
	f[assertURL("dave")+".sig"] = detachSign(t, entities["dave"], []byte("something else"))

	c := &capture{}
	res := run(t, f, k, c)

	if !res.BadFound {
		t.Error("BadFound = false, want true")
	}
	if res.Valid != 3 {
		t.Errorf("Valid = %d, want 3", res.Valid)
	}
	if res.Succeeded(2) {
		t.Error("Succeeded(2) = true with a red signature present")
	}
	wantMsg := "Bad Gitian signature from dave"
	if !containsLog(c.logs, wantMsg) {
		t.Errorf("missing log %q in %q", wantMsg, c.logs)
	}
}

func TestRunUnknownSignerInconclusive(t *testing.T) {
	// Signatures verify against nothing in the keyring: the scan stays at
	// zero valid without flagging red.
	k, _ := testKeyring(t)
	outsiderA, _ := newSigner(t, "outsider-a")
	outsiderB, _ := newSigner(t, "outsider-b")

	f := fakeFetcher{treeURL: treePage("alice", "bob")}
	signedAssert(t, f, outsiderA, "alice", testHash)
	signedAssert(t, f, outsiderB, "bob", testHash)

	c := &capture{}
	res := run(t, f, k, c)

	want := Result{Found: true, Valid: 0, Processed: 2, Total: 2}
	if diff := cmp.Diff(want, res); diff != "" {
		t.Errorf("result diff (-want +got):\n%s", diff)
	}
	if res.Succeeded(2) {
		t.Error("Succeeded(2) = true with no known signers")
	}
}

// fixedVerifier reports every signature as valid, signed by fingerprint.
type fixedVerifier struct {
	fingerprint string
	known       map[string]string
}

func (v fixedVerifier) VerifyDetached(_, _ []byte) (api.Tristate, string) {
	return api.TriTrue, v.fingerprint
}

func (v fixedVerifier) Identity(fpr string) (string, bool) {
	id, ok := v.known[fpr]
	return id, ok
}

func TestRunValidSignatureFromUnknownKey(t *testing.T) {
	f := fakeFetcher{treeURL: treePage("alice")}
	body := assertBody(testHash)
	f[assertURL("alice")] = body
	f[assertURL("alice")+".sig"] = []byte("sig")

	c := &capture{}
	res := run(t, f, fixedVerifier{fingerprint: "ABCD", known: map[string]string{}}, c)

	if res.Valid != 0 || res.BadFound {
		t.Errorf("result = %+v, want zero valid, no red", res)
	}
	wantMsg := "Valid Gitian signature from alice, but from key ABCD which is not the one on record"
	if !containsLog(c.logs, wantMsg) {
		t.Errorf("missing log %q in %q", wantMsg, c.logs)
	}
}

func TestRunDuplicateFingerprintCountedOnce(t *testing.T) {
	k, entities := testKeyring(t, "alice")
	f := fakeFetcher{treeURL: treePage("alice", "alice2")}
	signedAssert(t, f, entities["alice"], "alice", testHash)
	signedAssert(t, f, entities["alice"], "alice2", testHash)

	c := &capture{}
	res := run(t, f, k, c)

	if res.Valid != 1 {
		t.Errorf("Valid = %d, want 1", res.Valid)
	}
	if res.Processed != 2 {
		t.Errorf("Processed = %d, want 2", res.Processed)
	}
}

func TestRunHashMismatch(t *testing.T) {
	k, entities := testKeyring(t, "alice", "bob")
	f := fakeFetcher{treeURL: treePage("alice", "bob")}
	signedAssert(t, f, entities["alice"], "alice", strings.Repeat("f", 64))
	signedAssert(t, f, entities["bob"], "bob", testHash)

	c := &capture{}
	res := run(t, f, k, c)

	if res.Valid != 1 {
		t.Errorf("Valid = %d, want 1", res.Valid)
	}
	if res.BadFound {
		t.Error("BadFound = true for a hash mismatch")
	}
	wantMsg := "Gitian hash does not match expected hash for " + testFilename + " from alice"
	if !containsLog(c.logs, wantMsg) {
		t.Errorf("missing log %q in %q", wantMsg, c.logs)
	}
}

func TestRunNoHashInAssert(t *testing.T) {
	k, entities := testKeyring(t, "alice")
	f := fakeFetcher{treeURL: treePage("alice")}
	body := []byte("nothing that looks like a manifest\n")
	f[assertURL("alice")] = body
	f[assertURL("alice")+".sig"] = detachSign(t, entities["alice"], body)

	c := &capture{}
	res := run(t, f, k, c)

	if res.Valid != 0 {
		t.Errorf("Valid = %d, want 0", res.Valid)
	}
	wantMsg := "No hash found in Gitian assert file for " + testFilename + " from alice"
	if !containsLog(c.logs, wantMsg) {
		t.Errorf("missing log %q in %q", wantMsg, c.logs)
	}
}

func TestRunMissingAssertDocuments(t *testing.T) {
	k, _ := testKeyring(t, "alice")
	f := fakeFetcher{treeURL: treePage("alice")}

	c := &capture{}
	res := run(t, f, k, c)

	want := Result{Found: true, Valid: 0, Processed: 1, Total: 1}
	if diff := cmp.Diff(want, res); diff != "" {
		t.Errorf("result diff (-want +got):\n%s", diff)
	}
}

func TestRunNoSigners(t *testing.T) {
	k, _ := testKeyring(t)

	for name, f := range map[string]fakeFetcher{
		"tree missing":        {},
		"tree has no anchors": {treeURL: []byte("<html>nothing here</html>")},
	} {
		c := &capture{}
		res := run(t, f, k, c)
		if res.Found {
			t.Errorf("%s: Found = true, want false", name)
		}
		if c.verifying {
			t.Errorf("%s: OnVerifying fired without candidates", name)
		}
	}
}

func TestRunWindowsAssertFilename(t *testing.T) {
	// Windows assertions name the artifact by its Gitian triplet with a
	// .zip extension; the hash line must still match.
	const (
		winTreeURL  = "https://github.com/monero-project/gitian.sigs/tree/master/v0.18.3.1-win"
		winTreePath = "/monero-project/gitian.sigs/tree/master/v0.18.3.1-win"
		winRawBase  = "https://raw.githubusercontent.com/monero-project/gitian.sigs/master/v0.18.3.1-win"
		winFilename = "monero-x86_64-w64-mingw32-v0.18.3.1.zip"
	)

	k, entities := testKeyring(t, "alice", "bob")
	f := fakeFetcher{
		winTreeURL: []byte(
			`<a href="` + winTreePath + `/alice">alice</a>` + "\n" +
				`<a href="` + winTreePath + `/bob">bob</a>` + "\n" +
				"<footer></footer>\n"),
	}
	for name, e := range entities {
		body := []byte("--- !!omap\n- out_manifest: |\n  " + testHash + "  " + winFilename + "\n")
		url := winRawBase + "/" + name + "/monero-win-0.18-build.assert"
		f[url] = body
		f[url+".sig"] = detachSign(t, e, body)
	}

	c := &capture{}
	v := &Verifier{Fetcher: f, Keyring: k}
	res := v.Run(context.Background(), testSoftware, "win-x64", testVersion, testHash, c.hooks())

	want := Result{Found: true, Valid: 2, Processed: 2, Total: 2}
	if diff := cmp.Diff(want, res); diff != "" {
		t.Errorf("result diff (-want +got):\n%s", diff)
	}
	if !res.Succeeded(2) {
		t.Error("Succeeded(2) = false, want true")
	}
}

func TestParseSigners(t *testing.T) {
	index := string(treePage("alice", "bob")) +
		`<a href="` + treePath + `/this-name-is-way-too-long-to-accept">x</a>` +
		`<a href="` + treePath + `/bad$chars">x</a>` +
		`<a href="/somewhere/else/carol">x</a>` + "\n"

	got := parseSigners(index, treePath)
	if diff := cmp.Diff([]string{"alice", "bob"}, got); diff != "" {
		t.Errorf("signers diff (-want +got):\n%s", diff)
	}
}

func containsLog(logs []string, want string) bool {
	for _, l := range logs {
		if l == want {
			return true
		}
	}
	return false
}
