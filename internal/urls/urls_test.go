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

package urls

import "testing"

func TestSubdir(t *testing.T) {
	for _, test := range []struct {
		software, buildTag, want string
	}{
		{"monero", "linux-x64", "cli"},
		{"monero", "source", "source"},
		{"monero", "linux-source", "source"},
		{"monero-gui", "linux-x64", ""},
		{"monero-gui", "source", "source"},
	} {
		if got := Subdir(test.software, test.buildTag); got != test.want {
			t.Errorf("Subdir(%q, %q) = %q, want %q", test.software, test.buildTag, got, test.want)
		}
	}
}

func TestGitianBuildTag(t *testing.T) {
	for _, test := range []struct {
		buildTag, want string
	}{
		{"linux-x64", "x86_64-linux-gnu"},
		{"linux-x32", "i686-linux-gnu"},
		{"win-x64", "x86_64-w64-mingw32"},
		{"win-x32", "i686-w64-mingw32"},
		{"freebsd", "x86_64-unknown-freebsd"},
		{"mac-x64", "x86_64-apple-darwin11"},
		{"linux-armv7", "arm-linux-gnueabihf"},
		{"linux-armv8", "aarch64-linux-gnu"},
		{"plan9", "plan9"},
	} {
		if got := GitianBuildTag(test.buildTag); got != test.want {
			t.Errorf("GitianBuildTag(%q) = %q, want %q", test.buildTag, got, test.want)
		}
	}
}

func TestGitianPlatform(t *testing.T) {
	for _, test := range []struct {
		buildTag, want string
	}{
		{"linux-x64", "linux"},
		{"mac-x64", "osx"},
		{"win-x64", "win"},
		{"freebsd", "freebsd"},
	} {
		if got := GitianPlatform(test.buildTag); got != test.want {
			t.Errorf("GitianPlatform(%q) = %q, want %q", test.buildTag, got, test.want)
		}
	}
}

func TestUpdate(t *testing.T) {
	for _, test := range []struct {
		software, subdir, buildTag, version, want string
	}{
		{
			"monero", "cli", "linux-x64", "0.18.3.1",
			"https://downloads.getmonero.org/cli/monero-linux-x64-v0.18.3.1.tar.bz2",
		},
		{
			"monero", "cli", "win-x64", "0.18.3.1",
			"https://downloads.getmonero.org/cli/monero-win-x64-v0.18.3.1.zip",
		},
		{
			"monero", "cli", "mac-x64", "0.18.3.1",
			"https://downloads.getmonero.org/cli/monero-mac-x64-v0.18.3.1.zip",
		},
		{
			"monero-gui", "", "linux-x64", "0.18.3.1",
			"https://downloads.getmonero.org/monero-gui-linux-x64-v0.18.3.1.tar.bz2",
		},
		// Gitian triplets must pick the same extension as their DNS tags:
		// the asserted file name is derived from the triplet form.
		{
			"monero", "cli", "x86_64-w64-mingw32", "0.18.3.1",
			"https://downloads.getmonero.org/cli/monero-x86_64-w64-mingw32-v0.18.3.1.zip",
		},
		{
			"monero", "cli", "i686-w64-mingw32", "0.18.3.1",
			"https://downloads.getmonero.org/cli/monero-i686-w64-mingw32-v0.18.3.1.zip",
		},
		{
			"monero", "cli", "x86_64-apple-darwin11", "0.18.3.1",
			"https://downloads.getmonero.org/cli/monero-x86_64-apple-darwin11-v0.18.3.1.zip",
		},
		{
			"monero", "cli", "x86_64-linux-gnu", "0.18.3.1",
			"https://downloads.getmonero.org/cli/monero-x86_64-linux-gnu-v0.18.3.1.tar.bz2",
		},
		{
			"monero", "cli", "x86_64-unknown-freebsd", "0.18.3.1",
			"https://downloads.getmonero.org/cli/monero-x86_64-unknown-freebsd-v0.18.3.1.tar.bz2",
		},
	} {
		if got := Update(test.software, test.subdir, test.buildTag, test.version); got != test.want {
			t.Errorf("Update(%q, %q, %q, %q) = %q, want %q",
				test.software, test.subdir, test.buildTag, test.version, got, test.want)
		}
	}
}

func TestGitianURLs(t *testing.T) {
	wantTree := "https://github.com/monero-project/gitian.sigs/tree/master/v0.18.3.1-linux"
	if got := GitianTree("0.18.3.1", "linux"); got != wantTree {
		t.Errorf("GitianTree = %q, want %q", got, wantTree)
	}

	wantAssert := "https://raw.githubusercontent.com/monero-project/gitian.sigs/master/v0.18.3.1-linux/signer/monero-linux-0.18-build.assert"
	if got := GitianAssert("0.18.3.1", "linux", "signer", "monero"); got != wantAssert {
		t.Errorf("GitianAssert = %q, want %q", got, wantAssert)
	}
}

func TestFilename(t *testing.T) {
	got := Filename("https://downloads.getmonero.org/cli/monero-linux-x64-v0.18.3.1.tar.bz2")
	if want := "monero-linux-x64-v0.18.3.1.tar.bz2"; got != want {
		t.Errorf("Filename = %q, want %q", got, want)
	}
}
