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

// Package urls derives the download and Gitian hosting URLs for a release
// artifact from its software identity, build tag and version.
package urls

import (
	"path"
	"strings"
)

const (
	// DownloadHost serves the release artifacts.
	DownloadHost = "https://downloads.getmonero.org"

	// VCSHost serves the gitian.sigs tree index pages.
	VCSHost = "https://github.com"
	// RawHost serves raw gitian.sigs documents.
	RawHost = "https://raw.githubusercontent.com"

	// Project is the gitian.sigs owner on the VCS host.
	Project = "monero-project"
)

// buildTagToGitian maps a DNS build tag to the Gitian target triplet used
// in assert file names and artifact paths.
var buildTagToGitian = map[string]string{
	"linux-x64":   "x86_64-linux-gnu",
	"linux-x32":   "i686-linux-gnu",
	"win-x64":     "x86_64-w64-mingw32",
	"win-x32":     "i686-w64-mingw32",
	"freebsd":     "x86_64-unknown-freebsd",
	"mac-x64":     "x86_64-apple-darwin11",
	"linux-armv7": "arm-linux-gnueabihf",
	"linux-armv8": "aarch64-linux-gnu",
}

// platformToGitian maps the coarse platform key (the build tag up to the
// first dash) to the directory name used in the gitian.sigs tree.
var platformToGitian = map[string]string{
	"mac": "osx",
}

// Subdir returns the download subdirectory for a (software, build tag)
// pair: "source" for source builds, empty for the GUI bundle, "cli"
// otherwise.
func Subdir(software, buildTag string) string {
	switch {
	case strings.Contains(buildTag, "source"):
		return "source"
	case strings.Contains(software, "-gui"):
		return ""
	default:
		return "cli"
	}
}

// GitianBuildTag returns the Gitian target triplet for a build tag, or the
// build tag itself when no mapping exists.
func GitianBuildTag(buildTag string) string {
	if t, ok := buildTagToGitian[buildTag]; ok {
		return t
	}
	return buildTag
}

// GitianPlatform returns the gitian.sigs directory platform token for a
// build tag: the coarse platform key, mapped where the tree uses a
// different name.
func GitianPlatform(buildTag string) string {
	platform := buildTag
	if idx := strings.Index(platform, "-"); idx >= 0 {
		platform = platform[:idx]
	}
	if p, ok := platformToGitian[platform]; ok {
		return p
	}
	return platform
}

// Update returns the canonical artifact URL for a release.
func Update(software, subdir, buildTag, version string) string {
	u := DownloadHost + "/"
	if subdir != "" {
		u += subdir + "/"
	}
	return u + software + "-" + buildTag + "-v" + version + extension(buildTag)
}

// extension returns the artifact archive extension for a build tag.
// Windows and mac releases ship as zip archives; the tag may be either the
// DNS form (win-x64, mac-x64) or the Gitian triplet (x86_64-w64-mingw32,
// x86_64-apple-darwin11).
func extension(buildTag string) string {
	for _, token := range []string{"win", "w64", "mingw", "mac", "apple", "darwin"} {
		if strings.Contains(buildTag, token) {
			return ".zip"
		}
	}
	return ".tar.bz2"
}

// Filename returns the artifact file name of an update URL.
func Filename(url string) string {
	return path.Base(url)
}

// GitianTreePath returns the URL path of the gitian.sigs tree index for a
// release, without the host.
func GitianTreePath(version, platform string) string {
	return "/" + Project + "/gitian.sigs/tree/master/v" + version + "-" + platform
}

// GitianTree returns the full tree index URL for a release.
func GitianTree(version, platform string) string {
	return VCSHost + GitianTreePath(version, platform)
}

// GitianRawBase returns the base URL under which per-signer assert
// documents for a release are served.
func GitianRawBase(version, platform string) string {
	return RawHost + "/" + Project + "/gitian.sigs/master/v" + version + "-" + platform
}

// GitianAssert returns the assert document URL for one signer. The short
// version is the first four characters of the release version.
func GitianAssert(version, platform, user, software string) string {
	shortVersion := version
	if len(shortVersion) > 4 {
		shortVersion = shortVersion[:4]
	}
	return GitianRawBase(version, platform) + "/" + user + "/" + software + "-" + platform + "-" + shortVersion + "-build.assert"
}
