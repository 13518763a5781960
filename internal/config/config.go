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

// Package config holds the compiled-in defaults of the updater and the
// optional YAML overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"
)

// DefaultDNSHosts are the update record endpoints. All four have DNSSEC
// enabled and validating.
var DefaultDNSHosts = []string{
	"updates.moneropulse.org",
	"updates.moneropulse.net",
	"updates.moneropulse.co",
	"updates.moneropulse.se",
}

const (
	// DefaultSoftware is the base software identity.
	DefaultSoftware = "monero"

	// DefaultMinGitianSigs is the attestation acceptance threshold.
	DefaultMinGitianSigs = 2
)

// Config is the loadable configuration surface.
type Config struct {
	Software       string   `yaml:"software"`
	BuildTag       string   `yaml:"build_tag"`
	CurrentVersion string   `yaml:"current_version"`
	DNSHosts       []string `yaml:"dns_hosts"`
	MinGitianSigs  uint32   `yaml:"min_gitian_sigs"`
	MetricsAddr    string   `yaml:"metrics_addr"`
}

// Default returns the compiled-in configuration.
func Default() Config {
	return Config{
		Software:      DefaultSoftware,
		BuildTag:      DetectBuildTag(),
		DNSHosts:      DefaultDNSHosts,
		MinGitianSigs: DefaultMinGitianSigs,
	}
}

// Load reads path over the defaults. An empty path returns the defaults; a
// file that cannot be read is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %v", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %v", err)
	}
	return cfg, cfg.Validate()
}

// Validate rejects configurations the engine cannot run with.
func (c Config) Validate() error {
	if c.Software == "" {
		return errors.New("software must not be empty")
	}
	if len(c.DNSHosts) == 0 {
		return errors.New("dns_hosts must not be empty")
	}
	if c.MinGitianSigs == 0 {
		return errors.New("min_gitian_sigs must be at least 1")
	}
	return nil
}

// DetectBuildTag maps the host platform to the build tag used in update
// records, falling back to "source" for platforms without binary releases.
func DetectBuildTag() string {
	switch runtime.GOOS {
	case "windows":
		if runtime.GOARCH == "amd64" {
			return "win-x64"
		}
		return "win-x32"
	case "freebsd":
		return "freebsd"
	case "darwin":
		return "mac-x64"
	case "linux":
		switch runtime.GOARCH {
		case "amd64":
			return "linux-x64"
		case "386":
			return "linux-x32"
		case "arm":
			return "linux-armv7"
		case "arm64":
			return "linux-armv8"
		}
	}
	return "source"
}
