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

package updater

import "github.com/monero-ecosystem/monero-update/api"

// State is a node of the update lifecycle. Every state carries a fixed
// outcome and display string; states with a non-Unknown outcome are
// terminal.
type State int

const (
	StateNone State = iota
	StateInit
	StateQueryDNS
	StateDNSFailed
	StateCheckVersion
	StateUpToDate
	StateBackInTime
	StateNoUpdateInfoFound
	StateDownload
	StateDownloadFailed
	StateCheckHash
	StateBadHash
	StateImportPubkeys
	StatePubkeyImportFailed
	StateFetchGitianSigs
	StateVerifyGitianSignatures
	StateNoGitianSigs
	StateNotEnoughGitianSigs
	StateBadGitianSigs
	StateValidUpdate
)

var stateInfo = [...]struct {
	outcome api.Tristate
	name    string
}{
	StateNone:                   {api.TriUnknown, "None"},
	StateInit:                   {api.TriUnknown, "Initializing"},
	StateQueryDNS:               {api.TriUnknown, "Querying DNS"},
	StateDNSFailed:              {api.TriFalse, "DNS check failed"},
	StateCheckVersion:           {api.TriUnknown, "Checking version"},
	StateUpToDate:               {api.TriTrue, "We are up to date"},
	StateBackInTime:             {api.TriTrue, "Only old versions found"},
	StateNoUpdateInfoFound:      {api.TriFalse, "No update information found"},
	StateDownload:               {api.TriUnknown, "Downloading update"},
	StateDownloadFailed:         {api.TriFalse, "Download failed"},
	StateCheckHash:              {api.TriUnknown, "Checking hash"},
	StateBadHash:                {api.TriFalse, "Invalid hash"},
	StateImportPubkeys:          {api.TriUnknown, "Importing public keys"},
	StatePubkeyImportFailed:     {api.TriFalse, "Failed to import public keys"},
	StateFetchGitianSigs:        {api.TriUnknown, "Fetching Gitian signatures"},
	StateVerifyGitianSignatures: {api.TriUnknown, "Verifying Gitian signatures"},
	StateNoGitianSigs:           {api.TriFalse, "No Gitian signatures found"},
	StateNotEnoughGitianSigs:    {api.TriFalse, "Not enough matching Gitian signatures found"},
	StateBadGitianSigs:          {api.TriFalse, "At least one Gitian signature was invalid"},
	StateValidUpdate:            {api.TriTrue, "Valid update downloaded and verified"},
}

// Outcome returns the tristate the state resolves to.
func (s State) Outcome() api.Tristate {
	if s < 0 || int(s) >= len(stateInfo) {
		return api.TriUnknown
	}
	return stateInfo[s].outcome
}

// String returns the display string shown to the user.
func (s State) String() string {
	if s < 0 || int(s) >= len(stateInfo) {
		return "None"
	}
	return stateInfo[s].name
}

// Terminal reports whether the state ends a run.
func (s State) Terminal() bool {
	return s.Outcome() != api.TriUnknown
}
