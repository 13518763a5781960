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

// Package updater drives the update verification lifecycle: DNS consensus,
// version selection, key import, Gitian threshold verification, download
// and hash check, in that order, each step gated on its predecessor.
package updater

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"k8s.io/klog/v2"

	"github.com/monero-ecosystem/monero-update/api"
	"github.com/monero-ecosystem/monero-update/internal/bus"
	"github.com/monero-ecosystem/monero-update/internal/dnssec"
	"github.com/monero-ecosystem/monero-update/internal/fetcher"
	"github.com/monero-ecosystem/monero-update/internal/gitian"
	"github.com/monero-ecosystem/monero-update/internal/urls"
	"github.com/monero-ecosystem/monero-update/internal/version"
)

// pollInterval is the cadence of the state machine loop.
const pollInterval = 20 * time.Millisecond

// Fetcher is the HTTP collaborator surface the updater needs.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
	Download(ctx context.Context, url, path string, onProgress fetcher.ProgressFunc, onDone fetcher.DoneFunc)
}

// Config carries the inputs of one updater instance.
type Config struct {
	// Software is the base software identity ("monero"). Select appends
	// the variant suffix.
	Software string
	// BuildTag identifies the local platform build.
	BuildTag string
	// CurrentVersion is the locally installed version, empty on first run.
	CurrentVersion string
	// DNSHosts are the DNSSEC TXT endpoints queried for update records.
	DNSHosts []string
	// MinGitianSigs is the acceptance threshold of distinct matching
	// attestations.
	MinGitianSigs uint32
	// PublicKeys is the compiled-in release engineer key set.
	PublicKeys []gitian.PublicKeyEntry
}

// Updater is the verification state machine. Create one with New, drive it
// with Run, and observe it through the notification bus.
type Updater struct {
	mu sync.Mutex

	cfg      Config
	bus      *bus.Bus
	resolver dnssec.TXTResolver
	fetcher  Fetcher

	state     State
	nextState State

	software     string
	ver          string
	expectedHash string

	dnsValid  api.Tristate
	hashValid api.Tristate

	validSigs     uint32
	minValidSigs  uint32
	totalSigs     uint32
	processedSigs uint32

	dnsResults  []dnssec.QueryResult
	goodRecords []string

	dnsQueryDone     bool
	versionCheckDone bool

	importDone    bool
	importSuccess bool

	verifyDone    bool
	verifySuccess bool
	badSigFound   bool

	downloadDone    bool
	downloadSuccess bool

	keyring      *gitian.Keyring
	downloadPath string
	messages     []string
}

// New builds an Updater and queues its Init transition. Run must be called
// for anything to happen.
func New(cfg Config, b *bus.Bus, resolver dnssec.TXTResolver, f Fetcher) *Updater {
	initMetrics()
	u := &Updater{
		cfg:      cfg,
		bus:      b,
		resolver: resolver,
		fetcher:  f,
		software: cfg.Software,
	}
	u.setState(StateInit)
	return u
}

// Run drives the state machine until ctx is cancelled.
func (u *Updater) Run(ctx context.Context) {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		u.changeState(ctx)

		u.mu.Lock()
		state := u.state
		dnsQueryDone, goodRecords := u.dnsQueryDone, u.goodRecords
		versionCheckDone, ver := u.versionCheckDone, u.ver
		importDone, importSuccess := u.importDone, u.importSuccess
		verifyDone, verifySuccess, badSigFound := u.verifyDone, u.verifySuccess, u.badSigFound
		downloadDone, downloadSuccess := u.downloadDone, u.downloadSuccess
		hashValid := u.hashValid
		currentVersion := u.cfg.CurrentVersion
		u.mu.Unlock()

		switch state {
		case StateQueryDNS:
			if !dnsQueryDone {
				break
			}
			if len(goodRecords) == 0 {
				u.setState(StateDNSFailed)
			} else {
				u.setState(StateCheckVersion)
			}
		case StateCheckVersion:
			if !versionCheckDone {
				break
			}
			if ver == "" {
				u.setState(StateNoUpdateInfoFound)
				break
			}
			switch cmp := version.Compare(ver, currentVersion); {
			case cmp > 0:
				u.setState(StateImportPubkeys)
			case cmp < 0:
				u.setState(StateBackInTime)
			default:
				u.setState(StateUpToDate)
			}
		case StateImportPubkeys:
			if !importDone {
				break
			}
			if importSuccess {
				u.setState(StateFetchGitianSigs)
			} else {
				u.setState(StatePubkeyImportFailed)
			}
		case StateVerifyGitianSignatures:
			if !verifyDone {
				break
			}
			switch {
			case verifySuccess:
				u.setState(StateDownload)
			case !badSigFound:
				u.setState(StateNotEnoughGitianSigs)
			default:
				u.setState(StateBadGitianSigs)
			}
		case StateDownload:
			if !downloadDone {
				break
			}
			if downloadSuccess {
				u.setState(StateCheckHash)
			} else {
				u.setState(StateDownloadFailed)
			}
		case StateCheckHash:
			switch hashValid {
			case api.TriTrue:
				u.setState(StateValidUpdate)
			case api.TriFalse:
				u.setState(StateBadHash)
			}
		}
	}
}

// setState queues s as the pending next state; the loop commits it.
func (u *Updater) setState(s State) {
	u.mu.Lock()
	u.nextState = s
	u.mu.Unlock()
}

// changeState commits a pending state change, notifies observers and runs
// the new state's on-entry action. Notifications go out after the session
// mutex is released.
func (u *Updater) changeState(ctx context.Context) {
	u.mu.Lock()
	if u.state == u.nextState {
		u.mu.Unlock()
		return
	}
	u.state = u.nextState
	s := u.state
	u.mu.Unlock()

	counterStateEntered.WithLabelValues(s.String()).Inc()
	u.bus.Publish(api.StateChanged{Name: s.String()})
	u.bus.Publish(api.StateOutcomeChanged{Outcome: s.Outcome()})
	u.bus.Publish(api.SelectingChanged{Selecting: s == StateInit})

	switch s {
	case StateInit:
		u.resetGates()
	case StateQueryDNS:
		u.queryDNS(ctx)
	case StateCheckVersion:
		u.checkVersion()
	case StateImportPubkeys:
		u.importPubkeys()
	case StateFetchGitianSigs:
		u.fetchGitianSigs(ctx)
	case StateDownload:
		u.startDownload(ctx)
	case StateCheckHash:
		u.checkHash()
	}
}

func (u *Updater) resetGates() {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.dnsQueryDone = false
	u.versionCheckDone = false
	u.setDNSValidLocked(api.TriUnknown)
	u.setHashValidLocked(api.TriUnknown)
	u.setValidSigsLocked(0)
	u.setMinValidSigsLocked(0)
	u.badSigFound = false
}

// queryDNS runs the DNS consensus resolver and publishes its verdict.
func (u *Updater) queryDNS(ctx context.Context) {
	u.mu.Lock()
	u.dnsQueryDone = false
	u.setDNSValidLocked(api.TriUnknown)
	hosts := u.cfg.DNSHosts
	u.mu.Unlock()

	results := dnssec.QueryAll(ctx, u.resolver, hosts, u.addMessage)
	records, ok := dnssec.Consensus(hosts, results, u.addMessage)

	u.mu.Lock()
	u.dnsResults = results
	u.goodRecords = records
	if ok {
		u.setDNSValidLocked(api.TriTrue)
	} else {
		u.setDNSValidLocked(api.TriFalse)
	}
	u.dnsQueryDone = true
	u.mu.Unlock()
}

// checkVersion selects the newest advertised version for the local
// (software, build tag) from the consensus records.
func (u *Updater) checkVersion() {
	u.mu.Lock()
	u.versionCheckDone = false
	u.ver = ""
	software, buildTag, records := u.software, u.cfg.BuildTag, u.goodRecords
	u.mu.Unlock()
	u.bus.Publish(api.VersionChanged{Version: ""})

	ver, hash := version.Select(software, buildTag, records, u.addMessage)

	u.mu.Lock()
	u.ver = ver
	if ver != "" {
		u.expectedHash = hash
	}
	u.versionCheckDone = true
	u.mu.Unlock()
	if ver != "" {
		u.bus.Publish(api.VersionChanged{Version: ver})
	}
}

// importPubkeys builds the ephemeral keyring from the compiled-in key set.
func (u *Updater) importPubkeys() {
	u.mu.Lock()
	u.importDone = false
	u.importSuccess = false
	keys := u.cfg.PublicKeys
	u.mu.Unlock()

	k, err := gitian.ImportAll(keys, u.addMessage)
	if err != nil {
		klog.Errorf("Failed to import public keys: %v", err)
		u.addMessage("Failed to import public keys")
		if k != nil {
			k.Close()
		}
	}

	u.mu.Lock()
	u.keyring = k
	u.importSuccess = err == nil
	u.importDone = true
	u.mu.Unlock()
}

// fetchGitianSigs runs the Gitian verifier. The ephemeral keyring is
// removed when it returns, on every path.
func (u *Updater) fetchGitianSigs(ctx context.Context) {
	u.mu.Lock()
	u.verifyDone = false
	u.verifySuccess = false
	u.badSigFound = false
	u.setTotalSigsLocked(0)
	u.setProcessedSigsLocked(0)
	u.setMinValidSigsLocked(u.cfg.MinGitianSigs)
	software, buildTag := u.software, u.cfg.BuildTag
	ver, expected := u.ver, u.expectedHash
	keyring := u.keyring
	minSigs := u.cfg.MinGitianSigs
	u.mu.Unlock()

	v := &gitian.Verifier{Fetcher: u.fetcher, Keyring: keyring}
	res := v.Run(ctx, software, buildTag, ver, expected, gitian.Hooks{
		Logf:         u.addMessage,
		OnVerifying:  func() { u.setState(StateVerifyGitianSignatures) },
		SetTotal:     u.setTotalSigs,
		SetProcessed: u.setProcessedSigs,
		SetValid:     u.setValidSigs,
	})

	if keyring != nil {
		keyring.Close()
	}

	u.mu.Lock()
	u.verifySuccess = res.Succeeded(minSigs)
	u.badSigFound = res.BadFound
	u.verifyDone = true
	u.mu.Unlock()

	if !res.Found {
		u.setState(StateNoGitianSigs)
	}
}

// startDownload stages the artifact download to a unique temporary path.
func (u *Updater) startDownload(ctx context.Context) {
	u.mu.Lock()
	subdir := urls.Subdir(u.software, u.cfg.BuildTag)
	url := urls.Update(u.software, subdir, u.cfg.BuildTag, u.ver)
	filename := urls.Filename(url)
	u.downloadDone = false
	u.downloadSuccess = false

	f, err := os.CreateTemp("", "monero-update-*-"+filename)
	if err != nil {
		u.downloadDone = true
		u.mu.Unlock()
		u.addMessage("Failed to create download file: " + err.Error())
		return
	}
	path := f.Name()
	f.Close()
	u.downloadPath = path
	u.mu.Unlock()

	u.addMessage("Downloading " + url + " to " + path)

	u.fetcher.Download(ctx, url, path,
		func(downloaded uint64, contentLength int64) {
			u.bus.Publish(api.DownloadProgress{Downloaded: downloaded, ContentLength: contentLength})
		},
		func(success bool) {
			if success {
				u.addMessage("Download finished: success")
				counterDownloads.WithLabelValues("success").Inc()
			} else {
				u.addMessage("Download finished: failed")
				counterDownloads.WithLabelValues("failure").Inc()
			}
			u.mu.Lock()
			u.downloadDone = true
			u.downloadSuccess = success
			u.mu.Unlock()
			u.bus.Publish(api.DownloadFinished{Success: success})
		})
	u.bus.Publish(api.DownloadStarted{})
}

// checkHash compares the staged file's SHA-256 against the hash the DNS
// records advertised.
func (u *Updater) checkHash() {
	u.mu.Lock()
	u.setHashValidLocked(api.TriUnknown)
	path, expected := u.downloadPath, u.expectedHash
	u.mu.Unlock()

	sum, err := sha256File(path)
	if err != nil {
		u.addMessage("Error calculating file hash")
		u.mu.Lock()
		u.setHashValidLocked(api.TriFalse)
		u.mu.Unlock()
		return
	}
	digest := hex.EncodeToString(sum)
	if !strings.EqualFold(digest, expected) {
		u.addMessage("Invalid file hash")
		u.mu.Lock()
		u.setHashValidLocked(api.TriFalse)
		u.mu.Unlock()
		return
	}
	u.addMessage("Update verified, hash " + digest)
	u.bus.Publish(api.ValidUpdateReady{Path: path})
	u.mu.Lock()
	u.setHashValidLocked(api.TriTrue)
	u.mu.Unlock()
}

func sha256File(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return nil, err
	}
	return h.Sum(nil), nil
}

// Select chooses the software variant while the engine is in Init, then
// starts the DNS query.
func (u *Updater) Select(variant string) {
	u.mu.Lock()
	switch variant {
	case "gui":
		u.software = u.cfg.Software + "-gui"
	case "cli":
		u.software = u.cfg.Software
	default:
		u.mu.Unlock()
		klog.Errorf("Invalid selection: %s", variant)
		return
	}
	u.mu.Unlock()
	u.setState(StateQueryDNS)
}

// RetryDownload re-enters Download after a failed download. It is a no-op
// in any other state.
func (u *Updater) RetryDownload() {
	u.mu.Lock()
	retry := u.state == StateDownloadFailed
	u.mu.Unlock()
	if retry {
		u.setState(StateDownload)
	}
}

// addMessage records a diagnostic line and publishes it.
func (u *Updater) addMessage(s string) {
	klog.Infof("UI message: %s", s)
	u.mu.Lock()
	u.messages = append(u.messages, s)
	u.mu.Unlock()
	u.bus.Publish(api.Message{Text: s})
}

func (u *Updater) setDNSValidLocked(t api.Tristate) {
	u.dnsValid = t
	u.bus.Publish(api.DNSValidChanged{Valid: t})
}

func (u *Updater) setHashValidLocked(t api.Tristate) {
	u.hashValid = t
	u.bus.Publish(api.HashValidChanged{Valid: t})
}

func (u *Updater) setValidSigs(n uint32) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.setValidSigsLocked(n)
}

func (u *Updater) setValidSigsLocked(n uint32) {
	u.validSigs = n
	gaugeGitianValid.Set(float64(n))
	u.bus.Publish(api.ValidGitianSigsChanged{Count: n})
}

func (u *Updater) setMinValidSigsLocked(n uint32) {
	u.minValidSigs = n
	u.bus.Publish(api.MinValidGitianSigsChanged{Count: n})
}

func (u *Updater) setProcessedSigs(n uint32) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.setProcessedSigsLocked(n)
}

func (u *Updater) setProcessedSigsLocked(n uint32) {
	u.processedSigs = n
	gaugeGitianProcessed.Set(float64(n))
	u.bus.Publish(api.ProcessedGitianSigsChanged{Count: n})
}

func (u *Updater) setTotalSigs(n uint32) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.setTotalSigsLocked(n)
}

func (u *Updater) setTotalSigsLocked(n uint32) {
	u.totalSigs = n
	gaugeGitianTotal.Set(float64(n))
	u.bus.Publish(api.TotalGitianSigsChanged{Count: n})
}

// State returns the current lifecycle state.
func (u *Updater) State() State {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.state
}

// Selecting reports whether the engine is waiting for a variant choice.
func (u *Updater) Selecting() bool {
	return u.State() == StateInit
}

// Version returns the selected update version, empty before selection.
func (u *Updater) Version() string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.ver
}

// DownloadPath returns the staged artifact path.
func (u *Updater) DownloadPath() string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.downloadPath
}

// Messages returns a copy of the diagnostic log.
func (u *Updater) Messages() []string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]string(nil), u.messages...)
}
