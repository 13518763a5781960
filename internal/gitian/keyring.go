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

// Package gitian corroborates a release artifact against a threshold of
// reproducible-build attestations signed by known release engineers.
package gitian

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/crypto/openpgp"
	pgperrors "golang.org/x/crypto/openpgp/errors"
	"k8s.io/klog/v2"

	"github.com/monero-ecosystem/monero-update/api"
)

// PublicKeyEntry binds a signer identity to their armored OpenPGP public
// key. The set shipped with the binary is immutable.
type PublicKeyEntry struct {
	Identity   string
	ArmoredKey string
}

// Keyring is an ephemeral OpenPGP keyring. Key material lives in memory
// and, mirroring a private GPG home, in an owner-only temporary directory
// which Close removes.
type Keyring struct {
	home         string
	ring         openpgp.EntityList
	fingerprints map[string]string
}

// NewKeyring creates an empty keyring rooted at a fresh owner-only
// directory.
func NewKeyring() (*Keyring, error) {
	home, err := os.MkdirTemp("", "monero-update-gpg-")
	if err != nil {
		return nil, fmt.Errorf("creating keyring home: %v", err)
	}
	if err := os.Chmod(home, 0o700); err != nil {
		os.RemoveAll(home)
		return nil, fmt.Errorf("restricting keyring home: %v", err)
	}
	return &Keyring{home: home, fingerprints: make(map[string]string)}, nil
}

// Import parses entry's armored key, stores it, and returns the primary
// key fingerprint (uppercase hex). The imported key is accepted for
// signature verification from here on; recording its fingerprint is the
// trust-on-first-use marking.
func (k *Keyring) Import(entry PublicKeyEntry) (string, error) {
	el, err := openpgp.ReadArmoredKeyRing(strings.NewReader(entry.ArmoredKey))
	if err != nil {
		return "", fmt.Errorf("parsing key for %s: %v", entry.Identity, err)
	}
	if len(el) == 0 {
		return "", fmt.Errorf("no key material for %s", entry.Identity)
	}

	fingerprint := fmt.Sprintf("%X", el[0].PrimaryKey.Fingerprint)
	if err := k.persist(el); err != nil {
		return "", fmt.Errorf("persisting key for %s: %v", entry.Identity, err)
	}
	k.ring = append(k.ring, el...)
	k.fingerprints[fingerprint] = entry.Identity
	return fingerprint, nil
}

// persist appends the public keys to the on-disk ring inside the keyring
// home.
func (k *Keyring) persist(el openpgp.EntityList) error {
	f, err := os.OpenFile(filepath.Join(k.home, "pubring.gpg"), os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o600)
	if err != nil {
		return err
	}
	for _, e := range el {
		if err := e.Serialize(f); err != nil {
			f.Close()
			return err
		}
	}
	return f.Close()
}

// Identity returns the identity an imported fingerprint resolves to.
func (k *Keyring) Identity(fingerprint string) (string, bool) {
	id, ok := k.fingerprints[fingerprint]
	return id, ok
}

// Fingerprints returns a copy of the fingerprint → identity table.
func (k *Keyring) Fingerprints() map[string]string {
	m := make(map[string]string, len(k.fingerprints))
	for fpr, id := range k.fingerprints {
		m[fpr] = id
	}
	return m
}

// VerifyDetached checks a detached signature over signed. It returns
// TriTrue with the signer's primary fingerprint on success, TriUnknown
// when the signature cannot be checked (unknown issuer), and TriFalse for
// an invalid signature.
func (k *Keyring) VerifyDetached(signed, sig []byte) (api.Tristate, string) {
	var signer *openpgp.Entity
	var err error
	if bytes.Contains(sig, []byte("-----BEGIN PGP SIGNATURE-----")) {
		signer, err = openpgp.CheckArmoredDetachedSignature(k.ring, bytes.NewReader(signed), bytes.NewReader(sig))
	} else {
		signer, err = openpgp.CheckDetachedSignature(k.ring, bytes.NewReader(signed), bytes.NewReader(sig))
	}
	switch {
	case err == nil:
		return api.TriTrue, fmt.Sprintf("%X", signer.PrimaryKey.Fingerprint)
	case err == pgperrors.ErrUnknownIssuer:
		return api.TriUnknown, ""
	default:
		klog.V(1).Infof("signature verification: %v", err)
		return api.TriFalse, ""
	}
}

// Close removes the on-disk keyring home. The in-memory ring dies with the
// process.
func (k *Keyring) Close() {
	if k.home == "" {
		return
	}
	if err := os.RemoveAll(k.home); err != nil {
		klog.Warningf("removing keyring home: %v", err)
	}
	k.home = ""
}

// ImportAll imports every compiled-in key into a fresh keyring. Any
// failure discards nothing: partially imported keys stay in the returned
// ephemeral ring, whose on-disk home the caller removes with Close.
func ImportAll(entries []PublicKeyEntry, logf func(string)) (*Keyring, error) {
	k, err := NewKeyring()
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		fingerprint, err := k.Import(entry)
		if err != nil {
			return k, err
		}
		logf("Imported key " + fingerprint + " from " + entry.Identity)
	}
	return k, nil
}
