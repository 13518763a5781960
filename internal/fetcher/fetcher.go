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

// Package fetcher is the HTTP collaborator: bounded in-memory fetches for
// small documents and asynchronous streaming downloads for artifacts.
package fetcher

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/machinebox/progress"
	"go.mercari.io/go-dnscache"
	"k8s.io/klog/v2"
)

const (
	fetchTimeout    = 30 * time.Second
	downloadTimeout = 5 * time.Minute

	dnsUpdateFreq    = 3 * time.Minute
	dnsUpdateTimeout = 5 * time.Second

	progressInterval = 500 * time.Millisecond
)

// ProgressFunc receives streaming download progress. contentLength is <= 0
// when the server did not advertise one.
type ProgressFunc func(downloaded uint64, contentLength int64)

// DoneFunc receives the final download outcome.
type DoneFunc func(success bool)

// Client fetches over HTTP with cached DNS resolution.
type Client struct {
	hc *http.Client
}

// New returns a Client. DNS lookups for repeated fetches against the same
// hosts are cached.
func New() (*Client, error) {
	resolver, err := dnscache.New(dnsUpdateFreq, dnsUpdateTimeout)
	if err != nil {
		return nil, fmt.Errorf("failed to create DNS cache: %v", err)
	}
	hc := &http.Client{
		Transport: &http.Transport{
			DialContext: dnscache.DialFunc(resolver, (&net.Dialer{
				Timeout:   30 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext),
			MaxIdleConns:          100,
			IdleConnTimeout:       90 * time.Second,
			ResponseHeaderTimeout: 10 * time.Second,
			TLSHandshakeTimeout:   10 * time.Second,
		},
	}
	return &Client{hc: hc}, nil
}

// Fetch retrieves url into memory. A 404 returns os.ErrNotExist so callers
// can distinguish absent documents from transport failures.
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http.Client.Do(): %v", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			klog.Errorf("resp.Body.Close(): %v", err)
		}
	}()

	switch resp.StatusCode {
	case http.StatusNotFound:
		klog.Infof("Not found: %q", url)
		return nil, os.ErrNotExist
	case http.StatusOK:
	default:
		return nil, fmt.Errorf("unexpected http status %q", resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// Download streams url to path in the background, reporting progress at a
// fixed cadence and the final outcome exactly once. The file at path is
// created (or truncated) before the body is read.
func (c *Client) Download(ctx context.Context, url, path string, onProgress ProgressFunc, onDone DoneFunc) {
	go func() {
		err := c.download(ctx, url, path, onProgress)
		if err != nil {
			klog.Warningf("Download of %q failed: %v", url, err)
		}
		onDone(err == nil)
	}()
}

func (c *Client) download(ctx context.Context, url, path string, onProgress ProgressFunc) error {
	ctx, cancel := context.WithTimeout(ctx, downloadTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("http.Client.Do(): %v", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			klog.Errorf("resp.Body.Close(): %v", err)
		}
	}()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected http status %q", resp.Status)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	pr := progress.NewReader(resp.Body)
	if onProgress != nil {
		go func() {
			ticker := time.NewTicker(progressInterval)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					onProgress(uint64(pr.N()), resp.ContentLength)
				}
			}
		}()
	}

	_, err = io.Copy(f, pr)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}
	if onProgress != nil {
		onProgress(uint64(pr.N()), resp.ContentLength)
	}
	return nil
}
