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

package fetcher

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// testClient avoids the dnscache dialer so httptest servers resolve.
func testClient() *Client {
	return &Client{hc: http.DefaultClient}
}

func TestFetch(t *testing.T) {
	body := []byte("assert document")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			w.Write(body)
		case "/missing":
			http.NotFound(w, r)
		default:
			http.Error(w, "boom", http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	c := testClient()
	ctx := context.Background()

	got, err := c.Fetch(ctx, srv.URL+"/ok")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if !bytes.Equal(got, body) {
		t.Errorf("Fetch = %q, want %q", got, body)
	}

	if _, err := c.Fetch(ctx, srv.URL+"/missing"); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Fetch of missing document: err = %v, want os.ErrNotExist", err)
	}

	if _, err := c.Fetch(ctx, srv.URL+"/error"); err == nil {
		t.Error("Fetch of erroring document: got nil error")
	}
}

func TestDownload(t *testing.T) {
	body := bytes.Repeat([]byte("update artifact "), 4096)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(body)
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "artifact")
	done := make(chan bool, 1)
	var lastDownloaded uint64

	c := testClient()
	c.Download(context.Background(), srv.URL, path,
		func(downloaded uint64, _ int64) { lastDownloaded = downloaded },
		func(success bool) { done <- success },
	)

	select {
	case success := <-done:
		if !success {
			t.Fatal("download reported failure")
		}
	case <-time.After(10 * time.Second):
		t.Fatal("download did not finish")
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading downloaded file: %v", err)
	}
	if !bytes.Equal(got, body) {
		t.Errorf("downloaded %d bytes, want %d", len(got), len(body))
	}
	if lastDownloaded != uint64(len(body)) {
		t.Errorf("final progress = %d, want %d", lastDownloaded, len(body))
	}
}

func TestDownloadFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusInternalServerError)
	}))
	defer srv.Close()

	done := make(chan bool, 1)
	c := testClient()
	c.Download(context.Background(), srv.URL, filepath.Join(t.TempDir(), "artifact"), nil,
		func(success bool) { done <- success },
	)

	select {
	case success := <-done:
		if success {
			t.Fatal("download reported success for a 500 response")
		}
	case <-time.After(10 * time.Second):
		t.Fatal("download did not finish")
	}
}
