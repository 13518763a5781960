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

// monero-update checks for a newer release of the selected software
// variant over cross-validated DNSSEC channels, downloads it, and verifies
// it against a threshold of Gitian attestations before reporting the
// staged file.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/cheggaaa/pb/v3"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"k8s.io/klog/v2"

	"github.com/monero-ecosystem/monero-update/api"
	"github.com/monero-ecosystem/monero-update/internal/bus"
	"github.com/monero-ecosystem/monero-update/internal/config"
	"github.com/monero-ecosystem/monero-update/internal/dnssec"
	"github.com/monero-ecosystem/monero-update/internal/fetcher"
	"github.com/monero-ecosystem/monero-update/internal/gitian"
	"github.com/monero-ecosystem/monero-update/internal/updater"
)

var (
	variant        = flag.String("variant", "cli", "software variant to verify: gui or cli")
	currentVersion = flag.String("current_version", "", "locally installed version, empty on a first install")
	configPath     = flag.String("config", "", "optional YAML configuration file")
	metricsAddr    = flag.String("metrics_addr", "", "serve prometheus metrics on this address")
	retryDownload  = flag.Bool("retry_download", true, "retry a failed download once")
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	if *variant != "gui" && *variant != "cli" {
		klog.Exitf("Invalid -variant %q, must be gui or cli", *variant)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		klog.Exitf("Failed to load configuration: %v", err)
	}
	if *currentVersion != "" {
		cfg.CurrentVersion = *currentVersion
	}
	if *metricsAddr != "" {
		cfg.MetricsAddr = *metricsAddr
	}

	resolver, err := dnssec.NewClient()
	if err != nil {
		klog.Exitf("Failed to create DNS client: %v", err)
	}
	hc, err := fetcher.New()
	if err != nil {
		klog.Exitf("Failed to create HTTP client: %v", err)
	}

	b := bus.New()
	events := b.Subscribe(1024)

	u := updater.New(updater.Config{
		Software:       cfg.Software,
		BuildTag:       cfg.BuildTag,
		CurrentVersion: cfg.CurrentVersion,
		DNSHosts:       cfg.DNSHosts,
		MinGitianSigs:  cfg.MinGitianSigs,
		PublicKeys:     gitian.ReleaseKeys,
	}, b, resolver, hc)

	if cfg.MetricsAddr != "" {
		go func() {
			http.Handle("/metrics", promhttp.Handler())
			if err := http.ListenAndServe(cfg.MetricsAddr, nil); err != nil {
				klog.Errorf("Metrics listener: %v", err)
			}
		}()
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	go u.Run(ctx)

	os.Exit(observe(ctx, u, events))
}

// observe renders bus events until the engine reaches a terminal state.
func observe(ctx context.Context, u *updater.Updater, events <-chan api.Event) int {
	var bar *pb.ProgressBar
	var stagedPath string
	retried := false

	for {
		select {
		case <-ctx.Done():
			return 1
		case ev, ok := <-events:
			if !ok {
				return 1
			}
			switch e := ev.(type) {
			case api.SelectingChanged:
				if e.Selecting {
					u.Select(*variant)
				}
			case api.StateChanged:
				fmt.Println("State: " + e.Name)
			case api.Message:
				fmt.Println("  " + e.Text)
			case api.DownloadProgress:
				if bar == nil && e.ContentLength > 0 {
					bar = pb.Full.Start64(e.ContentLength)
				}
				if bar != nil {
					bar.SetCurrent(int64(e.Downloaded))
				}
			case api.DownloadFinished:
				if bar != nil {
					bar.Finish()
					bar = nil
				}
			case api.ValidUpdateReady:
				stagedPath = e.Path
			case api.StateOutcomeChanged:
				switch e.Outcome {
				case api.TriTrue:
					if stagedPath != "" {
						fmt.Println("Verified update staged at " + stagedPath)
					}
					return 0
				case api.TriFalse:
					if *retryDownload && !retried && u.State() == updater.StateDownloadFailed {
						retried = true
						fmt.Println("Retrying download")
						u.RetryDownload()
						continue
					}
					return 1
				}
			}
		}
	}
}
