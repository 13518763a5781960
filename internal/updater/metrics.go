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

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	metricsOnce sync.Once

	counterStateEntered  *prometheus.CounterVec
	gaugeGitianTotal     prometheus.Gauge
	gaugeGitianProcessed prometheus.Gauge
	gaugeGitianValid     prometheus.Gauge
	counterDownloads     *prometheus.CounterVec
)

func initMetrics() {
	metricsOnce.Do(func() {
		counterStateEntered = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "updater_state_entered_total",
			Help: "Number of times each lifecycle state was entered",
		}, []string{"state"})
		gaugeGitianTotal = prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "updater_gitian_sigs_total",
			Help: "Candidate Gitian signers discovered for the current run",
		})
		gaugeGitianProcessed = prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "updater_gitian_sigs_processed",
			Help: "Candidate Gitian signers processed so far",
		})
		gaugeGitianValid = prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "updater_gitian_sigs_valid",
			Help: "Distinct known signers with hash-matching attestations",
		})
		counterDownloads = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "updater_downloads_total",
			Help: "Artifact download attempts by outcome",
		}, []string{"outcome"})

		prometheus.MustRegister(
			counterStateEntered,
			gaugeGitianTotal,
			gaugeGitianProcessed,
			gaugeGitianValid,
			counterDownloads,
		)
	})
}
