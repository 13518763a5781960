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

// Package dnssec resolves update TXT records over DNSSEC-validated
// channels and derives a consensus record set from them.
package dnssec

import (
	"context"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/miekg/dns"
	"k8s.io/klog/v2"
)

const (
	// queryTimeout bounds a single TXT exchange. The state transitions do
	// not depend on it; a timed-out endpoint is simply not valid.
	queryTimeout = 10 * time.Second

	resolvConf = "/etc/resolv.conf"
)

// QueryResult is the outcome of one TXT lookup against one endpoint.
type QueryResult struct {
	// Records holds the TXT strings in response order.
	Records []string
	// DNSSECAvailable is set when the response carried DNSSEC material.
	DNSSECAvailable bool
	// DNSSECValid is set when the validating resolver authenticated the data.
	DNSSECValid bool
}

// TXTResolver performs a single DNSSEC-aware TXT lookup.
type TXTResolver interface {
	LookupTXT(ctx context.Context, host string) (QueryResult, error)
}

// Client queries the system's validating resolver(s) with the DO bit set
// and trusts the AD flag on the response.
type Client struct {
	servers []string
	timeout time.Duration
}

// NewClient builds a Client from the system resolver configuration.
func NewClient() (*Client, error) {
	conf, err := dns.ClientConfigFromFile(resolvConf)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %v", resolvConf, err)
	}
	if len(conf.Servers) == 0 {
		return nil, fmt.Errorf("no nameservers in %s", resolvConf)
	}
	servers := make([]string, 0, len(conf.Servers))
	for _, s := range conf.Servers {
		servers = append(servers, net.JoinHostPort(s, conf.Port))
	}
	return &Client{servers: servers, timeout: queryTimeout}, nil
}

// LookupTXT queries host for TXT records. The first resolver that answers
// wins; its AD flag decides validity.
func (c *Client) LookupTXT(ctx context.Context, host string) (QueryResult, error) {
	m := new(dns.Msg)
	m.SetQuestion(dns.Fqdn(host), dns.TypeTXT)
	m.SetEdns0(4096, true)
	m.AuthenticatedData = true

	cl := &dns.Client{Timeout: c.timeout}

	var lastErr error
	for _, server := range c.servers {
		in, _, err := cl.ExchangeContext(ctx, m, server)
		if err != nil {
			lastErr = err
			klog.V(1).Infof("TXT %s @%s: %v", host, server, err)
			continue
		}
		if in.Rcode != dns.RcodeSuccess {
			lastErr = fmt.Errorf("TXT %s: rcode %s", host, dns.RcodeToString[in.Rcode])
			continue
		}

		res := QueryResult{DNSSECValid: in.AuthenticatedData}
		for _, rr := range in.Answer {
			switch t := rr.(type) {
			case *dns.TXT:
				res.Records = append(res.Records, strings.Join(t.Txt, ""))
			case *dns.RRSIG:
				res.DNSSECAvailable = true
			}
		}
		if in.AuthenticatedData {
			res.DNSSECAvailable = true
		}
		return res, nil
	}
	return QueryResult{}, lastErr
}
