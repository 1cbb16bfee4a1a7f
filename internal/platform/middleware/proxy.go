// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"strings"

	"github.com/taibuivan/yamdb/internal/platform/constants"
)

// # Proxy Trust

// ProxyTrust is the set of peers allowed to report the client address through
// X-Real-IP and X-Forwarded-For. A nil or empty ProxyTrust trusts nobody.
type ProxyTrust struct {
	networks []netip.Prefix
}

/*
NewProxyTrust parses trusted proxy entries.

Parameters:
  - entries: []string (single addresses or CIDR ranges)

Returns:
  - *ProxyTrust: The parsed set
  - error: The first entry that is neither an address nor a prefix
*/
func NewProxyTrust(entries []string) (*ProxyTrust, error) {
	trust := &ProxyTrust{}

	for _, entry := range entries {
		if entry = strings.TrimSpace(entry); entry == "" {
			continue
		}

		if !strings.Contains(entry, "/") {
			addr, err := netip.ParseAddr(entry)
			if err != nil {
				return nil, fmt.Errorf("middleware: invalid trusted proxy %q: %w", entry, err)
			}
			addr = addr.Unmap()
			trust.networks = append(trust.networks, netip.PrefixFrom(addr, addr.BitLen()))
			continue
		}

		prefix, err := netip.ParsePrefix(entry)
		if err != nil {
			return nil, fmt.Errorf("middleware: invalid trusted proxy %q: %w", entry, err)
		}
		trust.networks = append(trust.networks, prefix.Masked())
	}

	return trust, nil
}

// trusts reports whether ip belongs to a trusted proxy.
func (trust *ProxyTrust) trusts(ip string) bool {
	if trust == nil {
		return false
	}

	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	addr = addr.Unmap()

	for _, network := range trust.networks {
		if network.Contains(addr) {
			return true
		}
	}
	return false
}

/*
ClientIP resolves the originating client address.

Description: The socket peer is the answer unless it is a trusted proxy. From
a trusted proxy, X-Real-IP wins; otherwise X-Forwarded-For is walked from the
right and the first hop that is not itself a trusted proxy is the client.

Parameters:
  - request: *http.Request

Returns:
  - string: Client address without port
*/
func (trust *ProxyTrust) ClientIP(request *http.Request) string {
	peer := RealIP(request)
	if !trust.trusts(peer) {
		return peer
	}

	if ip := strings.TrimSpace(request.Header.Get(constants.HeaderXRealIP)); ip != "" {
		return ip
	}

	if forwarded := request.Header.Get(constants.HeaderXForwardedFor); forwarded != "" {
		hops := strings.Split(forwarded, ",")
		for i := len(hops) - 1; i >= 0; i-- {
			hop := strings.TrimSpace(hops[i])
			if hop != "" && !trust.trusts(hop) {
				return hop
			}
		}
	}

	return peer
}

// ForwardedClient rewrites RemoteAddr to the client reported by a trusted
// proxy, so [RealIP] and everything keyed on it see the real client. Requests
// from other peers are left untouched and their forwarding headers ignored.
func ForwardedClient(trust *ProxyTrust) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if client := trust.ClientIP(request); client != RealIP(request) {
				request.RemoteAddr = net.JoinHostPort(client, "0")
			}
			next.ServeHTTP(writer, request)
		})
	}
}
