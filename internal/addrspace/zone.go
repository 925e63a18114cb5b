// Package addrspace classifies probe targets into network zones.
//
// Classification is diagnostic only: it annotates probe outcomes and device
// echoes with the zone a target resolved to, and flags hints that disagree
// with it. It never blocks a probe, since local-network-access enforcement
// belongs to the browser.
package addrspace

import (
	"context"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/probelab/lanscope/internal/shared/types"
)

// LookupTimeout bounds the DNS resolution a zone classification may do.
const LookupTimeout = 5 * time.Second

// zoneRanges is parsed once at init for cheap containment checks.
var zoneRanges []zoneRange

type zoneRange struct {
	net  *net.IPNet
	zone types.AddressSpace
}

func init() {
	for _, r := range []struct {
		cidr string
		zone types.AddressSpace
	}{
		{"127.0.0.0/8", types.SpaceLoopback},  // IPv4 loopback
		{"0.0.0.0/8", types.SpaceLoopback},    // unspecified (routes to localhost)
		{"::1/128", types.SpaceLoopback},      // IPv6 loopback
		{"169.254.0.0/16", types.SpaceLocal},  // link-local
		{"fe80::/10", types.SpaceLocal},       // IPv6 link-local
		{"10.0.0.0/8", types.SpacePrivate},    // RFC 1918
		{"172.16.0.0/12", types.SpacePrivate}, // RFC 1918
		{"192.168.0.0/16", types.SpacePrivate},
		{"fc00::/7", types.SpacePrivate}, // IPv6 unique local
	} {
		_, ipNet, _ := net.ParseCIDR(r.cidr)
		zoneRanges = append(zoneRanges, zoneRange{net: ipNet, zone: r.zone})
	}
}

// ZoneOfIP returns the zone an IP belongs to. Anything outside the loopback,
// link-local, and private tables is public.
func ZoneOfIP(ip net.IP) types.AddressSpace {
	if ip == nil {
		return types.SpaceUnknown
	}
	for _, r := range zoneRanges {
		if r.net.Contains(ip) {
			return r.zone
		}
	}
	return types.SpacePublic
}

// ZoneOfHost classifies a hostname or IP literal. Hostnames are resolved
// with a bounded lookup; resolution failure yields unknown, never an error.
func ZoneOfHost(ctx context.Context, host string) types.AddressSpace {
	normalized := strings.TrimSpace(host)
	if normalized == "" {
		return types.SpaceUnknown
	}

	// Strip optional IPv6 zone suffix to keep ParseIP deterministic.
	if idx := strings.IndexByte(normalized, '%'); idx != -1 {
		normalized = normalized[:idx]
	}

	if ip := net.ParseIP(normalized); ip != nil {
		return ZoneOfIP(ip)
	}

	if normalized == "localhost" || strings.HasSuffix(normalized, ".localhost") {
		return types.SpaceLoopback
	}

	lookupCtx, cancel := context.WithTimeout(ctx, LookupTimeout)
	defer cancel()

	ips, err := net.DefaultResolver.LookupIPAddr(lookupCtx, normalized)
	if err != nil || len(ips) == 0 {
		return types.SpaceUnknown
	}
	return ZoneOfIP(ips[0].IP)
}

// ZoneOfURL classifies the host part of a URL.
func ZoneOfURL(ctx context.Context, rawURL string) types.AddressSpace {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Hostname() == "" {
		return types.SpaceUnknown
	}
	return ZoneOfHost(ctx, parsed.Hostname())
}

// ZoneOfAddr classifies a host:port remote address.
func ZoneOfAddr(addr string) types.AddressSpace {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		host = addr
	}
	if idx := strings.IndexByte(host, '%'); idx != -1 {
		host = host[:idx]
	}
	return ZoneOfIP(net.ParseIP(host))
}

// HintNote describes a mismatch between the user's address-space hint and
// the zone the target actually resolved to. Empty when they agree, when the
// hint carries no claim (none/unknown), or when resolution failed.
func HintNote(hint, resolved types.AddressSpace) string {
	if hint == "" || hint == types.SpaceNone || hint == types.SpaceUnknown {
		return ""
	}
	if resolved == types.SpaceUnknown || hint == resolved {
		return ""
	}
	return "address-space hint \"" + string(hint) + "\" does not match resolved zone \"" + string(resolved) + "\""
}
