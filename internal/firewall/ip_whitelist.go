package firewall

import (
	"context"
	"encoding/binary"
	"net"
	"net/netip"
	"strconv"
	"strings"

	"github.com/MKhiriev/integration-hub/models"
)

// GuardIPWhitelist is the name of [IPWhitelistGuard].
const GuardIPWhitelist = "IP Whitelist"

// IPWhitelistGuard admits only remote addresses listed in the service
// whitelist. Entries are exact addresses or IPv4 CIDR ranges. IPv6 ranges
// are not supported and never match; an IPv6 address can still be listed
// verbatim.
type IPWhitelistGuard struct{}

func NewIPWhitelistGuard() *IPWhitelistGuard {
	return &IPWhitelistGuard{}
}

func (g *IPWhitelistGuard) Name() string {
	return GuardIPWhitelist
}

func (g *IPWhitelistGuard) Inspect(_ context.Context, service models.ServiceConfig, in *models.Inspection) error {
	if strings.TrimSpace(service.IPWhitelist) == "" {
		return nil
	}

	remote := ""
	if in != nil {
		remote = hostOnly(strings.TrimSpace(in.RemoteAddr))
	}
	if remote == "" {
		return misconfigured(GuardIPWhitelist, "Unable to determine remote IP address.")
	}

	for _, entry := range strings.Split(service.IPWhitelist, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if matchEntry(remote, entry) {
			return nil
		}
	}

	return reject(GuardIPWhitelist, "Access denied for IP: %s", remote)
}

func matchEntry(ip, entry string) bool {
	if !strings.Contains(entry, "/") {
		return ip == entry
	}
	return inIPv4Range(ip, entry)
}

// inIPv4Range reports whether ip lies in the IPv4 range "subnet/bits".
// Malformed ranges and non-IPv4 operands never match.
func inIPv4Range(ip, cidr string) bool {
	subnet, bitsStr, _ := strings.Cut(cidr, "/")
	bits, err := strconv.Atoi(bitsStr)
	if err != nil || bits < 0 || bits > 32 {
		return false
	}

	ipVal, ok := ipv4ToUint32(ip)
	if !ok {
		return false
	}
	subnetVal, ok := ipv4ToUint32(strings.TrimSpace(subnet))
	if !ok {
		return false
	}

	var mask uint32
	if bits > 0 {
		mask = ^uint32(0) << (32 - bits)
	}
	return ipVal&mask == subnetVal&mask
}

func ipv4ToUint32(s string) (uint32, bool) {
	addr, err := netip.ParseAddr(s)
	if err != nil {
		return 0, false
	}
	addr = addr.Unmap()
	if !addr.Is4() {
		return 0, false
	}
	b := addr.As4()
	return binary.BigEndian.Uint32(b[:]), true
}

// hostOnly drops a port from "host:port" and "[v6]:port" forms.
func hostOnly(addr string) string {
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}
