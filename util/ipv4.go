package wireutil

import (
	"bytes"
	"net"

	cidr "github.com/apparentlymart/go-cidr/cidr"
	"github.com/pkg/errors"
)

// Parses an IPv4 network in the CIDR notation, e.g. 192.0.2.0/24.
// The IPv6 networks are rejected.
func ParseIPv4Network(network string) (*net.IPNet, error) {
	ip, ipNet, err := net.ParseCIDR(network)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to parse the network %s", network)
	}
	if ip.To4() == nil {
		return nil, errors.Errorf("network %s is not an IPv4 network", network)
	}
	return ipNet, nil
}

// Compares two IPv4 addresses. It returns a negative number when a
// is lower than b, zero when they are equal and a positive number
// otherwise.
func CompareIPv4(a, b net.IP) int {
	return bytes.Compare(a.To4(), b.To4())
}

// Checks if an address lies between the lower and upper bound,
// inclusive.
func IsInIPv4Range(ip, lb, ub net.IP) bool {
	return CompareIPv4(ip, lb) >= 0 && CompareIPv4(ip, ub) <= 0
}

// Checks if the range of addresses belongs to the network.
func IsIPv4RangeInNetwork(lb, ub net.IP, network *net.IPNet) bool {
	first, last := cidr.AddressRange(network)
	return CompareIPv4(lb, ub) <= 0 && IsInIPv4Range(lb, first, last) && IsInIPv4Range(ub, first, last)
}

// Returns the number of addresses in the network.
func IPv4NetworkSize(network *net.IPNet) uint64 {
	return cidr.AddressCount(network)
}
