package dhcp4config

import (
	"net"
	"time"

	"github.com/insomniacslk/dhcp/dhcpv4"
	"github.com/pkg/errors"
	wireutil "isc.org/optwire/util"
)

// Defaults of the optional network parameters.
const (
	// ICMP echo request timeout in milliseconds used by the ping check.
	DefaultPingTimeoutMs uint64 = 500
	// Time in seconds during which a declined address is not offered.
	DefaultProbationPeriod uint64 = 86400
	// Whether the server is authoritative for the network.
	DefaultAuthoritative = true
)

// Network (subnet) configuration.
type Net struct {
	ServerID     string        `json:"server_id,omitempty" yaml:"server_id,omitempty"`
	Ranges       []*IPRange    `json:"ranges,omitempty" yaml:"ranges,omitempty"`
	Reservations []*ReservedIP `json:"reservations,omitempty" yaml:"reservations,omitempty"`
	// Send an ICMP echo request before offering an address.
	PingCheck       bool    `json:"ping_check,omitempty" yaml:"ping_check,omitempty"`
	PingTimeoutMs   *uint64 `json:"ping_timeout_ms,omitempty" yaml:"ping_timeout_ms,omitempty"`
	ProbationPeriod *uint64 `json:"probation_period,omitempty" yaml:"probation_period,omitempty"`
	Authoritative   *bool   `json:"authoritative,omitempty" yaml:"authoritative,omitempty"`
	ServerName      string  `json:"server_name,omitempty" yaml:"server_name,omitempty"`
	FileName        string  `json:"file_name,omitempty" yaml:"file_name,omitempty"`
}

// Returns the ping check timeout.
func (n *Net) GetPingTimeout() time.Duration {
	timeout := DefaultPingTimeoutMs
	if n.PingTimeoutMs != nil {
		timeout = *n.PingTimeoutMs
	}
	return time.Duration(timeout) * time.Millisecond
}

// Returns the probation period of the declined addresses.
func (n *Net) GetProbationPeriod() time.Duration {
	period := DefaultProbationPeriod
	if n.ProbationPeriod != nil {
		period = *n.ProbationPeriod
	}
	return time.Duration(period) * time.Second
}

// Checks if the server is authoritative for the network.
func (n *Net) IsAuthoritative() bool {
	if n.Authoritative != nil {
		return *n.Authoritative
	}
	return DefaultAuthoritative
}

// Range of dynamically assigned addresses.
type IPRange struct {
	Start   string        `json:"start" yaml:"start"`
	End     string        `json:"end" yaml:"end"`
	Options Options       `json:"options" yaml:"options"`
	Config  NetworkConfig `json:"config" yaml:"config"`
	// Addresses in the range which must not be assigned.
	Except []string `json:"except,omitempty" yaml:"except,omitempty"`
	Class  string   `json:"class,omitempty" yaml:"class,omitempty"`
}

// Address reserved for the clients matching the condition.
type ReservedIP struct {
	IP        string        `json:"ip" yaml:"ip"`
	Options   Options       `json:"options" yaml:"options"`
	Condition Condition     `json:"match" yaml:"match"`
	Config    NetworkConfig `json:"config" yaml:"config"`
	Class     string        `json:"class,omitempty" yaml:"class,omitempty"`
}

// Reservation match condition. Exactly one of the client hardware
// address or the options must be specified.
type Condition struct {
	Chaddr  string   `json:"chaddr,omitempty" yaml:"chaddr,omitempty"`
	Options *Options `json:"options,omitempty" yaml:"options,omitempty"`
}

// Lease parameters.
type NetworkConfig struct {
	LeaseTime MinMax `json:"lease_time" yaml:"lease_time"`
}

// Lease time in seconds with optional bounds on the lease time
// requested by a client.
type MinMax struct {
	Default uint32  `json:"default" yaml:"default"`
	Min     *uint32 `json:"min,omitempty" yaml:"min,omitempty"`
	Max     *uint32 `json:"max,omitempty" yaml:"max,omitempty"`
}

// Options returned to the clients to which an address from a range or
// reservation has been assigned.
type Options struct {
	Values *OptionSet `json:"values" yaml:"values"`
}

// Returns the canonical options.
func (o Options) Get() dhcpv4.Options {
	return o.Values.Get()
}

// Checks that the minimum does not exceed the default and the default
// does not exceed the maximum.
func (m MinMax) validate() error {
	if m.Min != nil && *m.Min > m.Default {
		return errors.Errorf("minimum lease time %d is greater than the default %d", *m.Min, m.Default)
	}
	if m.Max != nil && *m.Max < m.Default {
		return errors.Errorf("maximum lease time %d is lower than the default %d", *m.Max, m.Default)
	}
	return nil
}

// Checks the network configuration against its CIDR.
func (n *Net) validate(network *net.IPNet) error {
	if n.ServerID != "" {
		if _, err := parseIPv4(n.ServerID); err != nil {
			return errors.WithMessage(err, "invalid server identifier")
		}
	}
	for i, r := range n.Ranges {
		if r == nil {
			return errors.Errorf("range %d is not specified", i)
		}
		if err := r.validate(network); err != nil {
			return errors.WithMessagef(err, "invalid range %d", i)
		}
	}
	for i, r := range n.Reservations {
		if r == nil {
			return errors.Errorf("reservation %d is not specified", i)
		}
		if err := r.validate(network); err != nil {
			return errors.WithMessagef(err, "invalid reservation %d", i)
		}
	}
	return nil
}

// Checks that the range is within the network and the excluded
// addresses belong to the range.
func (r *IPRange) validate(network *net.IPNet) error {
	start, err := parseIPv4(r.Start)
	if err != nil {
		return err
	}
	end, err := parseIPv4(r.End)
	if err != nil {
		return err
	}
	if !wireutil.IsIPv4RangeInNetwork(start, end, network) {
		return errors.Errorf("range %s-%s does not belong to the network %s", r.Start, r.End, network)
	}
	for _, except := range r.Except {
		ip, err := parseIPv4(except)
		if err != nil {
			return err
		}
		if !wireutil.IsInIPv4Range(ip, start, end) {
			return errors.Errorf("excluded address %s does not belong to the range %s-%s", except, r.Start, r.End)
		}
	}
	return r.Config.LeaseTime.validate()
}

// Checks that the reserved address is within the network and that
// the match condition is valid.
func (r *ReservedIP) validate(network *net.IPNet) error {
	ip, err := parseIPv4(r.IP)
	if err != nil {
		return err
	}
	if !network.Contains(ip) {
		return errors.Errorf("reserved address %s does not belong to the network %s", r.IP, network)
	}
	switch {
	case r.Condition.Chaddr != "" && r.Condition.Options != nil:
		return errors.New("match condition must specify either chaddr or options")
	case r.Condition.Chaddr != "":
		if _, err := net.ParseMAC(r.Condition.Chaddr); err != nil {
			return errors.Wrapf(err, "invalid chaddr %s", r.Condition.Chaddr)
		}
	case r.Condition.Options == nil || r.Condition.Options.Values == nil:
		return errors.New("match condition is not specified")
	}
	return r.Config.LeaseTime.validate()
}
