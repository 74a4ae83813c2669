package dhcp4config

import (
	dhcpmodel "isc.org/optwire/datamodel/dhcp"
)

// Standard DHCPv4 option definition. It associates an option code with
// the kind of value the option carries on the wire.
type dhcpOptionDefinition struct {
	Code uint8
	Name string
	Kind dhcpmodel.OptionKind
}

// DHCP option definition interface.
type DHCPOptionDefinition interface {
	GetCode() uint8
	GetName() string
	GetKind() dhcpmodel.OptionKind
}

// Returns option code.
func (def dhcpOptionDefinition) GetCode() uint8 {
	return def.Code
}

// Returns option name.
func (def dhcpOptionDefinition) GetName() string {
	return def.Name
}

// Returns the kind of the option value.
func (def dhcpOptionDefinition) GetKind() dhcpmodel.OptionKind {
	return def.Kind
}

// Interface to a lookup mechanism for finding standard DHCPv4 options.
type DHCPStdOptionDefinitionLookup interface {
	// Finds DHCP option definition by code.
	FindByCode(code uint8) DHCPOptionDefinition
}

// Implements lookup mechanism for standard DHCPv4 option definitions.
// The definitions are indexed by code.
type dhcpStdOptionDefinitionLookup struct {
	v4Defs map[uint8]dhcpOptionDefinition
}

// Creates standard DHCP option definition lookup instance. Options not
// listed here have no definition and are handled as binary data.
func NewStdDHCPOptionDefinitionLookup() DHCPStdOptionDefinitionLookup {
	lookup := &dhcpStdOptionDefinitionLookup{
		v4Defs: make(map[uint8]dhcpOptionDefinition),
	}
	for _, def := range getStdDHCPv4OptionDefs() {
		lookup.v4Defs[def.Code] = def
	}
	return lookup
}

// Finds a DHCP option definition by option code. It returns nil if the
// definition does not exist.
func (lookup dhcpStdOptionDefinitionLookup) FindByCode(code uint8) DHCPOptionDefinition {
	if def, ok := lookup.v4Defs[code]; ok {
		return def
	}
	return nil
}

// Returns the standard DHCPv4 option definitions (RFC 2132 and others).
func getStdDHCPv4OptionDefs() []dhcpOptionDefinition {
	return []dhcpOptionDefinition{
		{Code: 1, Name: "subnet-mask", Kind: dhcpmodel.IPKind},
		{Code: 2, Name: "time-offset", Kind: dhcpmodel.Int32Kind},
		{Code: 3, Name: "routers", Kind: dhcpmodel.IPListKind},
		{Code: 4, Name: "time-servers", Kind: dhcpmodel.IPListKind},
		{Code: 5, Name: "name-servers", Kind: dhcpmodel.IPListKind},
		{Code: 6, Name: "domain-name-servers", Kind: dhcpmodel.IPListKind},
		{Code: 7, Name: "log-servers", Kind: dhcpmodel.IPListKind},
		{Code: 8, Name: "cookie-servers", Kind: dhcpmodel.IPListKind},
		{Code: 9, Name: "lpr-servers", Kind: dhcpmodel.IPListKind},
		{Code: 10, Name: "impress-servers", Kind: dhcpmodel.IPListKind},
		{Code: 11, Name: "resource-location-servers", Kind: dhcpmodel.IPListKind},
		{Code: 12, Name: "host-name", Kind: dhcpmodel.StringKind},
		{Code: 13, Name: "boot-size", Kind: dhcpmodel.Uint16Kind},
		{Code: 14, Name: "merit-dump", Kind: dhcpmodel.StringKind},
		{Code: 15, Name: "domain-name", Kind: dhcpmodel.StringKind},
		{Code: 16, Name: "swap-server", Kind: dhcpmodel.IPKind},
		{Code: 17, Name: "root-path", Kind: dhcpmodel.StringKind},
		{Code: 18, Name: "extensions-path", Kind: dhcpmodel.StringKind},
		{Code: 19, Name: "ip-forwarding", Kind: dhcpmodel.BoolKind},
		{Code: 20, Name: "non-local-source-routing", Kind: dhcpmodel.BoolKind},
		{Code: 22, Name: "max-dgram-reassembly", Kind: dhcpmodel.Uint16Kind},
		{Code: 23, Name: "default-ip-ttl", Kind: dhcpmodel.Uint8Kind},
		{Code: 26, Name: "interface-mtu", Kind: dhcpmodel.Uint16Kind},
		{Code: 27, Name: "all-subnets-local", Kind: dhcpmodel.BoolKind},
		{Code: 28, Name: "broadcast-address", Kind: dhcpmodel.IPKind},
		{Code: 29, Name: "perform-mask-discovery", Kind: dhcpmodel.BoolKind},
		{Code: 30, Name: "mask-supplier", Kind: dhcpmodel.BoolKind},
		{Code: 31, Name: "router-discovery", Kind: dhcpmodel.BoolKind},
		{Code: 32, Name: "router-solicitation-address", Kind: dhcpmodel.IPKind},
		{Code: 35, Name: "arp-cache-timeout", Kind: dhcpmodel.Uint32Kind},
		{Code: 36, Name: "ieee802-3-encapsulation", Kind: dhcpmodel.BoolKind},
		{Code: 37, Name: "default-tcp-ttl", Kind: dhcpmodel.Uint8Kind},
		{Code: 38, Name: "tcp-keepalive-interval", Kind: dhcpmodel.Uint32Kind},
		{Code: 39, Name: "tcp-keepalive-garbage", Kind: dhcpmodel.BoolKind},
		{Code: 40, Name: "nis-domain", Kind: dhcpmodel.StringKind},
		{Code: 41, Name: "nis-servers", Kind: dhcpmodel.IPListKind},
		{Code: 42, Name: "ntp-servers", Kind: dhcpmodel.IPListKind},
		{Code: 43, Name: "vendor-encapsulated-options", Kind: dhcpmodel.SubOptionKind},
		{Code: 44, Name: "netbios-name-servers", Kind: dhcpmodel.IPListKind},
		{Code: 45, Name: "netbios-dd-server", Kind: dhcpmodel.IPListKind},
		{Code: 46, Name: "netbios-node-type", Kind: dhcpmodel.Uint8Kind},
		{Code: 47, Name: "netbios-scope", Kind: dhcpmodel.StringKind},
		{Code: 48, Name: "font-servers", Kind: dhcpmodel.IPListKind},
		{Code: 49, Name: "x-display-manager", Kind: dhcpmodel.IPListKind},
		{Code: 50, Name: "dhcp-requested-address", Kind: dhcpmodel.IPKind},
		{Code: 51, Name: "dhcp-lease-time", Kind: dhcpmodel.Uint32Kind},
		{Code: 52, Name: "dhcp-option-overload", Kind: dhcpmodel.Uint8Kind},
		{Code: 54, Name: "dhcp-server-identifier", Kind: dhcpmodel.IPKind},
		{Code: 56, Name: "dhcp-message", Kind: dhcpmodel.StringKind},
		{Code: 57, Name: "dhcp-max-message-size", Kind: dhcpmodel.Uint16Kind},
		{Code: 58, Name: "dhcp-renewal-time", Kind: dhcpmodel.Uint32Kind},
		{Code: 59, Name: "dhcp-rebinding-time", Kind: dhcpmodel.Uint32Kind},
		{Code: 82, Name: "dhcp-agent-options", Kind: dhcpmodel.SubOptionKind},
		{Code: 118, Name: "subnet-selection", Kind: dhcpmodel.IPKind},
		{Code: 119, Name: "domain-search", Kind: dhcpmodel.DomainListKind},
	}
}
